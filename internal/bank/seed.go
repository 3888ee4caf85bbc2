package bank

// The built-in check-in bank: four PROMIS-style emotional distress
// domains plus an alcohol-use screener, calibrated on the usual
// five-point frequency scale. Parameters are in the range published
// short-form calibrations occupy; stems are paraphrased.

var seedDomains = []Domain{
	{Name: "depression", PriorVariance: 1.0, MinItems: 2, Weight: 1.5},
	{Name: "anxiety", PriorVariance: 1.0, MinItems: 2, Weight: 1.5},
	{Name: "fatigue", PriorVariance: 1.0, MinItems: 1, Weight: 1.0},
	{Name: "sleep_disturbance", PriorVariance: 1.0, MinItems: 1, Weight: 1.0},
	{Name: "alcohol_use", PriorVariance: 1.0, MinItems: 2, Weight: 0.5},
}

var seedItems = []Item{
	// Depression (6)
	{ID: "dep_worthless", Domain: "depression", Stem: "I felt worthless", Discrimination: 3.3, Thresholds: []float64{0.39, 0.91, 1.54, 2.27}},
	{ID: "dep_helpless", Domain: "depression", Stem: "I felt helpless", Discrimination: 3.1, Thresholds: []float64{0.32, 0.88, 1.52, 2.25}},
	{ID: "dep_depressed", Domain: "depression", Stem: "I felt depressed", Discrimination: 3.0, Thresholds: []float64{0.07, 0.61, 1.29, 2.05}},
	{ID: "dep_hopeless", Domain: "depression", Stem: "I felt hopeless", Discrimination: 3.3, Thresholds: []float64{0.45, 0.98, 1.59, 2.27}},
	{ID: "dep_failure", Domain: "depression", Stem: "I felt like a failure", Discrimination: 3.2, Thresholds: []float64{0.29, 0.84, 1.45, 2.16}},
	{ID: "dep_unhappy", Domain: "depression", Stem: "I felt unhappy", Discrimination: 2.4, Thresholds: []float64{-0.49, 0.22, 1.05, 1.93}},

	// Anxiety (6)
	{ID: "anx_fearful", Domain: "anxiety", Stem: "I felt fearful", Discrimination: 3.0, Thresholds: []float64{0.40, 1.00, 1.70, 2.45}},
	{ID: "anx_anxious", Domain: "anxiety", Stem: "I felt anxious", Discrimination: 2.7, Thresholds: []float64{-0.05, 0.58, 1.32, 2.07}},
	{ID: "anx_overwhelmed", Domain: "anxiety", Stem: "My worries overwhelmed me", Discrimination: 3.0, Thresholds: []float64{0.23, 0.79, 1.45, 2.15}},
	{ID: "anx_uneasy", Domain: "anxiety", Stem: "I felt uneasy", Discrimination: 2.5, Thresholds: []float64{-0.17, 0.46, 1.21, 2.02}},
	{ID: "anx_tense", Domain: "anxiety", Stem: "I felt tense", Discrimination: 2.4, Thresholds: []float64{-0.30, 0.35, 1.12, 1.93}},
	{ID: "anx_panic", Domain: "anxiety", Stem: "I had sudden feelings of panic", Discrimination: 2.6, Thresholds: []float64{0.62, 1.18, 1.83, 2.53}},

	// Fatigue (5)
	{ID: "fat_rundown", Domain: "fatigue", Stem: "I felt run-down", Discrimination: 2.5, Thresholds: []float64{-0.56, 0.23, 1.07, 1.95}},
	{ID: "fat_tired", Domain: "fatigue", Stem: "I felt tired", Discrimination: 2.2, Thresholds: []float64{-1.10, -0.25, 0.71, 1.69}},
	{ID: "fat_exhausted", Domain: "fatigue", Stem: "I felt exhausted", Discrimination: 2.8, Thresholds: []float64{-0.39, 0.33, 1.13, 1.99}},
	{ID: "fat_energy", Domain: "fatigue", Stem: "I had enough energy to get through the day", Discrimination: 2.0, Thresholds: []float64{-0.88, -0.05, 0.82, 1.71}, Reversed: true},
	{ID: "fat_start", Domain: "fatigue", Stem: "I had trouble starting things because I was tired", Discrimination: 2.7, Thresholds: []float64{-0.04, 0.62, 1.33, 2.09}},

	// Sleep disturbance (5)
	{ID: "slp_quality", Domain: "sleep_disturbance", Stem: "My sleep quality was poor", Discrimination: 2.6, Thresholds: []float64{-0.76, 0.03, 0.89, 1.79}},
	{ID: "slp_refreshing", Domain: "sleep_disturbance", Stem: "My sleep was refreshing", Discrimination: 2.2, Thresholds: []float64{-0.95, -0.11, 0.78, 1.67}, Reversed: true},
	{ID: "slp_falling", Domain: "sleep_disturbance", Stem: "I had difficulty falling asleep", Discrimination: 2.3, Thresholds: []float64{-0.43, 0.24, 0.98, 1.78}},
	{ID: "slp_staying", Domain: "sleep_disturbance", Stem: "I had trouble staying asleep", Discrimination: 2.2, Thresholds: []float64{-0.35, 0.34, 1.07, 1.86}},
	{ID: "slp_problem", Domain: "sleep_disturbance", Stem: "I had a problem with my sleep", Discrimination: 2.9, Thresholds: []float64{-0.38, 0.28, 1.02, 1.84}},

	// Alcohol use screener (4)
	{ID: "alc_freq", Domain: "alcohol_use", Stem: "I drank alcohol", Discrimination: 1.9, Thresholds: []float64{-0.20, 0.52, 1.24, 2.02},
		Choices: []string{"Never", "Monthly or less", "2-4 times a month", "2-3 times a week", "4 or more times a week"}},
	{ID: "alc_morning", Domain: "alcohol_use", Stem: "I needed a drink in the morning to get myself going", Discrimination: 2.4, Thresholds: []float64{1.10, 1.70, 2.30, 2.95}},
	{ID: "alc_guilt", Domain: "alcohol_use", Stem: "I felt guilt or remorse after drinking", Discrimination: 2.2, Thresholds: []float64{0.60, 1.21, 1.86, 2.55}},
	{ID: "alc_cutdown", Domain: "alcohol_use", Stem: "I felt I should cut down on my drinking", Discrimination: 2.0, Thresholds: []float64{0.42, 1.05, 1.71, 2.40}},
}

// seedPrior correlates the mood domains (order: depression, anxiety,
// fatigue, sleep_disturbance, alcohol_use).
var seedPrior = [][]float64{
	{1.00, 0.55, 0.40, 0.30, 0.10},
	{0.55, 1.00, 0.35, 0.30, 0.10},
	{0.40, 0.35, 1.00, 0.45, 0.05},
	{0.30, 0.30, 0.45, 1.00, 0.05},
	{0.10, 0.10, 0.05, 0.05, 1.00},
}

var seedConfig = Config{
	MinItems:          6,
	MaxItems:          15,
	MinDomains:        3,
	GlobalSEThreshold: 0.32,
	GroupSEThreshold:  0.40,
	PenaltyLambda:     0.05,
	StopOnExhaustion:  true,
	PromisDomains:     []string{"depression", "anxiety", "fatigue", "sleep_disturbance"},
	ScreenerDomains:   []string{"alcohol_use"},
}

// Near-duplicate stems that should not appear in the same session.
var seedExclusions = [][2]string{
	{"slp_quality", "slp_problem"},
	{"fat_tired", "fat_exhausted"},
}

var seedScale = []string{"Never", "Rarely", "Sometimes", "Often", "Always"}

// Builtin returns the compiled-in check-in bank and its exclusion
// constraints. The seed data is fixed at compile time, so a validation
// failure here is a programming error.
func Builtin() (*Bank, *Constraints) {
	domains := make([]Domain, len(seedDomains))
	copy(domains, seedDomains)
	items := make([]Item, len(seedItems))
	copy(items, seedItems)

	b, err := Build("Well-Being Check-In", "1.0.0", domains, items, seedConfig, clonePrior(seedPrior), seedScale)
	if err != nil {
		panic("builtin bank invalid: " + err.Error())
	}
	cons := NewConstraints(seedExclusions)
	if err := b.ValidateExclusions(cons); err != nil {
		panic("builtin exclusions invalid: " + err.Error())
	}
	return b, cons
}

func clonePrior(p [][]float64) [][]float64 {
	out := make([][]float64, len(p))
	for i, row := range p {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}
