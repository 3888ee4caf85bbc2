package norms

// Reference percentiles for the built-in bank's domains. Community
// samples sit mostly at the healthy end of symptom scales, so the
// curves are left-heavy rather than standard normal.

var seedPoints = map[string][]Point{
	"depression": {
		{-2.0, 1}, {-1.0, 15}, {-0.5, 36}, {0.0, 61},
		{0.5, 79}, {1.0, 89}, {1.5, 95}, {2.0, 98}, {3.0, 99.8},
	},
	"anxiety": {
		{-2.0, 1.5}, {-1.0, 17}, {-0.5, 37}, {0.0, 60},
		{0.5, 77}, {1.0, 88}, {1.5, 94}, {2.0, 97.5}, {3.0, 99.7},
	},
	"fatigue": {
		{-2.5, 1}, {-1.5, 9}, {-0.5, 31}, {0.0, 52},
		{0.5, 71}, {1.0, 84}, {1.5, 92}, {2.0, 96.5}, {3.0, 99.5},
	},
	"sleep_disturbance": {
		{-2.5, 1.5}, {-1.5, 10}, {-0.5, 32}, {0.0, 53},
		{0.5, 72}, {1.0, 85}, {1.5, 93}, {2.0, 97}, {3.0, 99.6},
	},
	"alcohol_use": {
		{-1.0, 38}, {0.0, 72}, {0.5, 84}, {1.0, 91},
		{1.5, 95}, {2.0, 97.5}, {3.0, 99.7},
	},
}

var seedBands = map[string]Bands{
	"depression":        {Mild: 55, Moderate: 60, Severe: 70},
	"anxiety":           {Mild: 55, Moderate: 60, Severe: 70},
	"fatigue":           {Mild: 55, Moderate: 60, Severe: 70},
	"sleep_disturbance": {Mild: 55, Moderate: 60, Severe: 70},
	// Screener flags earlier: any clear elevation warrants follow-up.
	"alcohol_use": {Mild: 55, Moderate: 60, Severe: 65},
}

// Builtin returns the reference table shipped with the built-in bank.
func Builtin() *Table {
	t, err := New(seedPoints, seedBands)
	if err != nil {
		panic("builtin norms invalid: " + err.Error())
	}
	return t
}
