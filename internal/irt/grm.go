package irt

import "math"

const (
	// saturationArg is the logistic argument beyond which the curve is
	// treated as fully saturated, avoiding exp overflow.
	saturationArg = 35.0

	// probFloor keeps category probabilities strictly positive so that
	// log-likelihood and information terms never divide by zero.
	probFloor = 1e-10

	// infoFloor keeps Fisher information strictly positive; a zero would
	// make the posterior update a no-op and the selection gain degenerate.
	infoFloor = 1e-10
)

// Logistic evaluates the standard logistic function, saturating to exactly
// 0 or 1 for extreme arguments.
func Logistic(x float64) float64 {
	if x > saturationArg {
		return 1.0
	}
	if x < -saturationArg {
		return 0.0
	}
	return 1.0 / (1.0 + math.Exp(-x))
}

// CategoryCount returns the number of response categories implied by the
// usable (finite) thresholds: K categories for K-1 thresholds.
func CategoryCount(thresholds []float64) int {
	return len(finiteThresholds(thresholds)) + 1
}

// CumulativeProbs returns the graded-response cumulative curves
// G_0..G_K at theta: G_0 is always 1, G_K always 0, and
// G_k = logistic(a*(theta-b_{k-1})) in between.
func CumulativeProbs(theta, a float64, thresholds []float64) []float64 {
	b := finiteThresholds(thresholds)
	g := make([]float64, len(b)+2)
	g[0] = 1.0
	for k, bk := range b {
		g[k+1] = Logistic(a * (theta - bk))
	}
	g[len(g)-1] = 0.0
	return g
}

// CategoryProbs returns P_k = G_k - G_{k+1} for each of the K categories,
// each floored above zero.
func CategoryProbs(theta, a float64, thresholds []float64) []float64 {
	g := CumulativeProbs(theta, a, thresholds)
	p := make([]float64, len(g)-1)
	for k := range p {
		p[k] = math.Max(g[k]-g[k+1], probFloor)
	}
	return p
}

// Information returns the Fisher information about theta carried by one
// item: sum over categories of (dP_k)^2 / P_k, where dP_k is the
// derivative of the category probability. Floored above zero.
func Information(theta, a float64, thresholds []float64) float64 {
	g := CumulativeProbs(theta, a, thresholds)
	info := 0.0
	for k := 0; k < len(g)-1; k++ {
		p := math.Max(g[k]-g[k+1], probFloor)
		dp := cumDeriv(a, g[k]) - cumDeriv(a, g[k+1])
		info += dp * dp / p
	}
	return math.Max(info, infoFloor)
}

// cumDeriv is the derivative of a cumulative curve value:
// dG/dtheta = a * G * (1 - G).
func cumDeriv(a, g float64) float64 {
	return a * g * (1.0 - g)
}

// finiteThresholds strips non-finite placeholder entries. Calibration
// exports pad unused threshold slots with NaN; those slots carry no curve.
func finiteThresholds(thresholds []float64) []float64 {
	clean := true
	for _, b := range thresholds {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			clean = false
			break
		}
	}
	if clean {
		return thresholds
	}
	out := make([]float64, 0, len(thresholds))
	for _, b := range thresholds {
		if !math.IsNaN(b) && !math.IsInf(b, 0) {
			out = append(out, b)
		}
	}
	return out
}
