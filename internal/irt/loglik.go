package irt

import "math"

// hessStep is the central-difference step for the numeric second
// derivative of the log-likelihood.
const hessStep = 1e-4

// LogLikelihood returns ln P_k(theta) for one observed category k.
// The index is clamped into the valid category range before use.
func LogLikelihood(theta, a float64, thresholds []float64, k int) float64 {
	p := CategoryProbs(theta, a, thresholds)
	return math.Log(p[ClampCategory(k, len(p))])
}

// Gradient returns the analytic first derivative of the log-likelihood
// for one observed category: (dG_k - dG_{k+1}) / P_k.
func Gradient(theta, a float64, thresholds []float64, k int) float64 {
	g := CumulativeProbs(theta, a, thresholds)
	k = ClampCategory(k, len(g)-1)
	p := math.Max(g[k]-g[k+1], probFloor)
	return (cumDeriv(a, g[k]) - cumDeriv(a, g[k+1])) / p
}

// SecondDeriv returns the second derivative of the log-likelihood via a
// central difference of the analytic gradient.
func SecondDeriv(theta, a float64, thresholds []float64, k int) float64 {
	hi := Gradient(theta+hessStep, a, thresholds, k)
	lo := Gradient(theta-hessStep, a, thresholds, k)
	return (hi - lo) / (2.0 * hessStep)
}

// ClampCategory forces a raw response index into [0, K-1].
func ClampCategory(k, categories int) int {
	if k < 0 {
		return 0
	}
	if k > categories-1 {
		return categories - 1
	}
	return k
}
