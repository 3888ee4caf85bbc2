package cat

import (
	"math"

	"github.com/abhisek/checkin/internal/bank"
	"github.com/abhisek/checkin/internal/irt"
)

const (
	// newtonMaxIter bounds the MAP refinement loop.
	newtonMaxIter = 50

	// newtonTol stops iteration once the largest per-domain step falls
	// below it.
	newtonTol = 1e-4

	// newtonDamping is subtracted from the Hessian so near-flat
	// likelihoods still produce a bounded step.
	newtonDamping = 0.01

	// hessFloor is the smallest Hessian denominator magnitude worth
	// dividing by; below it the domain's update is skipped for the
	// iteration.
	hessFloor = 1e-8

	// stepBound caps a single Newton step.
	stepBound = 1.0

	// thetaBound keeps ability estimates inside the calibrated range.
	thetaBound = 4.0
)

// scoredResponse is one administered item reduced to what the
// likelihood needs: parameters and the direction-corrected category.
type scoredResponse struct {
	a          float64
	thresholds []float64
	category   int
}

// scoredCategory maps a raw response index to the category the
// likelihood scores: clamped into range, then reflected for
// reversed-polarity items.
func scoredCategory(it *bank.Item, raw int) int {
	k := irt.ClampCategory(raw, it.Categories)
	if it.Reversed {
		k = it.Categories - 1 - k
	}
	return k
}

// estimateMAP recomputes the full ability vector in place from the
// response log: a diagonal-precision Gaussian prior plus each
// administered item's log-likelihood, maximized by damped Newton
// iteration decoupled per domain. Cross-domain prior correlation is
// deliberately left to the covariance tracker; coupling the Newton
// system adds instability without improving the point estimate much.
func estimateMAP(b *bank.Bank, responses []Response, theta []float64) {
	byDomain := make([][]scoredResponse, len(b.Domains))
	for _, r := range responses {
		it, err := b.Item(r.ItemID)
		if err != nil {
			continue
		}
		d, ok := b.DomainIndex(it.Domain)
		if !ok {
			continue
		}
		byDomain[d] = append(byDomain[d], scoredResponse{
			a:          it.Discrimination,
			thresholds: it.Thresholds,
			category:   scoredCategory(it, r.Response),
		})
	}

	for iter := 0; iter < newtonMaxIter; iter++ {
		maxStep := 0.0
		for d := range theta {
			prec := 1.0 / b.Prior[d][d]
			grad := -prec * theta[d]
			hess := -prec
			for _, r := range byDomain[d] {
				grad += irt.Gradient(theta[d], r.a, r.thresholds, r.category)
				hess += irt.SecondDeriv(theta[d], r.a, r.thresholds, r.category)
			}
			denom := hess - newtonDamping
			if math.Abs(denom) < hessFloor {
				continue
			}
			step := clamp(-grad/denom, -stepBound, stepBound)
			theta[d] = clamp(theta[d]+step, -thetaBound, thetaBound)
			if math.Abs(step) > maxStep {
				maxStep = math.Abs(step)
			}
		}
		if maxStep < newtonTol {
			break
		}
	}

	for d := range theta {
		if math.IsNaN(theta[d]) || math.IsInf(theta[d], 0) {
			theta[d] = 0
		}
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
