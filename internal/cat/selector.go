package cat

import (
	"math"

	"github.com/abhisek/checkin/internal/bank"
	"github.com/abhisek/checkin/internal/irt"
)

const (
	// tieTol treats selection scores within it of the maximum as tied.
	tieTol = 1e-12

	// minWeightDiv floors the balance penalty's weight divisor so a tiny
	// domain weight cannot blow the penalty up.
	minWeightDiv = 0.25

	// Exposure discounts shrink the penalty for barely-touched domains,
	// pulling every domain into the session early.
	firstExposureDiscount  = 0.50
	secondExposureDiscount = 0.25

	// screenerThirdDiscount nudges a third screener item in; screener
	// domains are short and benefit from one extra confirmation item.
	screenerThirdDiscount = 0.10
)

// Selector picks the next item to administer, or reports that nothing
// is selectable.
type Selector interface {
	Next(s *Session) (string, bool)
}

// AOptimalSelector chooses the eligible item whose administration most
// reduces the posterior trace, less a domain-balance penalty.
type AOptimalSelector struct{}

// Next returns the chosen item ID, or ok=false when the bank is
// exhausted for this session.
func (AOptimalSelector) Next(s *Session) (string, bool) {
	eligible := s.eligibleItems()
	if len(eligible) == 0 {
		return "", false
	}

	if pool := s.coveragePool(eligible); len(pool) > 0 {
		eligible = pool
	}

	// Nothing answered yet: no information to differentiate items, so
	// start uniformly at random.
	if len(s.responses) == 0 {
		return eligible[s.rng.IntN(len(eligible))], true
	}

	best := ""
	bestScore := math.Inf(-1)
	ties := 0
	for _, id := range eligible {
		score := s.selectionScore(id)
		switch {
		case score > bestScore+tieTol:
			best, bestScore, ties = id, score, 1
		case score >= bestScore-tieTol:
			// Tied with the current best: reservoir flip keeps each
			// tied item equally likely.
			ties++
			if s.rng.IntN(ties) == 0 {
				best = id
			}
		}
	}
	return best, best != ""
}

// eligibleItems returns the remaining items not blocked by an exclusion
// partner that was already administered, in bank order.
func (s *Session) eligibleItems() []string {
	out := make([]string, 0, len(s.remaining))
	for _, id := range s.remaining {
		if s.blockedByExclusion(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func (s *Session) blockedByExclusion(id string) bool {
	for _, partner := range s.constraints.Partners(id) {
		if s.administered[partner] {
			return true
		}
	}
	return false
}

// coveragePool restricts early selection to domains still below their
// minimum exposure. The restriction only applies while the session is
// young enough to fit the missing coverage in; an empty pool means no
// restriction.
func (s *Session) coveragePool(eligible []string) []string {
	under := s.underCoveredDomains()
	if len(under) == 0 {
		return nil
	}
	if len(s.responses) >= s.bank.Config.MinItems+len(under) {
		return nil
	}
	var pool []string
	for _, id := range eligible {
		it, err := s.bank.Item(id)
		if err != nil {
			continue
		}
		if under[it.Domain] {
			pool = append(pool, id)
		}
	}
	return pool
}

func (s *Session) underCoveredDomains() map[string]bool {
	under := make(map[string]bool)
	for d, dom := range s.bank.Domains {
		if s.counts[d] < dom.MinItems {
			under[dom.Name] = true
		}
	}
	return under
}

// selectionScore is the A-optimal gain of an item minus its domain's
// balance penalty. The gain is the exact posterior-trace reduction the
// Sherman-Morrison update would produce for this item at the current
// ability estimate:
//
//	gain = info * sum_k Sigma[k][d]^2 / (1 + info*Sigma[d][d])
func (s *Session) selectionScore(id string) float64 {
	it, err := s.bank.Item(id)
	if err != nil {
		return math.Inf(-1)
	}
	d, ok := s.bank.DomainIndex(it.Domain)
	if !ok {
		return math.Inf(-1)
	}

	info := irt.Information(s.theta[d], it.Discrimination, it.Thresholds)
	var colSq float64
	for k := range s.sigma {
		colSq += s.sigma[k][d] * s.sigma[k][d]
	}
	denom := 1 + info*s.sigma[d][d]
	gain := info * colSq / denom

	return gain - s.balancePenalty(d)
}

// balancePenalty grows quadratically with a domain's exposure, divided
// by its weight, with discounts that favour untouched domains.
func (s *Session) balancePenalty(d int) float64 {
	dom := s.bank.Domains[d]
	count := float64(s.counts[d])
	penalty := s.bank.Config.PenaltyLambda * count * count / math.Max(dom.Weight, minWeightDiv)

	switch s.counts[d] {
	case 0:
		penalty -= firstExposureDiscount
	case 1:
		penalty -= secondExposureDiscount
	case 2:
		if bank.InGroup(dom.Name, s.bank.Config.ScreenerDomains) {
			penalty -= screenerThirdDiscount
		}
	}
	return penalty
}
