package cat

import "github.com/abhisek/checkin/internal/bank"

// Stop reasons recorded on Results. These are contract strings
// consumed by display and storage collaborators; do not rename.
const (
	StopMaxItems       = "max_items"
	StopPrecisionAll   = "precision_reached_all_domains"
	StopPrecisionGroup = "precision_reached_promis"
	StopBankExhausted  = "bank_exhausted"

	// StopAborted marks a caller-forced finish (user quit); never
	// produced by the policy cascade itself.
	StopAborted = "aborted"
)

// stopDecision runs the ordered termination cascade; the first matching
// rule wins. anyEligible reports whether the selector still has an item
// to offer. Returns the stop reason and whether to stop.
func (s *Session) stopDecision(anyEligible bool) (string, bool) {
	cfg := s.bank.Config
	n := len(s.responses)

	// Floor: never stop before the global minimum.
	if n < cfg.MinItems {
		return "", false
	}

	// Distinct-domain coverage.
	if cfg.MinDomains > 0 && s.distinctDomains() < cfg.MinDomains {
		if n >= cfg.MaxItems {
			return StopMaxItems, true
		}
		return "", false
	}

	// Per-domain minimum exposure inside the named groups.
	if s.groupMinimumsUnmet() {
		if n >= cfg.MaxItems {
			return StopMaxItems, true
		}
		return "", false
	}

	// Precision: whole battery first, then the primary group alone.
	ses := s.sigma.StandardErrors()
	if rmsOf(ses) <= cfg.GlobalSEThreshold {
		return StopPrecisionAll, true
	}
	if group := s.groupSEs(ses, cfg.PromisDomains); len(group) > 0 && rmsOf(group) <= cfg.GroupSEThreshold {
		return StopPrecisionGroup, true
	}

	// Hard cap.
	if n >= cfg.MaxItems {
		return StopMaxItems, true
	}

	if cfg.StopOnExhaustion && !anyEligible {
		return StopBankExhausted, true
	}

	return "", false
}

// distinctDomains counts domains with at least one administration.
func (s *Session) distinctDomains() int {
	n := 0
	for _, c := range s.counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// groupMinimumsUnmet reports whether any domain in either named group
// still sits below its per-domain minimum exposure.
func (s *Session) groupMinimumsUnmet() bool {
	cfg := s.bank.Config
	for d, dom := range s.bank.Domains {
		if dom.MinItems <= 0 {
			continue
		}
		if !bank.InGroup(dom.Name, cfg.PromisDomains) && !bank.InGroup(dom.Name, cfg.ScreenerDomains) {
			continue
		}
		if s.counts[d] < dom.MinItems {
			return true
		}
	}
	return false
}

// groupSEs picks out the standard errors of the domains in a group.
func (s *Session) groupSEs(ses []float64, group []string) []float64 {
	var out []float64
	for d, dom := range s.bank.Domains {
		if bank.InGroup(dom.Name, group) {
			out = append(out, ses[d])
		}
	}
	return out
}
