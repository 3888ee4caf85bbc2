package cat

import "math"

// NormProvider supplies population reference lookups, consumed only
// when a session finishes.
type NormProvider interface {
	// Percentile maps a domain score to its reference percentile [0, 100].
	Percentile(domain string, theta float64) float64
	// Severity maps a domain score to a severity label.
	Severity(domain string, theta float64) string
}

// Results is the frozen outcome of a finished session.
type Results struct {
	TotalItems int                `json:"total_items"`
	StopReason string             `json:"stop_reason"`
	GlobalSE   float64            `json:"global_se"`
	Domains    []DomainResult     `json:"domain_results"`
	Items      []AdministeredItem `json:"items_administered"`
}

// DomainResult is one domain's scored outcome.
type DomainResult struct {
	Domain     string  `json:"domain"`
	Theta      float64 `json:"theta"`
	SE         float64 `json:"se"`
	TScore     float64 `json:"t_score"`
	Percentile float64 `json:"percentile"`
	Severity   string  `json:"severity"`
}

// AdministeredItem is one log entry of the finished session, with the
// stem retained for display.
type AdministeredItem struct {
	ItemID   string `json:"item_id"`
	Domain   string `json:"domain"`
	Stem     string `json:"stem"`
	Response int    `json:"response"`
}

// buildResults derives the Results value from frozen session state.
func (s *Session) buildResults() *Results {
	ses := s.sigma.StandardErrors()
	out := &Results{
		TotalItems: len(s.responses),
		StopReason: s.stopReason,
		GlobalSE:   rmsOf(ses),
		Domains:    make([]DomainResult, 0, len(s.bank.Domains)),
		Items:      make([]AdministeredItem, 0, len(s.responses)),
	}

	for d, dom := range s.bank.Domains {
		theta := s.theta[d]
		dr := DomainResult{
			Domain: dom.Name,
			Theta:  theta,
			SE:     ses[d],
			TScore: 50 + 10*theta,
		}
		if s.norms != nil {
			dr.Percentile = s.norms.Percentile(dom.Name, theta)
			dr.Severity = s.norms.Severity(dom.Name, theta)
		} else {
			dr.Percentile = normalPercentile(theta)
		}
		out.Domains = append(out.Domains, dr)
	}

	for _, r := range s.responses {
		stem := ""
		if it, err := s.bank.Item(r.ItemID); err == nil {
			stem = it.Stem
		}
		out.Items = append(out.Items, AdministeredItem{
			ItemID:   r.ItemID,
			Domain:   r.Domain,
			Stem:     stem,
			Response: r.Response,
		})
	}
	return out
}

// normalPercentile is the standard-normal fallback used when no norms
// are supplied.
func normalPercentile(theta float64) float64 {
	return 100 * 0.5 * math.Erfc(-theta/math.Sqrt2)
}
