package bank

// Config is the scoring configuration block carried by a bank.
type Config struct {
	// MinItems is the floor on administered items before any stop rule
	// other than the hard cap may fire.
	MinItems int

	// MaxItems is the hard cap on administered items.
	MaxItems int

	// MinDomains, when positive, requires answers from at least this
	// many distinct domains before precision rules may stop the session.
	MinDomains int

	// GlobalSEThreshold stops the session once the RMS of all domain
	// standard errors falls to or below it. Zero is unreachable and
	// disables the rule.
	GlobalSEThreshold float64

	// GroupSEThreshold, when positive, stops the session once the RMS
	// over the promis domain group falls to or below it.
	GroupSEThreshold float64

	// PenaltyLambda scales the domain-balance penalty in selection.
	PenaltyLambda float64

	// DomainWeights divides each domain's balance penalty; merged onto
	// Domain.Weight at build time.
	DomainWeights map[string]float64

	// MinItemsByDomain sets per-domain exposure floors; merged onto
	// Domain.MinItems at build time.
	MinItemsByDomain map[string]int

	// StopOnExhaustion ends the session cleanly when no eligible items
	// remain, instead of insisting on the hard cap.
	StopOnExhaustion bool

	// PromisDomains names the instrument's primary measurement group:
	// per-domain exposure floors are enforced for it and the group
	// precision rule evaluates over it. Defaults to every domain when
	// neither group is named.
	PromisDomains []string

	// ScreenerDomains names the clinical screener group: exposure floors
	// are enforced for it and selection grants it a small extra discount
	// at two prior exposures.
	ScreenerDomains []string
}

// DefaultConfig returns the configuration used when a bank file omits
// the config block.
func DefaultConfig() Config {
	return Config{
		MinItems:          4,
		MaxItems:          12,
		GlobalSEThreshold: 0.387, // reliability ~0.85 on the theta scale
		PenaltyLambda:     0.05,
		StopOnExhaustion:  true,
	}
}
