package bank

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/abhisek/checkin/internal/irt"
)

// Domain is one scored latent dimension of a bank.
type Domain struct {
	Name string

	// PriorVariance is the marginal prior variance for this dimension.
	PriorVariance float64

	// MinItems is the minimum number of administrations required before
	// precision rules may end a session. Zero means no requirement.
	MinItems int

	// Weight divides the selection balance penalty; heavier domains get
	// more items before the penalty bites.
	Weight float64
}

// Item is a single calibrated graded-response question.
type Item struct {
	ID     string
	Domain string
	Stem   string

	// Discrimination is the GRM slope; must be positive.
	Discrimination float64

	// Thresholds are the K-1 ordered category boundaries on the theta
	// scale. Calibration exports may pad unused slots with NaN.
	Thresholds []float64

	// Categories is K, the number of response categories.
	Categories int

	// Reversed marks items whose display order runs against the
	// calibration direction; responses are reflected before scoring.
	Reversed bool

	// Choices optionally overrides the bank-level response scale labels.
	Choices []string
}

// Bank is a validated, immutable item bank: the domains, the calibrated
// items, the scoring configuration and the prior covariance. Build is the
// only constructor; a Bank that exists has passed validation.
type Bank struct {
	Name          string
	FormatVersion string
	Domains       []Domain
	Items         []Item
	Config        Config

	// Prior is the D x D prior covariance over domains.
	Prior [][]float64

	// ResponseScale holds the default display labels for items that
	// carry none of their own.
	ResponseScale []string

	byID      map[string]*Item
	domainIdx map[string]int
	byDomain  map[string][]string
}

// Build assembles and validates a Bank. It is the single construction
// step: every structural problem found is reported at once, and no Bank
// value is produced on failure.
func Build(name, formatVersion string, domains []Domain, items []Item, cfg Config, prior [][]float64, scale []string) (*Bank, error) {
	b := &Bank{
		Name:          name,
		FormatVersion: formatVersion,
		Domains:       domains,
		Items:         items,
		Config:        cfg,
		Prior:         prior,
		ResponseScale: scale,
	}
	b.applyDefaults()
	if err := b.validate(); err != nil {
		return nil, err
	}
	b.buildIndices()
	return b, nil
}

// applyDefaults fills zero-valued optional fields before validation.
func (b *Bank) applyDefaults() {
	for i := range b.Domains {
		d := &b.Domains[i]
		if d.PriorVariance == 0 {
			d.PriorVariance = 1.0
		}
		if d.Weight == 0 {
			d.Weight = 1.0
		}
		if m, ok := b.Config.MinItemsByDomain[d.Name]; ok {
			d.MinItems = m
		}
		if w, ok := b.Config.DomainWeights[d.Name]; ok {
			d.Weight = w
		}
	}

	for i := range b.Items {
		it := &b.Items[i]
		if it.Categories == 0 {
			it.Categories = irt.CategoryCount(it.Thresholds)
		}
	}

	// A bank that names no precision group measures everything on the
	// primary scale set.
	if len(b.Config.PromisDomains) == 0 && len(b.Config.ScreenerDomains) == 0 {
		for _, d := range b.Domains {
			b.Config.PromisDomains = append(b.Config.PromisDomains, d.Name)
		}
	}

	// Default prior: independent domains at their own prior variances.
	if b.Prior == nil {
		b.Prior = make([][]float64, len(b.Domains))
		for i := range b.Prior {
			b.Prior[i] = make([]float64, len(b.Domains))
			b.Prior[i][i] = b.Domains[i].PriorVariance
		}
	}
}

func (b *Bank) buildIndices() {
	b.byID = make(map[string]*Item, len(b.Items))
	b.domainIdx = make(map[string]int, len(b.Domains))
	b.byDomain = make(map[string][]string)

	for i := range b.Domains {
		b.domainIdx[b.Domains[i].Name] = i
	}
	for i := range b.Items {
		it := &b.Items[i]
		b.byID[it.ID] = it
		b.byDomain[it.Domain] = append(b.byDomain[it.Domain], it.ID)
	}
}

// Item returns an item by ID, or an error if not found.
func (b *Bank) Item(id string) (*Item, error) {
	it, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("item not found: %q", id)
	}
	return it, nil
}

// DomainIndex returns the position of a domain in the bank's ordering.
func (b *Bank) DomainIndex(name string) (int, bool) {
	idx, ok := b.domainIdx[name]
	return idx, ok
}

// DomainNames returns the bank's domain names in declaration order.
func (b *Bank) DomainNames() []string {
	names := make([]string, len(b.Domains))
	for i, d := range b.Domains {
		names[i] = d.Name
	}
	return names
}

// ItemIDs returns all item IDs in declaration order.
func (b *Bank) ItemIDs() []string {
	ids := make([]string, len(b.Items))
	for i := range b.Items {
		ids[i] = b.Items[i].ID
	}
	return ids
}

// DomainItems returns the IDs of all items belonging to a domain.
func (b *Bank) DomainItems(domain string) []string {
	return slices.Clone(b.byDomain[domain])
}

// ScaleFor returns exactly Categories display labels for an item: its
// own choices when present, the bank scale otherwise. Items with fewer
// categories than the bank scale use the scale's leading labels; a bank
// with no scale at all falls back to bare numbers.
func (b *Bank) ScaleFor(it *Item) []string {
	if len(it.Choices) > 0 {
		return it.Choices
	}
	if len(b.ResponseScale) >= it.Categories {
		return b.ResponseScale[:it.Categories]
	}
	labels := make([]string, it.Categories)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}

// InGroup reports whether a domain belongs to the named group list.
func InGroup(domain string, group []string) bool {
	return slices.Contains(group, domain)
}
