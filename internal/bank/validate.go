package bank

import (
	"fmt"
	"math"
	"strings"
)

// ConfigError reports every structural problem found in a bank at once.
// A bank that fails validation produces no usable value.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bank validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// symmetryTol is the largest |Prior[i][j]-Prior[j][i]| accepted.
const symmetryTol = 1e-9

// validate performs all structural checks on the bank.
// Returns a *ConfigError describing all problems found, or nil if valid.
func (b *Bank) validate() error {
	var errs []string

	// Domains.
	if len(b.Domains) == 0 {
		errs = append(errs, "bank declares no domains")
	}
	domainSet := make(map[string]bool, len(b.Domains))
	for _, d := range b.Domains {
		if d.Name == "" {
			errs = append(errs, "domain with empty name")
			continue
		}
		if domainSet[d.Name] {
			errs = append(errs, fmt.Sprintf("duplicate domain: %q", d.Name))
		}
		domainSet[d.Name] = true
		if d.PriorVariance <= 0 || math.IsNaN(d.PriorVariance) {
			errs = append(errs, fmt.Sprintf("domain %q: prior variance must be > 0, got %g", d.Name, d.PriorVariance))
		}
		if d.Weight <= 0 || math.IsNaN(d.Weight) {
			errs = append(errs, fmt.Sprintf("domain %q: weight must be > 0, got %g", d.Name, d.Weight))
		}
		if d.MinItems < 0 {
			errs = append(errs, fmt.Sprintf("domain %q: min items must be >= 0, got %d", d.Name, d.MinItems))
		}
	}

	// Items.
	if len(b.Items) == 0 {
		errs = append(errs, "bank declares no items")
	}
	idSet := make(map[string]bool, len(b.Items))
	for _, it := range b.Items {
		prefix := fmt.Sprintf("item %q", it.ID)
		if it.ID == "" {
			errs = append(errs, "item with empty ID")
			continue
		}
		if idSet[it.ID] {
			errs = append(errs, fmt.Sprintf("duplicate item ID: %q", it.ID))
		}
		idSet[it.ID] = true

		if !domainSet[it.Domain] {
			errs = append(errs, fmt.Sprintf("%s references nonexistent domain %q", prefix, it.Domain))
		}
		if it.Discrimination <= 0 || math.IsNaN(it.Discrimination) {
			errs = append(errs, fmt.Sprintf("%s: discrimination must be > 0, got %g", prefix, it.Discrimination))
		}

		finite := finiteOnly(it.Thresholds)
		if len(finite) == 0 {
			errs = append(errs, fmt.Sprintf("%s: no finite thresholds", prefix))
		}
		for i := 1; i < len(finite); i++ {
			if finite[i] <= finite[i-1] {
				errs = append(errs, fmt.Sprintf("%s: thresholds must be strictly ascending", prefix))
				break
			}
		}
		if it.Categories != len(finite)+1 {
			errs = append(errs, fmt.Sprintf("%s: %d categories inconsistent with %d usable thresholds", prefix, it.Categories, len(finite)))
		}
		if len(it.Choices) > 0 && len(it.Choices) != it.Categories {
			errs = append(errs, fmt.Sprintf("%s: %d choice labels for %d categories", prefix, len(it.Choices), it.Categories))
		}
	}

	// Config block.
	cfg := b.Config
	if cfg.MinItems < 0 {
		errs = append(errs, fmt.Sprintf("config: min_items must be >= 0, got %d", cfg.MinItems))
	}
	if cfg.MaxItems <= 0 {
		errs = append(errs, fmt.Sprintf("config: max_items must be > 0, got %d", cfg.MaxItems))
	}
	if cfg.MaxItems > 0 && cfg.MinItems > cfg.MaxItems {
		errs = append(errs, fmt.Sprintf("config: min_items %d exceeds max_items %d", cfg.MinItems, cfg.MaxItems))
	}
	if cfg.MinDomains < 0 || cfg.MinDomains > len(b.Domains) {
		errs = append(errs, fmt.Sprintf("config: domains_min %d outside [0, %d]", cfg.MinDomains, len(b.Domains)))
	}
	if cfg.GlobalSEThreshold < 0 {
		errs = append(errs, fmt.Sprintf("config: global_se_threshold must be >= 0, got %g", cfg.GlobalSEThreshold))
	}
	if cfg.GroupSEThreshold < 0 {
		errs = append(errs, fmt.Sprintf("config: group_se_threshold must be >= 0, got %g", cfg.GroupSEThreshold))
	}
	if cfg.PenaltyLambda < 0 {
		errs = append(errs, fmt.Sprintf("config: domain_penalty_lambda must be >= 0, got %g", cfg.PenaltyLambda))
	}
	for name := range cfg.MinItemsByDomain {
		if !domainSet[name] {
			errs = append(errs, fmt.Sprintf("config: min_items_by_domain references nonexistent domain %q", name))
		}
	}
	for name := range cfg.DomainWeights {
		if !domainSet[name] {
			errs = append(errs, fmt.Sprintf("config: domain_weights references nonexistent domain %q", name))
		}
	}
	for _, name := range cfg.PromisDomains {
		if !domainSet[name] {
			errs = append(errs, fmt.Sprintf("config: promis_domains references nonexistent domain %q", name))
		}
	}
	for _, name := range cfg.ScreenerDomains {
		if !domainSet[name] {
			errs = append(errs, fmt.Sprintf("config: screener_domains references nonexistent domain %q", name))
		}
	}

	// Prior covariance.
	if len(b.Prior) != len(b.Domains) {
		errs = append(errs, fmt.Sprintf("prior covariance has %d rows for %d domains", len(b.Prior), len(b.Domains)))
	} else {
		for i, row := range b.Prior {
			if len(row) != len(b.Domains) {
				errs = append(errs, fmt.Sprintf("prior covariance row %d has %d columns for %d domains", i, len(row), len(b.Domains)))
				continue
			}
			if row[i] <= 0 || math.IsNaN(row[i]) {
				errs = append(errs, fmt.Sprintf("prior covariance diagonal [%d][%d] must be > 0, got %g", i, i, row[i]))
			}
			for j := 0; j < i; j++ {
				if math.Abs(row[j]-b.Prior[j][i]) > symmetryTol {
					errs = append(errs, fmt.Sprintf("prior covariance asymmetric at [%d][%d]", i, j))
				}
			}
		}
	}

	if len(errs) > 0 {
		return &ConfigError{Problems: errs}
	}
	return nil
}

// ValidateExclusions checks that every exclusion pair names items the
// bank actually holds and never pairs an item with itself.
func (b *Bank) ValidateExclusions(c *Constraints) error {
	if c == nil {
		return nil
	}
	var errs []string
	for _, p := range c.Pairs() {
		if p[0] == p[1] {
			errs = append(errs, fmt.Sprintf("exclusion pairs item %q with itself", p[0]))
		}
		for _, id := range p {
			if _, ok := b.byID[id]; !ok {
				errs = append(errs, fmt.Sprintf("exclusion references nonexistent item %q", id))
			}
		}
	}
	if len(errs) > 0 {
		return &ConfigError{Problems: errs}
	}
	return nil
}

func finiteOnly(thresholds []float64) []float64 {
	out := make([]float64, 0, len(thresholds))
	for _, t := range thresholds {
		if !math.IsNaN(t) && !math.IsInf(t, 0) {
			out = append(out, t)
		}
	}
	return out
}
