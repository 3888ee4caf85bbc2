package bank

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// minFormatVersion is the oldest bank file layout this build reads.
// Banks declare their layout in format_version; only the v1 line is
// supported.
const minFormatVersion = "v1.0.0"

// bankFile mirrors the on-disk JSON layout. Exactly one spelling is
// accepted per field; anything else fails schema validation.
type bankFile struct {
	FormatVersion   string       `json:"format_version"`
	Name            string       `json:"name"`
	Domains         []domainFile `json:"domains"`
	Items           []itemFile   `json:"items"`
	Config          *configFile  `json:"config"`
	PriorCovariance [][]float64  `json:"prior_covariance"`
	Exclusions      [][]string   `json:"exclusions"`
	ResponseScale   []string     `json:"response_scale"`
}

type domainFile struct {
	Name          string  `json:"name"`
	PriorVariance float64 `json:"prior_variance"`
	MinItems      int     `json:"min_items"`
	Weight        float64 `json:"weight"`
}

type itemFile struct {
	ID         string     `json:"id"`
	Domain     string     `json:"domain"`
	Stem       string     `json:"stem"`
	A          float64    `json:"a"`
	Thresholds []*float64 `json:"thresholds"`
	Reversed   bool       `json:"reversed"`
	Choices    []string   `json:"choices"`
}

type configFile struct {
	MinItems         *int               `json:"min_items"`
	MaxItems         *int               `json:"max_items"`
	DomainsMin       *int               `json:"domains_min"`
	GlobalSE         *float64           `json:"global_se_threshold"`
	GroupSE          *float64           `json:"group_se_threshold"`
	PenaltyLambda    *float64           `json:"domain_penalty_lambda"`
	DomainWeights    map[string]float64 `json:"domain_weights"`
	MinItemsByDomain map[string]int     `json:"min_items_by_domain"`
	StopOnExhaustion *bool              `json:"stop_if_bank_exhausted"`
	PromisDomains    []string           `json:"promis_domains"`
	ScreenerDomains  []string           `json:"screener_domains"`
}

// Load reads, schema-checks, and builds a bank file from disk.
func Load(path string) (*Bank, *Constraints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read bank file: %w", err)
	}
	return Parse(data)
}

// Parse validates raw bank JSON against the embedded schema, decodes it,
// and runs the structural build. All failures surface as *ConfigError.
func Parse(data []byte) (*Bank, *Constraints, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, nil, &ConfigError{Problems: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}

	compiled, err := compiledBankSchema()
	if err != nil {
		return nil, nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, nil, &ConfigError{Problems: []string{fmt.Sprintf("schema: %v", err)}}
	}

	var f bankFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, &ConfigError{Problems: []string{fmt.Sprintf("decode: %v", err)}}
	}

	if err := checkFormatVersion(f.FormatVersion); err != nil {
		return nil, nil, err
	}

	domains := make([]Domain, len(f.Domains))
	for i, d := range f.Domains {
		domains[i] = Domain{
			Name:          d.Name,
			PriorVariance: d.PriorVariance,
			MinItems:      d.MinItems,
			Weight:        d.Weight,
		}
	}

	items := make([]Item, len(f.Items))
	for i, it := range f.Items {
		items[i] = Item{
			ID:             it.ID,
			Domain:         it.Domain,
			Stem:           it.Stem,
			Discrimination: it.A,
			Thresholds:     decodeThresholds(it.Thresholds),
			Reversed:       it.Reversed,
			Choices:        it.Choices,
		}
	}

	cfg := DefaultConfig()
	if f.Config != nil {
		applyConfigFile(&cfg, f.Config)
	}

	b, err := Build(f.Name, f.FormatVersion, domains, items, cfg, f.PriorCovariance, f.ResponseScale)
	if err != nil {
		return nil, nil, err
	}

	pairs := make([][2]string, len(f.Exclusions))
	for i, p := range f.Exclusions {
		pairs[i] = [2]string{p[0], p[1]}
	}
	cons := NewConstraints(pairs)
	if err := b.ValidateExclusions(cons); err != nil {
		return nil, nil, err
	}

	return b, cons, nil
}

// checkFormatVersion enforces the supported format_version range using
// semver ordering.
func checkFormatVersion(v string) error {
	tagged := "v" + v
	if !semver.IsValid(tagged) {
		return &ConfigError{Problems: []string{fmt.Sprintf("format_version %q is not a semantic version", v)}}
	}
	if semver.Major(tagged) != semver.Major(minFormatVersion) {
		return &ConfigError{Problems: []string{fmt.Sprintf("format_version %q: only the %s.x line is supported", v, semver.Major(minFormatVersion))}}
	}
	if semver.Compare(tagged, minFormatVersion) < 0 {
		return &ConfigError{Problems: []string{fmt.Sprintf("format_version %q predates minimum supported %s", v, minFormatVersion)}}
	}
	return nil
}

// decodeThresholds maps JSON nulls (calibration placeholder slots) to
// NaN, which the model filters out.
func decodeThresholds(raw []*float64) []float64 {
	out := make([]float64, len(raw))
	for i, t := range raw {
		if t == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *t
		}
	}
	return out
}

func applyConfigFile(cfg *Config, f *configFile) {
	if f.MinItems != nil {
		cfg.MinItems = *f.MinItems
	}
	if f.MaxItems != nil {
		cfg.MaxItems = *f.MaxItems
	}
	if f.DomainsMin != nil {
		cfg.MinDomains = *f.DomainsMin
	}
	if f.GlobalSE != nil {
		cfg.GlobalSEThreshold = *f.GlobalSE
	}
	if f.GroupSE != nil {
		cfg.GroupSEThreshold = *f.GroupSE
	}
	if f.PenaltyLambda != nil {
		cfg.PenaltyLambda = *f.PenaltyLambda
	}
	if f.DomainWeights != nil {
		cfg.DomainWeights = f.DomainWeights
	}
	if f.MinItemsByDomain != nil {
		cfg.MinItemsByDomain = f.MinItemsByDomain
	}
	if f.StopOnExhaustion != nil {
		cfg.StopOnExhaustion = *f.StopOnExhaustion
	}
	if f.PromisDomains != nil {
		cfg.PromisDomains = f.PromisDomains
	}
	if f.ScreenerDomains != nil {
		cfg.ScreenerDomains = f.ScreenerDomains
	}
}

var (
	schemaOnce sync.Once
	schemaVal  *jsonschema.Schema
	schemaErr  error
)

// compiledBankSchema compiles the embedded bank schema once.
func compiledBankSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(bankSchema), &parsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://bank.json"
		if err := c.AddResource(url, parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schemaVal, schemaErr = c.Compile(url)
	})
	return schemaVal, schemaErr
}
