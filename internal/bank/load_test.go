package bank

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBankJSON = `{
  "format_version": "1.0.0",
  "name": "sample",
  "domains": [
    {"name": "mood", "prior_variance": 1.0, "weight": 1.5},
    {"name": "energy"}
  ],
  "items": [
    {"id": "m1", "domain": "mood", "stem": "I felt down", "a": 2.4, "thresholds": [-0.5, 0.2, 1.1, 1.9]},
    {"id": "m2", "domain": "mood", "stem": "I felt low", "a": 2.1, "thresholds": [-0.2, 0.5, 1.3, 2.0]},
    {"id": "e1", "domain": "energy", "stem": "I had energy", "a": 1.8, "thresholds": [-0.8, 0.1, 0.9, 1.7], "reversed": true},
    {"id": "e2", "domain": "energy", "stem": "I felt worn out", "a": 2.0, "thresholds": [null, -0.3, 0.6]}
  ],
  "config": {
    "min_items": 2,
    "max_items": 8,
    "domains_min": 2,
    "global_se_threshold": 0.3,
    "group_se_threshold": 0.45,
    "domain_penalty_lambda": 0.1,
    "min_items_by_domain": {"mood": 1},
    "stop_if_bank_exhausted": false
  },
  "prior_covariance": [[1.0, 0.4], [0.4, 1.0]],
  "exclusions": [["m1", "m2"]],
  "response_scale": ["Never", "Rarely", "Sometimes", "Often", "Always"]
}`

func TestParse_ValidBank(t *testing.T) {
	b, cons, err := Parse([]byte(sampleBankJSON))
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, "sample", b.Name)
	assert.Equal(t, "1.0.0", b.FormatVersion)
	assert.Len(t, b.Domains, 2)
	assert.Len(t, b.Items, 4)

	m1, err := b.Item("m1")
	require.NoError(t, err)
	assert.Equal(t, 2.4, m1.Discrimination)
	assert.Equal(t, 5, m1.Categories)

	e1, err := b.Item("e1")
	require.NoError(t, err)
	assert.True(t, e1.Reversed)

	assert.Equal(t, 2, b.Config.MinItems)
	assert.Equal(t, 8, b.Config.MaxItems)
	assert.Equal(t, 2, b.Config.MinDomains)
	assert.Equal(t, 0.3, b.Config.GlobalSEThreshold)
	assert.False(t, b.Config.StopOnExhaustion)
	assert.Equal(t, 1, b.Domains[0].MinItems)

	assert.Equal(t, 0.4, b.Prior[0][1])
	assert.True(t, cons.Forbidden("m1", "m2"))
}

func TestParse_NullThresholdsFiltered(t *testing.T) {
	b, _, err := Parse([]byte(sampleBankJSON))
	require.NoError(t, err)

	e2, err := b.Item("e2")
	require.NoError(t, err)
	// One null slot in three leaves two usable thresholds.
	assert.Equal(t, 3, e2.Categories)
}

func TestParse_MissingConfigUsesDefaults(t *testing.T) {
	raw := `{
	  "format_version": "1.0.0",
	  "name": "bare",
	  "domains": [{"name": "mood"}],
	  "items": [{"id": "m1", "domain": "mood", "stem": "q", "a": 2.0, "thresholds": [-1, 0, 1]}]
	}`
	b, _, err := Parse([]byte(raw))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.MinItems, b.Config.MinItems)
	assert.Equal(t, def.MaxItems, b.Config.MaxItems)
	assert.Equal(t, def.GlobalSEThreshold, b.Config.GlobalSEThreshold)
	assert.True(t, b.Config.StopOnExhaustion)
	// With no groups declared, every domain lands in the primary group.
	assert.Equal(t, []string{"mood"}, b.Config.PromisDomains)
}

func TestParse_FormatVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"minimum supported", "1.0.0", false},
		{"newer patch", "1.0.4", false},
		{"newer minor", "1.3.0", false},
		{"next major", "2.0.0", true},
		{"prerelease line", "0.9.0", true},
		{"not semver", "one", true},
		{"empty-ish", "v", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{
			  "format_version": "` + tt.version + `",
			  "name": "v",
			  "domains": [{"name": "mood"}],
			  "items": [{"id": "m1", "domain": "mood", "stem": "q", "a": 2.0, "thresholds": [-1, 0, 1]}]
			}`
			_, _, err := Parse([]byte(raw))
			if tt.wantErr {
				require.Error(t, err)
				var cfgErr *ConfigError
				assert.True(t, errors.As(err, &cfgErr), "want *ConfigError, got %T", err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParse_SchemaRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "missing name",
			raw: `{"format_version": "1.0.0",
			  "domains": [{"name": "mood"}],
			  "items": [{"id": "m1", "domain": "mood", "stem": "q", "a": 2.0, "thresholds": [0]}]}`,
		},
		{
			name: "unknown top-level field",
			raw: `{"format_version": "1.0.0", "name": "x", "surprise": true,
			  "domains": [{"name": "mood"}],
			  "items": [{"id": "m1", "domain": "mood", "stem": "q", "a": 2.0, "thresholds": [0]}]}`,
		},
		{
			name: "camelCase config key",
			raw: `{"format_version": "1.0.0", "name": "x",
			  "domains": [{"name": "mood"}],
			  "items": [{"id": "m1", "domain": "mood", "stem": "q", "a": 2.0, "thresholds": [0]}],
			  "config": {"maxItems": 9}}`,
		},
		{
			name: "threshold wrong type",
			raw: `{"format_version": "1.0.0", "name": "x",
			  "domains": [{"name": "mood"}],
			  "items": [{"id": "m1", "domain": "mood", "stem": "q", "a": 2.0, "thresholds": ["high"]}]}`,
		},
		{
			name: "exclusion pair too short",
			raw: `{"format_version": "1.0.0", "name": "x",
			  "domains": [{"name": "mood"}],
			  "items": [{"id": "m1", "domain": "mood", "stem": "q", "a": 2.0, "thresholds": [0]}],
			  "exclusions": [["m1"]]}`,
		},
		{
			name: "empty items",
			raw: `{"format_version": "1.0.0", "name": "x",
			  "domains": [{"name": "mood"}],
			  "items": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "want *ConfigError, got %T", err)
		})
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, _, err := Parse([]byte(`{"format_version": `))
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoad_RoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleBankJSON), 0o644))

	b, cons, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", b.Name)
	assert.Equal(t, 1, cons.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
