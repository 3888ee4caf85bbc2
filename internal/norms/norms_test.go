package norms

import (
	"math"
	"strings"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func testTable(t *testing.T) *Table {
	t.Helper()
	tab, err := New(map[string][]Point{
		"mood": {{-1, 10}, {0, 50}, {1, 90}},
	}, map[string]Bands{
		"mood": {Mild: 55, Moderate: 60, Severe: 70},
	})
	if err != nil {
		t.Fatalf("table construction failed: %v", err)
	}
	return tab
}

func TestPercentile_InterpolatesLinearly(t *testing.T) {
	tab := testTable(t)
	if got := tab.Percentile("mood", 0.5); !almostEqual(got, 70) {
		t.Errorf("Percentile(0.5) = %g, want 70", got)
	}
	if got := tab.Percentile("mood", -0.25); !almostEqual(got, 40) {
		t.Errorf("Percentile(-0.25) = %g, want 40", got)
	}
}

func TestPercentile_HitsTablePointsExactly(t *testing.T) {
	tab := testTable(t)
	for _, p := range []Point{{-1, 10}, {0, 50}, {1, 90}} {
		if got := tab.Percentile("mood", p.Theta); !almostEqual(got, p.Percentile) {
			t.Errorf("Percentile(%g) = %g, want %g", p.Theta, got, p.Percentile)
		}
	}
}

func TestPercentile_ClampsBeyondTable(t *testing.T) {
	tab := testTable(t)
	if got := tab.Percentile("mood", -5); !almostEqual(got, 10) {
		t.Errorf("below-table percentile = %g, want clamp to 10", got)
	}
	if got := tab.Percentile("mood", 5); !almostEqual(got, 90) {
		t.Errorf("above-table percentile = %g, want clamp to 90", got)
	}
}

func TestPercentile_UnknownDomainUsesNormalCDF(t *testing.T) {
	tab := testTable(t)
	if got := tab.Percentile("unknown", 0); !almostEqual(got, 50) {
		t.Errorf("normal fallback at theta 0 = %g, want 50", got)
	}
	got := tab.Percentile("unknown", 1)
	if math.Abs(got-84.134) > 0.01 {
		t.Errorf("normal fallback at theta 1 = %g, want ~84.13", got)
	}
}

func TestPercentile_MonotoneInTheta(t *testing.T) {
	tab := Builtin()
	for domain := range seedPoints {
		prev := -1.0
		for theta := -3.0; theta <= 3.0; theta += 0.1 {
			p := tab.Percentile(domain, theta)
			if p < prev {
				t.Fatalf("%s: percentile decreased at theta %g: %g < %g", domain, theta, p, prev)
			}
			prev = p
		}
	}
}

func TestSeverity_Bands(t *testing.T) {
	tab := testTable(t)
	tests := []struct {
		theta float64
		want  string
	}{
		{0.0, SeverityNone},     // T 50
		{0.49, SeverityNone},    // T 54.9
		{0.5, SeverityMild},     // T 55 exactly
		{0.99, SeverityMild},    // T 59.9
		{1.0, SeverityModerate}, // T 60 exactly
		{1.99, SeverityModerate},
		{2.0, SeveritySevere}, // T 70 exactly
		{3.5, SeveritySevere},
	}
	for _, tt := range tests {
		if got := tab.Severity("mood", tt.theta); got != tt.want {
			t.Errorf("Severity(%g) = %q, want %q", tt.theta, got, tt.want)
		}
	}
}

func TestSeverity_UnknownDomainUsesDefaultBands(t *testing.T) {
	tab := testTable(t)
	if got := tab.Severity("unknown", 2.0); got != SeveritySevere {
		t.Errorf("Severity at T 70 with default bands = %q, want severe", got)
	}
	if got := tab.Severity("unknown", 0.0); got != SeverityNone {
		t.Errorf("Severity at T 50 with default bands = %q, want none", got)
	}
}

func TestTScore(t *testing.T) {
	if got := TScore(0); !almostEqual(got, 50) {
		t.Errorf("TScore(0) = %g, want 50", got)
	}
	if got := TScore(-1.2); !almostEqual(got, 38) {
		t.Errorf("TScore(-1.2) = %g, want 38", got)
	}
}

func TestNew_RejectsBadTables(t *testing.T) {
	tests := []struct {
		name    string
		points  map[string][]Point
		bands   map[string]Bands
		wantSub string
	}{
		{
			name:    "single point",
			points:  map[string][]Point{"x": {{0, 50}}},
			wantSub: "at least 2",
		},
		{
			name:    "descending theta",
			points:  map[string][]Point{"x": {{1, 50}, {0, 60}}},
			wantSub: "ascending",
		},
		{
			name:    "duplicate theta",
			points:  map[string][]Point{"x": {{0, 50}, {0, 60}}},
			wantSub: "duplicate",
		},
		{
			name:    "decreasing percentile",
			points:  map[string][]Point{"x": {{0, 50}, {1, 40}}},
			wantSub: "non-decreasing",
		},
		{
			name:    "percentile out of range",
			points:  map[string][]Point{"x": {{0, 50}, {1, 101}}},
			wantSub: "outside",
		},
		{
			name:    "unordered bands",
			points:  map[string][]Point{},
			bands:   map[string]Bands{"x": {Mild: 60, Moderate: 55, Severe: 70}},
			wantSub: "ordered",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.points, tt.bands)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestBuiltin_CoversSeedDomains(t *testing.T) {
	tab := Builtin()
	for _, domain := range []string{"depression", "anxiety", "fatigue", "sleep_disturbance", "alcohol_use"} {
		p := tab.Percentile(domain, 0)
		if p <= 0 || p >= 100 {
			t.Errorf("%s: percentile at theta 0 = %g, want interior value", domain, p)
		}
	}
}
