package norms

import (
	"fmt"
	"math"
	"sort"
)

// Severity labels, ordered from least to most elevated.
const (
	SeverityNone     = "none"
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Point is one calibration point of a theta-to-percentile lookup table.
type Point struct {
	Theta      float64
	Percentile float64
}

// Bands holds the T-score cutoffs separating severity labels. A score
// below Mild reads as "none".
type Bands struct {
	Mild     float64
	Moderate float64
	Severe   float64
}

// DefaultBands returns the conventional T-score cutoffs used when a
// domain declares none of its own.
func DefaultBands() Bands {
	return Bands{Mild: 55, Moderate: 60, Severe: 70}
}

// Table maps domain scores onto reference-population percentiles and
// severity labels. Domains absent from the table fall back to the
// standard normal distribution and the default bands.
type Table struct {
	points map[string][]Point
	bands  map[string]Bands
}

// New builds a Table, checking that every lookup curve is usable:
// at least two points, thetas strictly ascending, percentiles
// non-decreasing and inside [0, 100].
func New(points map[string][]Point, bands map[string]Bands) (*Table, error) {
	for domain, pts := range points {
		if len(pts) < 2 {
			return nil, fmt.Errorf("norms for %q: need at least 2 points, got %d", domain, len(pts))
		}
		if !sort.SliceIsSorted(pts, func(i, j int) bool { return pts[i].Theta < pts[j].Theta }) {
			return nil, fmt.Errorf("norms for %q: thetas must be ascending", domain)
		}
		for i, p := range pts {
			if p.Percentile < 0 || p.Percentile > 100 {
				return nil, fmt.Errorf("norms for %q: percentile %g outside [0, 100]", domain, p.Percentile)
			}
			if i > 0 {
				if pts[i-1].Theta == p.Theta {
					return nil, fmt.Errorf("norms for %q: duplicate theta %g", domain, p.Theta)
				}
				if p.Percentile < pts[i-1].Percentile {
					return nil, fmt.Errorf("norms for %q: percentiles must be non-decreasing", domain)
				}
			}
		}
	}
	for domain, b := range bands {
		if !(b.Mild <= b.Moderate && b.Moderate <= b.Severe) {
			return nil, fmt.Errorf("bands for %q: cutoffs must be ordered, got %g/%g/%g", domain, b.Mild, b.Moderate, b.Severe)
		}
	}
	return &Table{points: points, bands: bands}, nil
}

// TScore converts a theta estimate to the T metric (mean 50, SD 10).
func TScore(theta float64) float64 {
	return 50 + 10*theta
}

// Percentile returns the reference percentile for a domain score,
// interpolating linearly between table points and clamping beyond the
// table's ends. Domains without a table use the standard normal CDF.
func (t *Table) Percentile(domain string, theta float64) float64 {
	pts := t.points[domain]
	if len(pts) == 0 {
		return 100 * normalCDF(theta)
	}
	if theta <= pts[0].Theta {
		return pts[0].Percentile
	}
	last := pts[len(pts)-1]
	if theta >= last.Theta {
		return last.Percentile
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].Theta >= theta })
	lo, hi := pts[i-1], pts[i]
	frac := (theta - lo.Theta) / (hi.Theta - lo.Theta)
	return lo.Percentile + frac*(hi.Percentile-lo.Percentile)
}

// Severity labels a domain score by its T-score band.
func (t *Table) Severity(domain string, theta float64) string {
	b, ok := t.bands[domain]
	if !ok {
		b = DefaultBands()
	}
	ts := TScore(theta)
	switch {
	case ts >= b.Severe:
		return SeveritySevere
	case ts >= b.Moderate:
		return SeverityModerate
	case ts >= b.Mild:
		return SeverityMild
	default:
		return SeverityNone
	}
}

func normalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
