package cat

import "math"

// Covariance is the D x D posterior covariance over domains. The
// diagonal holds per-domain variance; off-diagonal entries carry the
// prior correlation structure that lets one answer sharpen every
// correlated domain at once.
type Covariance [][]float64

// newCovariance deep-copies a prior matrix so sessions never alias the
// bank's prior.
func newCovariance(prior [][]float64) Covariance {
	c := make(Covariance, len(prior))
	for i, row := range prior {
		c[i] = make([]float64, len(row))
		copy(c[i], row)
	}
	return c
}

// Clone returns an independent copy.
func (c Covariance) Clone() Covariance {
	return newCovariance(c)
}

// Absorb applies the Sherman-Morrison rank-one downdate for an item in
// domain d observed with Fisher information info:
//
//	Sigma' = Sigma - (info / (1 + info*Sigma[d][d])) * (col_d x col_d)
//
// The column is snapshotted first so the update reads consistent values;
// the outer-product form keeps the result symmetric, and no diagonal
// entry can increase.
func (c Covariance) Absorb(d int, info float64) {
	if !(info > 0) {
		return
	}
	n := len(c)
	col := make([]float64, n)
	for k := 0; k < n; k++ {
		col[k] = c[k][d]
	}
	scale := info / (1 + info*c[d][d])
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c[i][j] -= scale * col[i] * col[j]
		}
	}
}

// StandardErrors returns the per-domain posterior standard errors.
// Diagonal entries are clamped at zero before the root so accumulated
// rounding can never produce NaN.
func (c Covariance) StandardErrors() []float64 {
	ses := make([]float64, len(c))
	for i := range c {
		ses[i] = math.Sqrt(math.Max(c[i][i], 0))
	}
	return ses
}

// Trace returns the sum of diagonal variances, the quantity A-optimal
// selection drives down.
func (c Covariance) Trace() float64 {
	var t float64
	for i := range c {
		t += c[i][i]
	}
	return t
}

// pivotTol is the smallest pivot magnitude Invert will divide by.
const pivotTol = 1e-12

// Invert returns the inverse via Gauss-Jordan elimination with partial
// pivoting. It is a reporting utility (posterior precision), not part
// of the per-answer path; a singular matrix fails loudly with
// ErrSingularMatrix.
func (c Covariance) Invert() (Covariance, error) {
	n := len(c)
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], c[i])
		aug[i][n+i] = 1
	}

	for col := 0; col < n; col++ {
		best := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[best][col]) {
				best = r
			}
		}
		aug[col], aug[best] = aug[best], aug[col]

		p := aug[col][col]
		if math.Abs(p) < pivotTol {
			return nil, &ErrSingularMatrix{Pivot: col}
		}
		inv := 1 / p
		for j := 0; j < 2*n; j++ {
			aug[col][j] *= inv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := aug[r][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug[r][j] -= f * aug[col][j]
			}
		}
	}

	out := make(Covariance, n)
	for i := 0; i < n; i++ {
		out[i] = aug[i][n:]
	}
	return out, nil
}

// rmsOf returns the root mean square of a slice; zero for empty input.
func rmsOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x * x
	}
	return math.Sqrt(sum / float64(len(xs)))
}
