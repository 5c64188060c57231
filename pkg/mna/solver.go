package mna

import "math"

// singularThreshold is the pivot magnitude below which the matrix is
// treated as singular.
const singularThreshold = 1e-15

// Solve computes x such that A*x = b using Gaussian elimination with
// partial pivoting. A is a row-major n*n slice and is not modified;
// b is not modified. Returns ErrSingular if any pivot column is
// numerically zero.
func Solve(n int, a, b []float64) ([]float64, error) {
	m := make([]float64, len(a))
	copy(m, a)
	rhs := make([]float64, len(b))
	copy(rhs, b)

	for k := 0; k < n; k++ {
		p := k
		maxv := math.Abs(m[k*n+k])
		for i := k + 1; i < n; i++ {
			v := math.Abs(m[i*n+k])
			if v > maxv {
				maxv = v
				p = i
			}
		}

		if maxv < singularThreshold {
			return nil, ErrSingular
		}

		if p != k {
			for j := 0; j < n; j++ {
				m[k*n+j], m[p*n+j] = m[p*n+j], m[k*n+j]
			}
			rhs[k], rhs[p] = rhs[p], rhs[k]
		}

		pivot := m[k*n+k]
		for i := k + 1; i < n; i++ {
			factor := m[i*n+k] / pivot
			if factor == 0 {
				continue
			}
			for j := k; j < n; j++ {
				m[i*n+j] -= factor * m[k*n+j]
			}
			rhs[i] -= factor * rhs[k]
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := rhs[i]
		for j := i + 1; j < n; j++ {
			sum -= m[i*n+j] * x[j]
		}
		x[i] = sum / m[i*n+i]
	}

	return x, nil
}
