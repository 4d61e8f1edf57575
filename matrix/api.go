// SPDX-License-Identifier: MIT
// Package matrix - identity, row sums and L1 row normalization.
//
// AI-Hints:
//   - Use NewIdentity to build Tᵀ − I without ad hoc loops.
//   - NormalizeRowsL1 returns the pre-normalization norms; a zero norm marks a
//     degenerate (all-zero) row that callers must treat as an error.

package matrix

// DefaultEpsilon is the non-negative tolerance used by structural checks.
const DefaultEpsilon = 1e-9

// NewIdentity returns the n×n identity.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// RowSums returns Σ_j m[i,j] for every row i, computed as m·1.
// A transition matrix has every entry ≈ 1.
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	ones := make([]float64, m.Cols())
	for j := range ones {
		ones[j] = 1.0
	}

	return MatVec(m, ones)
}

// NormalizeRowsL1 divides every row of X by its L1 norm and also returns
// those norms. A row whose norm is 0 is copied as is; callers detect it from
// the returned norms. For X ≥ 0 the result is row-stochastic.
//
// Complexity: O(r·c).
func NormalizeRowsL1(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opNormalizeL1, err)
	}
	d, err := toDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeL1, err)
	}
	r, c := d.r, d.c
	out, err := NewDense(r, c)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeL1, err)
	}
	norms := make([]float64, r)

	var i, j, base int
	var s, v, scale float64
	for i = 0; i < r; i++ {
		base = i * c
		s = ZeroSum
		for j = 0; j < c; j++ {
			v = d.data[base+j]
			if v < 0 {
				v = -v
			}
			s += v
		}
		norms[i] = s

		scale = 1.0
		if s > 0 {
			scale = 1.0 / s
		}
		for j = 0; j < c; j++ {
			out.data[base+j] = d.data[base+j] * scale
		}
	}

	return out, norms, nil
}
