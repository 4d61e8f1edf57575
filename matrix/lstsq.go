// SPDX-License-Identifier: MIT
// Package matrix - least squares via Householder QR (gonum/mat).
//
// Purpose:
//   - Solve overdetermined systems A·x ≈ b (A is m×n, m ≥ n) in the least-squares
//     sense without forming AᵀA (which squares the condition number).
//   - Report the residual norm ‖A·x − b‖₂ so callers can decide whether the
//     system was consistent.
//
// AI-Hints:
//   - The stationary distribution of an N-state chain is the least-squares
//     solution of the (N+1)×N system [Tᵀ − I; 1ᵀ]·π = [0; 1].
//   - A zero residual means the stacked equations were exactly consistent.

package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// rankRcond is the relative cutoff on |R_kk| / max|R_jj| below which the
// system is treated as rank deficient.
const rankRcond = 1e-12

// LeastSquares computes x = argmin ‖A·x − b‖₂.
//
// A is copied into a gonum mat.Dense and factored with mat.QR (Householder,
// no pivoting). Before solving, diag(R) is checked against
// rankRcond·max|R_kk|; a rank-deficient A is reported rather than answered
// with a minimum-norm x. For Markov chains that means more than one closed
// class and no unique stationary distribution.
//
// Inputs are never mutated.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape (m < n), ErrDimensionMismatch (len(b) != m),
//     ErrNaNInf (non-finite b), ErrSingular (rank deficient or ill-conditioned A).
//
// Complexity: O(m·n²) time, O(m·n) space.
func LeastSquares(A Matrix, b []float64) ([]float64, float64, error) {
	if err := ValidateNotNil(A); err != nil {
		return nil, 0, matrixErrorf(opLeastSquares, err)
	}
	m, n := A.Rows(), A.Cols()
	if m < n {
		return nil, 0, matrixErrorf(opLeastSquares, fmt.Errorf("rows=%d < cols=%d: %w", m, n, ErrBadShape))
	}
	if err := ValidateVecLen(b, m); err != nil {
		return nil, 0, matrixErrorf(opLeastSquares, err)
	}
	if err := ValidateFiniteVec(b); err != nil {
		return nil, 0, matrixErrorf(opLeastSquares, err)
	}

	src, err := toDense(A)
	if err != nil {
		return nil, 0, matrixErrorf(opLeastSquares, err)
	}
	a := mat.NewDense(m, n, append([]float64(nil), src.data...))
	rhs := mat.NewVecDense(m, append([]float64(nil), b...))

	var qr mat.QR
	qr.Factorize(a)

	var R mat.Dense
	qr.RTo(&R)
	maxDiag := 0.0
	for k := 0; k < n; k++ {
		maxDiag = math.Max(maxDiag, math.Abs(R.At(k, k)))
	}
	rankTol := rankRcond * maxDiag
	for k := 0; k < n; k++ {
		if rkk := R.At(k, k); math.Abs(rkk) <= rankTol {
			return nil, 0, matrixErrorf(opLeastSquares, fmt.Errorf("R[%d,%d]=%g: %w", k, k, rkk, ErrSingular))
		}
	}

	var x mat.VecDense
	if err = qr.SolveVecTo(&x, false, rhs); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, 0, matrixErrorf(opLeastSquares, fmt.Errorf("condition %g: %w", float64(cond), ErrSingular))
		}
		return nil, 0, matrixErrorf(opLeastSquares, err)
	}

	var r mat.VecDense
	r.MulVec(a, &x)
	r.SubVec(&r, rhs)

	return mat.Col(nil, 0, &x), mat.Norm(&r, 2), nil
}
