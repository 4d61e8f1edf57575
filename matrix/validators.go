// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Shape, nil, finiteness and stochasticity checks shared by every kernel
//    and by the steadystate and balance packages.
//  - Each failure is a sentinel wrapped with the name of the check that fired.
//
// None of the checks allocate on the success path.
//
// AI-Hints:
//  - Use ValidateRowStochastic before solving for a stationary distribution.
//  - Use ValidateVecLen for any MatVec-like operation to avoid ad hoc length code.

package matrix

import (
	"fmt"
	"math"
)

func validatorErrorf(check string, err error) error {
	return fmt.Errorf("%s: %w", check, err)
}

// ValidateNotNil rejects a nil interface and a typed nil *Dense with ErrNilMatrix.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape reports ErrDimensionMismatch unless a and b are both r×c.
// Both arguments must already be non-nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf(fmt.Sprintf("ValidateSameShape: rows %d vs %d", a.Rows(), b.Rows()), ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf(fmt.Sprintf("ValidateSameShape: cols %d vs %d", a.Cols(), b.Cols()), ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare accepts only non-nil N×N input (ErrNilMatrix, ErrNonSquare).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen requires len(x) == n. A nil x is ErrNilMatrix even for n = 0.
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape runs ValidateNotNil on both operands, then ValidateSameShape.
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateFiniteVec reports ErrNaNInf at the first non-finite entry.
func ValidateFiniteVec(x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf(fmt.Sprintf("ValidateFiniteVec[%d]", i), ErrNaNInf)
		}
	}

	return nil
}

// ValidateRowStochastic checks that m is square, every entry lies in [-tol, 1+tol]
// and every row sums to 1 within tol.
//
// Inputs: Matrix m, tolerance tol ≥ 0 (negative tol is normalized to |tol|).
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf (bad tol), ErrNotStochastic.
// Complexity: O(n^2). Space: O(1).
//
// AI-Hints: DefaultEpsilon is a good tol for sampler output; hand-typed
// matrices ("0.1, 0.9") may need 1e-6.
func ValidateRowStochastic(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateRowStochastic", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateRowStochastic", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.Rows()
	var (
		i, j int
		v, s float64
		err  error
	)
	for i = 0; i < n; i++ {
		s = 0
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateRowStochastic", err)
			}
			if v < -tol || v > 1+tol {
				return validatorErrorf(fmt.Sprintf("ValidateRowStochastic: entry (%d,%d)=%g", i, j, v), ErrNotStochastic)
			}
			s += v
		}
		if math.Abs(s-1) > tol {
			return validatorErrorf(fmt.Sprintf("ValidateRowStochastic: row %d sums to %g", i, s), ErrNotStochastic)
		}
	}

	return nil
}
