// SPDX-License-Identifier: MIT
// Package matrix: sentinel errors.
// Kernels wrap these with an operation tag; callers and tests match them
// with errors.Is. No kernel panics on user input.

package matrix

import "errors"

// Check order when several apply:
// nil, shape or index, NaN/Inf, dimension mismatch, then ErrSingular.

var (
	// ErrInvalidDimensions: a requested side is zero or negative, or literal input is empty.
	ErrInvalidDimensions = errors.New("matrix: non-positive dimensions")

	// ErrBadShape is returned for ragged literal input or an unusable system shape
	// (e.g., LeastSquares with fewer equations than unknowns).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange: a row or column index outside [0, r) or [0, c).
	ErrOutOfRange = errors.New("matrix: index outside bounds")

	// ErrDimensionMismatch: operands that cannot be combined, such as Sub on
	// different shapes or MatVec with len(x) != Cols().
	ErrDimensionMismatch = errors.New("matrix: operand dimensions differ")

	// ErrNonSquare: a transition matrix must be N×N.
	ErrNonSquare = errors.New("matrix: not square")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: non-finite value")

	// ErrNilMatrix: a nil Matrix or vector where a value is required.
	ErrNilMatrix = errors.New("matrix: nil operand")

	// ErrSingular is returned when a triangular factor has a (numerically) zero
	// pivot, i.e. the system is rank deficient.
	ErrSingular = errors.New("matrix: rank deficient")

	// ErrNotStochastic signals a row that is negative somewhere or does not sum to 1.
	ErrNotStochastic = errors.New("matrix: matrix is not row-stochastic")
)

