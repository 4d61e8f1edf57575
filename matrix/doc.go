// Package matrix provides the small dense linear-algebra core used by the
// kinetics packages.
//
// The matrix package provides:
//
//   - Matrix, a bounds-checked interface over two-dimensional float64 data, and
//     Dense, its row-major implementation with a finite-only numeric policy.
//   - Element-wise and structural kernels (Sub, Transpose, Mul, MatVec).
//   - Row statistics used for Markov chains (RowSums, NormalizeRowsL1).
//   - LeastSquares, a Householder-QR solver for overdetermined m×n systems
//     (m ≥ n), which is how stationary distributions are computed.
//   - Central validators (ValidateSquare, ValidateRowStochastic, ...).
//
// All kernels validate their inputs, never panic on user data and return the
// sentinel errors from errors.go (wrapped with an operation tag).
//
// See the examples in this package for usage patterns.
package matrix
