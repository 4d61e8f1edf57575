// SPDX-License-Identifier: MIT

// Package matrix: the Matrix interface consumed by every kernel.
package matrix

// Matrix is a bounds-checked r×c grid of float64 cells. Transition matrices,
// deviation matrices and stacked least-squares systems all travel through it.
//
// Implementations report bad indices as ErrOutOfRange and never panic.
// Every method is O(1) except Clone, which copies all r·c cells.
type Matrix interface {
	// Rows is the number of rows r.
	Rows() int

	// Cols is the number of columns c.
	Cols() int

	// At reads cell (i, j).
	At(i, j int) (float64, error)

	// Set writes v into cell (i, j).
	Set(i, j int, v float64) error

	// Clone returns an independent copy sharing no storage with the receiver.
	Clone() Matrix
}
