// SPDX-License-Identifier: MIT
// Package: kinetics/sampler
//
// mask.go - structural adjacency masks.
//
// Contract:
//   - A Mask is an immutable N×N boolean pattern; true means the off-diagonal
//     transition i→j may be nonzero.
//   - Diagonal cells of a Mask are ignored: self-transitions are governed
//     solely by WithSelfTransitions.
//
// Determinism:
//   - Row-major storage; Allowed is O(1).

package sampler

import "fmt"

const (
	methodNewMask   = "NewMask"
	methodCycleMask = "CycleMask"
	minCycleSize    = 2
)

// Mask is an N×N allowed-transition pattern. The zero Mask is invalid.
type Mask struct {
	n       int
	allowed []bool
}

// NewMask copies a square boolean pattern into a Mask.
// Errors: ErrBadMask for empty, ragged or non-square input.
func NewMask(rows [][]bool) (Mask, error) {
	n := len(rows)
	if n == 0 {
		return Mask{}, fmt.Errorf("%s: empty: %w", methodNewMask, ErrBadMask)
	}
	allowed := make([]bool, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Mask{}, fmt.Errorf("%s: row %d has len %d, want %d: %w", methodNewMask, i, len(row), n, ErrBadMask)
		}
		copy(allowed[i*n:], row)
	}

	return Mask{n: n, allowed: allowed}, nil
}

// FullMask allows every transition.
func FullMask(n int) (Mask, error) {
	if n < 1 {
		return Mask{}, fmt.Errorf("FullMask: n=%d < 1: %w", n, ErrInvalidSize)
	}
	allowed := make([]bool, n*n)
	for k := range allowed {
		allowed[k] = true
	}

	return Mask{n: n, allowed: allowed}, nil
}

// AdjacentMask forbids every transition with |i−j| = 2. For N = 4 this
// leaves exactly the 0→1→2→3→0 ring (in both directions).
// Errors: ErrInvalidSize (n < 1), ErrAdjacencyUnsupported (n > MaxAdjacentSize).
func AdjacentMask(n int) (Mask, error) {
	if n > MaxAdjacentSize {
		return Mask{}, fmt.Errorf("AdjacentMask: n=%d > max=%d: %w", n, MaxAdjacentSize, ErrAdjacencyUnsupported)
	}
	m, err := FullMask(n)
	if err != nil {
		return Mask{}, err
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i-j == 2 || j-i == 2 {
				m.allowed[i*n+j] = false
			}
		}
	}

	return m, nil
}

// CycleMask allows only i→(i+1) mod n and i→(i−1) mod n: a single cycle
// visiting states in index order.
// Errors: ErrInvalidSize if n < 2.
func CycleMask(n int) (Mask, error) {
	if n < minCycleSize {
		return Mask{}, fmt.Errorf("%s: n=%d < min=%d: %w", methodCycleMask, n, minCycleSize, ErrInvalidSize)
	}
	allowed := make([]bool, n*n)
	for i := 0; i < n; i++ {
		allowed[i*n+(i+1)%n] = true
		allowed[i*n+(i+n-1)%n] = true
	}

	return Mask{n: n, allowed: allowed}, nil
}

// Size returns N (0 for the zero Mask).
func (m Mask) Size() int { return m.n }

// Allowed reports whether transition i→j may be nonzero. Out-of-range
// indices report false.
func (m Mask) Allowed(i, j int) bool {
	if i < 0 || j < 0 || i >= m.n || j >= m.n {
		return false
	}

	return m.allowed[i*m.n+j]
}

// Rows returns a fresh [][]bool copy of the pattern.
func (m Mask) Rows() [][]bool {
	out := make([][]bool, m.n)
	for i := range out {
		out[i] = append([]bool(nil), m.allowed[i*m.n:(i+1)*m.n]...)
	}

	return out
}
