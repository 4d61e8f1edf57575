// SPDX-License-Identifier: MIT
// Package: kinetics/balance
//
// dissipation.go - entropy production of a single index-ordered cycle.
//
// Contract:
//   - N ≥ 2, and every nonzero off-diagonal entry lies on the ring
//     i→(i±1) mod N (IsSingleCycle). The diagonal is ignored.
//   - Every ring rate must be positive; a zero rate makes the log ratio
//     undefined and is reported as ErrDomain, never as ±Inf or NaN.
//   - For N = 2 the two products coincide and the rate is 0.
//
// Complexity: O(N³) for the steady state plus O(N²) for the topology scan.

package balance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/kinetics/matrix"
)

const methodDissipation = "DissipationRate"

// IsSingleCycle reports whether T's off-diagonal support lies on the ring
// 0→1→…→N−1→0 (in either direction). Non-square or N < 2 inputs report false.
func IsSingleCycle(T matrix.Matrix) bool {
	if matrix.ValidateSquare(T) != nil {
		return false
	}
	n := T.Rows()
	if n < 2 {
		return false
	}
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j || j == (i+1)%n || j == (i+n-1)%n {
				continue
			}
			if v, err = T.At(i, j); err != nil || v != 0 {
				return false
			}
		}
	}

	return true
}

// DissipationRate returns J · ln(∏ T_{i,i+1} / ∏ T_{i+1,i}) with
// J = π_0 T_01 − π_1 T_10.
func DissipationRate(T matrix.Matrix) (float64, error) {
	if err := matrix.ValidateSquare(T); err != nil {
		return 0, fmt.Errorf("%s: %w", methodDissipation, err)
	}
	if n := T.Rows(); n < 2 {
		return 0, fmt.Errorf("%s: n=%d < 2: %w", methodDissipation, n, ErrDomain)
	}
	if !IsSingleCycle(T) {
		return 0, fmt.Errorf("%s: support is not a single index-ordered cycle: %w", methodDissipation, ErrDomain)
	}
	pi, err := SteadyState(T)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", methodDissipation, err)
	}

	return dissipationFrom(T, pi)
}

func dissipationFrom(T matrix.Matrix, pi []float64) (float64, error) {
	n := len(pi)
	J, err := netFlux(T, pi, 0, 1)
	if err != nil {
		return 0, err
	}

	// Sum of logs instead of a ratio of products: long cycles underflow.
	var (
		i, j     int
		fwd, bwd float64
		logRatio float64
	)
	for i = 0; i < n; i++ {
		j = (i + 1) % n
		if fwd, err = T.At(i, j); err != nil {
			return 0, err
		}
		if bwd, err = T.At(j, i); err != nil {
			return 0, err
		}
		if fwd <= 0 || bwd <= 0 {
			return 0, fmt.Errorf("%s: rate (%d,%d)=%g (%d,%d)=%g: %w", methodDissipation, i, j, fwd, j, i, bwd, ErrDomain)
		}
		logRatio += math.Log(fwd) - math.Log(bwd)
	}

	return J * logRatio, nil
}
