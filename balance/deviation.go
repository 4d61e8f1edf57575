// SPDX-License-Identifier: MIT

package balance

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/kinetics/matrix"
	"github.com/katalvlaran/kinetics/steadystate"
)

// ErrDomain indicates the diagnostic is undefined for the given input
// (bad threshold, wrong topology, zero rate product, out-of-range pair).
var ErrDomain = errors.New("balance: outside domain")

// lenient keeps only the rank check of the steady-state solve; diagnostics
// also run on hand-entered matrices that are not exactly stochastic.
var lenient = steadystate.Tolerances{
	Residual:   math.Inf(1),
	Negative:   math.Inf(1),
	Sum:        math.Inf(1),
	Stochastic: math.Inf(1),
}

// Deviation is the detailed-balance deviation of one matrix.
type Deviation struct {
	D       *matrix.Dense // D[i,j] = π_i T_ij − π_j T_ji
	Sum     float64       // Σ D[i,j]; ≈ 0 for any input
	MaxAbs  float64       // max |D[i,j]|
	MeanAbs float64       // mean |D[i,j]| over all N² cells
}

// SteadyState returns the least-squares stationary vector used by every
// diagnostic in this package.
func SteadyState(T matrix.Matrix) ([]float64, error) {
	return steadystate.SolveTol(T, lenient)
}

// DeviationStats solves π for T and returns the deviation matrix and its
// summary statistics.
// Complexity: O(N³) for the solve plus O(N²).
func DeviationStats(T matrix.Matrix) (*Deviation, error) {
	pi, err := SteadyState(T)
	if err != nil {
		return nil, fmt.Errorf("DeviationStats: %w", err)
	}

	return deviationFrom(T, pi)
}

// fluxRoundoff is the relative gap between π_i T_ij and π_j T_ji that is
// attributed to rounding in the least-squares solve rather than to flux.
const fluxRoundoff = 1e-12

// CheckDetailedBalance reports whether every pair satisfies
//
//	|π_i T_ij − π_j T_ji| ≤ threshold + 1e-12·max(π_i T_ij, π_j T_ji).
//
// The relative term absorbs rounding in the solved π, so an exactly
// reversible chain passes at threshold 0, while any flux imbalance above
// 1e-12 of the larger flux still fails there. Scanning stops at the first
// violation.
// Errors: ErrDomain for a negative or NaN threshold; solve errors.
func CheckDetailedBalance(T matrix.Matrix, threshold float64) (bool, error) {
	if math.IsNaN(threshold) || threshold < 0 {
		return false, fmt.Errorf("CheckDetailedBalance: threshold=%g: %w", threshold, ErrDomain)
	}
	pi, err := SteadyState(T)
	if err != nil {
		return false, fmt.Errorf("CheckDetailedBalance: %w", err)
	}
	ok, err := balanced(T, pi, threshold)
	if err != nil {
		return false, fmt.Errorf("CheckDetailedBalance: %w", err)
	}

	return ok, nil
}

func balanced(T matrix.Matrix, pi []float64, threshold float64) (bool, error) {
	n := len(pi)
	var (
		i, j     int
		tij, tji float64
		fwd, bwd float64
		err      error
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ { // D is antisymmetric; the upper triangle suffices
			if tij, err = T.At(i, j); err != nil {
				return false, err
			}
			if tji, err = T.At(j, i); err != nil {
				return false, err
			}
			fwd, bwd = pi[i]*tij, pi[j]*tji
			if math.Abs(fwd-bwd) > threshold+fluxRoundoff*math.Max(math.Abs(fwd), math.Abs(bwd)) {
				return false, nil
			}
		}
	}

	return true, nil
}

// NetFlux returns π_i T_ij − π_j T_ji for a single pair.
// Errors: ErrDomain for out-of-range indices; solve errors.
func NetFlux(T matrix.Matrix, i, j int) (float64, error) {
	pi, err := SteadyState(T)
	if err != nil {
		return 0, fmt.Errorf("NetFlux: %w", err)
	}

	return netFlux(T, pi, i, j)
}

func netFlux(T matrix.Matrix, pi []float64, i, j int) (float64, error) {
	n := len(pi)
	if i < 0 || j < 0 || i >= n || j >= n {
		return 0, fmt.Errorf("NetFlux: pair (%d,%d) outside %d states: %w", i, j, n, ErrDomain)
	}
	tij, err := T.At(i, j)
	if err != nil {
		return 0, err
	}
	tji, err := T.At(j, i)
	if err != nil {
		return 0, err
	}

	return pi[i]*tij - pi[j]*tji, nil
}

func deviationFrom(T matrix.Matrix, pi []float64) (*Deviation, error) {
	n := len(pi)
	D, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	out := &Deviation{D: D}
	var (
		i, j int
		d, a float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if d, err = netFlux(T, pi, i, j); err != nil {
				return nil, err
			}
			if err = D.Set(i, j, d); err != nil {
				return nil, err
			}
			out.Sum += d
			a = math.Abs(d)
			out.MeanAbs += a
			if a > out.MaxAbs {
				out.MaxAbs = a
			}
		}
	}
	out.MeanAbs /= float64(n * n)

	return out, nil
}
