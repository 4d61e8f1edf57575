// SPDX-License-Identifier: MIT

// Package steadystate computes the stationary distribution π of a
// row-stochastic transition matrix T, i.e. the left eigenvector with
// πT = π and Σπ = 1.
//
// The balance equations (Tᵀ − I)π = 0 are stacked with the normalization
// row 1ᵀπ = 1 into an (N+1)×N system and solved in the least-squares sense
// (matrix.LeastSquares). T must be row-stochastic going in. The answer is
// then checked: a large residual, a fixed-point drift ‖πT − π‖∞, a clearly
// negative component, or a sum away from 1 all mean the chain has no unique
// stationary distribution, reported as ErrSingularSystem.
package steadystate

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/kinetics/matrix"
)

const methodSolve = "Solve"

// ErrSingularSystem indicates the stacked system has no unique acceptable
// solution (reducible chain, non-stochastic input, or numerical breakdown).
var ErrSingularSystem = errors.New("steadystate: singular system")

// ErrInvalidTolerance indicates a negative or NaN tolerance.
var ErrInvalidTolerance = errors.New("steadystate: invalid tolerance")

// Tolerances bound the post-solve quality checks. All values must be ≥ 0;
// +Inf disables the corresponding check.
type Tolerances struct {
	Residual   float64 // max ‖Aπ − b‖₂, and max |(πT − π)_j|
	Negative   float64 // components ≥ −Negative are accepted
	Sum        float64 // |Σπ − 1| ≤ Sum
	Stochastic float64 // every row of T sums to 1 within Stochastic
}

// DefaultTolerances are tight enough for sampler output.
var DefaultTolerances = Tolerances{
	Residual:   1e-8,
	Negative:   1e-9,
	Sum:        1e-6,
	Stochastic: matrix.DefaultEpsilon,
}

// Solve returns π for T using DefaultTolerances.
func Solve(T matrix.Matrix) ([]float64, error) {
	return SolveTol(T, DefaultTolerances)
}

// SolveTol returns π for T, checked against tol.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare: bad input shape.
//   - ErrInvalidTolerance: a tolerance is NaN or negative.
//   - ErrSingularSystem: T is not row-stochastic (also matches
//     matrix.ErrNotStochastic), the system is rank-deficient (also matches
//     matrix.ErrSingular), or a residual, drift, negativity or sum check failed.
//
// Complexity: O(N³) time, O(N²) space.
func SolveTol(T matrix.Matrix, tol Tolerances) ([]float64, error) {
	if err := matrix.ValidateSquare(T); err != nil {
		return nil, fmt.Errorf("%s: %w", methodSolve, err)
	}
	if err := validateTolerances(tol); err != nil {
		return nil, fmt.Errorf("%s: %w", methodSolve, err)
	}
	if !math.IsInf(tol.Stochastic, 1) {
		if err := matrix.ValidateRowStochastic(T, tol.Stochastic); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", methodSolve, ErrSingularSystem, err)
		}
	}
	n := T.Rows()

	A, err := stackedSystem(T)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSolve, err)
	}
	b := make([]float64, n+1)
	b[n] = 1

	pi, residual, err := matrix.LeastSquares(A, b)
	if errors.Is(err, matrix.ErrSingular) {
		return nil, fmt.Errorf("%s: %w: %w", methodSolve, ErrSingularSystem, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSolve, err)
	}

	if residual > tol.Residual {
		return nil, fmt.Errorf("%s: residual %g > %g: %w", methodSolve, residual, tol.Residual, ErrSingularSystem)
	}
	if !math.IsInf(tol.Residual, 1) {
		d, err := drift(T, pi)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodSolve, err)
		}
		if d > tol.Residual {
			return nil, fmt.Errorf("%s: drift ‖πT−π‖ %g > %g: %w", methodSolve, d, tol.Residual, ErrSingularSystem)
		}
	}
	sum := 0.0
	for i, v := range pi {
		if v < -tol.Negative {
			return nil, fmt.Errorf("%s: pi[%d]=%g < -%g: %w", methodSolve, i, v, tol.Negative, ErrSingularSystem)
		}
		sum += v
	}
	if math.Abs(sum-1) > tol.Sum {
		return nil, fmt.Errorf("%s: sum(pi)=%g: %w", methodSolve, sum, ErrSingularSystem)
	}

	return pi, nil
}

// stackedSystem builds [Tᵀ − I; 1ᵀ].
func stackedSystem(T matrix.Matrix) (*matrix.Dense, error) {
	n := T.Rows()
	Tt, err := matrix.Transpose(T)
	if err != nil {
		return nil, err
	}
	I, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, err
	}
	D, err := matrix.Sub(Tt, I)
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, n, n+1)
	for i := 0; i < n; i++ {
		if rows[i], err = rowOf(D, i); err != nil {
			return nil, err
		}
	}
	ones := make([]float64, n)
	for j := range ones {
		ones[j] = 1
	}
	rows = append(rows, ones)

	return matrix.NewDenseFrom(rows)
}

// drift returns max_j |(πT)_j − π_j|.
func drift(T matrix.Matrix, pi []float64) (float64, error) {
	row, err := matrix.NewDenseFrom([][]float64{pi})
	if err != nil {
		return 0, err
	}
	next, err := matrix.Mul(row, T)
	if err != nil {
		return 0, err
	}
	var worst, v float64
	for j := range pi {
		if v, err = next.At(0, j); err != nil {
			return 0, err
		}
		worst = math.Max(worst, math.Abs(v-pi[j]))
	}

	return worst, nil
}

func rowOf(m matrix.Matrix, i int) ([]float64, error) {
	if d, ok := m.(*matrix.Dense); ok {
		return d.Row(i)
	}
	out := make([]float64, m.Cols())
	var err error
	for j := range out {
		if out[j], err = m.At(i, j); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func validateTolerances(tol Tolerances) error {
	for _, v := range []float64{tol.Residual, tol.Negative, tol.Sum, tol.Stochastic} {
		if math.IsNaN(v) || v < 0 {
			return fmt.Errorf("tolerance %g: %w", v, ErrInvalidTolerance)
		}
	}

	return nil
}
