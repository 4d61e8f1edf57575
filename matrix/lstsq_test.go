// Package matrix_test covers the Householder least-squares solver.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinetics/matrix"
)

// TestLeastSquaresSquare checks an exactly determined system.
func TestLeastSquaresSquare(t *testing.T) {
	A := MustFrom(t, [][]float64{{2, 1}, {1, 3}})
	x, res, err := matrix.LeastSquares(A, []float64{3, 5})
	require.NoError(t, err)
	assert.True(t, AlmostEqualSlice([]float64{0.8, 1.4}, x, 1e-12), "x=%v", x)
	assert.InDelta(t, 0, res, 1e-12)
}

// TestLeastSquaresInconsistent checks the residual of an overdetermined system.
func TestLeastSquaresInconsistent(t *testing.T) {
	A := MustFrom(t, [][]float64{{1}, {1}})
	x, res, err := matrix.LeastSquares(A, []float64{0, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, x[0], 1e-12)
	assert.InDelta(t, math.Sqrt2, res, 1e-12)
}

// TestLeastSquaresStationary solves the stacked [Tᵀ−I; 1ᵀ] system of a two-state chain.
func TestLeastSquaresStationary(t *testing.T) {
	T := MustFrom(t, [][]float64{{0.9, 0.1}, {0.5, 0.5}})
	Tt, err := matrix.Transpose(T)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	D, err := matrix.Sub(Tt, I)
	require.NoError(t, err)

	rows := D.(*matrix.Dense).RawRows()
	rows = append(rows, []float64{1, 1})
	x, res, err := matrix.LeastSquares(MustFrom(t, rows), []float64{0, 0, 1})
	require.NoError(t, err)
	assert.True(t, AlmostEqualSlice([]float64{5.0 / 6, 1.0 / 6}, x, 1e-12), "pi=%v", x)
	assert.InDelta(t, 0, res, 1e-12)
}

func TestLeastSquaresErrors(t *testing.T) {
	_, _, err := matrix.LeastSquares(MustFrom(t, [][]float64{{1, 2}, {2, 4}, {3, 6}}), []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, _, err = matrix.LeastSquares(MustDense(t, 2, 2), []float64{1, 1})
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, _, err = matrix.LeastSquares(MustDense(t, 1, 2), []float64{1})
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, _, err = matrix.LeastSquares(MustDense(t, 2, 1), []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, _, err = matrix.LeastSquares(MustDense(t, 2, 1), []float64{1, math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	_, _, err = matrix.LeastSquares(nil, []float64{1})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestLeastSquaresDoesNotMutate ensures inputs are left untouched.
func TestLeastSquaresDoesNotMutate(t *testing.T) {
	A := MustFrom(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	b := []float64{1, 2, 3}
	_, _, err := matrix.LeastSquares(A, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, A.RawRows())
	assert.Equal(t, []float64{1, 2, 3}, b)
}
