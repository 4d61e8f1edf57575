// Package matrix_test contains unit tests for the linear-algebra kernels.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinetics/matrix"
)

func TestSub(t *testing.T) {
	a := MustFrom(t, [][]float64{{5, 6}, {7, 8}})
	b := MustFrom(t, [][]float64{{1, 2}, {3, 4}})

	got, err := matrix.Sub(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{4, 4}, {4, 4}}, got.(*matrix.Dense).RawRows())

	// Interface-hidden operand must give the same answer.
	got2, err := matrix.Sub(hide{a}, b)
	require.NoError(t, err)
	require.Equal(t, got.(*matrix.Dense).RawRows(), got2.(*matrix.Dense).RawRows())

	_, err = matrix.Sub(a, MustDense(t, 3, 2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Sub(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTranspose(t *testing.T) {
	for _, m := range []matrix.Matrix{
		MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}}),
		hide{MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})},
	} {
		tr, err := matrix.Transpose(m)
		require.NoError(t, err)
		require.Equal(t, 3, tr.Rows())
		require.Equal(t, 2, tr.Cols())
		require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr.(*matrix.Dense).RawRows())
	}
}

func TestMul(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	I, err := matrix.NewIdentity(2)
	require.NoError(t, err)

	got, err := matrix.Mul(a, I)
	require.NoError(t, err)
	require.Equal(t, a.RawRows(), got.(*matrix.Dense).RawRows())

	got, err = matrix.Mul(a, a)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{7, 10}, {15, 22}}, got.(*matrix.Dense).RawRows())

	_, err = matrix.Mul(a, MustDense(t, 3, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMatVec(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	for name, m := range map[string]matrix.Matrix{"dense": a, "iface": hide{a}} {
		t.Run(name, func(t *testing.T) {
			y, err := matrix.MatVec(m, []float64{1, -1})
			require.NoError(t, err)
			require.Equal(t, []float64{-1, -1, -1}, y)
		})
	}

	_, err := matrix.MatVec(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestRowSums(t *testing.T) {
	sums, err := matrix.RowSums(MustFrom(t, [][]float64{{0, 0.25, 0.75}, {1, 1, 1}}))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3}, sums)
}

// TestNormalizeRowsL1 checks stochastic output, returned norms and the
// degenerate-row policy (zero rows are left unchanged and reported via norm 0).
func TestNormalizeRowsL1(t *testing.T) {
	X := MustFrom(t, [][]float64{{1, 3}, {0, 0}, {2, 2}})
	Y, norms, err := matrix.NormalizeRowsL1(X)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 0, 4}, norms)
	assert.Equal(t, [][]float64{{0.25, 0.75}, {0, 0}, {0.5, 0.5}}, Y.RawRows())

	for _, seed := range []int64{1, 7, 42} {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			R := RandFilledDense(t, 5, 5, seed)
			N, _, err := matrix.NormalizeRowsL1(R)
			require.NoError(t, err)
			var i, j int
			var s float64
			for i = 0; i < 5; i++ {
				s = 0
				for j = 0; j < 5; j++ {
					v := MustAt(t, N, i, j)
					if v < 0 {
						v = -v
					}
					s += v
				}
				require.InDelta(t, 1.0, s, 1e-12)
			}
		})
	}
}
