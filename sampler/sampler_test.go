package sampler_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinetics/matrix"
	"github.com/katalvlaran/kinetics/sampler"
)

// assertStructure checks the row-stochastic contract plus diagonal and mask zeros.
func assertStructure(t *testing.T, T *matrix.Dense, s *sampler.Sampler) {
	t.Helper()
	require.NoError(t, matrix.ValidateRowStochastic(T, 1e-9))
	n := T.Rows()
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v, err := T.At(i, j)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			if i == j && !s.AllowSelf() {
				assert.Zero(t, v, "diag (%d,%d)", i, j)
			}
			if i != j && !s.Mask().Allowed(i, j) {
				assert.Zero(t, v, "masked (%d,%d)", i, j)
			}
		}
	}
}

// TestSampleAdjacentNoSelf covers the default variant over many draws.
func TestSampleAdjacentNoSelf(t *testing.T) {
	s, err := sampler.New(sampler.KindAdjacent, 4)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))
	for k := 0; k < 200; k++ {
		T, err := s.Sample(rng)
		require.NoError(t, err)
		assertStructure(t, T, s)
		for _, ij := range [][2]int{{0, 2}, {2, 0}, {1, 3}, {3, 1}} {
			v, _ := T.At(ij[0], ij[1])
			require.Zero(t, v)
		}
	}
}

func TestSampleVariants(t *testing.T) {
	ring, err := sampler.NewMask([][]bool{
		{false, true, false},
		{false, false, true},
		{true, false, false},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		kind sampler.Kind
		size int
		opts []sampler.Option
	}{
		{"uniform", sampler.KindUniform, 6, nil},
		{"uniform self", sampler.KindUniform, 3, []sampler.Option{sampler.WithSelfTransitions(true)}},
		{"adjacent 3", sampler.KindAdjacent, 3, nil},
		{"cycle 5", sampler.KindCycle, 5, nil},
		{"masked ring", sampler.KindMasked, 3, []sampler.Option{sampler.WithMask(ring)}},
		{"single state self", sampler.KindUniform, 1, []sampler.Option{sampler.WithSelfTransitions(true)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := sampler.New(tc.kind, tc.size, tc.opts...)
			require.NoError(t, err)
			T, err := s.Sample(rand.New(rand.NewSource(3)))
			require.NoError(t, err)
			assertStructure(t, T, s)
		})
	}
}

func TestNewErrors(t *testing.T) {
	m3, err := sampler.CycleMask(3)
	require.NoError(t, err)

	tests := []struct {
		name string
		kind sampler.Kind
		size int
		opts []sampler.Option
		want error
	}{
		{"zero kind", 0, 3, nil, sampler.ErrUnknownKind},
		{"size zero", sampler.KindUniform, 0, nil, sampler.ErrInvalidSize},
		{"adjacent too large", sampler.KindAdjacent, 5, nil, sampler.ErrAdjacencyUnsupported},
		{"masked without mask", sampler.KindMasked, 3, nil, sampler.ErrBadMask},
		{"mask size mismatch", sampler.KindMasked, 4, []sampler.Option{sampler.WithMask(m3)}, sampler.ErrBadMask},
		{"mask on uniform", sampler.KindUniform, 3, []sampler.Option{sampler.WithMask(m3)}, sampler.ErrBadMask},
		{"cycle of one", sampler.KindCycle, 1, nil, sampler.ErrInvalidSize},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sampler.New(tc.kind, tc.size, tc.opts...)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestSampleDegenerateRow: one state, no self-transitions, nothing to normalize.
func TestSampleDegenerateRow(t *testing.T) {
	_, err := sampler.Random(rand.New(rand.NewSource(1)), 1, false, true)
	require.ErrorIs(t, err, sampler.ErrDegenerateRow)
	require.ErrorIs(t, err, sampler.ErrBadMask)

	_, err = sampler.Random(rand.New(rand.NewSource(1)), 1, true, false)
	require.NoError(t, err)
}

// TestNewRejectsEmptyRows: a row the mask closes off fails at construction,
// before any draw.
func TestNewRejectsEmptyRows(t *testing.T) {
	closed, err := sampler.NewMask([][]bool{{false, true, true}, {false, false, false}, {true, true, false}})
	require.NoError(t, err)

	_, err = sampler.New(sampler.KindMasked, 3, sampler.WithMask(closed))
	require.ErrorIs(t, err, sampler.ErrBadMask)
	require.ErrorIs(t, err, sampler.ErrDegenerateRow)

	// Self-transitions reopen the row.
	s, err := sampler.New(sampler.KindMasked, 3, sampler.WithMask(closed), sampler.WithSelfTransitions(true))
	require.NoError(t, err)
	T, err := s.Sample(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	v, err := T.At(1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-15)

	_, err = sampler.New(sampler.KindUniform, 1)
	require.ErrorIs(t, err, sampler.ErrBadMask)
}

// TestSampleRowsSumToOne: every sampled row passes the RowSums check.
func TestSampleRowsSumToOne(t *testing.T) {
	s, err := sampler.New(sampler.KindUniform, 6, sampler.WithSelfTransitions(true))
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(5))
	for k := 0; k < 50; k++ {
		T, err := s.Sample(rng)
		require.NoError(t, err)
		sums, err := matrix.RowSums(T)
		require.NoError(t, err)
		for i := range sums {
			assert.InDelta(t, 1.0, sums[i], matrix.DefaultEpsilon)
		}
	}
}

func TestSampleNeedsRand(t *testing.T) {
	s, err := sampler.New(sampler.KindUniform, 2)
	require.NoError(t, err)
	_, err = s.Sample(nil)
	require.ErrorIs(t, err, sampler.ErrNeedRandSource)

	bound, err := sampler.New(sampler.KindUniform, 2, sampler.WithSeed(9))
	require.NoError(t, err)
	_, err = bound.Sample(nil)
	require.NoError(t, err)
}

// TestSampleDeterministic: the same seed yields the same sequence.
func TestSampleDeterministic(t *testing.T) {
	s, err := sampler.New(sampler.KindAdjacent, 4)
	require.NoError(t, err)
	a, b := rand.New(rand.NewSource(42)), rand.New(rand.NewSource(42))
	for k := 0; k < 5; k++ {
		x, err := s.Sample(a)
		require.NoError(t, err)
		y, err := s.Sample(b)
		require.NoError(t, err)
		require.Equal(t, x.RawRows(), y.RawRows())
	}
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { sampler.WithRand(nil) })
	require.Panics(t, func() { sampler.WithMask(sampler.Mask{}) })
}
