// SPDX-License-Identifier: MIT
// Package: kinetics/sampler
//
// sampler.go - candidate transition-matrix generator.
//
// Canonical model:
//   - Draw W[i,j] ~ Uniform[0,1) for every cell in row-major order.
//   - Zero the diagonal unless self-transitions are allowed.
//   - Zero every off-diagonal cell the Mask forbids.
//   - Normalize rows to sum 1 (matrix.NormalizeRowsL1).
//
// Contract:
//   - size ≥ 1 (else ErrInvalidSize); kind must be declared (else ErrUnknownKind).
//   - All structural validation happens in New, including rows that admit
//     no transition; Sample fails only with ErrNeedRandSource, or with
//     ErrDegenerateRow when every admissible draw in a row came out 0.
//   - A row with zero mass is reported, never divided by.
//
// Determinism:
//   - Exactly size*size draws per Sample regardless of mask or diagonal
//     policy, so the RNG stream advances identically for every variant.
//
// Complexity:
//   - Time O(N²) per Sample, Space O(N²).

package sampler

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/kinetics/matrix"
)

const (
	methodNew    = "New"
	methodSample = "Sample"
	minSize      = 1
)

// Sampler produces random candidate matrices for one validated variant.
// A Sampler is immutable apart from its optional bound RNG; when sharing a
// Sampler across goroutines pass a per-goroutine *rand.Rand to Sample.
type Sampler struct {
	kind      Kind
	size      int
	allowSelf bool
	mask      Mask
	rng       *rand.Rand
}

// New validates the variant and returns a ready Sampler.
//
// Errors:
//   - ErrUnknownKind: kind is not declared.
//   - ErrInvalidSize: size < 1, or size < 2 for KindCycle.
//   - ErrAdjacencyUnsupported: KindAdjacent with size > MaxAdjacentSize.
//   - ErrBadMask: KindMasked without WithMask, mask size != size, or a mask
//     supplied for another kind.
//   - ErrBadMask and ErrDegenerateRow together: some row admits no
//     transition at all (e.g. size 1 without self-transitions).
func New(kind Kind, size int, opts ...Option) (*Sampler, error) {
	var cfg samplerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if !kind.Valid() {
		return nil, fmt.Errorf("%s: %s: %w", methodNew, kind, ErrUnknownKind)
	}
	if size < minSize {
		return nil, fmt.Errorf("%s: size=%d < min=%d: %w", methodNew, size, minSize, ErrInvalidSize)
	}
	if cfg.hasMask && kind != KindMasked {
		return nil, fmt.Errorf("%s: mask given for kind %s: %w", methodNew, kind, ErrBadMask)
	}

	var (
		mask Mask
		err  error
	)
	switch kind {
	case KindUniform:
		mask, err = FullMask(size)
	case KindAdjacent:
		mask, err = AdjacentMask(size)
	case KindCycle:
		mask, err = CycleMask(size)
	case KindMasked:
		if !cfg.hasMask {
			return nil, fmt.Errorf("%s: kind %s requires WithMask: %w", methodNew, kind, ErrBadMask)
		}
		if cfg.mask.n != size {
			return nil, fmt.Errorf("%s: mask size %d != size %d: %w", methodNew, cfg.mask.n, size, ErrBadMask)
		}
		mask = cfg.mask
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodNew, err)
	}
	if row := emptyRow(mask, cfg.allowSelf); row >= 0 {
		return nil, fmt.Errorf("%s: row %d admits no transition: %w: %w", methodNew, row, ErrBadMask, ErrDegenerateRow)
	}

	return &Sampler{
		kind:      kind,
		size:      size,
		allowSelf: cfg.allowSelf,
		mask:      mask,
		rng:       cfg.rng,
	}, nil
}

// emptyRow returns the first row with no admissible cell, or -1.
func emptyRow(m Mask, allowSelf bool) int {
	if allowSelf {
		return -1
	}
	var i, j int
	for i = 0; i < m.n; i++ {
		for j = 0; j < m.n; j++ {
			if j != i && m.Allowed(i, j) {
				break
			}
		}
		if j == m.n {
			return i
		}
	}

	return -1
}

// Kind returns the validated variant.
func (s *Sampler) Kind() Kind { return s.kind }

// Size returns N.
func (s *Sampler) Size() int { return s.size }

// AllowSelf reports whether diagonal entries may be nonzero.
func (s *Sampler) AllowSelf() bool { return s.allowSelf }

// Mask returns the effective structural mask.
func (s *Sampler) Mask() Mask { return s.mask }

// Sample draws one candidate matrix using rng, or the bound RNG when rng is nil.
//
// Errors:
//   - ErrNeedRandSource: rng is nil and no RNG was bound with WithRand/WithSeed.
//   - ErrDegenerateRow: a row ended up with zero mass.
//   - matrix.ErrNotStochastic: a normalized row drifted from 1 by more than
//     matrix.DefaultEpsilon.
func (s *Sampler) Sample(rng *rand.Rand) (*matrix.Dense, error) {
	if rng == nil {
		rng = s.rng
	}
	if rng == nil {
		return nil, fmt.Errorf("%s: %w", methodSample, ErrNeedRandSource)
	}

	n := s.size
	rows := make([][]float64, n)
	var (
		i, j int
		u    float64
	)
	for i = 0; i < n; i++ { // stable trial order: i asc, j asc
		rows[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			u = rng.Float64() // always draw so the stream is variant-independent
			if i == j {
				if s.allowSelf {
					rows[i][j] = u
				}
				continue
			}
			if s.mask.Allowed(i, j) {
				rows[i][j] = u
			}
		}
	}

	w, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSample, err)
	}
	t, norms, err := matrix.NormalizeRowsL1(w)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSample, err)
	}
	for i = range norms {
		if norms[i] == 0 {
			return nil, fmt.Errorf("%s: row %d has zero mass: %w", methodSample, i, ErrDegenerateRow)
		}
	}
	sums, err := matrix.RowSums(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSample, err)
	}
	for i = range sums {
		if math.Abs(sums[i]-1) > matrix.DefaultEpsilon {
			return nil, fmt.Errorf("%s: row %d sums to %g: %w", methodSample, i, sums[i], matrix.ErrNotStochastic)
		}
	}

	return t, nil
}

// Random is the one-shot form: it resolves the variant from the two flags
// (uniform, or adjacency-constrained), validates it and draws one matrix.
func Random(rng *rand.Rand, size int, allowSelf, constrainAdjacent bool) (*matrix.Dense, error) {
	kind := KindUniform
	if constrainAdjacent {
		kind = KindAdjacent
	}
	s, err := New(kind, size, WithSelfTransitions(allowSelf))
	if err != nil {
		return nil, err
	}

	return s.Sample(rng)
}
