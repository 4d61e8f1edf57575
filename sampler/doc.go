// SPDX-License-Identifier: MIT

// Package sampler draws random candidate transition matrices for a
// discrete-state Markov chain.
//
// A candidate is an N×N row-stochastic matrix with Uniform[0,1) weights,
// optionally with a zero diagonal (no self-transitions) and optionally with
// structural zeros imposed by an adjacency Mask. The structural variant is
// chosen from a closed set of Kinds and validated once, in New; sampling
// itself only fails on a degenerate (zero-mass) row.
//
// Randomness always comes from an explicit *rand.Rand: pass one to Sample,
// or bind one at construction time with WithRand / WithSeed. There is no
// hidden global source, so a fixed seed reproduces the exact sequence of
// candidates.
//
// Kinds:
//
//	KindUniform   every off-diagonal cell may be nonzero
//	KindAdjacent  cells with |i−j| = 2 are zero (N ≤ 4 only)
//	KindMasked    the caller supplies the Mask (WithMask)
//	KindCycle     only i→i±1 (mod N) edges: a single index-ordered cycle
//
// The name "random_transition_matrix" is accepted by Resolve and resolves
// to KindAdjacent or KindUniform depending on the adjacency flag.
package sampler
