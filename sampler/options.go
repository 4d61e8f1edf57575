// SPDX-License-Identifier: MIT
// Package: kinetics/sampler
//
// options.go - functional options for New.
//
// Contract:
//   - Option constructors validate and PANIC on meaningless input
//     (nil RNG, zero Mask). New and Sample never panic.
//   - Determinism is explicit: WithSeed or WithRand.

package sampler

import "math/rand"

// Option customizes a Sampler before validation in New.
type Option func(*samplerConfig)

type samplerConfig struct {
	allowSelf bool
	mask      Mask
	hasMask   bool
	rng       *rand.Rand
}

// WithSelfTransitions allows (true) or forbids (false, default) nonzero
// diagonal entries.
func WithSelfTransitions(allow bool) Option {
	return func(c *samplerConfig) {
		c.allowSelf = allow
	}
}

// WithMask supplies the structural pattern for KindMasked.
// Panics on the zero Mask.
func WithMask(m Mask) Option {
	if m.n == 0 {
		panic("sampler: WithMask(zero Mask)")
	}
	return func(c *samplerConfig) {
		c.mask, c.hasMask = m, true
	}
}

// WithRand binds a default RNG used when Sample receives nil.
// Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("sampler: WithRand(nil)")
	}
	return func(c *samplerConfig) {
		c.rng = r
	}
}

// WithSeed binds a fresh seeded RNG; use it to lock outcomes in tests.
func WithSeed(seed int64) Option {
	return func(c *samplerConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}
