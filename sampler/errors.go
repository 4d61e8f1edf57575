// SPDX-License-Identifier: MIT
// Package: kinetics/sampler
//
// errors.go - sentinel errors for the sampler package.
//
// Error policy:
//   - Only package-level sentinels are exposed; callers use errors.Is.
//   - Context is attached with %w at the failure site.
//   - Option constructors (WithX) panic on meaningless input; New and Sample never panic.

package sampler

import "errors"

// ErrInvalidSize indicates a state count below the allowed minimum.
var ErrInvalidSize = errors.New("sampler: invalid size")

// ErrUnknownKind indicates an unrecognized sampler variant name or value.
var ErrUnknownKind = errors.New("sampler: unknown kind")

// ErrBadMask indicates a missing, empty, ragged or mis-sized adjacency mask.
var ErrBadMask = errors.New("sampler: bad mask")

// ErrAdjacencyUnsupported indicates the |i−j| = 2 heuristic was requested
// for more states than it is defined for. Supply an explicit Mask instead.
var ErrAdjacencyUnsupported = errors.New("sampler: adjacency heuristic unsupported for size")

// ErrNeedRandSource indicates Sample was called without any *rand.Rand.
var ErrNeedRandSource = errors.New("sampler: rng is required")

// ErrDegenerateRow indicates a sampled row had zero total mass and cannot
// be normalized.
var ErrDegenerateRow = errors.New("sampler: degenerate row")
