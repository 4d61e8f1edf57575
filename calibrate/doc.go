// SPDX-License-Identifier: MIT

// Package calibrate searches for transition matrices whose stationary
// distribution matches an observed occupancy profile.
//
// Run performs rejection sampling: each attempt draws a candidate from a
// validated sampler.Sampler, solves its steady state, and accepts it iff
// every component satisfies |π_i − observed_i| < threshold_i. Accepted
// matrices are collected in acceptance order until Config.Total is reached.
//
// Every run is bounded by an attempt budget, a deadline, or both. Running
// out of budget is not a plain failure: Run returns an *ExhaustedError that
// carries the partial Result, so callers can decide whether a short
// collection is still useful.
//
// Progress is reported through an Observer side channel. Observers never
// influence acceptance, and a panicking observer is recovered and logged.
package calibrate
