// Package kinetics infers plausible transition matrices for a discrete-state
// Markov chain whose true kinetics are unobserved, given only a measured
// steady-state occupancy and a tolerance band around it.
//
// 🚀 What is kinetics?
//
//	A small, deterministic, pure-Go toolkit that brings together:
//		• Candidate sampling: random row-stochastic matrices with optional
//		  zero diagonal and adjacency masks
//		• Steady state: stationary distribution via Householder least squares
//		• Calibration: rejection sampling against an observed occupancy box,
//		  bounded by an attempt budget or a deadline
//		• Diagnostics: detailed-balance deviation and, for single-cycle
//		  topologies, the energy-dissipation rate
//
// ✨ Why kinetics?
//
//   - Reproducible – every random draw comes from an explicit *rand.Rand
//   - Typed outcomes – running out of budget returns the partial result
//   - Observable – slog logging, Prometheus metrics, OpenTelemetry spans
//
// Packages, leaves first:
//
//	matrix/      — Dense matrices, validators, kernels, least squares
//	sampler/     — candidate generators (uniform, adjacent, masked, cycle)
//	steadystate/ — stationary distribution with quality checks
//	calibrate/   — the rejection-sampling engine
//	balance/     — detailed balance, net flux, dissipation, summaries
//	observe/     — Prometheus, progress logging, observer fan-out
//	config/      — YAML run files with KINETICS_* overrides
//	cmd/kinetics — the command-line front end
//
// Data flow:
//
//	sampler ──► steadystate ──► calibrate ──► []matrix ──► balance ──► summary
//
//	go install github.com/katalvlaran/kinetics/cmd/kinetics@latest
package kinetics
