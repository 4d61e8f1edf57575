// SPDX-License-Identifier: MIT

// Package balance classifies transition matrices as reversible or
// irreversible.
//
// A chain at steady state π is in detailed balance when every pairwise
// probability flux cancels: π_i T_ij = π_j T_ji. The deviation matrix
//
//	D[i,j] = π_i T_ij − π_j T_ji
//
// is antisymmetric by construction; its magnitude measures how far the
// process is from equilibrium. For a single cycle visiting the states in
// index order the entropy production (energy dissipation) rate is
//
//	J · ln(∏ T_{i,i+1} / ∏ T_{i+1,i}),   J = π_0 T_01 − π_1 T_10.
//
// π is the least-squares stationary vector of T (see steadystate). The
// diagnostics accept matrices that are only approximately stochastic;
// a chain without a unique stationary vector is still an error.
package balance
