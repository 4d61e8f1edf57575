// SPDX-License-Identifier: MIT

package calibrate

import "github.com/katalvlaran/kinetics/matrix"

// Result is the ordered output of a run.
type Result struct {
	RunID     string
	Condition string
	Total     int

	// Matrices holds accepted candidates in acceptance order;
	// SteadyStates[k] is the stationary distribution of Matrices[k].
	Matrices     []*matrix.Dense
	SteadyStates [][]float64

	Attempts int // candidates drawn
	Singular int // candidates rejected because no unique steady state exists
}

// Accepted returns len(Matrices).
func (r *Result) Accepted() int { return len(r.Matrices) }

// AcceptanceRatio is Accepted/Attempts (0 when nothing was attempted).
func (r *Result) AcceptanceRatio() float64 {
	if r.Attempts == 0 {
		return 0
	}

	return float64(len(r.Matrices)) / float64(r.Attempts)
}

// Rows returns the accepted matrices as plain [][]float64 values, in order.
func (r *Result) Rows() [][][]float64 {
	out := make([][][]float64, len(r.Matrices))
	for k, m := range r.Matrices {
		out[k] = m.RawRows()
	}

	return out
}

// AsMatrices returns the accepted matrices behind the matrix.Matrix interface.
func (r *Result) AsMatrices() []matrix.Matrix {
	out := make([]matrix.Matrix, len(r.Matrices))
	for k, m := range r.Matrices {
		out[k] = m
	}

	return out
}
