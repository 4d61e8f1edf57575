// SPDX-License-Identifier: MIT

package balance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/kinetics/matrix"
)

// Report holds every diagnostic for one matrix. π is solved once.
type Report struct {
	SteadyState []float64
	Deviation   *Deviation
	Balanced    bool // same verdict as CheckDetailedBalance

	// Dissipation is set only when HasDissipation; matrices that are not a
	// single cycle, or have a zero ring rate, leave it unset.
	HasDissipation bool
	Dissipation    float64
}

// Evaluate computes a Report for T against threshold.
// Errors: ErrDomain for a bad threshold; steady-state errors.
func Evaluate(T matrix.Matrix, threshold float64) (*Report, error) {
	if math.IsNaN(threshold) || threshold < 0 {
		return nil, fmt.Errorf("Evaluate: threshold=%g: %w", threshold, ErrDomain)
	}
	pi, err := SteadyState(T)
	if err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}
	dev, err := deviationFrom(T, pi)
	if err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}
	ok, err := balanced(T, pi, threshold)
	if err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}
	r := &Report{
		SteadyState: pi,
		Deviation:   dev,
		Balanced:    ok,
	}

	if len(pi) >= 2 && IsSingleCycle(T) {
		rate, err := dissipationFrom(T, pi)
		switch {
		case err == nil:
			r.HasDissipation, r.Dissipation = true, rate
		case !errors.Is(err, ErrDomain):
			return nil, fmt.Errorf("Evaluate: %w", err)
		}
	}

	return r, nil
}

// Summary aggregates Reports over a collection of matrices.
type Summary struct {
	Reports []*Report // same order as the input

	BalancedFraction float64 // share of reports with Balanced
	MeanAbsDeviation float64 // mean of Deviation.MeanAbs
	MaxAbsDeviation  float64 // max of Deviation.MaxAbs

	DissipationCount int // reports with HasDissipation
	DissipationMean  float64
	DissipationMin   float64
	DissipationMax   float64
}

// Summarize evaluates every matrix with at most workers goroutines
// (workers ≤ 0 means GOMAXPROCS) and aggregates the results. The first
// error, or ctx cancellation, aborts the remaining work.
func Summarize(ctx context.Context, matrices []matrix.Matrix, threshold float64, workers int) (*Summary, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	reports := make([]*Report, len(matrices))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, T := range matrices {
		i, T := i, T
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			r, err := Evaluate(T, threshold)
			if err != nil {
				return fmt.Errorf("Summarize: matrix %d: %w", i, err)
			}
			reports[i] = r

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return aggregate(reports), nil
}

func aggregate(reports []*Report) *Summary {
	s := &Summary{Reports: reports}
	if len(reports) == 0 {
		return s
	}
	nBalanced := 0
	for _, r := range reports {
		if r.Balanced {
			nBalanced++
		}
		s.MeanAbsDeviation += r.Deviation.MeanAbs
		s.MaxAbsDeviation = math.Max(s.MaxAbsDeviation, r.Deviation.MaxAbs)
		if !r.HasDissipation {
			continue
		}
		if s.DissipationCount == 0 {
			s.DissipationMin, s.DissipationMax = r.Dissipation, r.Dissipation
		}
		s.DissipationCount++
		s.DissipationMean += r.Dissipation
		s.DissipationMin = math.Min(s.DissipationMin, r.Dissipation)
		s.DissipationMax = math.Max(s.DissipationMax, r.Dissipation)
	}
	s.BalancedFraction = float64(nBalanced) / float64(len(reports))
	s.MeanAbsDeviation /= float64(len(reports))
	if s.DissipationCount > 0 {
		s.DissipationMean /= float64(s.DissipationCount)
	}

	return s
}
