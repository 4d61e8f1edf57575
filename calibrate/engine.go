// SPDX-License-Identifier: MIT
// Package: kinetics/calibrate
//
// engine.go - the rejection-sampling loop.
//
// Contract:
//   - cfg is validated before any draw; failures wrap ErrInvalidConfiguration.
//   - rng must be non-nil; runs sharing nothing but the Sampler are safe to
//     execute concurrently as long as each owns its rng.
//   - ctx is checked exactly once per attempt, before the draw.
//   - Success returns exactly cfg.Total matrices. Anything short of that
//     is an *ExhaustedError carrying the partial Result.
//   - Sampler errors (degenerate rows) abort the run; singular candidates
//     are rejected and counted.
//
// Complexity:
//   - O(attempts · N³) time (one least-squares solve per attempt).
//   - O(Total · N²) space for accepted matrices.

package calibrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/kinetics/sampler"
	"github.com/katalvlaran/kinetics/steadystate"
)

const methodRun = "Run"

var tracer = otel.Tracer("kinetics/calibrate")

// Run collects cfg.Total candidates whose steady state lies inside the
// acceptance box around cfg.Observed.
//
// Returns:
//   - (*Result, nil) with exactly cfg.Total matrices on success.
//   - (nil, err) with errors.Is(err, ErrInvalidConfiguration) for bad input.
//   - (nil, err) with errors.As(err, **ExhaustedError) when the budget,
//     deadline or ctx ran out; the partial Result is on the error.
//   - (nil, err) wrapping sampler.ErrDegenerateRow if a draw could not be
//     normalized.
func Run(ctx context.Context, cfg Config, rng *rand.Rand, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodRun, err)
	}
	if rng == nil {
		return nil, fmt.Errorf("%s: %w: %w", methodRun, ErrInvalidConfiguration, sampler.ErrNeedRandSource)
	}

	res := &Result{
		RunID:     uuid.NewString(),
		Condition: cfg.Condition,
		Total:     cfg.Total,
	}
	log := o.logger.With(
		slog.String("run_id", res.RunID),
		slog.String("condition", cfg.Condition),
	)

	ctx, span := tracer.Start(ctx, "calibrate.Run",
		trace.WithAttributes(
			attribute.String("calibrate.run_id", res.RunID),
			attribute.String("calibrate.condition", cfg.Condition),
			attribute.String("calibrate.sampler", cfg.Sampler.Kind().String()),
			attribute.Int("calibrate.size", cfg.Sampler.Size()),
			attribute.Int("calibrate.total", cfg.Total),
			attribute.Int("calibrate.max_attempts", cfg.MaxAttempts),
		),
	)
	defer span.End()

	if cfg.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Deadline)
		defer cancel()
	}

	log.Info("calibration started",
		slog.Int("size", cfg.Sampler.Size()),
		slog.String("sampler", cfg.Sampler.Kind().String()),
		slog.Int("total", cfg.Total),
		slog.Int("max_attempts", cfg.MaxAttempts),
		slog.Duration("deadline", cfg.Deadline),
	)
	start := time.Now()

	e := &engine{cfg: cfg, tol: cfg.tolerances(), rng: rng, res: res, obs: o.observer, log: log}
	err := e.loop(ctx)

	ev := e.event(0)
	safeNotify(log, func() { o.observer.OnFinish(ev, err) })
	span.SetAttributes(
		attribute.Int("calibrate.attempts", res.Attempts),
		attribute.Int("calibrate.accepted", res.Accepted()),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("calibration stopped",
			slog.Int("attempts", res.Attempts),
			slog.Int("accepted", res.Accepted()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()),
		)

		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	log.Info("calibration completed",
		slog.Int("attempts", res.Attempts),
		slog.Int("accepted", res.Accepted()),
		slog.Int("singular", res.Singular),
		slog.Float64("acceptance_ratio", res.AcceptanceRatio()),
		slog.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}

// engine holds the per-run state of the search loop.
type engine struct {
	cfg Config
	tol steadystate.Tolerances
	rng *rand.Rand
	res *Result
	obs Observer
	log *slog.Logger
}

func (e *engine) loop(ctx context.Context) error {
	for len(e.res.Matrices) < e.cfg.Total {
		if e.cfg.MaxAttempts > 0 && e.res.Attempts >= e.cfg.MaxAttempts {
			return e.exhausted(ReasonBudget, nil)
		}
		if err := ctx.Err(); err != nil {
			reason := ReasonCanceled
			if errors.Is(err, context.DeadlineExceeded) {
				reason = ReasonDeadline
			}

			return e.exhausted(reason, err)
		}

		e.res.Attempts++
		outcome, err := e.attempt()
		if err != nil {
			return fmt.Errorf("%s: attempt %d: %w", methodRun, e.res.Attempts, err)
		}

		ev := e.event(outcome)
		safeNotify(e.log, func() { e.obs.OnAttempt(ev) })
	}

	return nil
}

// attempt draws, solves and classifies one candidate.
func (e *engine) attempt() (Outcome, error) {
	T, err := e.cfg.Sampler.Sample(e.rng)
	if err != nil {
		return 0, err
	}
	pi, err := steadystate.SolveTol(T, e.tol)
	if errors.Is(err, steadystate.ErrSingularSystem) {
		e.res.Singular++
		e.log.Debug("candidate rejected: singular", slog.Int("attempt", e.res.Attempts))

		return OutcomeSingular, nil
	}
	if err != nil {
		return 0, err
	}

	if !Within(pi, e.cfg.Observed, e.cfg.Threshold) {
		return OutcomeRejected, nil
	}
	e.res.Matrices = append(e.res.Matrices, T)
	e.res.SteadyStates = append(e.res.SteadyStates, pi)
	e.log.Debug("candidate accepted",
		slog.Int("attempt", e.res.Attempts),
		slog.Int("accepted", len(e.res.Matrices)),
	)

	return OutcomeAccepted, nil
}

func (e *engine) exhausted(reason Reason, cause error) error {
	return &ExhaustedError{
		Partial:  e.res,
		Attempts: e.res.Attempts,
		Reason:   reason,
		Cause:    cause,
	}
}

func (e *engine) event(outcome Outcome) Event {
	return Event{
		RunID:     e.res.RunID,
		Condition: e.res.Condition,
		Attempts:  e.res.Attempts,
		Accepted:  len(e.res.Matrices),
		Total:     e.res.Total,
		Outcome:   outcome,
	}
}

// Within reports whether threshold_i − |pi_i − observed_i| > 0 for every i.
// Mismatched lengths report false.
func Within(pi, observed, threshold []float64) bool {
	if len(pi) != len(observed) || len(pi) != len(threshold) {
		return false
	}
	for i := range pi {
		if !(threshold[i]-math.Abs(pi[i]-observed[i]) > 0) {
			return false
		}
	}

	return true
}

// safeNotify runs fn and logs, rather than propagates, any panic.
func safeNotify(log *slog.Logger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("observer panicked", slog.Any("panic", r))
		}
	}()
	fn()
}
