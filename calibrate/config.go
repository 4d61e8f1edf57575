// SPDX-License-Identifier: MIT

package calibrate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/katalvlaran/kinetics/sampler"
	"github.com/katalvlaran/kinetics/steadystate"
)

// ObservedSumTolerance bounds |Σ observed − 1|.
const ObservedSumTolerance = 1e-6

// Config describes one calibration run. Build Sampler with SamplerSpec.Build
// (or sampler.New) so that variant errors surface before the search starts.
type Config struct {
	Condition string // free-form label carried into logs, metrics and Result

	Observed  []float64 // target steady state, sums to 1
	Threshold []float64 // per-state half-width of the acceptance box, ≥ 0

	Sampler *sampler.Sampler
	Total   int // accepted matrices wanted, ≥ 0

	// At least one of MaxAttempts and Deadline must be positive.
	MaxAttempts int
	Deadline    time.Duration

	// Tolerances for the steady-state solve; each zero field takes its
	// value from steadystate.DefaultTolerances. +Inf disables a check.
	Tolerances steadystate.Tolerances
}

// Validate checks every field and returns an error wrapping
// ErrInvalidConfiguration on the first violation.
func (c Config) Validate() error {
	if c.Sampler == nil {
		return invalidf("sampler is nil")
	}
	n := c.Sampler.Size()
	if len(c.Observed) != n {
		return invalidf("len(observed)=%d != size=%d", len(c.Observed), n)
	}
	if len(c.Threshold) != n {
		return invalidf("len(threshold)=%d != size=%d", len(c.Threshold), n)
	}
	sum := 0.0
	for i, v := range c.Observed {
		if !finite(v) || v < 0 {
			return invalidf("observed[%d]=%g", i, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > ObservedSumTolerance {
		return invalidf("observed sums to %g, want 1", sum)
	}
	for i, v := range c.Threshold {
		if !finite(v) || v < 0 {
			return invalidf("threshold[%d]=%g", i, v)
		}
	}
	if c.Total < 0 {
		return invalidf("total=%d < 0", c.Total)
	}
	if c.MaxAttempts < 0 || c.Deadline < 0 {
		return invalidf("negative budget: max_attempts=%d deadline=%s", c.MaxAttempts, c.Deadline)
	}
	if c.MaxAttempts == 0 && c.Deadline == 0 {
		return invalidf("one of max_attempts or deadline is required")
	}
	t := c.Tolerances
	for _, v := range []float64{t.Residual, t.Negative, t.Sum, t.Stochastic} {
		if math.IsNaN(v) || v < 0 {
			return invalidf("tolerance %g", v)
		}
	}

	return nil
}

// tolerances fills every zero field from steadystate.DefaultTolerances.
func (c Config) tolerances() steadystate.Tolerances {
	tol, def := c.Tolerances, steadystate.DefaultTolerances
	orDefault(&tol.Residual, def.Residual)
	orDefault(&tol.Negative, def.Negative)
	orDefault(&tol.Sum, def.Sum)
	orDefault(&tol.Stochastic, def.Stochastic)

	return tol
}

func orDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

// SamplerSpec is the declarative form of a sampler variant, as found in
// run files. The zero Kind means sampler.LegacyName.
type SamplerSpec struct {
	Kind                 string
	Size                 int
	AllowSelfTransitions bool
	ConstrainAdjacent    bool
	Mask                 [][]bool
}

// Build resolves and validates the variant.
//
// An explicit Mask takes precedence: with the legacy or "adjacent" name it
// replaces the |i−j| = 2 heuristic, which is what lets adjacency-constrained
// runs go beyond sampler.MaxAdjacentSize states.
//
// Errors wrap ErrInvalidConfiguration together with the sampler sentinel.
func (s SamplerSpec) Build() (*sampler.Sampler, error) {
	name := strings.TrimSpace(s.Kind)
	if name == "" {
		name = sampler.LegacyName
	}
	kind, err := sampler.Resolve(name, s.ConstrainAdjacent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	opts := []sampler.Option{sampler.WithSelfTransitions(s.AllowSelfTransitions)}
	if s.Mask != nil {
		m, err := sampler.NewMask(s.Mask)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		switch {
		case strings.EqualFold(name, sampler.LegacyName), kind == sampler.KindAdjacent, kind == sampler.KindMasked:
			kind = sampler.KindMasked
		default:
			return nil, fmt.Errorf("%w: mask given for kind %s: %w", ErrInvalidConfiguration, kind, sampler.ErrBadMask)
		}
		opts = append(opts, sampler.WithMask(m))
	}

	smp, err := sampler.New(kind, s.Size, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	return smp, nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
