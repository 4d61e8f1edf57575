// SPDX-License-Identifier: MIT

package calibrate

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration indicates a Config or SamplerSpec failed
// validation. Lower-level causes (sampler.ErrInvalidSize, sampler.ErrBadMask,
// ...) stay matchable through errors.Is.
var ErrInvalidConfiguration = errors.New("calibrate: invalid configuration")

// ErrExhausted indicates the attempt budget or deadline ran out before
// Total matrices were accepted. The concrete error is *ExhaustedError.
var ErrExhausted = errors.New("calibrate: exhausted")

// Reason says why a run stopped early.
type Reason int

const (
	ReasonBudget   Reason = iota + 1 // MaxAttempts reached
	ReasonDeadline                   // Config.Deadline or ctx deadline passed
	ReasonCanceled                   // ctx canceled
)

func (r Reason) String() string {
	switch r {
	case ReasonBudget:
		return "budget"
	case ReasonDeadline:
		return "deadline"
	case ReasonCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// ExhaustedError is the second outcome of Run: the search stopped before
// Total acceptances. Partial holds everything accepted so far.
type ExhaustedError struct {
	Partial  *Result
	Attempts int
	Reason   Reason
	Cause    error // ctx error for deadline/cancel, nil for budget
}

func (e *ExhaustedError) Error() string {
	accepted, total := 0, 0
	if e.Partial != nil {
		accepted, total = len(e.Partial.Matrices), e.Partial.Total
	}

	return fmt.Sprintf("calibrate: exhausted (%s): accepted %d/%d after %d attempts",
		e.Reason, accepted, total, e.Attempts)
}

// Is makes errors.Is(err, ErrExhausted) true.
func (e *ExhaustedError) Is(target error) bool { return target == ErrExhausted }

// Unwrap exposes the context error, if any.
func (e *ExhaustedError) Unwrap() error { return e.Cause }
