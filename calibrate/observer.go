// SPDX-License-Identifier: MIT

package calibrate

// Outcome classifies one attempt.
type Outcome int

const (
	OutcomeAccepted Outcome = iota + 1
	OutcomeRejected
	OutcomeSingular // candidate had no unique steady state
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeSingular:
		return "singular"
	default:
		return "unknown"
	}
}

// Event is a progress snapshot delivered to an Observer.
type Event struct {
	RunID     string
	Condition string
	Attempts  int // attempts so far, including this one
	Accepted  int // accepted so far
	Total     int
	Outcome   Outcome // outcome of the latest attempt; zero in OnFinish for empty runs
}

// Observer receives progress from Run. Calls are made synchronously from
// the search loop, so implementations should be quick. Panics are recovered.
type Observer interface {
	OnAttempt(Event)
	// OnFinish is called once; err is nil on success or the error Run returns.
	OnFinish(Event, error)
}

// nopObserver is the default.
type nopObserver struct{}

func (nopObserver) OnAttempt(Event)       {}
func (nopObserver) OnFinish(Event, error) {}
