// SPDX-License-Identifier: MIT

package observe

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/kinetics/calibrate"
)

const namespace = "kinetics"

// Run status label values.
const (
	StatusOK        = "ok"
	StatusExhausted = "exhausted"
	StatusError     = "error"
)

// Prometheus records calibration progress as Prometheus metrics.
// Labels: condition (Config.Condition), outcome (accepted/rejected/singular),
// status (ok/exhausted/error).
type Prometheus struct {
	attempts *prometheus.CounterVec
	runs     *prometheus.CounterVec
	ratio    *prometheus.HistogramVec
}

// NewPrometheus registers the collectors with reg. Registering twice on the
// same registry panics, as with promauto.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)

	return &Prometheus{
		attempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calibration",
			Name:      "attempts_total",
			Help:      "Candidate matrices drawn, by outcome",
		}, []string{"condition", "outcome"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calibration",
			Name:      "runs_total",
			Help:      "Finished calibration runs, by status",
		}, []string{"condition", "status"}),
		ratio: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "calibration",
			Name:      "acceptance_ratio",
			Help:      "Accepted/attempted ratio per finished run",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 1.0},
		}, []string{"condition"}),
	}
}

// OnAttempt counts one attempt.
func (p *Prometheus) OnAttempt(ev calibrate.Event) {
	p.attempts.WithLabelValues(ev.Condition, ev.Outcome.String()).Inc()
}

// OnFinish counts the run and observes its acceptance ratio.
func (p *Prometheus) OnFinish(ev calibrate.Event, err error) {
	p.runs.WithLabelValues(ev.Condition, status(err)).Inc()
	if ev.Attempts > 0 {
		p.ratio.WithLabelValues(ev.Condition).Observe(float64(ev.Accepted) / float64(ev.Attempts))
	}
}

func status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, calibrate.ErrExhausted):
		return StatusExhausted
	default:
		return StatusError
	}
}
