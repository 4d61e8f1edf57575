// SPDX-License-Identifier: MIT

package observe

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/katalvlaran/kinetics/calibrate"
)

// Progress logs "generating matrices" lines at most once per interval,
// plus one final line per run.
type Progress struct {
	log     *slog.Logger
	limiter *rate.Limiter
}

// NewProgress panics on a nil logger or a non-positive interval.
func NewProgress(log *slog.Logger, every time.Duration) *Progress {
	if log == nil {
		panic("observe: NewProgress(nil logger)")
	}
	if every <= 0 {
		panic("observe: NewProgress(every<=0)")
	}

	return &Progress{log: log, limiter: rate.NewLimiter(rate.Every(every), 1)}
}

// OnAttempt logs a progress line when the limiter allows it.
func (p *Progress) OnAttempt(ev calibrate.Event) {
	if !p.limiter.Allow() {
		return
	}
	p.log.Info("generating matrices",
		slog.String("run_id", ev.RunID),
		slog.String("condition", ev.Condition),
		slog.Int("accepted", ev.Accepted),
		slog.Int("total", ev.Total),
		slog.Int("attempts", ev.Attempts),
	)
}

// OnFinish always logs.
func (p *Progress) OnFinish(ev calibrate.Event, err error) {
	attrs := []any{
		slog.String("run_id", ev.RunID),
		slog.String("condition", ev.Condition),
		slog.Int("accepted", ev.Accepted),
		slog.Int("total", ev.Total),
		slog.Int("attempts", ev.Attempts),
	}
	if err != nil {
		p.log.Warn("matrix generation stopped", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	p.log.Info("matrix generation finished", attrs...)
}
