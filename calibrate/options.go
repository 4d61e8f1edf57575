// SPDX-License-Identifier: MIT

package calibrate

import (
	"io"
	"log/slog"
)

// Option customizes Run. Constructors panic on nil arguments.
type Option func(*runOptions)

type runOptions struct {
	logger   *slog.Logger
	observer Observer
}

func defaultOptions() runOptions {
	return runOptions{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("calibrate: WithLogger(nil)")
	}
	return func(o *runOptions) {
		o.logger = l
	}
}

// WithObserver sets the progress observer. Panics on nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic("calibrate: WithObserver(nil)")
	}
	return func(o *runOptions) {
		o.observer = obs
	}
}
