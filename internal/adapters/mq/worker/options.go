// Package worker computes queued analysis jobs and stores their reports.
package worker

import (
	"github.com/jonboulle/clockwork"

	"github.com/okian/huntcast/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithClock sets the clock used to stamp completed jobs.
func WithClock(c clockwork.Clock) Option {
	return func(w *InMemoryWorker) {
		if c != nil {
			w.clock = c
		}
	}
}
