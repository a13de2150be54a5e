package service

import (
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	eventqueue "github.com/okian/huntcast/internal/adapters/mq/queue"
	"github.com/okian/huntcast/internal/adapters/repository"
	"github.com/okian/huntcast/internal/domain/conditions"
	"github.com/okian/huntcast/internal/domain/species"
	"github.com/okian/huntcast/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the number of idempotency keys remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock used for defaulted timestamps and job stamps.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithStore sets the job store. The service closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithQueue sets the job queue. WithQueueSize is ignored when set.
func WithQueue(q eventqueue.Queue) Option {
	return func(s *Service) {
		if q != nil {
			s.queue = q
		}
	}
}

// WithRegistry replaces the built-in species catalogue.
func WithRegistry(r *species.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithConditionTable sets the ranges used to rate weather fields.
func WithConditionTable(t conditions.Table) Option {
	return func(s *Service) {
		if len(t) > 0 {
			s.table = t
		}
	}
}

// WithForecastPeriods sets how many forecast periods an analysis scores.
func WithForecastPeriods(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.forecastPeriods = n
		}
	}
}

// WithPressureWindow sets how many forecast pressures feed the trend.
func WithPressureWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pressureWindow = n
		}
	}
}

// WithWindowThreshold sets the score a forecast period must beat to be an
// optimal window.
func WithWindowThreshold(t float64) Option {
	return func(s *Service) {
		if t >= 0 && t <= 1 {
			s.threshold = t
		}
	}
}

// WithIDGenerator sets the job id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func newUUID() string { return uuid.NewString() }
