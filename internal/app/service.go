// Package service wires the hunting engine, the job pipeline and the clock
// into the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/jonboulle/clockwork"

	eventqueue "github.com/okian/huntcast/internal/adapters/mq/queue"
	workerpool "github.com/okian/huntcast/internal/adapters/mq/worker"
	"github.com/okian/huntcast/internal/adapters/repository"
	"github.com/okian/huntcast/internal/domain/analysis"
	"github.com/okian/huntcast/internal/domain/behavior"
	"github.com/okian/huntcast/internal/domain/conditions"
	"github.com/okian/huntcast/internal/domain/dedupe"
	"github.com/okian/huntcast/internal/domain/movement"
	"github.com/okian/huntcast/internal/domain/species"
	"github.com/okian/huntcast/pkg/logger"
	"github.com/okian/huntcast/pkg/metrics"
)

// Service implements the API dependencies for the hunting engine.
type Service struct {
	mu sync.RWMutex

	// Engine
	registry   *species.Registry
	table      conditions.Table
	scorer     *conditions.Scorer
	behavior   *behavior.Model
	predictor  *movement.Predictor
	aggregator *analysis.Aggregator

	// Job pipeline
	store   repository.Store
	deduper dedupe.Deduper
	queue   eventqueue.Queue
	pool    *workerpool.Pool

	// Configuration
	workerCount     int
	queueSize       int
	dedupeSize      int
	forecastPeriods int
	pressureWindow  int
	threshold       float64

	clock clockwork.Clock
	newID func() string

	// State
	started bool
	stopped bool

	logger logger.Logger
}

// New constructs a Service. The engine is usable immediately; jobs are
// processed only after Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU() * 2,
		queueSize:       10_000,
		dedupeSize:      50_000,
		forecastPeriods: analysis.DefaultForecastPeriods,
		pressureWindow:  analysis.DefaultPressureWindow,
		threshold:       analysis.DefaultThreshold,
		clock:           clockwork.NewRealClock(),
		newID:           newUUID,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if s.registry == nil {
		s.registry = species.MustDefault()
	}
	if s.table == nil {
		s.table = conditions.DefaultTable()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}

	s.scorer = conditions.NewScorer(s.table)
	s.behavior = behavior.NewModel(s.registry)
	s.predictor = movement.NewPredictor(s.registry)
	s.aggregator = analysis.New(
		analysis.WithScorer(s.scorer),
		analysis.WithForecastPeriods(s.forecastPeriods),
		analysis.WithPressureWindow(s.pressureWindow),
		analysis.WithThreshold(s.threshold),
	)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	if s.queue == nil {
		s.queue = eventqueue.NewInMemoryQueue(
			eventqueue.WithCapacity(s.queueSize),
			eventqueue.WithBufferSize(s.queueSize),
		)
	}

	return s
}

// Start launches the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.stopped {
		return fmt.Errorf("start: %w", eventqueue.ErrQueueClosed)
	}

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.aggregator, s.store,
		workerpool.WithClock(s.clock),
		workerpool.WithLogger(s.logger.Named("worker")),
	)
	s.pool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "hunting service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("species", len(s.registry.List())),
	)
	return nil
}

// Stop drains queued jobs, then closes the store. ctx bounds the drain.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping hunting service...")

	var drainErr error
	if s.pool != nil {
		drainErr = s.pool.Shutdown(ctx)
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error(ctx, "error closing store", logger.Error(err))
	}

	s.started = false
	s.stopped = true
	s.logger.Info(ctx, "hunting service stopped")
	return drainErr
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"workerCount":     s.workerCount,
		"queueSize":       s.queueSize,
		"dedupeSize":      s.dedupeSize,
		"species":         len(s.registry.List()),
		"forecastPeriods": s.forecastPeriods,
		"pressureWindow":  s.pressureWindow,
		"windowThreshold": s.threshold,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		storedJobs := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["storedJobs"] = storedJobs
		stats["idempotencyKeys"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreJobs(storedJobs)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
