// Package worker computes queued analysis jobs and stores their reports.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/okian/huntcast/internal/domain/analysis"
	"github.com/okian/huntcast/internal/domain/job"
	"github.com/okian/huntcast/internal/domain/weather"
	"github.com/okian/huntcast/pkg/logger"
	"github.com/okian/huntcast/pkg/metrics"
)

const defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()

// Analyzer turns a job's observations into a report.
type Analyzer interface {
	Analyze(current weather.Observation, forecast []weather.Observation) analysis.Report
}

// Store persists job state transitions.
type Store interface {
	Save(ctx context.Context, j job.Job) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan job.Job
}

// Worker processes jobs until its queue closes or it is stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue drains.
	Run(ctx context.Context)

	// Shutdown stops the worker after the job in flight.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue    Queue
	analyzer Analyzer
	store    Store
	name     string
	clock    clockwork.Clock

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, analyzer Analyzer, store Store, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		analyzer: analyzer,
		store:    store,
		name:     "worker",
		clock:    clockwork.NewRealClock(),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, j); err != nil {
				w.logger.Error(ctx, "error processing job", logger.String("job_id", j.ID), logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once Run has returned.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

// process analyzes one job and saves the result.
func (w *InMemoryWorker) process(ctx context.Context, j job.Job) error { //nolint:gocritic // hugeParam: jobs travel by value over the channel
	start := w.clock.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(w.clock.Since(start).Milliseconds()))
	}()

	report, err := w.analyze(j)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordJobFailed()
		metrics.RecordErrorByComponent("worker", "analysis_error")
		if saveErr := w.store.Save(ctx, j.Fail(err, w.clock.Now())); saveErr != nil {
			return fmt.Errorf("save failed job %s: %w", j.ID, saveErr)
		}
		return fmt.Errorf("analyze job %s: %w", j.ID, err)
	}
	metrics.RecordComputationLatency("job", float64(w.clock.Since(start).Milliseconds()))

	if err := w.store.Save(ctx, j.Complete(report, w.clock.Now())); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordJobFailed()
		metrics.RecordErrorByComponent("worker", "store_error")
		return fmt.Errorf("save job %s: %w", j.ID, err)
	}

	metrics.RecordJobCompleted()
	metrics.RecordAnalysis("job")
	w.logger.Debug(ctx, "job completed", logger.String("job_id", j.ID))
	return nil
}

// analyze runs the analyzer, turning a panic into an error so one bad job
// cannot take the pool down.
func (w *InMemoryWorker) analyze(j job.Job) (report analysis.Report, err error) { //nolint:gocritic // hugeParam
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAnalysisPanic, r)
		}
	}()
	return w.analyzer.Analyze(j.Current, j.Forecast), nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	cancel  context.CancelFunc
	logger  logger.Logger
}

// NewPool creates a new worker pool. Options apply to every worker.
func NewPool(workerCount int, queue Queue, analyzer Analyzer, store Store, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewInMemoryWorker(queue, analyzer, store, workerOpts...)
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	for _, w := range p.workers {
		go w.Run(runCtx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown closes the queue and waits for the workers to drain it. When ctx
// expires first the workers are cancelled and the context error is returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	defer func() {
		if p.cancel != nil {
			p.cancel()
		}
	}()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("worker pool shutdown: %w", ctx.Err())
		}
	}
	return nil
}
