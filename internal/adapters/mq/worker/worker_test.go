package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/huntcast/internal/adapters/mq/queue"
	"github.com/okian/huntcast/internal/adapters/mq/worker"
	"github.com/okian/huntcast/internal/domain/analysis"
	"github.com/okian/huntcast/internal/domain/job"
	"github.com/okian/huntcast/internal/domain/weather"
	logging "github.com/okian/huntcast/pkg/logger"
)

// Mock implementations for testing.
type mockQueue struct {
	jobs chan job.Job
	once sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{jobs: make(chan job.Job, 10)}
}

func (mq *mockQueue) Dequeue(context.Context) <-chan job.Job { return mq.jobs }

func (mq *mockQueue) Close() error {
	mq.once.Do(func() { close(mq.jobs) })
	return nil
}

type panicAnalyzer struct{}

func (panicAnalyzer) Analyze(weather.Observation, []weather.Observation) analysis.Report {
	panic("bad input")
}

type mockStore struct {
	mu    sync.Mutex
	saved map[string]job.Job
	err   error
}

func newMockStore() *mockStore { return &mockStore{saved: make(map[string]job.Job)} }

func (ms *mockStore) Save(_ context.Context, j job.Job) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.err != nil {
		return ms.err
	}
	ms.saved[j.ID] = j
	return nil
}

func (ms *mockStore) get(id string) (job.Job, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	j, ok := ms.saved[id]
	return j, ok
}

// waitFor polls until the store holds a finished job with the given id.
func waitFor(ms *mockStore, id string) (job.Job, bool) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if j, ok := ms.get(id); ok && j.Finished() {
			return j, true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return job.Job{}, false
}

func pendingJob(id string) job.Job {
	return job.New(id, "", weather.Observation{
		Temperature: weather.Float(45),
		WindSpeed:   weather.Float(5),
	}, nil, time.Date(2024, time.October, 1, 6, 0, 0, 0, time.UTC))
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a worker reading from a queue", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		store := newMockStore()
		clock := clockwork.NewFakeClockAt(time.Date(2024, time.October, 1, 7, 0, 0, 0, time.UTC))

		convey.Convey("When a job is processed", func() {
			w := worker.NewInMemoryWorker(q, analysis.New(), store, worker.WithName("test-worker"), worker.WithClock(clock))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go w.Run(ctx)

			q.jobs <- pendingJob("job-1")
			got, ok := waitFor(store, "job-1")

			convey.Convey("Then the report is stored and stamped by the clock", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got.Status, convey.ShouldEqual, job.StatusDone)
				convey.So(got.Report, convey.ShouldNotBeNil)
				convey.So(got.Report.Scores.CurrentScore, convey.ShouldEqual, 1.0)
				convey.So(*got.CompletedAt, convey.ShouldEqual, clock.Now())
			})
		})

		convey.Convey("When the analyzer panics", func() {
			w := worker.NewInMemoryWorker(q, panicAnalyzer{}, store, worker.WithClock(clock))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go w.Run(ctx)

			q.jobs <- pendingJob("job-2")
			got, ok := waitFor(store, "job-2")

			convey.Convey("Then the job is marked failed and the worker keeps running", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got.Status, convey.ShouldEqual, job.StatusFailed)
				convey.So(got.Error, convey.ShouldContainSubstring, "bad input")

				q.jobs <- pendingJob("job-3")
				_, ok = waitFor(store, "job-3")
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the store fails", func() {
			store.err = errors.New("disk full")
			w := worker.NewInMemoryWorker(q, analysis.New(), store)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go w.Run(ctx)

			q.jobs <- pendingJob("job-4")
			_ = q.Close()

			convey.Convey("Then the worker still exits once the queue closes", func() {
				select {
				case <-w.Done():
				case <-time.After(2 * time.Second):
					convey.So("worker did not exit", convey.ShouldBeEmpty)
				}
				_, ok := store.get("job-4")
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When shutting down a running worker", func() {
			w := worker.NewInMemoryWorker(q, analysis.New(), store)
			go w.Run(context.Background())

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			convey.So(w.Shutdown(ctx), convey.ShouldBeNil)
			convey.So(w.Shutdown(ctx), convey.ShouldBeNil)
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool over a real queue", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		store := newMockStore()
		pool := worker.NewPool(4, q, analysis.New(), store)

		convey.So(pool.Size(), convey.ShouldEqual, 4)

		pool.Start(context.Background())
		for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
			convey.So(q.Enqueue(context.Background(), pendingJob(id)), convey.ShouldBeNil)
		}

		convey.Convey("When the pool shuts down", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			err := pool.Shutdown(ctx)

			convey.Convey("Then every queued job was drained first", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
				for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
					j, ok := store.get(id)
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(j.Status, convey.ShouldEqual, job.StatusDone)
				}
			})
		})
	})

	convey.Convey("Given a pool with a non-positive worker count", t, func() {
		_ = logging.Init()
		pool := worker.NewPool(0, newMockQueue(), analysis.New(), newMockStore())

		convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
	})
}
