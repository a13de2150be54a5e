package service

import (
	"context"
	"errors"
	"fmt"

	eventqueue "github.com/okian/huntcast/internal/adapters/mq/queue"
	"github.com/okian/huntcast/internal/domain/job"
	"github.com/okian/huntcast/internal/domain/weather"
	"github.com/okian/huntcast/pkg/logger"
	"github.com/okian/huntcast/pkg/metrics"
)

// SubmitJob queues an analysis. A non-empty requestID makes the call
// idempotent: repeating it returns the original job. A full queue yields
// ErrBackpressure and frees requestID for a retry.
func (s *Service) SubmitJob(ctx context.Context, requestID string, current weather.Observation, forecast []weather.Observation) (job.Receipt, error) {
	if !s.isStarted() {
		return job.Receipt{}, ErrNotStarted
	}

	id := s.newID()
	if requestID != "" {
		if existing, seen := s.deduper.Claim(ctx, requestID, id); seen {
			metrics.RecordJobDuplicate()
			status := job.StatusPending
			if j, err := s.store.Get(ctx, existing); err == nil {
				status = j.Status
			}
			s.logger.Debug(ctx, "duplicate job submission",
				logger.String("request_id", requestID),
				logger.String("job_id", existing),
			)
			return job.Receipt{JobID: existing, Status: status, Duplicate: true}, nil
		}
	}

	j := job.New(id, requestID, current, forecast, s.clock.Now())
	if err := s.store.Save(ctx, j); err != nil {
		s.release(ctx, requestID)
		return job.Receipt{}, fmt.Errorf("save job %s: %w", id, err)
	}

	if err := s.queue.Enqueue(ctx, j); err != nil {
		s.release(ctx, requestID)
		metrics.RecordJobFailed()
		if saveErr := s.store.Save(ctx, j.Fail(err, s.clock.Now())); saveErr != nil {
			s.logger.Error(ctx, "error recording rejected job", logger.String("job_id", id), logger.Error(saveErr))
		}
		if errors.Is(err, eventqueue.ErrQueueFull) {
			return job.Receipt{}, fmt.Errorf("%w: job %s", ErrBackpressure, id)
		}
		return job.Receipt{}, fmt.Errorf("enqueue job %s: %w", id, err)
	}

	metrics.RecordJobSubmitted()
	return job.Receipt{JobID: id, Status: job.StatusPending}, nil
}

// Job returns the stored job with the given id.
func (s *Service) Job(ctx context.Context, id string) (job.Job, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) release(ctx context.Context, requestID string) {
	if requestID != "" {
		s.deduper.Release(ctx, requestID)
	}
}
