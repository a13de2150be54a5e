// Package job describes asynchronous analysis jobs as they move through the
// queue, the worker pool and the result store.
package job

import (
	"time"

	"github.com/okian/huntcast/internal/domain/analysis"
	"github.com/okian/huntcast/internal/domain/weather"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Job is one conditions analysis request and, once computed, its report.
type Job struct {
	ID          string                `json:"job_id"`
	RequestID   string                `json:"request_id,omitempty"`
	Status      Status                `json:"status"`
	Current     weather.Observation   `json:"current"`
	Forecast    []weather.Observation `json:"forecast"`
	SubmittedAt time.Time             `json:"submitted_at"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
	Report      *analysis.Report      `json:"report,omitempty"`
	Error       string                `json:"error,omitempty"`
}

// New returns a pending job.
func New(id, requestID string, current weather.Observation, forecast []weather.Observation, at time.Time) Job {
	return Job{
		ID:          id,
		RequestID:   requestID,
		Status:      StatusPending,
		Current:     current,
		Forecast:    forecast,
		SubmittedAt: at,
	}
}

// Complete returns a copy of j marked done with report r.
func (j Job) Complete(r analysis.Report, at time.Time) Job {
	j.Status = StatusDone
	j.Report = &r
	j.CompletedAt = &at
	j.Error = ""
	return j
}

// Fail returns a copy of j marked failed.
func (j Job) Fail(err error, at time.Time) Job {
	j.Status = StatusFailed
	j.CompletedAt = &at
	if err != nil {
		j.Error = err.Error()
	}
	return j
}

// Finished reports whether j has left the pending state.
func (j Job) Finished() bool { return j.Status != StatusPending }

// Receipt acknowledges an accepted submission.
type Receipt struct {
	JobID     string `json:"job_id"`
	Status    Status `json:"status"`
	Duplicate bool   `json:"duplicate"`
}
