package loadgen

import (
	"time"

	"github.com/okian/huntcast/internal/domain/weather"
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL       string        // Base URL of the service
	NumJobs       int           // Number of job submissions to generate
	DuplicateRate float64       // Share of submissions that replay an earlier request id
	ForecastLen   int           // Forecast periods per job
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	PollInterval  time.Duration // Delay between job status polls
	PollDeadline  time.Duration // Give up on a job that is still pending after this long
	OutputFile    string        // Output file for generated submissions
	Verbose       bool          // Enable verbose logging
}

// Submission is one POST /jobs body.
type Submission struct {
	RequestID string                `json:"request_id"`
	Current   weather.Observation   `json:"current"`
	Forecast  []weather.Observation `json:"forecast"`
}

// Outcome pairs a submission with the receipt the service returned.
type Outcome struct {
	Submission Submission
	JobID      string
	Duplicate  bool
	StatusCode int
	Err        error
}

// Result is the final state of one polled job.
type Result struct {
	JobID        string
	Status       string
	CurrentScore float64
	Latency      time.Duration
}

// Stats holds run statistics.
type Stats struct {
	JobsGenerated  int
	JobsSubmitted  int
	JobsAccepted   int
	JobsDuplicate  int
	JobsRejected   int
	JobsErrored    int
	JobsCompleted  int
	JobsFailed     int
	JobsTimedOut   int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	MeanScore      float64
	MedianLatency  time.Duration
	P95Latency     time.Duration
	DuplicateDrift int
}
