package loadgen

import "time"

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	DefaultPollInterval  = 250 * time.Millisecond
	DefaultPollDeadline  = 2 * time.Minute
	PercentageMultiplier = 100
	latencyPercentile    = 95
)

// Job status values as served by GET /jobs/{id}.
const (
	statusDone    = "done"
	statusFailed  = "failed"
	statusTimeout = "timeout"
)
