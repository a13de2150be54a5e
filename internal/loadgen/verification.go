package loadgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/okian/huntcast/pkg/logger"
)

// Verification errors.
var (
	ErrNoJobs         = errors.New("no jobs were accepted")
	ErrDuplicateDrift = errors.New("a replayed request id resolved to a different job")
	ErrNoCompletions  = errors.New("no job completed")
)

// verifyResults checks idempotency and completion, then fills the summary
// statistics.
func verifyResults(ctx context.Context, outcomes []Outcome, results []Result, st *Stats) error {
	log := logger.Get()
	log.Info(ctx, "verifying results")

	if len(results) == 0 {
		return ErrNoJobs
	}

	st.DuplicateDrift = duplicateDrift(outcomes)
	summarize(results, st)

	if st.DuplicateDrift > 0 {
		return fmt.Errorf("%w: %d submissions", ErrDuplicateDrift, st.DuplicateDrift)
	}
	if st.JobsCompleted == 0 {
		return ErrNoCompletions
	}

	log.Info(ctx, "result verification completed")
	return nil
}

// duplicateDrift counts outcomes whose job id differs from the first job id
// seen for the same request id.
func duplicateDrift(outcomes []Outcome) int {
	first := make(map[string]string, len(outcomes))
	drift := 0
	for _, o := range outcomes {
		if o.JobID == "" {
			continue
		}
		id, ok := first[o.Submission.RequestID]
		if !ok {
			first[o.Submission.RequestID] = o.JobID
			continue
		}
		if id != o.JobID {
			drift++
		}
	}
	return drift
}

// summarize computes score and latency statistics over finished jobs.
func summarize(results []Result, st *Stats) {
	var scores, latencies stats.Float64Data
	for _, r := range results {
		if r.Status != statusDone {
			continue
		}
		scores = append(scores, r.CurrentScore)
		latencies = append(latencies, float64(r.Latency))
	}
	if len(scores) == 0 {
		return
	}

	if mean, err := scores.Mean(); err == nil {
		st.MeanScore = mean
	}
	if median, err := latencies.Median(); err == nil {
		st.MedianLatency = time.Duration(median)
	}
	if p95, err := latencies.Percentile(latencyPercentile); err == nil {
		st.P95Latency = time.Duration(p95)
	}
}
