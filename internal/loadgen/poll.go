package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/okian/huntcast/internal/domain/job"
	"github.com/okian/huntcast/pkg/logger"
)

// uniqueJobIDs returns the distinct job ids from outcomes in first-seen order.
func uniqueJobIDs(outcomes []Outcome) []string {
	seen := make(map[string]struct{}, len(outcomes))
	ids := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if o.JobID == "" {
			continue
		}
		if _, ok := seen[o.JobID]; ok {
			continue
		}
		seen[o.JobID] = struct{}{}
		ids = append(ids, o.JobID)
	}
	return ids
}

// pollJobs polls every job until it leaves the pending state or the poll
// deadline passes.
func pollJobs(ctx context.Context, config *Config, ids []string, stats *Stats) []Result {
	log := logger.Get()
	log.Info(ctx, "polling jobs", logger.Int("jobs", len(ids)), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	results := make([]Result, len(ids))

	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexChan {
				results[index] = pollSingleJob(ctx, client, config, ids[index])
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range ids {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	for _, r := range results {
		switch r.Status {
		case statusDone:
			stats.JobsCompleted++
		case statusFailed:
			stats.JobsFailed++
		default:
			stats.JobsTimedOut++
		}
	}

	log.Info(ctx, "job polling completed",
		logger.Int("completed", stats.JobsCompleted),
		logger.Int("failed", stats.JobsFailed),
		logger.Int("timedOut", stats.JobsTimedOut))
	return results
}

// pollSingleJob waits for one job to finish.
func pollSingleJob(ctx context.Context, client *HTTPClient, config *Config, id string) Result {
	start := time.Now()
	deadline := start.Add(config.PollDeadline)
	url := config.BaseURL + "/jobs/" + id

	for {
		j, err := fetchJob(ctx, client, url)
		if err == nil && j.Finished() {
			r := Result{JobID: id, Status: string(j.Status), Latency: time.Since(start)}
			if j.Report != nil {
				r.CurrentScore = j.Report.Scores.CurrentScore
			}
			return r
		}
		if err != nil && config.Verbose {
			logger.Get().Warn(ctx, "job poll failed", logger.String("jobID", id), logger.Error(err))
		}
		if time.Now().After(deadline) {
			return Result{JobID: id, Status: statusTimeout, Latency: time.Since(start)}
		}

		select {
		case <-ctx.Done():
			return Result{JobID: id, Status: statusTimeout, Latency: time.Since(start)}
		case <-time.After(config.PollInterval):
		}
	}
}

// fetchJob reads one job.
func fetchJob(ctx context.Context, client *HTTPClient, url string) (job.Job, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return job.Job{}, fmt.Errorf("request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return job.Job{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return job.Job{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var j job.Job
	if err := json.Unmarshal(body, &j); err != nil {
		return job.Job{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return j, nil
}
