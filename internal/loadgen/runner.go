package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/huntcast/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run executes a complete load run and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	applyDefaults(config)
	st := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting huntcast load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("jobs", config.NumJobs),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Int("forecastLen", config.ForecastLen),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return st, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate submissions
	subs, err := generateSubmissions(ctx, config, st)
	if err != nil {
		return st, fmt.Errorf("submission generation failed: %w", err)
	}

	// Step 3: Submit jobs concurrently
	outcomes := submitJobs(ctx, config, subs, st)

	// Step 4: Poll jobs until they finish
	results := pollJobs(ctx, config, uniqueJobIDs(outcomes), st)

	// Step 5: Verify results
	verifyErr := verifyResults(ctx, outcomes, results, st)

	// Step 6: Save submissions to file
	if config.OutputFile != "" {
		if err := saveSubmissions(ctx, config.OutputFile, subs); err != nil {
			logger.Get().Warn(ctx, "failed to save submissions to file", logger.Error(err))
		}
	}

	st.EndTime = time.Now()
	st.Duration = st.EndTime.Sub(st.StartTime)
	displayFinalStats(ctx, st)

	if verifyErr != nil {
		return st, fmt.Errorf("result verification failed: %w", verifyErr)
	}
	logger.Get().Info(ctx, "load run completed successfully")
	return st, nil
}

// applyDefaults fills unset tuning values.
func applyDefaults(config *Config) {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.PollDeadline <= 0 {
		config.PollDeadline = DefaultPollDeadline
	}
	if config.DuplicateRate < 0 {
		config.DuplicateRate = 0
	}
	if config.DuplicateRate > 1 {
		config.DuplicateRate = 1
	}
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveSubmissions writes the generated submissions to filename as a JSON array.
func saveSubmissions(ctx context.Context, filename string, subs []Submission) error {
	if len(subs) == 0 {
		return fmt.Errorf("no submissions to save")
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal submissions: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "submissions saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, st *Stats) {
	var acceptRate, jobsPerSecond float64

	if st.JobsSubmitted > 0 {
		acceptRate = float64(st.JobsAccepted+st.JobsDuplicate) / float64(st.JobsSubmitted) * PercentageMultiplier
	}
	if st.Duration > 0 {
		jobsPerSecond = float64(st.JobsSubmitted) / st.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("jobsGenerated", st.JobsGenerated),
		logger.Int("jobsSubmitted", st.JobsSubmitted),
		logger.Int("jobsAccepted", st.JobsAccepted),
		logger.Int("jobsDuplicate", st.JobsDuplicate),
		logger.Int("jobsRejected", st.JobsRejected),
		logger.Int("jobsErrored", st.JobsErrored),
		logger.Int("jobsCompleted", st.JobsCompleted),
		logger.Int("jobsFailed", st.JobsFailed),
		logger.Int("jobsTimedOut", st.JobsTimedOut),
		logger.Int("duplicateDrift", st.DuplicateDrift),
		logger.Float64("meanScore", st.MeanScore),
		logger.Duration("medianLatency", st.MedianLatency),
		logger.Duration("p95Latency", st.P95Latency),
		logger.Duration("duration", st.Duration),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("jobsPerSecond", jobsPerSecond))
}
