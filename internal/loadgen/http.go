package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/huntcast/internal/domain/job"
	"github.com/okian/huntcast/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitJobs submits submissions concurrently using a worker pool. Outcomes
// keep the submission order.
func submitJobs(ctx context.Context, config *Config, subs []Submission, stats *Stats) []Outcome {
	log := logger.Get()
	log.Info(ctx, "submitting jobs", logger.Int("jobs", len(subs)), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/jobs"
	outcomes := make([]Outcome, len(subs))

	var (
		submitted int64
		accepted  int64
		duplicate int64
		rejected  int64
		errored   int64
	)

	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexChan {
				if ctx.Err() != nil {
					return
				}
				o := submitSingleJob(ctx, client, url, subs[index])
				outcomes[index] = o

				atomic.AddInt64(&submitted, 1)
				switch {
				case o.Err != nil:
					atomic.AddInt64(&errored, 1)
					if config.Verbose {
						log.Warn(ctx, "job submission failed", logger.String("requestID", o.Submission.RequestID), logger.Error(o.Err))
					}
				case o.StatusCode == http.StatusTooManyRequests:
					atomic.AddInt64(&rejected, 1)
				case o.Duplicate:
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&accepted, 1)
				}
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range subs {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.JobsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.JobsAccepted = int(atomic.LoadInt64(&accepted))
	stats.JobsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.JobsRejected = int(atomic.LoadInt64(&rejected))
	stats.JobsErrored = int(atomic.LoadInt64(&errored))

	log.Info(ctx, "job submission completed",
		logger.Int("accepted", stats.JobsAccepted),
		logger.Int("duplicate", stats.JobsDuplicate),
		logger.Int("rejected", stats.JobsRejected),
		logger.Int("errored", stats.JobsErrored))
	return outcomes
}

// submitSingleJob submits one job and classifies the response.
func submitSingleJob(ctx context.Context, client *HTTPClient, url string, sub Submission) Outcome {
	o := Outcome{Submission: sub}

	resp, err := client.Post(ctx, url, sub)
	if err != nil {
		o.Err = fmt.Errorf("request failed: %w", err)
		return o
	}
	o.StatusCode = resp.StatusCode

	body, err := readResponseBody(resp)
	if err != nil {
		o.Err = fmt.Errorf("failed to read response: %w", err)
		return o
	}

	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusOK:
		var receipt job.Receipt
		if err := json.Unmarshal(body, &receipt); err != nil {
			o.Err = fmt.Errorf("failed to parse receipt: %w", err)
			return o
		}
		o.JobID = receipt.JobID
		o.Duplicate = receipt.Duplicate
	case http.StatusTooManyRequests:
	default:
		o.Err = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
	return o
}
