package loadgen

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/huntcast/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging initializes the global logger, teeing output to logFile when
// one is given.
func SetupLogging(logFile string) (io.Closer, error) {
	var out io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	if err := logger.Init(logger.WithWriter(out)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return closer, nil
}

// ShowHelp prints usage information for the load tool.
func ShowHelp() {
	os.Stdout.WriteString(`huntcast load tool
==================

Submits concurrent analysis jobs to a running huntcast service, polls them
until they finish and verifies idempotency and completion.

Usage:
  go run ./cmd/loadgen [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -jobs int
        Number of job submissions to generate (default 1000)
  -duplicates float
        Share of submissions that replay an earlier request id (default 0.1)
  -forecast int
        Forecast periods per job (default 8)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -poll duration
        Delay between job status polls (default 250ms)
  -output string
        Write generated submissions to this JSON file
  -log string
        Also write logs to this file
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Run with default settings
  go run ./cmd/loadgen

  # Heavier run against another address
  go run ./cmd/loadgen -jobs 20000 -workers 32 -url http://localhost:8080
`)
}
