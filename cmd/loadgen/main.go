package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/huntcast/internal/loadgen"
)

// Default configuration constants.
const (
	defaultNumJobs       = 1000
	defaultDuplicateRate = 0.1
	defaultForecastLen   = 8
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numJobs    = flag.Int("jobs", defaultNumJobs, "Number of job submissions to generate")
		duplicates = flag.Float64("duplicates", defaultDuplicateRate, "Share of submissions that replay an earlier request id")
		forecast   = flag.Int("forecast", defaultForecastLen, "Forecast periods per job")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		poll       = flag.Duration("poll", loadgen.DefaultPollInterval, "Delay between job status polls")
		outputFile = flag.String("output", "", "Write generated submissions to this JSON file")
		logFile    = flag.String("log", "", "Also write logs to this file")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadgen.ShowHelp()
		return
	}

	closer, err := loadgen.SetupLogging(*logFile)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &loadgen.Config{
		BaseURL:       *baseURL,
		NumJobs:       *numJobs,
		DuplicateRate: *duplicates,
		ForecastLen:   *forecast,
		Workers:       *workers,
		Timeout:       *timeout,
		PollInterval:  *poll,
		OutputFile:    *outputFile,
		Verbose:       *verbose,
	}

	if _, err := loadgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Load run failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
