// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and env vars on top.
// - Keys are flat snake_case so every scalar can be set from the environment.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/okian/huntcast/internal/domain/conditions"
)

// Store drivers.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory analysis job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the idempotency key cache for job submissions.
	DedupeSize int `koanf:"dedupe_size"`

	// StoreDriver selects the job store: memory or sqlite.
	StoreDriver string `koanf:"store_driver"`

	// StorePath is the sqlite database file.
	StorePath string `koanf:"store_path"`

	// StoreCapacity bounds the memory store; the oldest jobs are evicted first.
	StoreCapacity int `koanf:"store_capacity"`

	// ForecastPeriods caps how many forecast observations are scored.
	ForecastPeriods int `koanf:"forecast_periods"`

	// PressureWindow caps how many forecast pressures feed the trend.
	PressureWindow int `koanf:"pressure_window"`

	// OptimalWindowThreshold is the minimum period score reported as a window.
	OptimalWindowThreshold float64 `koanf:"optimal_window_threshold"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// ConditionRanges overrides the default range of any ranged weather field.
	ConditionRanges map[string]conditions.Range `koanf:"condition_ranges"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9080",
		QueueSize:              10_000,
		WorkerCount:            runtime.NumCPU() * 2,
		DedupeSize:             50_000,
		StoreDriver:            StoreMemory,
		StorePath:              "huntcast.db",
		StoreCapacity:          10_000,
		ForecastPeriods:        24,
		PressureWindow:         12,
		OptimalWindowThreshold: 0.7,
		ShutdownTimeout:        10 * time.Second,
	}
}

// ConditionTable merges ConditionRanges over the default range table.
func (c *Config) ConditionTable() (conditions.Table, error) {
	overrides := make(map[conditions.Field]conditions.Range, len(c.ConditionRanges))
	for name, r := range c.ConditionRanges {
		overrides[conditions.Field(strings.ToLower(name))] = r
	}
	table, err := conditions.DefaultTable().Merge(overrides)
	if err != nil {
		return nil, fmt.Errorf("%w: condition_ranges: %w", ErrInvalidConfig, err)
	}
	return table, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.DedupeSize < 1:
		return fmt.Errorf("%w: dedupe_size must be positive", ErrInvalidConfig)
	case c.ForecastPeriods < 1:
		return fmt.Errorf("%w: forecast_periods must be positive", ErrInvalidConfig)
	case c.PressureWindow < 1:
		return fmt.Errorf("%w: pressure_window must be positive", ErrInvalidConfig)
	case c.OptimalWindowThreshold < 0 || c.OptimalWindowThreshold > 1:
		return fmt.Errorf("%w: optimal_window_threshold must be within [0,1]", ErrInvalidConfig)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q is not text or json", ErrInvalidConfig, c.LogFormat)
	}

	switch c.StoreDriver {
	case StoreMemory:
		if c.StoreCapacity < 1 {
			return fmt.Errorf("%w: store_capacity must be positive", ErrInvalidConfig)
		}
	case StoreSQLite:
		if strings.TrimSpace(c.StorePath) == "" {
			return fmt.Errorf("%w: store_path is required for sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store_driver %q", ErrInvalidConfig, c.StoreDriver)
	}

	_, err := c.ConditionTable()
	return err
}
