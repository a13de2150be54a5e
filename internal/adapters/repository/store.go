// Package repository stores analysis jobs and their reports.
package repository

import (
	"context"
	"fmt"

	"github.com/okian/huntcast/internal/domain/job"
)

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Store provides read/write access to job state.
type Store interface {
	// Save inserts j or replaces the job with the same id.
	Save(ctx context.Context, j job.Job) error

	// Get returns the job with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (job.Job, error)

	// Count returns the number of stored jobs.
	Count(ctx context.Context) int

	Close() error
}

// Open builds the store for driver. path is used by sqlite only and
// capacity by memory only.
func Open(driver, path string, capacity int) (Store, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemoryStore(WithCapacity(capacity)), nil
	case DriverSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
