package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/okian/huntcast/internal/domain/job"
	"github.com/okian/huntcast/pkg/metrics"
)

const defaultSQLitePath = "huntcast.db"

// SQLiteStore persists jobs in a single table, one JSON payload per job.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = defaultSQLitePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		submitted_at INTEGER NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create jobs table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save upserts j.
func (s *SQLiteStore) Save(ctx context.Context, j job.Job) error { //nolint:gocritic // hugeParam
	if j.ID == "" {
		return ErrEmptyID
	}
	payload, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("encode job %s: %w", j.ID, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs(id,status,submitted_at,payload) VALUES(?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET status=excluded.status, payload=excluded.payload`,
		j.ID, string(j.Status), j.SubmittedAt.UnixNano(), payload,
	); err != nil {
		return fmt.Errorf("upsert job %s: %w", j.ID, err)
	}
	metrics.UpdateStoreJobs(s.Count(ctx))
	return nil
}

// Get loads the job with the given id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (job.Job, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM jobs WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return job.Job{}, ErrNotFound
	}
	if err != nil {
		return job.Job{}, fmt.Errorf("select job %s: %w", id, err)
	}

	var j job.Job
	if err := json.Unmarshal(payload, &j); err != nil {
		return job.Job{}, fmt.Errorf("decode job %s: %w", id, err)
	}
	return j, nil
}

// Count returns the number of stored jobs, or 0 if the query fails.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
