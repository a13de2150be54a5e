package repository

import (
	"container/list"
	"context"
	"sync"

	"github.com/okian/huntcast/internal/domain/job"
	"github.com/okian/huntcast/pkg/metrics"
)

const defaultCapacity = 10_000

// MemoryStore keeps jobs in memory in insertion order.
type MemoryStore struct {
	mu       sync.RWMutex
	jobs     map[string]*list.Element
	order    *list.List
	capacity int
	closed   bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a bounded in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		jobs:     make(map[string]*list.Element),
		order:    list.New(),
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save inserts or replaces j. Replacing keeps the job's original position.
func (s *MemoryStore) Save(_ context.Context, j job.Job) error { //nolint:gocritic // hugeParam
	if j.ID == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if el, ok := s.jobs[j.ID]; ok {
		el.Value = j
		return nil
	}
	for s.order.Len() >= s.capacity {
		oldest := s.order.Front()
		s.order.Remove(oldest)
		delete(s.jobs, oldest.Value.(job.Job).ID)
	}
	s.jobs[j.ID] = s.order.PushBack(j)
	metrics.UpdateStoreJobs(s.order.Len())
	return nil
}

// Get returns the job with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return job.Job{}, ErrStoreClosed
	}
	el, ok := s.jobs[id]
	if !ok {
		return job.Job{}, ErrNotFound
	}
	return el.Value.(job.Job), nil
}

// Count returns the number of stored jobs.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.Len()
}

// Close drops every job. Further calls fail with ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.jobs = make(map[string]*list.Element)
	s.order.Init()
	return nil
}
