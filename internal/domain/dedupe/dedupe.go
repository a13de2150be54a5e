// Package dedupe tracks idempotency keys for submitted analysis jobs.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

const defaultMaxSize = 50_000

// Deduper maps client request ids to the job they created so that a retried
// submission returns the original job instead of computing twice.
type Deduper interface {
	// Claim atomically binds key to jobID if key is new. When key was already
	// claimed it returns the existing job id and true.
	Claim(ctx context.Context, key, jobID string) (existing string, seen bool)

	// Release forgets key so the submission can be retried. Used when a
	// claimed job could not be queued.
	Release(ctx context.Context, key string)

	Size() int64
}

type entry struct {
	key   string
	jobID string
}

// inMemoryDeduper is a bounded FIFO cache: when full, the oldest claim is
// evicted. A non-positive max size disables eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	keys    map[string]*list.Element
	order   *list.List
	maxSize int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		keys:    make(map[string]*list.Element),
		order:   list.New(),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) Claim(_ context.Context, key, jobID string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.keys[key]; ok {
		return el.Value.(*entry).jobID, true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		d.evictOldest()
	}
	d.keys[key] = d.order.PushBack(&entry{key: key, jobID: jobID})
	return jobID, false
}

func (d *inMemoryDeduper) Release(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.keys[key]; ok {
		d.order.Remove(el)
		delete(d.keys, key)
	}
}

// evictOldest drops the first claim. Caller holds d.mu.
func (d *inMemoryDeduper) evictOldest() {
	front := d.order.Front()
	if front == nil {
		return
	}
	d.order.Remove(front)
	delete(d.keys, front.Value.(*entry).key)
}

// Size returns the current number of claimed keys.
func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(d.order.Len())
}
