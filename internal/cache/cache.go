// Package cache holds the most recently fetched row-set for a bounded
// window. There is exactly one snapshot at a time; refresh replaces it
// wholesale, and every read hands out an independent copy.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fanpulse/backend/internal/models"
	"github.com/fanpulse/backend/internal/source"
)

// DefaultTTL is the snapshot expiry window.
const DefaultTTL = 60 * time.Second

// FetchFunc loads a fresh row-set, typically a source.Chain's Fetch.
type FetchFunc func(ctx context.Context) (source.Result, error)

// Snapshot is one cached row-set plus its fetch metadata. Records is always
// a caller-owned copy.
type Snapshot struct {
	Records   []models.FeedbackRecord
	FetchedAt time.Time
	Origin    string
	Degraded  bool
}

// SnapshotCache is the process-wide record cache. It is safe for
// concurrent use; construct isolated instances in tests.
type SnapshotCache struct {
	mu     sync.Mutex
	snap   *Snapshot
	ttl    time.Duration
	fetch  FetchFunc
	logger *zap.Logger
	now    func() time.Time
}

// New creates a cache over fetch. ttl <= 0 uses DefaultTTL.
func New(fetch FetchFunc, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotCache{
		ttl:    ttl,
		fetch:  fetch,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the current snapshot, refreshing it first when forced or
// expired. The fetch runs outside the lock, so concurrent callers that
// both observe expiry may duplicate work; the whole-snapshot swap makes
// that benign.
func (c *SnapshotCache) Get(ctx context.Context, forceRefresh bool) (Snapshot, error) {
	c.mu.Lock()
	if !forceRefresh && c.snap != nil && c.now().Sub(c.snap.FetchedAt) < c.ttl {
		snap := c.copyLocked()
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	result, err := c.fetch(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	fresh := &Snapshot{
		Records:   result.Records,
		FetchedAt: c.now(),
		Origin:    result.Origin,
		Degraded:  result.Degraded,
	}
	if fresh.Degraded {
		c.logger.Warn("serving degraded snapshot", zap.String("origin", fresh.Origin))
	}

	c.mu.Lock()
	c.snap = fresh
	snap := c.copyLocked()
	c.mu.Unlock()
	return snap, nil
}

// Replace swaps the cached records after an edit, keeping the snapshot's
// origin metadata and resetting its age.
func (c *SnapshotCache) Replace(records []models.FeedbackRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fresh := &Snapshot{
		Records:   models.CopyRecords(records),
		FetchedAt: c.now(),
	}
	if c.snap != nil {
		fresh.Origin = c.snap.Origin
		fresh.Degraded = c.snap.Degraded
	}
	c.snap = fresh
}

// Invalidate drops the snapshot so the next Get refetches.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
}

// Current returns the snapshot's metadata without records and without
// triggering a fetch. ok is false when nothing has been cached yet.
func (c *SnapshotCache) Current() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil {
		return Snapshot{}, false
	}
	return Snapshot{
		FetchedAt: c.snap.FetchedAt,
		Origin:    c.snap.Origin,
		Degraded:  c.snap.Degraded,
	}, true
}

func (c *SnapshotCache) copyLocked() Snapshot {
	return Snapshot{
		Records:   models.CopyRecords(c.snap.Records),
		FetchedAt: c.snap.FetchedAt,
		Origin:    c.snap.Origin,
		Degraded:  c.snap.Degraded,
	}
}
