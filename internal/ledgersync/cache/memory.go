// Package cache stores verification results with time-based expiry. Every
// invalidation leaves a tombstone so results computed before it are refused.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

type memoryEntry struct {
	result    model.VerificationResult
	expiresAt time.Time
}

type tombstone struct {
	invalidatedAt time.Time
	expiresAt     time.Time
}

// Memory is a mutex-guarded in-process cache.
type Memory struct {
	maxTTL  time.Duration
	metrics Metrics
	now     func() time.Time

	mu         sync.Mutex
	entries    map[string]memoryEntry
	tombstones map[string]tombstone
}

// NewMemory creates a Memory cache. Entries never live longer than maxTTL and
// tombstones are kept for maxTTL.
func NewMemory(maxTTL time.Duration, metrics Metrics) *Memory {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Memory{
		maxTTL:     maxTTL,
		metrics:    metrics,
		now:        time.Now,
		entries:    make(map[string]memoryEntry),
		tombstones: make(map[string]tombstone),
	}
}

// Get returns the cached result for recordID if it has not expired.
func (c *Memory) Get(_ context.Context, recordID string) (model.VerificationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[recordID]
	if ok && !c.now().Before(e.expiresAt) {
		delete(c.entries, recordID)
		ok = false
	}
	c.metrics.ObserveLookup(ok, nil)
	return e.result, ok
}

// Put stores result for ttl. It reports false when the result was dropped
// because it was computed before the latest invalidation of recordID.
func (c *Memory) Put(_ context.Context, recordID string, result model.VerificationResult, ttl time.Duration) bool {
	ttl = clampTTL(ttl, c.maxTTL)
	if ttl <= 0 {
		c.metrics.ObservePut(false, nil)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if t, ok := c.tombstones[recordID]; ok && now.Before(t.expiresAt) && !result.ComputedAt.After(t.invalidatedAt) {
		c.metrics.ObservePut(false, nil)
		return false
	}
	c.entries[recordID] = memoryEntry{result: result, expiresAt: now.Add(ttl)}
	c.metrics.ObservePut(true, nil)
	return true
}

// Invalidate drops the cached result and records a tombstone.
func (c *Memory) Invalidate(_ context.Context, recordID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	delete(c.entries, recordID)
	c.tombstones[recordID] = tombstone{invalidatedAt: now, expiresAt: now.Add(c.maxTTL)}
	c.metrics.ObserveInvalidate()
}

// Sweep removes expired entries and tombstones and returns how many were removed.
func (c *Memory) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
			removed++
		}
	}
	for id, t := range c.tombstones {
		if !now.Before(t.expiresAt) {
			delete(c.tombstones, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (c *Memory) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

func clampTTL(ttl, maxTTL time.Duration) time.Duration {
	if maxTTL > 0 && ttl > maxTTL {
		return maxTTL
	}
	return ttl
}

type nopMetrics struct{}

func (nopMetrics) ObserveLookup(bool, error) {}
func (nopMetrics) ObservePut(bool, error)    {}
func (nopMetrics) ObserveInvalidate()        {}
