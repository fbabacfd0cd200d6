package briefing

import (
	"sync/atomic"
	"time"
)

type cacheEntry struct {
	briefing *Briefing
	storedAt time.Time
}

// Cache is the single-slot, time-boxed briefing memo. The slot is only
// ever replaced wholesale; concurrent refreshes may each run a full
// scan, and the last writer wins. Each scan is independently
// consistent, so that race costs a redundant scan, never a torn read.
type Cache struct {
	ttl  time.Duration
	now  func() time.Time
	slot atomic.Pointer[cacheEntry]
}

// NewCache creates a cache with the given TTL. now is injectable for
// tests; pass nil for the wall clock.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{ttl: ttl, now: now}
}

// Get returns the cached briefing, or nil when the slot is empty or
// older than the TTL.
func (c *Cache) Get() *Briefing {
	e := c.slot.Load()
	if e == nil {
		return nil
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		return nil
	}
	return e.briefing
}

// Put replaces the slot with a fresh briefing.
func (c *Cache) Put(b *Briefing) {
	c.slot.Store(&cacheEntry{briefing: b, storedAt: c.now()})
}
