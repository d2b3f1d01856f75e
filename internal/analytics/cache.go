package analytics

import (
	"sync"
	"time"
)

// Cache is the single-slot result cache in front of the aggregator. A slot
// holds one bundle together with the time it was computed; validity is a
// pure function of now. The mutex makes the slot safe for the concurrent
// requests the HTTP server may deliver.
type Cache struct {
	mu         sync.Mutex
	ttl        time.Duration
	bundle     *Bundle
	computedAt time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

// Get returns the cached bundle when the slot is still valid at now.
func (c *Cache) Get(now time.Time) (*Bundle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bundle == nil || !c.valid(now) {
		return nil, false
	}
	return c.bundle, true
}

// Put replaces the slot with a bundle computed at now.
func (c *Cache) Put(b *Bundle, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bundle = b
	c.computedAt = now
}

// Invalidate empties the slot; the next Get misses regardless of age.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bundle = nil
	c.computedAt = time.Time{}
}

// ComputedAt reports when the cached bundle was stored (zero when empty).
func (c *Cache) ComputedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.computedAt
}

func (c *Cache) valid(now time.Time) bool {
	return now.Sub(c.computedAt) < c.ttl
}
