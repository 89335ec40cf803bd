package rating

import (
	"sync"
	"time"
)

const DefaultCacheTTL = 60 * time.Minute

// Cache holds the last good rating. An entry older than ttl is stale but
// still served when the upstream is unavailable.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	rating   Rating
	storedAt time.Time
	has      bool
}

func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl: ttl,
		now: now,
	}
}

// Get returns the cached rating, whether it is still fresh, and whether there is one at all.
func (c *Cache) Get() (Rating, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.has {
		return Rating{}, false, false
	}
	fresh := c.now().Sub(c.storedAt) < c.ttl
	return c.rating, fresh, true
}

func (c *Cache) Set(r Rating) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rating = r
	c.storedAt = c.now()
	c.has = true
}
