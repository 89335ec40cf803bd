package resource

import (
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// ListCache holds serialized public list responses per resource kind.
// A nil *ListCache is a valid disabled cache.
type ListCache struct {
	cache      *freecache.Cache
	ttlSeconds int
}

func NewListCache(sizeMB, ttlSeconds int) *ListCache {
	if sizeMB <= 0 || ttlSeconds <= 0 {
		return nil
	}
	return &ListCache{
		cache:      freecache.NewCache(sizeMB * 1024 * 1024),
		ttlSeconds: ttlSeconds,
	}
}

func cacheKey(kind string) []byte {
	return []byte("list||" + kind)
}

func (c *ListCache) Get(kind string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	body, err := c.cache.Get(cacheKey(kind))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("list cache get %s: %s", kind, err)
		}
		return nil, false
	}
	return body, true
}

func (c *ListCache) Set(kind string, body []byte) {
	if c == nil {
		return
	}
	if err := c.cache.Set(cacheKey(kind), body, c.ttlSeconds); err != nil {
		log.Errorf("list cache set %s: %s", kind, err)
		return
	}
	log.Tracef("list cache set for %s", kind)
}

func (c *ListCache) Invalidate(kind string) {
	if c == nil {
		return
	}
	c.cache.Del(cacheKey(kind))
}
