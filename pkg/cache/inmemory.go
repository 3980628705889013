package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultExpiration tells Set to use the TTL the cache was created with.
const DefaultExpiration = cache.DefaultExpiration

type Cache interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
	Flush()
}

type goCache struct {
	internal *cache.Cache
}

// NewCache returns a Cache whose entries are fresh for ttl after each Set.
// A cleanupInterval <= 0 disables the janitor: stale entries are then only
// ignored by Get and replaced by the next Set for the same key.
func NewCache(ttl, cleanupInterval time.Duration) Cache {
	return &goCache{
		internal: cache.New(ttl, cleanupInterval),
	}
}

func (c *goCache) Set(key string, value interface{}, duration time.Duration) {
	c.internal.Set(key, value, duration)
}

func (c *goCache) Get(key string) (interface{}, bool) {
	return c.internal.Get(key)
}

func (c *goCache) Delete(key string) {
	c.internal.Delete(key)
}

func (c *goCache) Flush() {
	c.internal.Flush()
}

// GetFromCache reads key from c as a T. A missing, stale or differently typed
// entry is reported as absent.
func GetFromCache[T any](c Cache, key string) (T, bool) {
	val, found := c.Get(key)
	if !found {
		var zero T
		return zero, false
	}
	typedVal, ok := val.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return typedVal, true
}
