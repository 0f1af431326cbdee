package mock

import (
	"sync"

	"github.com/aliikhatami94/infradocs"
)

var _ infradocs.Cache[string] = (*Cache[string])(nil)

// Cache is a map-backed infradocs.Cache that never expires.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[infradocs.CacheKey]V
}

func (c *Cache[V]) Get(key infradocs.CacheKey) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache[V]) Put(key infradocs.CacheKey, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[infradocs.CacheKey]V)
	}
	c.entries[key] = value
}
