// Package cache provides time-bounded in-memory caching of remote
// documentation payloads.
package cache

import (
	"sync"
	"time"

	"github.com/aliikhatami94/infradocs"
)

// Default time-to-live values.
const (
	DefaultDocumentTTL = 5 * time.Minute
	DefaultListingTTL  = time.Hour
)

// Ensure Cache implements infradocs.Cache at compile time.
var _ infradocs.Cache[string] = (*Cache[string])(nil)

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Cache is a TTL cache keyed by source identity, path and branch.
// An entry is valid while now-fetchedAt < ttl. Expired entries are
// replaced on the next Put, never deleted.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[infradocs.CacheKey]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*config)

type config struct {
	now func() time.Time
}

// WithClock sets the time source used for expiry.
// Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// New creates an empty cache whose entries live for ttl.
func New[V any](ttl time.Duration, opts ...Option) *Cache[V] {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache[V]{
		entries: make(map[infradocs.CacheKey]entry[V]),
		ttl:     ttl,
		now:     cfg.now,
	}
}

// Get returns the value for key if present and not expired.
func (c *Cache[V]) Get(key infradocs.CacheKey) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, replacing any previous entry.
func (c *Cache[V]) Put(key infradocs.CacheKey, value V) {
	e := entry[V]{value: value, fetchedAt: c.now()}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL returns the cache's time-to-live.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}
