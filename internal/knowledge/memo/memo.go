// Package memo caches engine results per snapshot version.
//
// A result is served only for the version and instant it was computed from.
// Each slot keeps the result of its most recent instant only, so a wall clock
// advancing between calls replaces entries instead of piling them up.
// Concurrent callers asking for the same key share one computation.
package memo

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/metrics"
)

// Key identifies one memoized result. Instant is the evaluation time in
// Unix nanoseconds for time-dependent results, zero otherwise.
type Key struct {
	Version   uint64
	Operation string
	Params    string
	Instant   int64
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s/%s@%d", k.Version, k.Operation, k.Params, k.Instant)
}

// slot is a Key without its instant.
type slot struct {
	version   uint64
	operation string
	params    string
}

func (k Key) slot() slot {
	return slot{version: k.Version, operation: k.Operation, params: k.Params}
}

type entry struct {
	instant int64
	value   any
}

// Cache holds results for the newest snapshot version it has seen.
type Cache struct {
	mu      sync.RWMutex
	version uint64
	entries map[slot]entry
	group   singleflight.Group
	metrics *metrics.Metrics
}

// Option configures a Cache.
type Option func(*Cache)

// WithMetrics records hits and misses.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{entries: make(map[slot]entry)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invalidate drops every entry computed before version. Later lookups for
// older versions are computed but never stored.
func (c *Cache) Invalidate(version uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance(version)
}

// Clear drops every entry regardless of version.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Len is the number of stored entries, at most one per slot.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// advance must be called with mu held.
func (c *Cache) advance(version uint64) {
	if version <= c.version {
		return
	}
	c.version = version
	for k := range c.entries {
		if k.version < version {
			delete(c.entries, k)
		}
	}
}

func (c *Cache) lookup(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key.slot()]
	if !ok || e.instant != key.Instant {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key Key, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance(key.Version)
	if key.Version < c.version {
		return
	}
	c.entries[key.slot()] = entry{instant: key.Instant, value: v}
}

// Do returns the memoized value for key, computing it with fn on a miss.
// Errors are returned to every waiting caller and never stored.
func Do[T any](c *Cache, key Key, fn func() (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		c.metrics.IncrementMemo(key.Operation, "hit")
		return v.(T), nil
	}

	v, err, shared := c.group.Do(key.String(), func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		res, err := fn()
		if err != nil {
			return nil, err
		}
		c.store(key, res)
		return res, nil
	})
	if shared {
		c.metrics.IncrementMemo(key.Operation, "shared")
	} else {
		c.metrics.IncrementMemo(key.Operation, "miss")
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
