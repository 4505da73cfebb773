// Package cache is a small process-local memoization layer for entity
// lookups: TTL expiry, a hard size cap, and negative caching so "found
// nothing" is remembered too. The backing store of record is postgres; a
// restart clearing this cache is intended.
package cache

import (
	"sort"
	"sync"
	"time"
)

// Defaults match what the console tolerates for slightly stale reads.
const (
	DefaultTTL     = 10 * time.Minute
	DefaultMaxSize = 100
)

type entry[V any] struct {
	value   V
	missing bool
	written time.Time
}

// Cache maps keys to values with timestamp-based expiry. Safe for
// concurrent use.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// New creates a cache. Non-positive ttl or maxSize fall back to defaults.
func New[K comparable, V any](ttl time.Duration, maxSize int) *Cache[K, V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Set stores a value.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, written: c.now()}
	c.capLocked()
}

// SetMissing records that a lookup found nothing, so callers skip re-querying
// the store for a known-absent key until the entry expires.
func (c *Cache[K, V]) SetMissing(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{missing: true, written: c.now()}
	c.capLocked()
}

// Get returns a cached value. A negative entry reads as a miss here; use
// Lookup when "known absent" matters.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, found, cached := c.Lookup(key)
	return v, cached && found
}

// Lookup distinguishes three states: cached=false means the store must be
// asked; cached=true, found=false means the store was asked recently and had
// nothing; cached=true, found=true carries the value.
func (c *Cache[K, V]) Lookup(key K) (value V, found, cached bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !c.validLocked(e) {
		var zero V
		return zero, false, false
	}
	if e.missing {
		var zero V
		return zero, false, true
	}
	return e.value, true, true
}

// Delete drops a key, typically after a write invalidates it.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports live (unexpired) entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if c.validLocked(e) {
			n++
		}
	}
	return n
}

// Sweep removes expired entries and, if the remainder still exceeds the size
// cap, keeps only the most recently written. Called periodically by the jobs
// runner; Set also enforces the cap inline.
func (c *Cache[K, V]) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if !c.validLocked(e) {
			delete(c.entries, k)
		}
	}
	c.capLocked()
}

func (c *Cache[K, V]) validLocked(e entry[V]) bool {
	return c.now().Sub(e.written) < c.ttl
}

func (c *Cache[K, V]) capLocked() {
	if len(c.entries) <= c.maxSize {
		return
	}
	type aged struct {
		key     K
		written time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, written: e.written})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].written.After(all[j].written) })
	for _, a := range all[c.maxSize:] {
		delete(c.entries, a.key)
	}
}
