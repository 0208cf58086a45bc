package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedIndex is a built index together with its build time.
type cachedIndex struct {
	index *CodeIndex
	built time.Time
	ttl   time.Duration
}

// isExpired returns true if this entry has outlived its TTL.
func (c *cachedIndex) isExpired(now time.Time) bool {
	if c.ttl == 0 {
		return true // No caching
	}
	return now.Sub(c.built) > c.ttl
}

// IndexCache holds built code indices keyed by snapshot revision. Indices
// are immutable, so one cached index can serve concurrent runs.
type IndexCache struct {
	mu      sync.RWMutex
	entries map[string]*cachedIndex
	sf      singleflight.Group
	ttl     time.Duration
	now     func() time.Time
}

// NewIndexCache creates a cache. A zero ttl disables caching; every call builds.
func NewIndexCache(ttl time.Duration) *IndexCache {
	return &IndexCache{
		entries: make(map[string]*cachedIndex),
		ttl:     ttl,
		now:     time.Now,
	}
}

// CacheKey identifies one revision of a named snapshot.
func CacheKey(name, version string) string {
	return name + "|" + version
}

// GetOrBuild returns the cached index for key, or calls build when it is
// missing or expired. Concurrent callers for the same key share one build.
func (c *IndexCache) GetOrBuild(ctx context.Context, key string, build func(ctx context.Context) (*CodeIndex, error)) (*CodeIndex, error) {
	// Fast path: check if cache exists and is fresh
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !entry.isExpired(c.now()) {
		return entry.index, nil
	}

	// Slow path: build using singleflight to prevent stampedes
	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()

		if exists && !entry.isExpired(c.now()) {
			return entry.index, nil
		}

		index, err := build(ctx)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = &cachedIndex{index: index, built: c.now(), ttl: c.ttl}
			c.mu.Unlock()
		}

		return index, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*CodeIndex), nil
}

// Invalidate removes the entry for key.
func (c *IndexCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of cached entries, expired or not.
func (c *IndexCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
