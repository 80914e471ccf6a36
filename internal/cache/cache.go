// SPDX-License-Identifier: MIT

// Package cache stores engine analysis results keyed by position.
// Values are opaque byte slices so the same payload works for every backend.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Cache provides thread-safe caching with expiration support.
type Cache interface {
	// Get retrieves a value from the cache. Returns false if not found or expired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores a value in the cache with the specified TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string)
	// Stats returns cache statistics.
	Stats() CacheStats
	// Backend names the implementation for metrics and logs.
	Backend() string
	// Close releases background resources.
	Close() error
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	Hits        int64 // Number of successful Get operations
	Misses      int64 // Number of failed Get operations (not found or expired)
	Sets        int64 // Number of Set operations
	Evictions   int64 // Number of entries removed by expiry or capacity
	CurrentSize int   // Current number of cached entries
}

// Config selects and parameterises a backend.
type Config struct {
	Backend         string // memory (default), redis, none
	MaxEntries      int    // memory only; 0 means unbounded
	CleanupInterval time.Duration
	Redis           RedisConfig
}

// New builds the configured cache backend.
func New(cfg Config, logger zerolog.Logger) (Cache, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryCache(cfg.CleanupInterval, cfg.MaxEntries), nil
	case "redis":
		rc, err := NewRedisCache(cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case "none":
		return NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, redis, none)", cfg.Backend)
	}
}

// entry represents a cached value with expiration time.
type entry struct {
	value      []byte
	expiration time.Time
}

// isExpired checks if the entry has expired.
func (e *entry) isExpired(now time.Time) bool {
	return !e.expiration.IsZero() && now.After(e.expiration)
}

// memoryCache is an in-memory implementation of Cache.
type memoryCache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	maxEntries int
	stats      CacheStats
	janitor    *janitor
	closeOnce  sync.Once
}

// NewMemoryCache creates a new in-memory cache with automatic cleanup.
// The cleanupInterval determines how often expired entries are removed.
// When maxEntries is reached, Set drops an arbitrary entry to make room.
func NewMemoryCache(cleanupInterval time.Duration, maxEntries int) Cache {
	c := &memoryCache{
		entries:    make(map[string]*entry),
		maxEntries: maxEntries,
	}

	if cleanupInterval > 0 {
		c.janitor = &janitor{
			interval: cleanupInterval,
			stop:     make(chan struct{}),
		}
		go c.janitor.run(c)
	}

	return c
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.entries[key]
	if !found || e.isExpired(time.Now()) {
		c.stats.Misses++
		return nil, false
	}

	c.stats.Hits++
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		for k := range c.entries {
			delete(c.entries, k)
			c.stats.Evictions++
			break
		}
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	e := &entry{value: stored}
	if ttl > 0 {
		e.expiration = time.Now().Add(ttl)
	}
	c.entries[key] = e
	c.stats.Sets++
}

func (c *memoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *memoryCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.CurrentSize = len(c.entries)
	return stats
}

func (c *memoryCache) Backend() string { return "memory" }

// deleteExpired removes all expired entries from the cache.
// Returns the number of entries deleted.
func (c *memoryCache) deleteExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	count := 0
	for key, e := range c.entries {
		if e.isExpired(now) {
			delete(c.entries, key)
			count++
		}
	}

	c.stats.Evictions += int64(count)
	return count
}

// Close stops the background cleanup goroutine.
func (c *memoryCache) Close() error {
	c.closeOnce.Do(func() {
		if c.janitor != nil {
			close(c.janitor.stop)
		}
	})
	return nil
}

// janitor performs periodic cleanup of expired entries.
type janitor struct {
	interval time.Duration
	stop     chan struct{}
}

func (j *janitor) run(c *memoryCache) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-j.stop:
			return
		}
	}
}

// noOpCache disables caching.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache anything.
func NewNoOpCache() Cache {
	return noOpCache{}
}

func (noOpCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noOpCache) Set(context.Context, string, []byte, time.Duration) {}
func (noOpCache) Delete(context.Context, string) {}
func (noOpCache) Stats() CacheStats { return CacheStats{} }
func (noOpCache) Backend() string { return "none" }
func (noOpCache) Close() error { return nil }
