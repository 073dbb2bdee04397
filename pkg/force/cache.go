package force

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Static errors for cache backends.
var (
	ErrCacheKeyNotFound = errors.New("key not found in cache")
	ErrCacheDisabled    = errors.New("cache disabled")
)

// CacheEntry is one cached value with its expiry.
type CacheEntry struct {
	Data      []byte
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its expiry. Entries with a zero
// expiry never expire (the backend owns the TTL, as with NATS KV buckets).
func (e *CacheEntry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// Cache is the pluggable backend for describe/list result caching. All
// failures are advisory: callers log and proceed without the cache.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// MemoryCache is a size-bounded in-process cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get implements Cache.Get.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheKeyNotFound
	}

	if entry.Expired() {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()

		return nil, ErrCacheKeyNotFound
	}

	return entry, nil
}

// Set implements Cache.Set. When the cache is full, expired entries are
// swept first; if still full, an arbitrary entry is evicted.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.sweepLocked()

		if len(c.entries) >= c.maxSize {
			for k := range c.entries {
				delete(c.entries, k)

				break
			}
		}
	}

	c.entries[key] = entry

	return nil
}

// Delete implements Cache.Delete.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	return nil
}

// Clear implements Cache.Clear.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]*CacheEntry)
	c.mu.Unlock()

	return nil
}

// Close implements Cache.Close.
func (c *MemoryCache) Close() error {
	return nil
}

func (c *MemoryCache) sweepLocked() {
	for k, e := range c.entries {
		if e.Expired() {
			delete(c.entries, k)
		}
	}
}

// NoOpCache is a cache that does nothing (no caching).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always misses.
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set discards the entry.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Close does nothing.
func (c *NoOpCache) Close() error {
	return nil
}
