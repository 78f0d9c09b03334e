package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache implements Cache interface using in-memory storage
type MemoryCache struct {
	mu         sync.RWMutex
	items      map[string]*cacheItem
	maxSize    int
	defaultTTL time.Duration
	counters
}

// cacheItem represents a cached item
type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(maxSize int, defaultTTL time.Duration) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 10000
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}

	return &MemoryCache{
		items:      make(map[string]*cacheItem),
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		c.miss()
		return nil, ErrMiss
	}

	if time.Now().After(item.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		c.miss()
		return nil, ErrMiss
	}

	c.hit()
	return item.value, nil
}

// Set stores a value in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		c.evictOldest()
	}

	c.items[key] = &cacheItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// evictOldest removes the entry closest to expiry
func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, item := range c.items {
		if oldestKey == "" || item.expiresAt.Before(oldest) {
			oldestKey = key
			oldest = item.expiresAt
		}
	}
	delete(c.items, oldestKey)
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Clear removes all keys
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheItem)
	return nil
}

// Close drops all entries
func (c *MemoryCache) Close() error {
	return c.Clear(context.Background())
}

// Ping always succeeds for memory cache
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

// Stats returns cache statistics
func (c *MemoryCache) Stats(ctx context.Context) (*Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats("memory")
	stats.Keys = int64(len(c.items))
	for _, item := range c.items {
		stats.Bytes += int64(len(item.value))
	}
	return stats, nil
}
