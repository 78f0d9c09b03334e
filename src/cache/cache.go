// Package cache stores raw API responses keyed by request URL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired
var ErrMiss = errors.New("cache miss")

// Cache is the interface for cache implementations
type Cache interface {
	// Get retrieves a value from the cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in the cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error
	// Clear removes every cached value
	Clear(ctx context.Context) error
	// Close releases the backend
	Close() error
	// Ping checks the backend is usable
	Ping(ctx context.Context) error
	// Stats returns cache statistics
	Stats(ctx context.Context) (*Stats, error)
}

// Stats represents cache statistics
type Stats struct {
	Hits    int64  `json:"hits" yaml:"hits"`
	Misses  int64  `json:"misses" yaml:"misses"`
	Keys    int64  `json:"keys" yaml:"keys"`
	Bytes   int64  `json:"bytes" yaml:"bytes"`
	Backend string `json:"backend" yaml:"backend"`
}

// Config holds cache configuration
type Config struct {
	Backend     string        `yaml:"backend"` // file, memory, sqlite, redis, none
	Dir         string        `yaml:"dir"`     // file backend directory
	TTL         time.Duration `yaml:"ttl"`
	MaxSize     int           `yaml:"max_size"` // max items for memory cache
	RedisURL    string        `yaml:"redis_url"`
	RedisPrefix string        `yaml:"redis_prefix"`
	SQLitePath  string        `yaml:"sqlite_path"`
}

// DefaultTTL keeps responses for a week; API data changes rarely.
const DefaultTTL = 7 * 24 * time.Hour

// DefaultConfig returns default cache configuration
func DefaultConfig() *Config {
	return &Config{
		Backend:     "file",
		Dir:         ".cache",
		TTL:         DefaultTTL,
		MaxSize:     10000,
		RedisURL:    "redis://localhost:6379/0",
		RedisPrefix: "pokedex:",
	}
}

// New creates a new cache based on configuration
func New(cfg *Config) (Cache, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch cfg.Backend {
	case "", "file":
		return NewFileCache(cfg.Dir)
	case "memory":
		return NewMemoryCache(cfg.MaxSize, cfg.TTL), nil
	case "sqlite":
		return NewSQLiteCache(cfg.SQLitePath)
	case "redis":
		return NewRedisCache(&RedisConfig{URL: cfg.RedisURL, Prefix: cfg.RedisPrefix})
	case "none", "off":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s (supported: file, memory, sqlite, redis, none)", cfg.Backend)
	}
}

// counters tracks hits and misses; safe for concurrent use
type counters struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func (c *counters) hit() {
	c.hits.Add(1)
}

func (c *counters) miss() {
	c.misses.Add(1)
}

func (c *counters) stats(backend string) *Stats {
	return &Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Backend: backend,
	}
}

// Nop is a cache that stores nothing
type Nop struct{}

func (Nop) Get(ctx context.Context, key string) ([]byte, error) { return nil, ErrMiss }
func (Nop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
func (Nop) Delete(ctx context.Context, key string) error { return nil }
func (Nop) Clear(ctx context.Context) error              { return nil }
func (Nop) Close() error                                 { return nil }
func (Nop) Ping(ctx context.Context) error               { return nil }
func (Nop) Stats(ctx context.Context) (*Stats, error)    { return &Stats{Backend: "none"}, nil }
