package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fileExt = ".json"

// FileCache persists one JSON envelope per key under a directory
type FileCache struct {
	dir string
	counters
}

// fileEntry is the on-disk envelope
type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewFileCache creates the cache directory if needed
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		return nil, errors.New("cache directory is empty")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory
func (c *FileCache) Dir() string {
	return c.dir
}

// Get retrieves cached data from file
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, error) {
	path := c.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		c.miss()
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrMiss
		}
		return nil, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Key != key {
		// Corrupt or colliding entry
		os.Remove(path)
		c.miss()
		return nil, ErrMiss
	}

	if time.Now().After(entry.ExpiresAt) {
		os.Remove(path)
		c.miss()
		return nil, ErrMiss
	}

	c.hit()
	return entry.Data, nil
}

// Set writes the entry through a temp file so readers never see a partial write
func (c *FileCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(fileEntry{
		Key:       key,
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path(key))
}

// Delete removes a cache file
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes every cache file, leaving the directory in place
func (c *FileCache) Clear(ctx context.Context) error {
	files, err := c.files()
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Close is a no-op for the file cache
func (c *FileCache) Close() error {
	return nil
}

// Ping checks the directory is still there
func (c *FileCache) Ping(ctx context.Context) error {
	info, err := os.Stat(c.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", c.dir)
	}
	return nil
}

// Stats counts cache files and their size on disk
func (c *FileCache) Stats(ctx context.Context) (*Stats, error) {
	files, err := c.files()
	if err != nil {
		return nil, err
	}

	stats := c.stats("file")
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		stats.Keys++
		stats.Bytes += info.Size()
	}
	return stats, nil
}

func (c *FileCache) files() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		files = append(files, filepath.Join(c.dir, e.Name()))
	}
	return files, nil
}

// path hashes the key so URLs map to safe file names
func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+fileExt)
}
