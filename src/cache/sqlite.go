package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS responses (
	key        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	expires_at INTEGER NOT NULL
)`

// SQLiteCache stores responses in a single SQLite table
type SQLiteCache struct {
	db   *sql.DB
	path string
	counters
}

// NewSQLiteCache opens (or creates) the database at path
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	if path == "" {
		return nil, errors.New("sqlite cache path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create parent dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// busy_timeout allows parallel fetches to share the file without immediate "database locked" errors
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteCache{db: db, path: path}, nil
}

// Get retrieves a value from SQLite
func (c *SQLiteCache) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	var expiresAt int64
	err := c.db.QueryRowContext(ctx,
		"SELECT data, expires_at FROM responses WHERE key = ?", key,
	).Scan(&data, &expiresAt)
	if err != nil {
		c.miss()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMiss
		}
		return nil, err
	}

	if time.Now().UnixNano() > expiresAt {
		c.db.ExecContext(ctx, "DELETE FROM responses WHERE key = ?", key)
		c.miss()
		return nil, ErrMiss
	}

	c.hit()
	return data, nil
}

// Set upserts a value with TTL
func (c *SQLiteCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO responses (key, data, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`,
		key, value, time.Now().Add(ttl).UnixNano(),
	)
	return err
}

// Delete removes a value from SQLite
func (c *SQLiteCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM responses WHERE key = ?", key)
	return err
}

// Clear removes every row
func (c *SQLiteCache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM responses")
	return err
}

// Close closes the database
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Ping checks database connectivity
func (c *SQLiteCache) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Stats counts rows and stored bytes
func (c *SQLiteCache) Stats(ctx context.Context) (*Stats, error) {
	stats := c.stats("sqlite")
	err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(LENGTH(data)), 0) FROM responses",
	).Scan(&stats.Keys, &stats.Bytes)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
