// Package cache stores upstream search pages in a local SQLite database so
// repeated runs against the same set do not hit the API again.
package cache

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/SlightlyCircuitous/update-token-xml/pkg/constants"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
)

// Cache is a TTL-bounded page cache keyed by request URL.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	mu  sync.Mutex
	now func() time.Time
}

// Open opens or creates the cache database at path and drops pages older
// than the TTL. A non-positive ttl falls back to constants.DefaultCacheTTL.
func Open(path string, ttl time.Duration) (*Cache, error) {
	if path == "" {
		return nil, errors.NewValidationError("cache_path", path, "cannot be empty")
	}
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapResource("open", "cache", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS pages (
		url TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("create", "cache table", path, err)
	}

	c := &Cache{db: db, ttl: ttl, now: time.Now}
	if _, err := c.prune(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// Get returns the cached body for url when it is younger than the TTL.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var body []byte
	var fetchedAt int64
	err := c.db.QueryRowContext(ctx, `SELECT body, fetched_at FROM pages WHERE url = ?`, url).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WrapResource("get", "cached page", url, err)
	}
	if c.now().Sub(time.Unix(fetchedAt, 0)) >= c.ttl {
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores body for url, replacing any earlier copy.
func (c *Cache) Put(ctx context.Context, url string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO pages (url, body, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		url, body, c.now().Unix())
	if err != nil {
		return errors.WrapResource("put", "cached page", url, err)
	}
	return nil
}

// prune deletes expired pages and returns how many were removed.
func (c *Cache) prune(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl).Unix()
	res, err := c.db.ExecContext(ctx, `DELETE FROM pages WHERE fetched_at <= ?`, cutoff)
	if err != nil {
		return 0, errors.WrapResource("prune", "cache", "", err)
	}
	return res.RowsAffected()
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
