package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
)

func openTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "nested", "pages.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t, time.Hour)

	_, ok, err := c.Get(ctx, "https://api.example/a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "https://api.example/a", []byte(`{"object":"list"}`)))
	body, ok, err := c.Get(ctx, "https://api.example/a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"object":"list"}`, string(body))

	require.NoError(t, c.Put(ctx, "https://api.example/a", []byte(`{"object":"error"}`)))
	body, _, err = c.Get(ctx, "https://api.example/a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"object":"error"}`, string(body))
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t, time.Minute)

	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }
	require.NoError(t, c.Put(ctx, "u", []byte("x")))

	now = now.Add(30 * time.Second)
	_, ok, err := c.Get(ctx, "u")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, err = c.Get(ctx, "u")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := c.prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestOpenPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pages.db")

	c, err := Open(path, 0)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, "u", []byte("x")))
	require.NoError(t, c.Close())

	c, err = Open(path, 0)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	body, ok, err := c.Get(ctx, "u")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", string(body))
}

func TestOpenDropsExpiredPages(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pages.db")

	c, err := Open(path, time.Hour)
	require.NoError(t, err)
	c.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	require.NoError(t, c.Put(ctx, "stale", []byte("x")))
	c.now = time.Now
	require.NoError(t, c.Put(ctx, "fresh", []byte("y")))
	require.NoError(t, c.Close())

	c, err = Open(path, time.Hour)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	var urls []string
	rows, err := c.db.QueryContext(ctx, `SELECT url FROM pages`)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var url string
		require.NoError(t, rows.Scan(&url))
		urls = append(urls, url)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"fresh"}, urls)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("", time.Hour)
	assert.True(t, errors.IsValidationError(err))
}
