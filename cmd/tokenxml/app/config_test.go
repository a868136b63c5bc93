package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/constants"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, constants.ScryfallAPIURL, config.APIURL)
	assert.Equal(t, constants.ScryfallRateLimitDelay, config.RateLimitDelay)
	assert.Equal(t, constants.DefaultHTTPTimeout, config.HTTPTimeout)
	assert.Equal(t, constants.DefaultCacheTTL, config.CacheTTL)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.CachePath)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TOKENXML_API_URL", "https://mirror.example")
	t.Setenv("TOKENXML_RATE_LIMIT_DELAY", "2s")
	t.Setenv("TOKENXML_OUTPUT_DIR", "/tmp/tokens")
	t.Setenv("TOKENXML_VERBOSE", "true")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example", config.APIURL)
	assert.Equal(t, 2*time.Second, config.RateLimitDelay)
	assert.Equal(t, "/tmp/tokens", config.OutputDir)
	assert.True(t, config.Verbose)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "tokenxml.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_path: /var/cache/tokenxml.db\ncache_ttl: 24h\nformat: yaml\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "/var/cache/tokenxml.db", config.CachePath)
	assert.Equal(t, 24*time.Hour, config.CacheTTL)
	assert.Equal(t, "yaml", config.Format)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	var configErr *errors.ConfigError
	assert.True(t, errors.As(err, &configErr))
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "json", LogLevel: "info"}
	config.UpdateFromFlags(true, false, true, "", "debug")

	assert.True(t, config.Verbose)
	assert.False(t, config.Quiet)
	assert.True(t, config.NoColor)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}
