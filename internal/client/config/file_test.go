package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"pokodex"}, args...)
}

func TestParseFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"favorites_backend: local\nrequest_timeout: 5s\nredis_addr: 127.0.0.1:6379\ncache_ttl: 30m\npage_size: 50\n"), 0o600))
	withArgs(t, "-c", path)

	c := &Config{}
	c.LoadDefaults()
	parseFile(c)

	assert.Equal(t, BackendLocal, c.FavoritesBackend)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, "127.0.0.1:6379", c.RedisAddr)
	assert.Equal(t, 30*time.Minute, c.CacheTTL)
	assert.Equal(t, 50, c.PageSize)
	// untouched
	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.InDelta(t, 10.0, c.RateLimit, 0)
}

func TestParseFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_endpoint_addr": "backend:50051",
		"request_timeout": 2000000000,
		"rate_limit": 1.5
	}`), 0o600))
	withArgs(t, "-config="+path)

	c := &Config{}
	c.LoadDefaults()
	parseFile(c)

	assert.Equal(t, "backend:50051", c.ServerEndpointAddr)
	assert.Equal(t, 2*time.Second, c.RequestTimeout)
	assert.InDelta(t, 1.5, c.RateLimit, 0)
}

func TestParseFile_NoFlag(t *testing.T) {
	withArgs(t)
	c := &Config{}
	c.LoadDefaults()
	parseFile(c)

	want := &Config{}
	want.LoadDefaults()
	assert.Equal(t, want, c)
}

func TestParseFile_Panics(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Panics(t, func() { parseFile(&Config{}) })
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("favorites_backend: local\npage_size: 50\n"), 0o600))
	withArgs(t, "-c", path, "-f", "remote")

	c := LoadConfig()
	assert.Equal(t, BackendRemote, c.FavoritesBackend)
	assert.Equal(t, 50, c.PageSize)
}
