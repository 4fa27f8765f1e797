package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(PathEnv, "")

	cfg, err := Load("", testLogger)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
http:
  addr: ":9090"
  trust_proxy: true
log:
  level: debug
source:
  url: https://example.org/tle.txt
  extra_urls: []
  refresh_interval: 30m
cache:
  max_files: 2
`)

	cfg, err := Load(path, testLogger)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.True(t, cfg.HTTP.TrustProxy)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format, "unset keys keep defaults")
	assert.Equal(t, "https://example.org/tle.txt", cfg.Source.URL)
	assert.Empty(t, cfg.Source.ExtraURLs)
	assert.True(t, cfg.Source.FetchEnabled)
	assert.Equal(t, 30*time.Minute, cfg.Source.RefreshInterval)
	assert.Equal(t, "/tmp/tleparse/tle", cfg.Cache.Dir)
	assert.Equal(t, 2, cfg.Cache.MaxFiles)
}

func TestLoadPathFromEnv(t *testing.T) {
	t.Setenv(PathEnv, writeFile(t, "http:\n  addr: \":7000\"\n"))

	cfg, err := Load("", testLogger)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "source:\n  url: https://file.example/tle\n")
	t.Setenv("TLEPARSE_SOURCE_URL", "https://env.example/tle")
	t.Setenv("TLEPARSE_EXTRA_URLS", " https://a.example , ,https://b.example")
	t.Setenv("TLEPARSE_ENABLE_FETCH", "false")
	t.Setenv("TLEPARSE_REFRESH_INTERVAL", "120")
	t.Setenv("TLEPARSE_CACHE_MAX_FILES", "9")
	t.Setenv("TLEPARSE_LOG_FORMAT", "text")

	cfg, err := Load(path, testLogger)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example/tle", cfg.Source.URL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Source.ExtraURLs)
	assert.False(t, cfg.Source.FetchEnabled)
	assert.Equal(t, 2*time.Minute, cfg.Source.RefreshInterval)
	assert.Equal(t, 9, cfg.Cache.MaxFiles)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadIgnoresInvalidOptionalEnv(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("TLEPARSE_ENABLE_FETCH", "maybe")
	t.Setenv("TLEPARSE_REFRESH_INTERVAL", "soon")
	t.Setenv("TLEPARSE_CACHE_MAX_FILES", "0")
	t.Setenv("TLEPARSE_TRUST_PROXY", "yes please")

	cfg, err := Load("", testLogger)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadAuth(t *testing.T) {
	t.Setenv(PathEnv, "")

	t.Run("enabled without token", func(t *testing.T) {
		t.Setenv("TLEPARSE_AUTH_ENABLED", "true")
		_, err := Load("", testLogger)
		assert.ErrorContains(t, err, "auth token is required")
	})

	t.Run("invalid boolean", func(t *testing.T) {
		t.Setenv("TLEPARSE_AUTH_ENABLED", "sometimes")
		_, err := Load("", testLogger)
		assert.ErrorContains(t, err, "TLEPARSE_AUTH_ENABLED")
	})

	t.Run("enabled with token", func(t *testing.T) {
		t.Setenv("TLEPARSE_AUTH_ENABLED", "1")
		t.Setenv("TLEPARSE_AUTH_TOKEN", "s3cret")
		cfg, err := Load("", testLogger)
		require.NoError(t, err)
		assert.True(t, cfg.Auth.Enabled)
		assert.Equal(t, "s3cret", cfg.Auth.Token)
	})
}

func TestLoadFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), testLogger)
	assert.ErrorContains(t, err, "reading config file")

	_, err = Load(writeFile(t, "http: [unclosed"), testLogger)
	assert.ErrorContains(t, err, "parsing config file")

	_, err = Load(writeFile(t, "source:\n  refresh_interval: -1h\n"), testLogger)
	assert.ErrorContains(t, err, "must not be negative")
}
