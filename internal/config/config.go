// Package config loads tleparse settings from an optional YAML file and
// TLEPARSE_* environment overrides, in that order, on top of defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PathEnv names the environment variable consulted when no --config flag is given.
const PathEnv = "TLEPARSE_CONFIG"

// Config is the full application configuration.
type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Log    LogConfig    `yaml:"log"`
	Auth   AuthConfig   `yaml:"auth"`
	Source SourceConfig `yaml:"source"`
	Cache  CacheConfig  `yaml:"cache"`
}

// HTTPConfig controls the API listener.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
	// TrustProxy enables X-Forwarded-For / X-Real-IP for client addresses.
	TrustProxy bool `yaml:"trust_proxy"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// AuthConfig holds bearer token authentication settings.
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

// SourceConfig describes where raw TLE text is fetched from.
type SourceConfig struct {
	URL             string        `yaml:"url"`
	ExtraURLs       []string      `yaml:"extra_urls"`
	FetchEnabled    bool          `yaml:"fetch_enabled"`
	RefreshInterval time.Duration `yaml:"refresh_interval"` // 0 disables periodic refresh
}

// CacheConfig describes the on-disk snapshot cache.
type CacheConfig struct {
	Dir      string `yaml:"dir"`
	MaxFiles int    `yaml:"max_files"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		Log:  LogConfig{Level: "info", Format: "json"},
		Source: SourceConfig{
			URL: "https://celestrak.org/NORAD/elements/gp.php?GROUP=active&FORMAT=tle",
			ExtraURLs: []string{
				// ISS (ZARYA), a well-known reference set.
				"https://celestrak.org/NORAD/elements/gp.php?CATNR=25544&FORMAT=tle",
			},
			FetchEnabled:    true,
			RefreshInterval: 6 * time.Hour,
		},
		Cache: CacheConfig{Dir: "/tmp/tleparse/tle", MaxFiles: 5},
	}
}

// Load builds the configuration. path may be empty, in which case
// TLEPARSE_CONFIG is consulted; with neither set only defaults and the
// environment apply. Invalid optional environment values are logged and
// ignored; invalid files and inconsistent auth settings are errors.
func Load(path string, logger *slog.Logger) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(logger); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	logger.Info("TLE source config",
		"source_url", cfg.Source.URL,
		"extra_urls", cfg.Source.ExtraURLs,
		"fetch_enabled", cfg.Source.FetchEnabled,
		"refresh_interval_seconds", cfg.Source.RefreshInterval.Seconds(),
		"cache_dir", cfg.Cache.Dir,
	)
	return cfg, nil
}

func (c *Config) applyEnv(logger *slog.Logger) error {
	if v := os.Getenv("TLEPARSE_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}

	if v := os.Getenv("TLEPARSE_TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid TLEPARSE_TRUST_PROXY value, ignoring", "value", v)
		} else {
			c.HTTP.TrustProxy = b
		}
	}

	if v := os.Getenv("TLEPARSE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TLEPARSE_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}

	if v := os.Getenv("TLEPARSE_AUTH_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("TLEPARSE_AUTH_ENABLED must be a boolean value (true/false/1/0)")
		}
		c.Auth.Enabled = b
	}
	if v := os.Getenv("TLEPARSE_AUTH_TOKEN"); v != "" {
		c.Auth.Token = v
	}

	if v := os.Getenv("TLEPARSE_SOURCE_URL"); v != "" {
		c.Source.URL = v
	}

	if v, ok := os.LookupEnv("TLEPARSE_EXTRA_URLS"); ok {
		var urls []string
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		c.Source.ExtraURLs = urls
	}

	if v := os.Getenv("TLEPARSE_ENABLE_FETCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid TLEPARSE_ENABLE_FETCH value, ignoring", "value", v, "current", c.Source.FetchEnabled)
		} else {
			c.Source.FetchEnabled = b
		}
	}

	if v := os.Getenv("TLEPARSE_REFRESH_INTERVAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			logger.Warn("invalid TLEPARSE_REFRESH_INTERVAL value, ignoring", "value", v, "current_seconds", c.Source.RefreshInterval.Seconds())
		} else {
			c.Source.RefreshInterval = time.Duration(n) * time.Second
		}
	}

	if v := os.Getenv("TLEPARSE_CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}

	if v := os.Getenv("TLEPARSE_CACHE_MAX_FILES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid TLEPARSE_CACHE_MAX_FILES value, ignoring", "value", v, "current", c.Cache.MaxFiles)
		} else {
			c.Cache.MaxFiles = n
		}
	}

	return nil
}

func (c *Config) validate() error {
	if c.Auth.Enabled && c.Auth.Token == "" {
		return errors.New("auth token is required when auth is enabled (set TLEPARSE_AUTH_TOKEN)")
	}
	if c.Source.RefreshInterval < 0 {
		return fmt.Errorf("source.refresh_interval must not be negative, got %s", c.Source.RefreshInterval)
	}
	if c.Source.FetchEnabled && c.Source.URL == "" {
		return errors.New("source.url is required when fetching is enabled")
	}
	return nil
}
