// Package config loads swiftdocs configuration from a TOML file with
// environment variable overrides.
//
// The configuration is built once at startup and passed down to
// components; nothing in the core reads configuration ad hoc.
//
// Precedence, lowest to highest: built-in defaults, the config file
// (~/.config/swiftdocs/config.toml by default), environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

// Environment variables recognized as overrides.
const (
	// EnvGitHubToken is the swiftdocs-specific token variable. It wins
	// over the conventional GITHUB_TOKEN when both are set.
	EnvGitHubToken = "SWIFTDOCS_GITHUB_TOKEN"

	// EnvCacheDir overrides the cache directory.
	EnvCacheDir = "SWIFTDOCS_CACHE_DIR"
)

// Cache backend names accepted in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full swiftdocs configuration.
type Config struct {
	Cache   CacheConfig   `toml:"cache"`
	GitHub  GitHubConfig  `toml:"github"`
	Resolve ResolveConfig `toml:"resolve"`
	Server  ServerConfig  `toml:"server"`
}

// CacheConfig controls the resolution cache.
type CacheConfig struct {
	// Enabled turns caching on. When false, every request does fresh
	// work.
	Enabled bool `toml:"enabled"`

	// Dir is the cache directory for the file backend. Empty means the
	// default (~/.cache/swiftdocs).
	Dir string `toml:"dir"`

	// Backend selects the persistence layer: file, redis, or none.
	Backend string `toml:"backend"`

	// RedisAddr is the host:port of the Redis server for the redis
	// backend.
	RedisAddr string `toml:"redis_addr"`

	// TTL bounds how long resolved metadata and documentation are
	// served from cache.
	TTL Duration `toml:"ttl"`

	// IndexTTL bounds how long the package index list is served from
	// cache.
	IndexTTL Duration `toml:"index_ttl"`
}

// GitHubConfig holds repository host settings.
type GitHubConfig struct {
	// Token authenticates API requests for better rate limits.
	// SWIFTDOCS_GITHUB_TOKEN overrides this; GITHUB_TOKEN is used
	// only when no other token is set.
	Token string `toml:"token"`
}

// ResolveConfig controls the resolution pipeline.
type ResolveConfig struct {
	// MaxConcurrentRequests bounds parallel resolutions in batch
	// operations.
	MaxConcurrentRequests int `toml:"max_concurrent_requests"`

	// Sources orders the non-cache sources consulted during
	// resolution. Valid entries: local, remote. The cache is always
	// consulted first and is not listed here.
	Sources []string `toml:"sources"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	// Listen is the address the HTTP API binds to.
	Listen string `toml:"listen"`
}

// Duration wraps time.Duration for TOML decoding of strings like "1h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled:  true,
			Backend:  BackendFile,
			TTL:      Duration{docs.DefaultCacheTTL},
			IndexTTL: Duration{docs.DefaultIndexTTL},
		},
		Resolve: ResolveConfig{
			MaxConcurrentRequests: docs.DefaultMaxConcurrentRequests,
			Sources:               []string{"local", "remote"},
		},
		Server: ServerConfig{
			Listen: ":8674",
		},
	}
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/swiftdocs/config.toml or ~/.config/swiftdocs/config.toml.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "swiftdocs", "config.toml"), nil
}

// Load builds the configuration from path, falling back to the default
// location when path is empty. A missing file is not an error: defaults
// plus environment overrides apply. A file that exists but does not
// parse is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			// No resolvable config dir; run on defaults.
			applyEnv(cfg)
			return cfg, cfg.validate()
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file is fine.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, cfg.validate()
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	if tok := os.Getenv(EnvGitHubToken); tok != "" {
		cfg.GitHub.Token = tok
	} else if tok := os.Getenv("GITHUB_TOKEN"); tok != "" && cfg.GitHub.Token == "" {
		cfg.GitHub.Token = tok
	}
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		cfg.Cache.Dir = dir
	}
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("invalid cache backend %q (want file, redis, or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend redis requires redis_addr")
	}
	if c.Resolve.MaxConcurrentRequests < 1 {
		return fmt.Errorf("max_concurrent_requests must be at least 1, got %d", c.Resolve.MaxConcurrentRequests)
	}
	for _, s := range c.Resolve.Sources {
		if s != "local" && s != "remote" {
			return fmt.Errorf("invalid source %q (want local or remote)", s)
		}
	}
	return nil
}
