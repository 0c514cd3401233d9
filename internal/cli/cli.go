// Package cli implements the swiftdocs command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/swiftdocs/swiftdocs/pkg/buildinfo"
	"github.com/swiftdocs/swiftdocs/pkg/cache"
	"github.com/swiftdocs/swiftdocs/pkg/config"
	"github.com/swiftdocs/swiftdocs/pkg/docs"
	"github.com/swiftdocs/swiftdocs/pkg/integrations"
	"github.com/swiftdocs/swiftdocs/pkg/integrations/github"
	"github.com/swiftdocs/swiftdocs/pkg/integrations/spindex"
	"github.com/swiftdocs/swiftdocs/pkg/manifest"
	"github.com/swiftdocs/swiftdocs/pkg/scan"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "swiftdocs"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "swiftdocs",
		Short:        "Swiftdocs aggregates documentation for Swift packages",
		Long:         `Swiftdocs looks up documentation, code examples, and repository metadata for Swift packages, preferring local checkouts and build artifacts before falling back to the network.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/swiftdocs/config.toml)")

	// Register all subcommands
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.docsCommand())
	root.AddCommand(c.examplesCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Resolver Factory
// =============================================================================

// loadConfig loads the configuration from the --config path or the
// default location.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// newResolver assembles the resolution pipeline from configuration. The
// returned cleanup function releases the cache backend and must be
// called when the command finishes.
func (c *CLI) newResolver(ctx context.Context, cfg *config.Config, noCache, refresh bool) (*docs.Resolver, func(), error) {
	store, err := newStore(ctx, cfg, noCache)
	if err != nil {
		return nil, nil, err
	}

	// Resolution results and the package index expire on different
	// clocks, so each gets its own view over the shared store.
	resCache := cache.New(store, cfg.Cache.TTL.Duration)
	idxCache := cache.New(store, cfg.Cache.IndexTTL.Duration).Namespace("index:")

	var (
		resolverCache docs.Cache         = resCache
		indexCache    integrations.Cache = idxCache
	)
	if refresh {
		resolverCache = refreshCache{resCache}
		indexCache = refreshCache{idxCache}
	}

	resolver := docs.NewResolver(docs.ResolverOptions{
		Index:                 spindex.NewClient(indexCache),
		Repo:                  github.NewClient(cfg.GitHub.Token),
		Scanner:               scan.NewScanner(),
		ParseManifest:         manifest.ParseProject,
		Cache:                 resolverCache,
		Logger:                c.Logger,
		Sources:               cfg.Resolve.Sources,
		MaxConcurrentRequests: cfg.Resolve.MaxConcurrentRequests,
	})

	cleanup := func() {
		if err := resCache.Close(); err != nil {
			c.Logger.Debug("close cache", "err", err)
		}
	}
	return resolver, cleanup, nil
}

// refreshCache reports every read as a miss while passing writes
// through, forcing sources to run and the store to be repopulated.
type refreshCache struct {
	inner *cache.Cache
}

func (r refreshCache) Get(ctx context.Context, key string, v any) (bool, error) {
	return false, nil
}

func (r refreshCache) Put(ctx context.Context, key string, v any) error {
	return r.inner.Put(ctx, key, v)
}

// newStore selects the cache backend from configuration.
func newStore(ctx context.Context, cfg *config.Config, noCache bool) (cache.Store, error) {
	if noCache || !cfg.Cache.Enabled || cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullStore(), nil
	}
	if cfg.Cache.Backend == config.BackendRedis {
		return cache.NewRedisStore(ctx, cfg.Cache.RedisAddr)
	}
	dir, err := fileCacheDir(cfg)
	if err != nil {
		return cache.NewNullStore(), nil
	}
	return cache.NewFileStore(dir)
}

// =============================================================================
// Paths
// =============================================================================

// fileCacheDir returns the configured cache directory, falling back to
// the XDG default.
func fileCacheDir(cfg *config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/swiftdocs/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
