package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swiftdocs/swiftdocs/pkg/cache"
	"github.com/swiftdocs/swiftdocs/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the resolution cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheEvictCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// openStore builds the configured cache backend for maintenance
// commands. A nil store means caching is disabled.
func (c *CLI) openStore(ctx context.Context) (cache.Store, *config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Cache.Enabled || cfg.Cache.Backend == config.BackendNone {
		return nil, cfg, nil
	}
	store, err := newStore(ctx, cfg, false)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached resolution results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cfg, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			if store == nil {
				printInfo("Cache is disabled")
				return nil
			}
			defer store.Close()

			if err := store.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cache cleared")
			printCacheLocation(cfg)
			return nil
		},
	}
}

// cacheEvictCommand creates the "cache evict" subcommand.
func (c *CLI) cacheEvictCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "evict",
		Short: "Remove expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cfg, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			if store == nil {
				printInfo("Cache is disabled")
				return nil
			}
			defer store.Close()

			// Sweep with the longest configured TTL so fresh index
			// entries survive the pass.
			ttl := cfg.Cache.TTL.Duration
			if cfg.Cache.IndexTTL.Duration > ttl {
				ttl = cfg.Cache.IndexTTL.Duration
			}
			removed, err := store.EvictExpired(ctx, ttl)
			if err != nil {
				return fmt.Errorf("evict expired: %w", err)
			}
			printSuccess("Evicted %d expired entries", removed)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.BackendRedis {
				fmt.Println("redis://" + cfg.Cache.RedisAddr)
				return nil
			}
			dir, err := fileCacheDir(cfg)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// printCacheLocation prints where the cleared entries lived.
func printCacheLocation(cfg *config.Config) {
	if cfg.Cache.Backend == config.BackendRedis {
		printDetail("Redis: %s", cfg.Cache.RedisAddr)
		return
	}
	if dir, err := fileCacheDir(cfg); err == nil {
		printDetail("Directory: %s", dir)
	}
}
