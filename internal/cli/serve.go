package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swiftdocs/swiftdocs/internal/api"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the swiftdocs HTTP API",
		Long: `Run the swiftdocs HTTP API.

The server exposes the resolution pipeline over REST:

  GET /health
  GET /api/v1/search?q=<query>
  GET /api/v1/dependencies?project=<path>
  GET /api/v1/packages/{name}
  GET /api/v1/packages/{name}/documentation
  GET /api/v1/packages/{name}/examples

It shuts down gracefully on SIGINT and SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), listen, noCache)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :8674)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the pipeline and serves it until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, listen string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if listen == "" {
		listen = cfg.Server.Listen
	}

	resolver, cleanup, err := c.newResolver(ctx, cfg, noCache, false)
	if err != nil {
		return fmt.Errorf("initialize resolver: %w", err)
	}
	defer cleanup()

	handler := api.NewHandler(resolver, c.Logger)
	srv := api.NewServer(listen, api.NewRouter(handler), c.Logger)

	c.Logger.Info("starting http api", "addr", listen)
	return srv.Run(ctx)
}
