package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

// infoCommand creates the info command for showing package metadata.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "info <package>",
		Short: "Show repository metadata for a Swift package",
		Long: `Show repository metadata for a Swift package.

The package is resolved through the Swift Package Index (or by guessing
well-known repository locations) and its stars, license, and description
are fetched from the repository host.

Examples:
  swiftdocs info swift-log
  swiftdocs info Alamofire -o alamofire.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file (- for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached values and refetch")

	return cmd
}

// runInfo resolves the package and prints its metadata.
func (c *CLI) runInfo(ctx context.Context, name, output string, noCache, refresh bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	resolver, cleanup, err := c.newResolver(ctx, cfg, noCache, refresh)
	if err != nil {
		return fmt.Errorf("initialize resolver: %w", err)
	}
	defer cleanup()

	if output != "" {
		meta, err := resolver.ResolvePackage(ctx, name)
		if err != nil {
			return err
		}
		return writeOutput(output, meta)
	}

	return c.showPackage(ctx, resolver, name)
}

// showPackage resolves name and prints its metadata block. Shared with
// the interactive search flow.
func (c *CLI) showPackage(ctx context.Context, resolver *docs.Resolver, name string) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %s...", name))
	spinner.Start()
	meta, err := resolver.ResolvePackage(ctx, name)
	if err != nil {
		spinner.StopWithError("Resolution failed")
		return err
	}
	spinner.Stop()

	printPackage(meta)
	printNewline()
	printNextStep("Fetch its documentation", fmt.Sprintf("%s docs %s", appName, meta.Name))
	return nil
}

// printPackage prints a metadata block for one package.
func printPackage(meta *docs.PackageMetadata) {
	fmt.Println(StyleTitle.Render(meta.Name))
	if meta.Description != "" {
		printDetail("%s", meta.Description)
	}
	printNewline()
	printKeyValue("Repository", StyleLink.Render(meta.SourceURL))
	if meta.Version != "" {
		printKeyValue("Version", meta.Version)
	}
	if meta.License != "" {
		printKeyValue("License", meta.License)
	}
	if meta.Author != "" {
		printKeyValue("Author", meta.Author)
	}
	if meta.Stars > 0 {
		printKeyValue("Stars", StyleNumber.Render(fmt.Sprintf("%d", meta.Stars)))
	}
	if meta.Forks > 0 {
		printKeyValue("Forks", fmt.Sprintf("%d", meta.Forks))
	}
	if !meta.LastUpdated.IsZero() {
		printKeyValue("Updated", formatRelativeTime(meta.LastUpdated))
	}
	if meta.DocsURL != "" {
		printKeyValue("Docs", StyleLink.Render(meta.DocsURL))
	}
}
