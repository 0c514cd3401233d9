package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
	"github.com/swiftdocs/swiftdocs/pkg/summarize"
)

// docsReport is the JSON shape written by docs --output.
type docsReport struct {
	Documentation *docs.DocumentationArtifact `json:"documentation"`
	Summary       *summarize.Summary          `json:"summary,omitempty"`
}

// docsCommand creates the docs command for fetching package documentation.
func (c *CLI) docsCommand() *cobra.Command {
	var (
		version string
		project string
		url     string
		output  string
		raw     bool
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "docs <package>",
		Short: "Fetch documentation for a Swift package",
		Long: `Fetch documentation for a Swift package.

Local sources are tried first: SwiftPM checkouts, DocC build artifacts, the
clone cache, and Xcode DerivedData. When nothing is found locally the package
is resolved through the Swift Package Index and its repository README or DocC
catalog is fetched.

Examples:
  swiftdocs docs swift-log                          # Resolve by name
  swiftdocs docs swift-log -p ~/code/myapp          # Prefer project checkouts
  swiftdocs docs Alamofire --url github.com/Alamofire/Alamofire
  swiftdocs docs swift-log --raw | less             # Raw markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := docs.ResolutionRequest{
				Name:        args[0],
				URL:         url,
				Version:     version,
				ProjectPath: project,
			}
			return c.runDocs(cmd.Context(), req, output, raw, noCache, refresh)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "version to attribute to the documentation")
	cmd.Flags().StringVarP(&project, "project", "p", "", "Swift project whose checkouts are searched first")
	cmd.Flags().StringVar(&url, "url", "", "repository URL (skips the package index lookup)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file (- for stdout)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the raw document without a summary header")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached values and refetch")

	return cmd
}

// runDocs fetches the documentation artifact and prints it.
func (c *CLI) runDocs(ctx context.Context, req docs.ResolutionRequest, output string, raw, noCache, refresh bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	resolver, cleanup, err := c.newResolver(ctx, cfg, noCache, refresh)
	if err != nil {
		return fmt.Errorf("initialize resolver: %w", err)
	}
	defer cleanup()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching documentation for %s...", req.Name))
	spinner.Start()
	artifact, err := resolver.FetchDocumentation(ctx, req)
	if err != nil {
		spinner.StopWithError("Documentation fetch failed")
		return err
	}
	spinner.Stop()

	if output != "" {
		return writeOutput(output, docsReport{Documentation: artifact, Summary: summarize.Summarize(artifact)})
	}
	if raw {
		fmt.Print(artifact.Content)
		return nil
	}

	summary := summarize.Summarize(artifact)
	printSuccess("%s", summary.Headline)
	if summary.Abstract != "" {
		printDetail("%s", summary.Abstract)
	}
	printNewline()
	printKeyValue("Package", artifact.PackageName)
	if artifact.Version != "" {
		printKeyValue("Version", artifact.Version)
	}
	printKeyValue("Kind", string(artifact.Kind))
	origin := artifact.Origin
	// A path origin means the document came off the local disk.
	if !strings.HasPrefix(origin, "http") {
		origin = StyleSuccess.Render(origin)
	}
	printKeyValue("Origin", origin)
	if len(summary.Sections) > 0 {
		printKeyValue("Sections", strings.Join(summary.Sections, ", "))
	}
	printNewline()
	fmt.Println(artifact.Content)
	return nil
}
