package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
	"github.com/swiftdocs/swiftdocs/pkg/summarize"
)

// examplesReport is the JSON shape written by examples --output.
type examplesReport struct {
	Examples []docs.CodeExample       `json:"examples"`
	Patterns []summarize.UsagePattern `json:"patterns,omitempty"`
}

// examplesCommand creates the examples command for fetching code examples.
func (c *CLI) examplesCommand() *cobra.Command {
	var (
		filter  string
		limit   int
		url     string
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "examples <package>",
		Short: "Fetch code examples for a Swift package",
		Long: `Fetch example code attributed to a Swift package.

Examples are collected from the repository's example directories and Swift
snippets. The filter narrows results to examples whose title or path contains
the given substring.

Examples:
  swiftdocs examples swift-nio
  swiftdocs examples swift-nio --filter udp
  swiftdocs examples swift-nio --limit 3 -o examples.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := docs.ResolutionRequest{Name: args[0], URL: url}
			return c.runExamples(cmd.Context(), req, filter, limit, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only examples matching this substring")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of examples")
	cmd.Flags().StringVar(&url, "url", "", "repository URL (skips the package index lookup)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file (- for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached values and refetch")

	return cmd
}

// runExamples fetches examples and prints them with mined usage patterns.
func (c *CLI) runExamples(ctx context.Context, req docs.ResolutionRequest, filter string, limit int, output string, noCache, refresh bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	resolver, cleanup, err := c.newResolver(ctx, cfg, noCache, refresh)
	if err != nil {
		return fmt.Errorf("initialize resolver: %w", err)
	}
	defer cleanup()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching examples for %s...", req.Name))
	spinner.Start()
	examples, err := resolver.FindExamples(ctx, req, filter, limit)
	if err != nil {
		spinner.StopWithError("Example fetch failed")
		return err
	}
	spinner.Stop()

	patterns := summarize.ExtractPatterns(examples)

	if output != "" {
		return writeOutput(output, examplesReport{Examples: examples, Patterns: patterns})
	}

	if len(examples) == 0 {
		printInfo("No examples found for %s", req.Name)
		return nil
	}

	printSuccess("Found %d examples for %s", len(examples), StyleHighlight.Render(req.Name))
	for _, ex := range examples {
		printNewline()
		fmt.Println(StyleTitle.Render(ex.Title))
		if ex.Path != "" {
			printDetail("%s", ex.Path)
		}
		fmt.Println(ex.Code)
	}

	if len(patterns) > 0 {
		printNewline()
		printInfo("Recurring usage")
		for _, p := range patterns {
			printDetail("%s: %s (%d)", p.Kind, p.Name, p.Occurrences)
		}
	}
	return nil
}
