package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

// searchReport is the JSON shape written by search --output.
type searchReport struct {
	Query   string                 `json:"query"`
	Results []docs.PackageMetadata `json:"results"`
}

// searchCommand creates the search command for querying the package index.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		limit   int
		pick    bool
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the Swift Package Index",
		Long: `Search the Swift Package Index by name.

With --pick the results open in an interactive list; selecting an entry
resolves the package and prints its repository metadata.

Examples:
  swiftdocs search logging
  swiftdocs search nio --limit 5
  swiftdocs search networking --pick`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), args[0], limit, pick, output, noCache, refresh)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of results")
	cmd.Flags().BoolVar(&pick, "pick", false, "select a result interactively")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file (- for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached values and refetch")

	return cmd
}

// runSearch queries the index and lists or picks from the results.
func (c *CLI) runSearch(ctx context.Context, query string, limit int, pick bool, output string, noCache, refresh bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	resolver, cleanup, err := c.newResolver(ctx, cfg, noCache, refresh)
	if err != nil {
		return fmt.Errorf("initialize resolver: %w", err)
	}
	defer cleanup()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Searching for %q...", query))
	spinner.Start()
	results, err := resolver.Search(ctx, query, limit)
	if err != nil {
		spinner.StopWithError("Search failed")
		return err
	}
	spinner.Stop()

	if output != "" {
		return writeOutput(output, searchReport{Query: query, Results: results})
	}

	if len(results) == 0 {
		printInfo("No packages match %q", query)
		return nil
	}

	if !pick {
		printSuccess("Found %d packages", len(results))
		printNewline()
		fmt.Println(renderPackageTable(results))
		printNewline()
		printNextStep("Show details for a package", appName+" info <package>")
		return nil
	}

	m := NewPackageListModel(results)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(PackageListModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil
	}

	printNewline()
	return c.showPackage(ctx, resolver, fm.Selected.Package.Name)
}
