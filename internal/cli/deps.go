package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

// depsReport is the JSON shape written by deps --output.
type depsReport struct {
	Manifest *docs.Manifest         `json:"manifest"`
	Packages []docs.PackageMetadata `json:"packages"`
	Issues   []docs.Issue           `json:"issues,omitempty"`
}

// depsCommand creates the deps command for listing project dependencies.
func (c *CLI) depsCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "deps [path]",
		Short: "List a Swift project's dependencies with resolved metadata",
		Long: `List the dependencies declared by a Swift project.

The project manifest (Package.swift or Package.resolved) is parsed and every
declared dependency is resolved to repository metadata. Failures on single
packages become warnings; the rest of the list still resolves.

Examples:
  swiftdocs deps                    # Current directory
  swiftdocs deps ~/code/myapp       # Explicit project path
  swiftdocs deps -o deps.json       # Write JSON instead of a table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return c.runDeps(cmd.Context(), path, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file (- for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached values and refetch")

	return cmd
}

// runDeps parses the project manifest and resolves each dependency.
func (c *CLI) runDeps(ctx context.Context, path, output string, noCache, refresh bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	resolver, cleanup, err := c.newResolver(ctx, cfg, noCache, refresh)
	if err != nil {
		return fmt.Errorf("initialize resolver: %w", err)
	}
	defer cleanup()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving dependencies of %s...", path))
	spinner.Start()
	start := time.Now()
	manifest, packages, issues, err := resolver.ListDependencies(ctx, path)
	if err != nil {
		spinner.StopWithError("Dependency resolution failed")
		return err
	}
	spinner.Stop()
	elapsed := time.Since(start)

	if output != "" {
		return writeOutput(output, depsReport{Manifest: manifest, Packages: packages, Issues: issues})
	}

	printSuccess("Resolved %d of %d dependencies", len(packages), len(manifest.Dependencies))
	printDetail("Manifest: %s", manifest.Path)
	printNewline()

	if len(packages) > 0 {
		fmt.Println(renderPackageTable(packages))
	}
	for _, issue := range issues {
		printWarning("%s: %s", issue.PackageName, issue.Message)
	}
	printStats(len(packages), len(issues), elapsed)
	printNewline()
	printNextStep("Fetch documentation for a package", appName+" docs <package>")
	return nil
}
