// Package pkg provides the core libraries for swiftdocs documentation
// aggregation.
//
// # Overview
//
// Swiftdocs resolves Swift packages to their documentation, code examples,
// and repository metadata, preferring local build products before going to
// the network. The pkg directory is organized into three main areas:
//
//  1. [docs] - Domain model and the resolution orchestrator
//  2. [cache], [httputil], [errors] - Infrastructure (two-tier caching, HTTP, error taxonomy)
//  3. [integrations], [scan], [manifest] - Sources (remote APIs, local filesystem, project manifests)
//
// # Architecture
//
// The typical data flow through swiftdocs:
//
//	Package name or project manifest
//	         ↓
//	    [docs] package (resolution orchestration + caching policy)
//	         ↓
//	    [scan] package (SwiftPM checkouts, DocC archives, DerivedData)
//	         ↓
//	    [integrations/spindex] + [integrations/github] (index lookup, repository fetch)
//	         ↓
//	    Documentation artifacts, examples, metadata
//
// # Quick Start
//
// Resolve a package and fetch its documentation:
//
//	import (
//	    "context"
//	    "github.com/swiftdocs/swiftdocs/pkg/cache"
//	    "github.com/swiftdocs/swiftdocs/pkg/docs"
//	    "github.com/swiftdocs/swiftdocs/pkg/integrations/github"
//	    "github.com/swiftdocs/swiftdocs/pkg/integrations/spindex"
//	    "github.com/swiftdocs/swiftdocs/pkg/scan"
//	)
//
//	store, _ := cache.NewFileStore(dir)
//	resolver := docs.NewResolver(docs.ResolverOptions{
//	    Index:   spindex.NewClient(cache.New(store, docs.DefaultIndexTTL)),
//	    Repo:    github.NewClient(token),
//	    Scanner: scan.NewScanner(),
//	    Cache:   cache.New(store, docs.DefaultCacheTTL),
//	})
//
//	artifact, _ := resolver.FetchDocumentation(context.Background(),
//	    docs.ResolutionRequest{Name: "swift-log"})
//
// # Main Packages
//
// ## Domain
//
// [docs] - The domain model (package references, metadata, documentation
// artifacts, code examples, manifests) and the Resolver that composes the
// cache, the local scanner, the package index, and the repository client
// into the public resolution operations.
//
// [summarize] - Markdown condensation (headline, abstract, section list)
// and usage-pattern mining over example code.
//
// ## Sources
//
// [scan] - Local filesystem scanner covering SwiftPM dependency checkouts,
// DocC build artifacts, the process-wide clone cache, and Xcode DerivedData.
//
// [manifest] - Package.swift and Package.resolved parsing into declared
// dependency lists.
//
// [integrations] - HTTP clients for remote sources: the Swift Package Index
// list ([integrations/spindex]) and repository hosts ([integrations/github]).
//
// ## Infrastructure
//
// [cache] - Two-tier, time-bounded cache: an in-memory map over a pluggable
// persistent store (file, Redis, or null).
//
// [httputil] - Shared HTTP client construction and bounded retry with
// exponential backoff.
//
// [errors] - The error-code taxonomy carried across package boundaries and
// surfaced in CLI and API responses.
//
// [config] - TOML configuration with environment overrides.
//
// [observability] - Pluggable hook registries that let callers watch cache,
// HTTP, and resolution activity without coupling the core to a metrics
// stack.
//
// [glob] - Minimal path pattern matching used by the scanners.
//
// [buildinfo] - Version metadata stamped at build time.
//
// # Common Workflows
//
// List a project's dependencies with resolved metadata:
//
//	manifest, packages, issues, _ := resolver.ListDependencies(ctx, projectPath)
//
// Search the package index:
//
//	results, _ := resolver.Search(ctx, "logging", 20)
//
// Mine usage patterns from examples:
//
//	examples, _ := resolver.FindExamples(ctx, docs.ResolutionRequest{Name: "swift-nio"}, "", 10)
//	patterns := summarize.ExtractPatterns(examples)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/docs/...               # Specific package
//	go test -tags integration ./pkg/...  # Include network integration tests
//
// [docs]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/docs
// [summarize]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/summarize
// [scan]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/scan
// [manifest]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/manifest
// [integrations]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/integrations
// [integrations/spindex]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/integrations/spindex
// [integrations/github]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/integrations/github
// [cache]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/errors
// [config]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/config
// [observability]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/observability
// [glob]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/glob
// [buildinfo]: https://pkg.go.dev/github.com/swiftdocs/swiftdocs/pkg/buildinfo
package pkg
