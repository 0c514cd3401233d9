package docs

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
)

// Source names for the resolution fallback chain. Configuration lists
// these to reorder the non-cache sources; the cache is always
// consulted first.
const (
	// SourceLocal is the local filesystem scan.
	SourceLocal = "local"
	// SourceRemote is the repository host fetch.
	SourceRemote = "remote"
)

// IndexClient resolves package names against the package index.
// Implemented by spindex.Client.
type IndexClient interface {
	Search(ctx context.Context, query string, limit int) ([]PackageMetadata, error)
	PackageInfo(ctx context.Context, name string) (*PackageMetadata, error)
}

// RepoClient fetches metadata and content from the repository host.
// Implemented by github.Client.
type RepoClient interface {
	FetchRepositoryInfo(ctx context.Context, sourceURL string) (*PackageMetadata, error)
	FetchDocumentation(ctx context.Context, sourceURL, version string) (*DocumentationArtifact, error)
	FindExamples(ctx context.Context, sourceURL, filter string, limit int) ([]CodeExample, error)
}

// LocalScanner searches the local filesystem for documentation.
// Implemented by scan.Scanner.
type LocalScanner interface {
	FindLocalDocumentation(ctx context.Context, packageName, projectPath string) (*DocumentationArtifact, error)
}

// Cache persists resolved values between runs. Implemented by
// cache.Cache; a nil Cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string, v any) (bool, error)
	Put(ctx context.Context, key string, v any) error
}

// ManifestFunc parses a project's dependency manifest. The resolver
// only requires this shape; manifest.ParseProject provides it.
type ManifestFunc func(projectPath string) (*Manifest, error)

// ResolverOptions configures a Resolver. Nil collaborators disable the
// corresponding source; zero limits fall back to package defaults.
type ResolverOptions struct {
	Index         IndexClient
	Repo          RepoClient
	Scanner       LocalScanner
	ParseManifest ManifestFunc
	Cache         Cache
	Logger        *log.Logger

	// Sources orders the non-cache sources consulted by
	// FetchDocumentation. Empty means local then remote.
	Sources []string

	// MaxConcurrentRequests bounds parallel resolutions in
	// ListDependencies.
	MaxConcurrentRequests int
}

// Resolver composes the cache, the local scanner, the package index,
// and the repository client into the public resolution operations.
// It owns request lifecycle and caching policy; the collaborators stay
// stateless. Safe for concurrent use.
type Resolver struct {
	index         IndexClient
	repo          RepoClient
	scanner       LocalScanner
	parse         ManifestFunc
	cache         Cache
	logger        *log.Logger
	sources       []string
	maxConcurrent int
}

// NewResolver creates a Resolver from options, applying defaults for
// anything unset.
func NewResolver(opts ResolverOptions) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sources := opts.Sources
	if len(sources) == 0 {
		sources = []string{SourceLocal, SourceRemote}
	}
	maxConcurrent := opts.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentRequests
	}
	return &Resolver{
		index:         opts.Index,
		repo:          opts.Repo,
		scanner:       opts.Scanner,
		parse:         opts.ParseManifest,
		cache:         opts.Cache,
		logger:        logger,
		sources:       sources,
		maxConcurrent: maxConcurrent,
	}
}

// Search returns ranked package stubs from the package index.
func (r *Resolver) Search(ctx context.Context, query string, limit int) ([]PackageMetadata, error) {
	if r.index == nil {
		return nil, apperrors.New(apperrors.ErrCodeUnsupported, "no package index configured")
	}
	return r.index.Search(ctx, query, limit)
}

// PackageInfo returns the package index entry for name, or nil when
// the index does not know it. The entry is an index stub; use
// ResolvePackage for full repository metadata.
func (r *Resolver) PackageInfo(ctx context.Context, name string) (*PackageMetadata, error) {
	if r.index == nil {
		return nil, apperrors.New(apperrors.ErrCodeUnsupported, "no package index configured")
	}
	return r.index.PackageInfo(ctx, name)
}

// cacheGet reads a cached value into v. A nil cache, a backend
// failure, or a stale entry all count as a miss.
func (r *Resolver) cacheGet(ctx context.Context, key string, v any) bool {
	if r.cache == nil {
		return false
	}
	hit, err := r.cache.Get(ctx, key, v)
	return err == nil && hit
}

// cachePut stores a value best-effort. Failure to cache never fails
// the resolution that produced the value.
func (r *Resolver) cachePut(ctx context.Context, key string, v any) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Put(ctx, key, v)
}
