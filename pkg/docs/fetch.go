package docs

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
	"github.com/swiftdocs/swiftdocs/pkg/integrations"
	"github.com/swiftdocs/swiftdocs/pkg/observability"
)

// ResolvePackage resolves a package name to full metadata: the
// package index first, then a short list of conventional repository
// URL guesses. The guesses are a documented best-effort heuristic,
// not a guarantee; a name neither the index nor the guesses can place
// fails with PACKAGE_NOT_FOUND.
func (r *Resolver) ResolvePackage(ctx context.Context, name string) (*PackageMetadata, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "package name is required")
	}
	return r.resolvePackage(ctx, name)
}

func (r *Resolver) resolvePackage(ctx context.Context, name string) (*PackageMetadata, error) {
	hooks := observability.Resolve()
	hooks.OnResolveStart(ctx, name)
	start := time.Now()

	meta, source, err := r.lookupPackage(ctx, name)
	hooks.OnResolveComplete(ctx, name, source, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("resolved package", "package", name, "source", source, "url", meta.SourceURL)
	return meta, nil
}

// lookupPackage implements the name resolution order. The index miss
// is non-fatal: the URL guesses still run. A guess that does not
// exist upstream moves to the next guess; any other failure aborts.
func (r *Resolver) lookupPackage(ctx context.Context, name string) (*PackageMetadata, string, error) {
	if r.index != nil {
		stub, err := r.index.PackageInfo(ctx, name)
		if err != nil {
			r.logger.Warn("package index lookup failed", "package", name, "err", err)
		} else if stub != nil && stub.SourceURL != "" {
			meta, err := r.resolveMetadata(ctx, stub.SourceURL)
			if err != nil {
				return nil, "index", err
			}
			// The repository host knows nothing about the index's
			// documentation pages; keep the stub's link.
			if meta.DocsURL == "" {
				meta.DocsURL = stub.DocsURL
			}
			return meta, "index", nil
		}
	}

	for _, guess := range urlGuesses(name) {
		meta, err := r.resolveMetadata(ctx, guess)
		if err == nil {
			return meta, "guess", nil
		}
		if apperrors.Is(err, apperrors.ErrCodeNotFound) {
			continue
		}
		return nil, "guess", err
	}

	return nil, "", apperrors.New(apperrors.ErrCodePackageNotFound, "package not found: %s", name)
}

// urlGuesses returns the conventional repository URLs tried when the
// index does not know a name: the package's own name as the owner,
// then the common default organizations.
func urlGuesses(name string) []string {
	n := integrations.NormalizePkgName(name)
	return []string{
		fmt.Sprintf("https://github.com/%s/%s", n, n),
		"https://github.com/apple/" + n,
		"https://github.com/vapor/" + n,
	}
}

// resolveMetadata returns package metadata for a source URL, cache
// first.
func (r *Resolver) resolveMetadata(ctx context.Context, sourceURL string) (*PackageMetadata, error) {
	if r.repo == nil {
		return nil, apperrors.New(apperrors.ErrCodeUnsupported, "no repository client configured")
	}

	key := metadataKey(sourceURL)
	var cached PackageMetadata
	if r.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	meta, err := r.repo.FetchRepositoryInfo(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	r.cachePut(ctx, key, meta)
	return meta, nil
}

// FetchDocumentation resolves documentation for one package. The
// cache is consulted first; on a miss the configured sources run in
// order (local scan, then the repository host by default) and the
// first artifact wins. Failures are surfaced, never retried; retrying
// is the caller's decision.
func (r *Resolver) FetchDocumentation(ctx context.Context, req ResolutionRequest) (*DocumentationArtifact, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "package name is required")
	}

	key := docsKey(req.Name, req.Version)
	var cached DocumentationArtifact
	if r.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	artifact, source, err := r.fetchDocumentation(ctx, req)
	if err != nil {
		return nil, err
	}

	r.cachePut(ctx, key, artifact)
	r.logger.Info("fetched documentation",
		"package", req.Name,
		"source", source,
		"kind", artifact.Kind,
		"duration", time.Since(start))
	return artifact, nil
}

// fetchDocumentation runs the source chain. The chain is strictly
// sequential: it implements a priority policy, not an aggregation, so
// a later source runs only when every earlier one produced nothing.
func (r *Resolver) fetchDocumentation(ctx context.Context, req ResolutionRequest) (*DocumentationArtifact, string, error) {
	hooks := observability.Resolve()

	for _, source := range r.sources {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		switch source {
		case SourceLocal:
			if r.scanner == nil || req.ProjectPath == "" {
				continue
			}
			start := time.Now()
			hooks.OnScanStart(ctx, req.Name, req.ProjectPath)
			artifact, err := r.scanner.FindLocalDocumentation(ctx, req.Name, req.ProjectPath)
			hooks.OnScanComplete(ctx, req.Name, artifact != nil, time.Since(start))
			if err != nil {
				return nil, "", err
			}
			if artifact != nil {
				return artifact, SourceLocal, nil
			}
			// A local miss is expected; fall through to the next source.

		case SourceRemote:
			if r.repo == nil {
				continue
			}
			sourceURL := req.URL
			if sourceURL == "" {
				meta, err := r.resolvePackage(ctx, req.Name)
				if err != nil {
					return nil, "", err
				}
				sourceURL = meta.SourceURL
			}
			start := time.Now()
			hooks.OnFetchStart(ctx, req.Name, sourceURL)
			artifact, err := r.repo.FetchDocumentation(ctx, sourceURL, req.Version)
			hooks.OnFetchComplete(ctx, req.Name, sourceURL, time.Since(start), err)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrCodeDocsNotFound) {
					continue
				}
				return nil, "", err
			}
			return artifact, SourceRemote, nil
		}
	}

	return nil, "", apperrors.New(apperrors.ErrCodeDocsNotFound, "no documentation found for %s", req.Name)
}

// FindExamples returns example code for one package, cache first.
// filter narrows results to paths containing the substring; limit
// caps how many examples are fetched.
func (r *Resolver) FindExamples(ctx context.Context, req ResolutionRequest, filter string, limit int) ([]CodeExample, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "package name is required")
	}
	if r.repo == nil {
		return nil, apperrors.New(apperrors.ErrCodeUnsupported, "no repository client configured")
	}

	key := examplesKey(req.Name, filter, limit)
	var cached []CodeExample
	if r.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	sourceURL := req.URL
	if sourceURL == "" {
		meta, err := r.resolvePackage(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		sourceURL = meta.SourceURL
	}

	hooks := observability.Resolve()
	start := time.Now()
	hooks.OnFetchStart(ctx, req.Name, sourceURL)
	examples, err := r.repo.FindExamples(ctx, sourceURL, filter, limit)
	hooks.OnFetchComplete(ctx, req.Name, sourceURL, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.cachePut(ctx, key, examples)
	return examples, nil
}

// Cache keys. Metadata is keyed by normalized source URL so every
// route to the same repository shares one entry; documentation and
// examples are keyed by normalized package name plus the request
// parameters.

func metadataKey(sourceURL string) string {
	return "metadata:" + strings.ToLower(integrations.NormalizeRepoURL(sourceURL))
}

func docsKey(name, version string) string {
	if version == "" {
		version = "latest"
	}
	return "docs:" + integrations.NormalizePkgName(name) + "@" + version
}

func examplesKey(name, filter string, limit int) string {
	return fmt.Sprintf("examples:%s:%s:%d", integrations.NormalizePkgName(name), strings.ToLower(filter), limit)
}
