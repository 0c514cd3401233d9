package docs

import (
	"context"
	"sync"

	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
)

// depResult holds the outcome for one dependency slot.
type depResult struct {
	meta  *PackageMetadata
	issue *Issue
}

// ListDependencies parses the project's manifest and resolves metadata
// for every dependency it declares. Returned order matches manifest
// order regardless of completion order. A dependency that cannot be
// resolved becomes a warning Issue; the batch itself only fails when
// the manifest is missing or unparsable.
func (r *Resolver) ListDependencies(ctx context.Context, projectPath string) (*Manifest, []PackageMetadata, []Issue, error) {
	if r.parse == nil {
		return nil, nil, nil, apperrors.New(apperrors.ErrCodeUnsupported, "no manifest parser configured")
	}

	manifest, err := r.parse(projectPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(manifest.Dependencies) == 0 {
		return manifest, nil, nil, nil
	}

	// Resolve dependencies concurrently (bounded).
	results := make([]depResult, len(manifest.Dependencies))
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.maxConcurrent)

	for i, ref := range manifest.Dependencies {
		wg.Add(1)
		go func(idx int, ref PackageReference) {
			defer wg.Done()
			sem <- struct{}{}        // Acquire
			defer func() { <-sem }() // Release

			meta, err := r.resolveReference(ctx, ref)
			if err != nil {
				results[idx] = depResult{issue: &Issue{
					Severity:    SeverityWarning,
					PackageName: ref.Name,
					Message:     err.Error(),
				}}
				return
			}
			results[idx] = depResult{meta: meta}
		}(i, ref)
	}
	wg.Wait()

	var resolved []PackageMetadata
	var issues []Issue
	for _, res := range results {
		switch {
		case res.meta != nil:
			resolved = append(resolved, *res.meta)
		case res.issue != nil:
			issues = append(issues, *res.issue)
		}
	}

	r.logger.Info("listed dependencies",
		"project", projectPath,
		"declared", len(manifest.Dependencies),
		"resolved", len(resolved),
		"warnings", len(issues))
	return manifest, resolved, issues, nil
}

// resolveReference resolves one manifest reference. Local paths are
// never fetched: they get stub metadata naming the path. References
// that carry a URL skip name resolution entirely.
func (r *Resolver) resolveReference(ctx context.Context, ref PackageReference) (*PackageMetadata, error) {
	if ref.Kind == KindLocalPath {
		return &PackageMetadata{
			Name:      ref.Name,
			SourceURL: ref.URL,
			Host:      HostUnknown,
		}, nil
	}

	var (
		meta *PackageMetadata
		err  error
	)
	if ref.URL != "" {
		meta, err = r.resolveMetadata(ctx, ref.URL)
	} else {
		meta, err = r.resolvePackage(ctx, ref.Name)
	}
	if err != nil {
		return nil, err
	}

	if meta.Name == "" {
		meta.Name = ref.Name
	}
	// The manifest pin says what this project depends on; the release
	// tag only says what is newest.
	if ref.Version != "" {
		meta.Version = ref.Version
	}
	return meta, nil
}
