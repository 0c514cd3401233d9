package spindex

import (
	"context"
	"sort"
	"strings"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
	"github.com/swiftdocs/swiftdocs/pkg/httputil"
	"github.com/swiftdocs/swiftdocs/pkg/integrations"
)

// packageListKey is the cache key for the package list. The list is a single
// document, so one key covers the whole index.
const packageListKey = "package-list"

// Client provides access to the Swift Package Index package list.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	listURL string
}

// NewClient creates a package index client with the given cache.
// The cache's TTL governs how long the package list is considered fresh;
// pass a cache built with the index TTL (typically 24h), not the shorter
// metadata TTL. A nil cache disables caching.
func NewClient(c integrations.Cache) *Client {
	return &Client{
		Client:  integrations.NewClient(c, nil),
		listURL: "https://raw.githubusercontent.com/SwiftPackageIndex/PackageList/main/packages.json",
	}
}

// PackageList returns the full list of known package repository URLs.
//
// Lookup order is memory, then disk, then network. The network fetch retries
// transient failures with backoff. If the fetch fails and no cached copy is
// usable, the error propagates: the list is load-bearing and there is no
// further fallback.
func (c *Client) PackageList(ctx context.Context) ([]string, error) {
	var list []string
	err := c.Cached(ctx, packageListKey, false, &list, func() error {
		return httputil.RetryWithBackoff(ctx, func() error {
			return c.Get(ctx, c.listURL, &list)
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Search returns ranked metadata stubs for packages matching query.
// Results carry Name, SourceURL, and Host; richer fields are filled in
// later by the repository client. At most limit results are returned.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]docs.PackageMetadata, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "search query is required")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	list, err := c.PackageList(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		meta  docs.PackageMetadata
		score float64
	}
	var matches []scored
	for _, repoURL := range list {
		meta := metadataFor(repoURL)
		if meta.Name == "" {
			continue
		}
		if s := Score(query, meta.Name); s > 0 {
			matches = append(matches, scored{meta: meta, score: s})
		}
	}

	// Stable keeps discovery order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]docs.PackageMetadata, len(matches))
	for i, m := range matches {
		results[i] = m.meta
	}
	return results, nil
}

// DefaultSearchLimit caps Search results when the caller passes limit <= 0.
const DefaultSearchLimit = 20

// PackageInfo looks up a single package by name. An exact case-insensitive
// match wins; otherwise the first case-insensitive substring match is
// returned. No match returns (nil, nil).
func (c *Client) PackageInfo(ctx context.Context, name string) (*docs.PackageMetadata, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "package name is required")
	}

	list, err := c.PackageList(ctx)
	if err != nil {
		return nil, err
	}

	want := integrations.NormalizePkgName(name)
	var partial *docs.PackageMetadata
	for _, repoURL := range list {
		meta := metadataFor(repoURL)
		got := integrations.NormalizePkgName(meta.Name)
		if got == want {
			return &meta, nil
		}
		if partial == nil && strings.Contains(got, want) {
			m := meta
			partial = &m
		}
	}
	return partial, nil
}

// Score returns the relevance of name for query, in [0, 1].
// Exact match scores 1.0 and a prefix match 0.9. A substring match scores
// 0.5 plus up to 0.3 weighted by how much of the name the query covers.
// Otherwise characters matched as an in-order subsequence score up to 0.4.
// Comparison is case-insensitive.
func Score(query, name string) float64 {
	q := strings.ToLower(query)
	n := strings.ToLower(name)
	if len(q) == 0 || len(n) == 0 {
		return 0
	}
	switch {
	case q == n:
		return 1.0
	case strings.HasPrefix(n, q):
		return 0.9
	case strings.Contains(n, q):
		return 0.5 + float64(len(q))/float64(len(n))*0.3
	}

	matched := 0
	for i := 0; i < len(n) && matched < len(q); i++ {
		if n[i] == q[matched] {
			matched++
		}
	}
	return float64(matched) / float64(len(q)) * 0.4
}

// metadataFor builds a metadata stub from a raw repository URL. Every
// listed package has a Swift Package Index page, so the stub carries
// its documentation URL.
func metadataFor(repoURL string) docs.PackageMetadata {
	u := integrations.NormalizeRepoURL(repoURL)
	return docs.PackageMetadata{
		Name:      nameFromRepoURL(u),
		SourceURL: u,
		DocsURL:   indexDocsURL(u),
		Host:      hostFor(u),
	}
}

// indexDocsURL returns the Swift Package Index documentation page for
// a repository URL, or "" when owner and repository cannot be read
// from the path.
func indexDocsURL(u string) string {
	parts := strings.Split(strings.TrimPrefix(u, "https://"), "/")
	if len(parts) < 3 {
		return ""
	}
	owner, repo := parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || repo == "" {
		return ""
	}
	return "https://swiftpackageindex.com/" + owner + "/" + repo + "/documentation"
}

func nameFromRepoURL(u string) string {
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

func hostFor(u string) docs.Host {
	if strings.HasPrefix(u, "https://github.com/") {
		return docs.HostGitHub
	}
	return docs.HostUnknown
}
