package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
	"github.com/swiftdocs/swiftdocs/pkg/integrations"
)

// Client provides access to the GitHub API for Swift package repositories.
// It fetches repository metadata, documentation files, and example code.
// Caching happens in the resolution layer; this client always goes upstream.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	apiURL string
	runner runner
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower rate limits).
func NewClient(token string) *Client {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Client{
		Client: integrations.NewClient(nil, headers),
		apiURL: "https://api.github.com",
		runner: execRunner{},
	}
}

// FetchRepositoryInfo retrieves repository metadata for a package source URL.
// The URL is validated before any network I/O; unparseable URLs fail fast
// with a parse error.
func (c *Client) FetchRepositoryInfo(ctx context.Context, sourceURL string) (*docs.PackageMetadata, error) {
	owner, repo, err := ParseSourceURL(sourceURL)
	if err != nil {
		return nil, err
	}

	data, err := c.fetchRepo(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	meta := &docs.PackageMetadata{
		Name:        data.Name,
		SourceURL:   fmt.Sprintf("https://github.com/%s/%s", owner, repo),
		Description: data.Description,
		License:     data.License.SPDXID,
		Author:      data.Owner.Login,
		Stars:       data.Stars,
		Forks:       data.Forks,
		ReadmeURL:   fmt.Sprintf("https://github.com/%s/%s#readme", owner, repo),
		Host:        docs.HostGitHub,
	}
	if meta.Name == "" {
		meta.Name = repo
	}
	if data.PushedAt != nil {
		meta.LastUpdated = *data.PushedAt
	}
	// Releases are optional; many packages only tag.
	if rel, err := c.fetchRelease(ctx, owner, repo); err == nil {
		meta.Version = rel.TagName
	}
	return meta, nil
}

func (c *Client) fetchRepo(ctx context.Context, owner, repo string) (*repoResponse, error) {
	var data repoResponse
	path := fmt.Sprintf("/repos/%s/%s", owner, repo)
	if err := c.apiGet(ctx, path, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: github repo %s/%s", err, owner, repo)
		}
		return nil, err
	}
	return &data, nil
}

func (c *Client) fetchRelease(ctx context.Context, owner, repo string) (*releaseResponse, error) {
	var data releaseResponse
	path := fmt.Sprintf("/repos/%s/%s/releases/latest", owner, repo)
	if err := c.apiGet(ctx, path, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

type repoResponse struct {
	Name          string     `json:"name"`
	FullName      string     `json:"full_name"`
	Description   string     `json:"description"`
	DefaultBranch string     `json:"default_branch"`
	Stars         int        `json:"stargazers_count"`
	Forks         int        `json:"forks_count"`
	PushedAt      *time.Time `json:"pushed_at"`
	License       struct {
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type releaseResponse struct {
	TagName     string    `json:"tag_name"`
	PublishedAt time.Time `json:"published_at"`
}
