// Package docs resolves Swift package documentation from local and
// remote sources.
//
// The package defines the shared data model for the resolution pipeline
// and the [Resolver], which orchestrates the fallback chain: cached
// results first, then local filesystem sources, then the package index
// and the repository host. Each step of the chain is strictly
// sequential; the first source that produces a result wins and later
// sources are never consulted.
package docs

import "time"

// Default resolution limits. Overridable through configuration.
const (
	// DefaultCacheTTL bounds how long resolved metadata and
	// documentation are served from cache.
	DefaultCacheTTL = time.Hour

	// DefaultIndexTTL bounds how long the package index list is served
	// from cache. The list changes rarely and is expensive to fetch.
	DefaultIndexTTL = 24 * time.Hour

	// DefaultMaxConcurrentRequests bounds parallel resolutions during
	// batch operations such as ListDependencies.
	DefaultMaxConcurrentRequests = 10
)

// ReferenceKind describes how a dependency is required.
type ReferenceKind string

const (
	// KindSourceControl is a git-based dependency requirement.
	KindSourceControl ReferenceKind = "source-control"
	// KindLocalPath is a filesystem path requirement.
	KindLocalPath ReferenceKind = "local-path"
	// KindRegistry is a registry identifier requirement.
	KindRegistry ReferenceKind = "registry"
)

// PackageReference identifies one required package as written in a
// manifest. Exactly one of Version, Branch, or Revision is set for
// source-control references; all three are empty for local paths.
// References are immutable once constructed.
type PackageReference struct {
	Name     string        `json:"name"`
	URL      string        `json:"url,omitempty"`
	Version  string        `json:"version,omitempty"`
	Branch   string        `json:"branch,omitempty"`
	Revision string        `json:"revision,omitempty"`
	Kind     ReferenceKind `json:"kind"`
}

// Host identifies the service a package's source lives on.
type Host string

const (
	// HostGitHub marks packages hosted on github.com.
	HostGitHub Host = "github"
	// HostUnknown marks packages whose host is not recognized.
	HostUnknown Host = "unknown"
)

// PackageMetadata describes a resolved package. Name is the canonical
// package name; SourceURL is the canonical repository URL metadata is
// cached under.
type PackageMetadata struct {
	Name        string    `json:"name"`
	SourceURL   string    `json:"source_url"`
	Description string    `json:"description,omitempty"`
	Version     string    `json:"version,omitempty"`
	License     string    `json:"license,omitempty"`
	Author      string    `json:"author,omitempty"`
	Stars       int       `json:"stars,omitempty"`
	Forks       int       `json:"forks,omitempty"`
	LastUpdated time.Time `json:"last_updated,omitempty"`
	ReadmeURL   string    `json:"readme_url,omitempty"`
	DocsURL     string    `json:"docs_url,omitempty"`
	Host        Host      `json:"host"`
}

// ArtifactKind describes what form a documentation artifact takes.
type ArtifactKind string

const (
	// KindReadme is a repository README.
	KindReadme ArtifactKind = "readme"
	// KindDoccArchive is a generated DocC archive or catalog.
	KindDoccArchive ArtifactKind = "docc-archive"
	// KindGuide is any other markdown guide.
	KindGuide ArtifactKind = "guide"
)

// DocumentationArtifact is one unit of retrieved documentation. Origin
// records where the content came from (a URL or a local path). Never
// mutated after creation; a new fetch produces a new artifact.
type DocumentationArtifact struct {
	PackageName string       `json:"package_name"`
	Version     string       `json:"version,omitempty"`
	Content     string       `json:"content"`
	Kind        ArtifactKind `json:"kind"`
	Origin      string       `json:"origin"`
}

// CodeExample is one example file attributed to a package. Immutable.
type CodeExample struct {
	PackageName string `json:"package_name"`
	Title       string `json:"title"`
	Code        string `json:"code"`
	Language    string `json:"language"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path"`
}

// ResolutionRequest carries one documentation lookup. Name is required;
// URL skips index resolution when known; ProjectPath enables the
// local-first search. Constructed per call, never persisted.
type ResolutionRequest struct {
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Version     string `json:"version,omitempty"`
	ProjectPath string `json:"project_path,omitempty"`
}

// Severity grades an Issue.
type Severity string

const (
	// SeverityWarning marks a recoverable, per-item failure.
	SeverityWarning Severity = "warning"
	// SeverityError marks a failure that lost data.
	SeverityError Severity = "error"
)

// Issue reports one per-package problem from a batch operation. Batch
// operations degrade gracefully: a failed item becomes an Issue while
// the rest of the batch proceeds.
type Issue struct {
	Severity    Severity `json:"severity"`
	PackageName string   `json:"package_name"`
	Message     string   `json:"message"`
}

// ManifestKind distinguishes dependency sources.
type ManifestKind string

const (
	// KindPackageManifest is a Package.swift manifest.
	KindPackageManifest ManifestKind = "package-manifest"
	// KindLockfile is a Package.resolved lockfile.
	KindLockfile ManifestKind = "lockfile"
)

// Manifest is a parsed dependency list from a project.
type Manifest struct {
	Path         string             `json:"path"`
	Kind         ManifestKind       `json:"kind"`
	Dependencies []PackageReference `json:"dependencies"`
}
