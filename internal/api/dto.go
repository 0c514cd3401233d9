package api

import (
	"github.com/swiftdocs/swiftdocs/pkg/docs"
	"github.com/swiftdocs/swiftdocs/pkg/summarize"
)

// Response shapes for the JSON API. Core records are embedded as-is;
// the API adds only envelope fields.

type searchResponse struct {
	Query   string                 `json:"query"`
	Results []docs.PackageMetadata `json:"results"`
}

type documentationResponse struct {
	Documentation *docs.DocumentationArtifact `json:"documentation"`
	Summary       *summarize.Summary          `json:"summary,omitempty"`
}

type examplesResponse struct {
	Examples []docs.CodeExample       `json:"examples"`
	Patterns []summarize.UsagePattern `json:"patterns,omitempty"`
}

type dependenciesResponse struct {
	Manifest *docs.Manifest         `json:"manifest"`
	Packages []docs.PackageMetadata `json:"packages"`
	Issues   []docs.Issue           `json:"issues,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
