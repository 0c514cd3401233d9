package scan

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

// readmeCandidates are the README filenames checked inside a matched
// directory, in preference order.
var readmeCandidates = []string{"README.md", "README.markdown", "Readme.md", "readme.md"}

// artifactFromDir extracts the best documentation artifact from a
// matched package directory. A generated DocC archive wins over a DocC
// catalog, which wins over a plain README. Returns nil when the
// directory yields no readable, non-empty content.
func artifactFromDir(name, dir string) *docs.DocumentationArtifact {
	archive, catalog := findDoccDirs(dir)
	if archive != "" {
		if artifact := doccArchiveArtifact(name, archive); artifact != nil {
			return artifact
		}
	}
	if catalog != "" {
		if artifact := doccCatalogArtifact(name, catalog); artifact != nil {
			return artifact
		}
	}
	return readmeArtifact(name, dir)
}

// findDoccDirs walks dir looking for the first *.doccarchive and the
// first *.docc directory. Hidden directories are not descended into,
// walk errors skip the offending entry, and the walk stops early once
// an archive is found since nothing outranks it.
func findDoccDirs(dir string) (archive, catalog string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries, continue walking
		}
		if !d.IsDir() || path == dir {
			return nil
		}
		base := d.Name()
		if strings.HasPrefix(base, ".") {
			return fs.SkipDir
		}
		if strings.HasSuffix(base, ".doccarchive") {
			archive = path
			return fs.SkipAll
		}
		if strings.HasSuffix(base, ".docc") {
			if catalog == "" {
				catalog = path
			}
			return fs.SkipDir
		}
		return nil
	})
	return archive, catalog
}

// doccArchiveArtifact builds an artifact from a generated DocC
// archive. It prefers a textual preview assembled from the archive's
// JSON page index; when no page yields text it falls back to a pointer
// at the rendered HTML entry point. An archive with neither is treated
// as empty.
func doccArchiveArtifact(name, archive string) *docs.DocumentationArtifact {
	if preview := doccPreview(archive); preview != "" {
		return &docs.DocumentationArtifact{
			PackageName: name,
			Content:     preview,
			Kind:        docs.KindDoccArchive,
			Origin:      archive,
		}
	}

	index := filepath.Join(archive, "documentation", "index.html")
	if info, err := os.Stat(index); err != nil || info.IsDir() {
		return nil
	}
	return &docs.DocumentationArtifact{
		PackageName: name,
		Content:     fmt.Sprintf("DocC archive for %s. Open %s in a browser for the rendered documentation.", name, index),
		Kind:        docs.KindDoccArchive,
		Origin:      index,
	}
}

// doccPreview assembles a markdown preview from the page descriptors
// under <archive>/data/documentation. Pages that are missing,
// unparsable, or empty are skipped. Glob returns lexically sorted
// matches, so the preview is deterministic.
func doccPreview(archive string) string {
	pages, err := filepath.Glob(filepath.Join(archive, "data", "documentation", "*.json"))
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, page := range pages {
		data, err := os.ReadFile(page)
		if err != nil {
			continue
		}
		var p doccPage
		if err := json.Unmarshal(data, &p); err != nil {
			continue
		}
		title := strings.TrimSpace(p.Metadata.Title)
		abstract := p.abstractText()
		if title == "" && abstract == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if title != "" {
			fmt.Fprintf(&b, "# %s\n", title)
		}
		if abstract != "" {
			fmt.Fprintf(&b, "\n%s\n", abstract)
		}
	}
	return strings.TrimSpace(b.String())
}

// doccCatalogArtifact reads the first markdown file inside a DocC
// catalog directory. Catalogs hold authored articles, so the first
// article stands in for the package documentation.
func doccCatalogArtifact(name, catalog string) *docs.DocumentationArtifact {
	var artifact *docs.DocumentationArtifact
	_ = filepath.WalkDir(catalog, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries, continue walking
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil || len(strings.TrimSpace(string(data))) == 0 {
			return nil
		}
		artifact = &docs.DocumentationArtifact{
			PackageName: name,
			Content:     string(data),
			Kind:        docs.KindDoccArchive,
			Origin:      path,
		}
		return fs.SkipAll
	})
	return artifact
}

// readmeArtifact returns the first non-empty README found at the top
// of dir, or nil.
func readmeArtifact(name, dir string) *docs.DocumentationArtifact {
	for _, candidate := range readmeCandidates {
		path := filepath.Join(dir, candidate)
		data, err := os.ReadFile(path)
		if err != nil || len(strings.TrimSpace(string(data))) == 0 {
			continue
		}
		return &docs.DocumentationArtifact{
			PackageName: name,
			Content:     string(data),
			Kind:        docs.KindReadme,
			Origin:      path,
		}
	}
	return nil
}

// doccPage is the subset of a DocC render-page descriptor the preview
// needs.
type doccPage struct {
	Metadata struct {
		Title string `json:"title"`
	} `json:"metadata"`
	Abstract []struct {
		Text string `json:"text"`
	} `json:"abstract"`
}

// abstractText joins the inline abstract fragments into one line.
func (p *doccPage) abstractText() string {
	var parts []string
	for _, fragment := range p.Abstract {
		if text := strings.TrimSpace(fragment.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
