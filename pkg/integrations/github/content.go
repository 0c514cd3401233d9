package github

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
	"github.com/swiftdocs/swiftdocs/pkg/glob"
	"github.com/swiftdocs/swiftdocs/pkg/integrations"
)

// DefaultExampleLimit caps FindExamples results when the caller passes
// limit <= 0. Each example costs one content fetch, so the default is small.
const DefaultExampleLimit = 5

var rawAccept = map[string]string{"Accept": "application/vnd.github.v3.raw"}

// FetchDocumentation locates the best available documentation for a package.
//
// The search is strictly sequential and the first non-empty result wins:
// the README at the default branch, then the README at the conventional
// secondary branch, then the first markdown file inside a DocC catalog,
// then any other markdown file. When every tier misses, a docs-not-found
// error is returned rather than an empty artifact.
func (c *Client) FetchDocumentation(ctx context.Context, sourceURL, version string) (*docs.DocumentationArtifact, error) {
	owner, repo, err := ParseSourceURL(sourceURL)
	if err != nil {
		return nil, err
	}

	info, err := c.fetchRepo(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	name := info.Name
	if name == "" {
		name = repo
	}
	branch := info.DefaultBranch
	if branch == "" {
		branch = "HEAD"
	}

	content, err := c.readmeAt(ctx, owner, repo, branch)
	if hit, fatal := acceptContent(content, err); hit {
		return c.artifact(ctx, name, version, owner, repo, content, docs.KindReadme, readmeOrigin(owner, repo)), nil
	} else if fatal != nil {
		return nil, fatal
	}

	secondary := "master"
	if branch == "master" {
		secondary = "main"
	}
	content, err = c.readmeAt(ctx, owner, repo, secondary)
	if hit, fatal := acceptContent(content, err); hit {
		return c.artifact(ctx, name, version, owner, repo, content, docs.KindReadme, readmeOrigin(owner, repo)), nil
	} else if fatal != nil {
		return nil, fatal
	}

	tree, err := c.GetTree(ctx, owner, repo, branch)
	if err != nil && !errors.Is(err, integrations.ErrNotFound) {
		return nil, err
	}

	if p := doccMarkdown(tree); p != "" {
		content, err = c.FetchFileRaw(ctx, owner, repo, p, branch)
		if hit, fatal := acceptContent(content, err); hit {
			return c.artifact(ctx, name, version, owner, repo, content, docs.KindGuide, blobOrigin(owner, repo, branch, p)), nil
		} else if fatal != nil {
			return nil, fatal
		}
	}

	if p := fallbackMarkdown(tree); p != "" {
		content, err = c.FetchFileRaw(ctx, owner, repo, p, branch)
		if hit, fatal := acceptContent(content, err); hit {
			return c.artifact(ctx, name, version, owner, repo, content, docs.KindGuide, blobOrigin(owner, repo, branch, p)), nil
		} else if fatal != nil {
			return nil, fatal
		}
	}

	return nil, apperrors.New(apperrors.ErrCodeDocsNotFound, "no documentation found for %s/%s", owner, repo)
}

// acceptContent classifies a fetch result: a non-empty body is a hit, a
// not-found or empty body continues the chain, anything else aborts it.
func acceptContent(content string, err error) (hit bool, fatal error) {
	switch {
	case err == nil && strings.TrimSpace(content) != "":
		return true, nil
	case err == nil || errors.Is(err, integrations.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (c *Client) artifact(ctx context.Context, name, version, owner, repo, content string, kind docs.ArtifactKind, origin string) *docs.DocumentationArtifact {
	if version == "" {
		if rel, err := c.fetchRelease(ctx, owner, repo); err == nil {
			version = rel.TagName
		}
	}
	return &docs.DocumentationArtifact{
		PackageName: name,
		Version:     version,
		Content:     content,
		Kind:        kind,
		Origin:      origin,
	}
}

func readmeOrigin(owner, repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s#readme", owner, repo)
}

func blobOrigin(owner, repo, branch, filePath string) string {
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", owner, repo, branch, filePath)
}

// readmeAt fetches the repository README at the given ref. The dedicated
// readme endpoint resolves any README naming convention server-side.
func (c *Client) readmeAt(ctx context.Context, owner, repo, ref string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/readme?ref=%s", c.apiURL, owner, repo, integrations.URLEncode(ref))
	return c.GetTextWithHeaders(ctx, url, rawAccept)
}

// FetchFileRaw retrieves the raw content of a file from a repository.
// Raw transfer avoids the base64 envelope of the JSON contents endpoint.
func (c *Client) FetchFileRaw(ctx context.Context, owner, repo, filePath, ref string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiURL, owner, repo, filePath)
	if ref != "" {
		url += "?ref=" + integrations.URLEncode(ref)
	}
	return c.GetTextWithHeaders(ctx, url, rawAccept)
}

// GetTree lists the full repository tree at the given branch in one call.
// Pass branch "" to use HEAD. The listing may be truncated for very large
// repositories; callers treat the result as best-effort.
func (c *Client) GetTree(ctx context.Context, owner, repo, branch string) ([]TreeEntry, error) {
	if branch == "" {
		branch = "HEAD"
	}
	var data treeResponse
	apiPath := fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1", owner, repo, integrations.URLEncode(branch))
	if err := c.apiGet(ctx, apiPath, &data); err != nil {
		return nil, err
	}
	return data.Tree, nil
}

// doccMarkdown returns the first markdown file inside the first DocC
// catalog directory in the tree, or "" when the repository has none.
func doccMarkdown(tree []TreeEntry) string {
	var catalog string
	for _, e := range tree {
		if e.Type == "tree" && strings.HasSuffix(e.Path, ".docc") {
			catalog = e.Path
			break
		}
	}
	if catalog == "" {
		return ""
	}
	prefix := catalog + "/"
	for _, e := range tree {
		if e.Type == "blob" && strings.HasPrefix(e.Path, prefix) && strings.HasSuffix(e.Path, ".md") {
			return e.Path
		}
	}
	return ""
}

// fallbackMarkdown returns the first markdown file that is not a README,
// or "" when the tree has none.
func fallbackMarkdown(tree []TreeEntry) string {
	for _, e := range tree {
		if e.Type != "blob" || !strings.HasSuffix(strings.ToLower(e.Path), ".md") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(path.Base(e.Path)), "readme") {
			continue
		}
		return e.Path
	}
	return ""
}

// exampleDirs are the directory names conventionally holding example code.
var exampleDirs = []string{"Examples", "Example", "examples", "Demos", "demo", "Samples", "sample", "Tests"}

var examplePatterns = compileExamplePatterns()

func compileExamplePatterns() []*glob.Pattern {
	var patterns []*glob.Pattern
	for _, dir := range exampleDirs {
		for _, ext := range []string{"swift", "md"} {
			patterns = append(patterns, glob.MustCompile(dir+"/**/*."+ext))
		}
		// Playground sources live one level inside the .playground bundle.
		patterns = append(patterns, glob.MustCompile(dir+"/**/*.playground/**/*.swift"))
	}
	return patterns
}

// FindExamples returns example code from a repository's conventional
// example directories. At most limit files are fetched; filter, when
// non-empty, keeps only paths containing it (case-insensitive).
func (c *Client) FindExamples(ctx context.Context, sourceURL, filter string, limit int) ([]docs.CodeExample, error) {
	owner, repo, err := ParseSourceURL(sourceURL)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultExampleLimit
	}

	info, err := c.fetchRepo(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	name := info.Name
	if name == "" {
		name = repo
	}

	tree, err := c.GetTree(ctx, owner, repo, info.DefaultBranch)
	if err != nil {
		return nil, err
	}

	var selected []string
	for _, e := range tree {
		if e.Type != "blob" || !matchesExample(e.Path) {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(e.Path), strings.ToLower(filter)) {
			continue
		}
		selected = append(selected, e.Path)
		if len(selected) >= limit {
			break
		}
	}

	examples := make([]docs.CodeExample, 0, len(selected))
	for _, p := range selected {
		code, err := c.FetchFileRaw(ctx, owner, repo, p, info.DefaultBranch)
		if err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				continue
			}
			return nil, err
		}
		examples = append(examples, docs.CodeExample{
			PackageName: name,
			Title:       exampleTitle(p),
			Code:        code,
			Language:    languageFor(p),
			Path:        p,
		})
	}
	return examples, nil
}

func matchesExample(p string) bool {
	for _, pattern := range examplePatterns {
		if pattern.Match(p) {
			return true
		}
	}
	return false
}

func exampleTitle(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

func languageFor(p string) string {
	switch path.Ext(p) {
	case ".swift":
		return "swift"
	case ".md", ".markdown":
		return "markdown"
	default:
		return ""
	}
}

// TreeEntry is one entry in a git tree listing.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Size int    `json:"size"`
}

type treeResponse struct {
	SHA       string      `json:"sha"`
	Tree      []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}
