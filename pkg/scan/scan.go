package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

// buildTriples are the target-triple subdirectories SwiftPM creates
// under .build for cross-configuration builds.
var buildTriples = []string{
	"arm64-apple-macosx",
	"x86_64-apple-macosx",
	"x86_64-unknown-linux-gnu",
}

// buildConfigs are the build-configuration directories that may hold
// generated DocC archives.
var buildConfigs = []string{"debug", "release"}

// Scanner locates documentation for a package on the local filesystem.
// It holds no mutable state and is safe for concurrent use.
type Scanner struct {
	// homeDir anchors the Xcode DerivedData search. Empty disables
	// that tier.
	homeDir string
	// cacheDir anchors the SwiftPM repository-cache search. Empty
	// disables that tier.
	cacheDir string
}

// NewScanner creates a Scanner rooted at the current user's home and
// cache directories. Either lookup failing disables the corresponding
// search tier rather than erroring.
func NewScanner() *Scanner {
	s := &Scanner{}
	if home, err := os.UserHomeDir(); err == nil {
		s.homeDir = home
	}
	if dir, err := os.UserCacheDir(); err == nil {
		s.cacheDir = dir
	}
	return s
}

// FindLocalDocumentation searches known local directories for
// documentation belonging to packageName. projectPath points at the
// Swift project whose .build directory should be searched; it may be
// empty, which skips the project-relative tiers.
//
// The tiers are tried in order and the first hit wins: SwiftPM
// dependency checkouts, build-artifact DocC archives, the process-wide
// SwiftPM clone cache, then Xcode DerivedData products. A miss at
// every tier returns (nil, nil); absence of local documentation is an
// expected outcome, not an error. Unreadable entries are skipped.
func (s *Scanner) FindLocalDocumentation(ctx context.Context, packageName, projectPath string) (*docs.DocumentationArtifact, error) {
	name := strings.TrimSpace(packageName)
	if name == "" {
		return nil, nil
	}

	tiers := []func(name, projectPath string) *docs.DocumentationArtifact{
		s.scanCheckouts,
		s.scanBuildArtifacts,
		s.scanCloneCache,
		s.scanDerivedData,
	}
	for _, tier := range tiers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if artifact := tier(name, projectPath); artifact != nil {
			return artifact, nil
		}
	}
	return nil, nil
}

// scanCheckouts searches <project>/.build/checkouts for a dependency
// checkout named after the package. Exact directory-name matches are
// tried before case-insensitive substring matches, and a candidate
// that yields no content falls through to the next. Directory entries
// arrive in lexical order, so the result is deterministic.
func (s *Scanner) scanCheckouts(name, projectPath string) *docs.DocumentationArtifact {
	if projectPath == "" {
		return nil
	}
	checkouts := filepath.Join(projectPath, ".build", "checkouts")
	entries, err := os.ReadDir(checkouts)
	if err != nil {
		return nil
	}

	var fallbacks []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.EqualFold(entry.Name(), name) {
			if artifact := artifactFromDir(name, filepath.Join(checkouts, entry.Name())); artifact != nil {
				return artifact
			}
		} else if containsFold(entry.Name(), name) {
			fallbacks = append(fallbacks, entry.Name())
		}
	}
	for _, dir := range fallbacks {
		if artifact := artifactFromDir(name, filepath.Join(checkouts, dir)); artifact != nil {
			return artifact
		}
	}
	return nil
}

// scanBuildArtifacts looks for a generated <Package>.doccarchive under
// the project's build-product directories, covering both the plain
// debug/release layout and the per-triple layout.
func (s *Scanner) scanBuildArtifacts(name, projectPath string) *docs.DocumentationArtifact {
	if projectPath == "" {
		return nil
	}
	build := filepath.Join(projectPath, ".build")

	roots := make([]string, 0, len(buildConfigs)*(len(buildTriples)+1))
	for _, config := range buildConfigs {
		roots = append(roots, filepath.Join(build, config))
	}
	for _, triple := range buildTriples {
		for _, config := range buildConfigs {
			roots = append(roots, filepath.Join(build, triple, config))
		}
	}

	for _, root := range roots {
		if archive := findArchive(root, name); archive != "" {
			if artifact := doccArchiveArtifact(name, archive); artifact != nil {
				return artifact
			}
		}
	}
	return nil
}

// scanCloneCache searches the process-wide SwiftPM repository cache,
// where clones are stored as <package>-<hash> directories.
func (s *Scanner) scanCloneCache(name, _ string) *docs.DocumentationArtifact {
	if s.cacheDir == "" {
		return nil
	}
	repos := filepath.Join(s.cacheDir, "org.swift.swiftpm", "repositories")
	entries, err := os.ReadDir(repos)
	if err != nil {
		return nil
	}

	prefix := strings.ToLower(name) + "-"
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(strings.ToLower(entry.Name()), prefix) {
			if artifact := artifactFromDir(name, filepath.Join(repos, entry.Name())); artifact != nil {
				return artifact
			}
		}
	}
	return nil
}

// scanDerivedData searches Xcode DerivedData build products for a
// generated <Package>.doccarchive.
func (s *Scanner) scanDerivedData(name, _ string) *docs.DocumentationArtifact {
	if s.homeDir == "" {
		return nil
	}
	pattern := filepath.Join(s.homeDir, "Library", "Developer", "Xcode", "DerivedData", "*", "Build", "Products", "*")
	products, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}

	for _, dir := range products {
		if archive := findArchive(dir, name); archive != "" {
			if artifact := doccArchiveArtifact(name, archive); artifact != nil {
				return artifact
			}
		}
	}
	return nil
}

// findArchive returns the path of <name>.doccarchive inside dir, or ""
// when the directory is missing or holds no matching archive. An exact
// name is checked first, then a case-insensitive directory listing.
func findArchive(dir, name string) string {
	want := name + ".doccarchive"

	exact := filepath.Join(dir, want)
	if info, err := os.Stat(exact); err == nil && info.IsDir() {
		return exact
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() && strings.EqualFold(entry.Name(), want) {
			return filepath.Join(dir, entry.Name())
		}
	}
	return ""
}

// containsFold reports whether name contains needle, ignoring case.
func containsFold(name, needle string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(needle))
}
