// Package manifest reads dependency declarations from Swift projects.
//
// Two formats are supported:
//
//   - Package.swift, the SwiftPM manifest. Dependencies are extracted
//     from .package(...) clauses without executing the manifest.
//   - Package.resolved, the SwiftPM lockfile (versions 1 and 2+). When
//     present it is preferred: it pins exact versions and needs no
//     interpretation of manifest syntax.
//
// Both produce a [docs.Manifest] with a flat list of direct dependency
// references.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
	"github.com/swiftdocs/swiftdocs/pkg/errors"
)

// Well-known manifest file names.
const (
	PackageSwiftName    = "Package.swift"
	PackageResolvedName = "Package.resolved"
)

// Locate finds the dependency source for a project directory. The
// lockfile is preferred over the manifest because it carries pinned
// versions. Returns InvalidManifest when the directory holds neither.
func Locate(projectPath string) (string, docs.ManifestKind, error) {
	resolved := filepath.Join(projectPath, PackageResolvedName)
	if fileExists(resolved) {
		return resolved, docs.KindLockfile, nil
	}
	manifest := filepath.Join(projectPath, PackageSwiftName)
	if fileExists(manifest) {
		return manifest, docs.KindPackageManifest, nil
	}
	return "", "", errors.New(errors.ErrCodeInvalidManifest,
		"no Package.swift or Package.resolved in %s", projectPath)
}

// ParseProject locates and parses the dependency source for a project
// directory.
func ParseProject(projectPath string) (*docs.Manifest, error) {
	path, kind, err := Locate(projectPath)
	if err != nil {
		return nil, err
	}
	switch kind {
	case docs.KindLockfile:
		return ParseLockfile(path)
	default:
		return ParsePackageSwift(path)
	}
}

// ParseFile parses a single manifest or lockfile by its file name.
func ParseFile(path string) (*docs.Manifest, error) {
	switch filepath.Base(path) {
	case PackageResolvedName:
		return ParseLockfile(path)
	case PackageSwiftName:
		return ParsePackageSwift(path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidManifest,
			"unsupported manifest: %s", filepath.Base(path))
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// nameFromURL derives a package name from a repository URL: the last
// path component with any .git suffix removed.
func nameFromURL(url string) string {
	u := strings.TrimSpace(url)
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, ".git")
	if i := strings.LastIndexAny(u, "/:"); i >= 0 {
		u = u[i+1:]
	}
	return u
}
