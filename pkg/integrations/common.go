package integrations

import (
	"net/url"
	"strings"

	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
)

var (
	// ErrNotFound is returned when a package or resource doesn't exist upstream.
	ErrNotFound = apperrors.New(apperrors.ErrCodeNotFound, "resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = apperrors.New(apperrors.ErrCodeNetwork, "network error")
)

// NormalizePkgName converts a package name to its canonical identity form.
// SwiftPM package identities are compared case-insensitively, so this applies
// lowercase and trims surrounding whitespace.
func NormalizePkgName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
)

// NormalizeRepoURL converts various repository URL formats to canonical HTTPS form.
// Handles git@, git://, and git+ prefixes, and removes .git suffixes and
// trailing slashes. Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	return strings.TrimSuffix(strings.TrimSuffix(s, "/"), ".git")
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
