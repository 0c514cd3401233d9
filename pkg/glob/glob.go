// Package glob compiles simple glob patterns for matching repository paths.
//
// Patterns are built from three tokens:
//
//   - literal text, matched exactly ("." has no special meaning)
//   - "*", matching any run of characters except "/"
//   - "**", matching any run of characters including "/"
//
// A "**/" sequence matches zero or more whole path segments, so
// "Examples/**/*.swift" covers both "Examples/Foo.swift" and
// "Examples/Networking/Foo.swift".
//
// Patterns are compiled once into an anchored regular expression with
// all literal text quoted, so path strings from untrusted repositories
// are never evaluated as regex syntax.
package glob

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled glob pattern.
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

// Compile parses a glob pattern into a matcher.
func Compile(pattern string) (*Pattern, error) {
	if pattern == "" {
		return nil, errors.New("empty pattern")
	}

	var sb strings.Builder
	sb.WriteString("^")
	for i := 0; i < len(pattern); {
		switch {
		case strings.HasPrefix(pattern[i:], "**/"):
			// Zero or more whole path segments.
			sb.WriteString(`(?:[^/]*/)*`)
			i += 3
		case strings.HasPrefix(pattern[i:], "**"):
			sb.WriteString(`.*`)
			i += 2
		case pattern[i] == '*':
			sb.WriteString(`[^/]*`)
			i++
		default:
			j := i
			for j < len(pattern) && pattern[j] != '*' {
				j++
			}
			sb.WriteString(regexp.QuoteMeta(pattern[i:j]))
			i = j
		}
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return &Pattern{raw: pattern, re: re}, nil
}

// MustCompile is like [Compile] but panics on error.
// Use for patterns known at compile time.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether path matches the pattern.
// The whole path must match; there is no partial matching.
func (p *Pattern) Match(path string) bool {
	return p.re.MatchString(path)
}

// String returns the original pattern text.
func (p *Pattern) String() string { return p.raw }
