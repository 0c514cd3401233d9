package manifest

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
	"github.com/swiftdocs/swiftdocs/pkg/errors"
)

// Argument extractors for one .package(...) clause. The manifest is
// never executed; dependency declarations are recovered textually.
var (
	urlArgRE      = regexp.MustCompile(`url:\s*"([^"]+)"`)
	pathArgRE     = regexp.MustCompile(`path:\s*"([^"]+)"`)
	nameArgRE     = regexp.MustCompile(`name:\s*"([^"]+)"`)
	idArgRE       = regexp.MustCompile(`id:\s*"([^"]+)"`)
	fromArgRE     = regexp.MustCompile(`from:\s*"([^"]+)"`)
	exactArgRE    = regexp.MustCompile(`exact:\s*"([^"]+)"`)
	branchArgRE   = regexp.MustCompile(`branch:\s*"([^"]+)"`)
	revisionArgRE = regexp.MustCompile(`revision:\s*"([^"]+)"`)
	rangeArgRE    = regexp.MustCompile(`"([^"]+)"\s*\.\.[.<]\s*"[^"]+"`)
)

// ParsePackageSwift extracts direct dependencies from a Package.swift
// manifest.
//
// Every .package(...) clause is scanned for its requirement arguments:
// url/path/id identify the package, from/exact/branch/revision and
// version ranges pin it. Clauses that identify no package are skipped.
func ParsePackageSwift(path string) (*docs.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest %s", path)
	}

	source := string(data)
	var deps []docs.PackageReference
	for _, clause := range packageClauses(source) {
		ref, ok := parseClause(clause)
		if !ok {
			continue
		}
		deps = append(deps, ref)
	}

	return &docs.Manifest{
		Path:         path,
		Kind:         docs.KindPackageManifest,
		Dependencies: deps,
	}, nil
}

// packageClauses returns the argument text of every .package(...) call
// in source, with nested parentheses and quoted strings respected.
func packageClauses(source string) []string {
	const marker = ".package("
	var clauses []string
	for i := 0; ; {
		j := strings.Index(source[i:], marker)
		if j < 0 {
			break
		}
		start := i + j + len(marker)
		end, ok := matchParen(source, start)
		if !ok {
			break
		}
		clauses = append(clauses, source[start:end])
		i = end
	}
	return clauses
}

// matchParen scans from just after an opening parenthesis and returns
// the index of its matching close. Parentheses inside string literals
// are ignored.
func matchParen(s string, start int) (int, bool) {
	depth := 1
	inString := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// parseClause builds a reference from the arguments of one .package
// clause. ok is false when the clause identifies no package.
func parseClause(clause string) (docs.PackageReference, bool) {
	var ref docs.PackageReference

	switch {
	case firstMatch(pathArgRE, clause) != "":
		p := firstMatch(pathArgRE, clause)
		ref.Kind = docs.KindLocalPath
		ref.URL = p
		ref.Name = filepath.Base(p)
	case firstMatch(idArgRE, clause) != "":
		id := firstMatch(idArgRE, clause)
		ref.Kind = docs.KindRegistry
		ref.Name = id
		// Registry identifiers are scope.name; the name part reads
		// better everywhere a package is displayed.
		if i := strings.LastIndex(id, "."); i >= 0 && i < len(id)-1 {
			ref.Name = id[i+1:]
		}
	case firstMatch(urlArgRE, clause) != "":
		url := firstMatch(urlArgRE, clause)
		ref.Kind = docs.KindSourceControl
		ref.URL = url
		ref.Name = nameFromURL(url)
	default:
		return docs.PackageReference{}, false
	}

	if name := firstMatch(nameArgRE, clause); name != "" {
		ref.Name = name
	}

	// Requirement: first match wins, in specificity order.
	switch {
	case firstMatch(exactArgRE, clause) != "":
		ref.Version = firstMatch(exactArgRE, clause)
	case firstMatch(fromArgRE, clause) != "":
		ref.Version = firstMatch(fromArgRE, clause)
	case firstMatch(rangeArgRE, clause) != "":
		ref.Version = firstMatch(rangeArgRE, clause)
	case firstMatch(branchArgRE, clause) != "":
		ref.Branch = firstMatch(branchArgRE, clause)
	case firstMatch(revisionArgRE, clause) != "":
		ref.Revision = firstMatch(revisionArgRE, clause)
	}

	return ref, true
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}
