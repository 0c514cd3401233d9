package summarize

import (
	"bufio"
	"regexp"
	"sort"
	"strings"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

// PatternKind classifies a mined usage pattern.
type PatternKind string

const (
	// PatternImport is a module import statement.
	PatternImport PatternKind = "import"
	// PatternInstantiation is a type initializer call.
	PatternInstantiation PatternKind = "instantiation"
)

// UsagePattern is one recurring construct mined from example code.
// Name is the imported module or instantiated type; Snippet is the
// first line the pattern was seen on.
type UsagePattern struct {
	Kind        PatternKind `json:"kind"`
	Name        string      `json:"name"`
	Snippet     string      `json:"snippet"`
	Occurrences int         `json:"occurrences"`
}

var (
	importPattern = regexp.MustCompile(`^\s*(?:@testable\s+)?import\s+(?:(?:class|struct|enum|protocol|typealias|func|let|var)\s+)?([A-Za-z_][A-Za-z0-9_]*)`)
	initPattern   = regexp.MustCompile(`\b([A-Z][A-Za-z0-9_]*)\s*\(`)
)

// builtinTypes are Swift standard-library and Foundation names whose
// initializer calls say nothing about how a package is used.
var builtinTypes = map[string]bool{
	"String": true, "Int": true, "Double": true, "Float": true, "Bool": true,
	"Array": true, "Set": true, "Dictionary": true, "Character": true,
	"Data": true, "Date": true, "URL": true, "UUID": true,
	"Optional": true, "Result": true, "Task": true,
}

// ExtractPatterns mines example code for usage patterns: module
// imports and type instantiations. Matching is heuristic and line
// oriented; in Swift an initial-uppercase call is almost always an
// initializer, so that is what the instantiation pattern keys on,
// with standard-library types filtered out. Patterns are deduplicated
// by name, counted across all examples, and returned imports first,
// each group ordered by occurrence count with ties keeping discovery
// order.
func ExtractPatterns(examples []docs.CodeExample) []UsagePattern {
	seen := make(map[string]*UsagePattern)
	var ordered []*UsagePattern

	record := func(kind PatternKind, name, snippet string) {
		key := string(kind) + ":" + name
		if p, ok := seen[key]; ok {
			p.Occurrences++
			return
		}
		p := &UsagePattern{Kind: kind, Name: name, Snippet: snippet, Occurrences: 1}
		seen[key] = p
		ordered = append(ordered, p)
	}

	for _, example := range examples {
		scanner := bufio.NewScanner(strings.NewReader(example.Code))
		for scanner.Scan() {
			line := scanner.Text()
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "//") {
				continue
			}
			if m := importPattern.FindStringSubmatch(line); m != nil {
				record(PatternImport, m[1], "import "+m[1])
				continue
			}
			for _, m := range initPattern.FindAllStringSubmatch(line, -1) {
				if builtinTypes[m[1]] {
					continue
				}
				record(PatternInstantiation, m[1], trimmed)
			}
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Kind != ordered[j].Kind {
			return ordered[i].Kind == PatternImport
		}
		return ordered[i].Occurrences > ordered[j].Occurrences
	})

	if len(ordered) == 0 {
		return nil
	}
	out := make([]UsagePattern, len(ordered))
	for i, p := range ordered {
		out[i] = *p
	}
	return out
}
