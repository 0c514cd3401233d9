package summarize

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

// Summary condenses one documentation artifact into the pieces a
// terminal or API listing can show without the full text.
type Summary struct {
	PackageName string   `json:"package_name"`
	Headline    string   `json:"headline"`
	Abstract    string   `json:"abstract,omitempty"`
	Sections    []string `json:"sections,omitempty"`
}

// Summarize condenses a documentation artifact. The headline is the
// first heading (or the first sentence when the document has no
// headings, or the package name when there is no content), the
// abstract is the first real paragraph, and Sections lists the
// remaining heading titles in document order. Returns nil for a nil
// artifact.
func Summarize(artifact *docs.DocumentationArtifact) *Summary {
	if artifact == nil {
		return nil
	}
	s := &Summary{PackageName: artifact.PackageName, Headline: artifact.PackageName}
	blocks := parseBlocks(artifact.Content)

	headline := -1
	for i, b := range blocks {
		if b.level > 0 {
			headline = i
			break
		}
	}

	if headline >= 0 {
		s.Headline = blocks[headline].text
		for _, b := range blocks[headline+1:] {
			if b.level > 0 {
				s.Sections = append(s.Sections, b.text)
			} else if s.Abstract == "" {
				s.Abstract = b.text
			}
		}
		return s
	}

	// Heading-less document: the first sentence stands in for the
	// headline and the rest becomes the abstract.
	if len(blocks) > 0 {
		first := blocks[0].text
		s.Headline = firstSentence(first)
		if rest := strings.TrimSpace(strings.TrimPrefix(first, s.Headline)); rest != "" {
			s.Abstract = rest
		} else if len(blocks) > 1 {
			s.Abstract = blocks[1].text
		}
	}
	return s
}

var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)
	imagePattern   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	rulePattern    = regexp.MustCompile(`^[=\-_*]{3,}$`)
)

// block is one unit of a markdown document: a heading (level 1-6) or a
// paragraph (level 0) with inline markup already stripped.
type block struct {
	level int
	text  string
}

// parseBlocks splits markdown into heading and paragraph blocks.
// Fenced code, lists, tables, quotes, and horizontal rules are
// dropped; so is anything that cleans down to nothing, which is how
// badge rows and raw HTML disappear.
func parseBlocks(content string) []block {
	var blocks []block
	var para []string
	flush := func() {
		if len(para) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(para, " "))
		para = para[:0]
		if text != "" {
			blocks = append(blocks, block{text: text})
		}
	}

	inFence := false
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			flush()
			continue
		}
		if inFence {
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
			flush()
			if title := cleanInline(m[2]); title != "" {
				blocks = append(blocks, block{level: len(m[1]), text: title})
			}
			continue
		}
		if skipLine(trimmed) {
			flush()
			continue
		}
		if cleaned := cleanInline(trimmed); cleaned != "" {
			para = append(para, cleaned)
		}
	}
	flush()
	return blocks
}

// skipLine reports whether a line belongs to a structure that never
// feeds the abstract: lists, quotes, tables, and rules.
func skipLine(trimmed string) bool {
	for _, prefix := range []string{"- ", "* ", "+ ", "> ", "|"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return rulePattern.MatchString(trimmed)
}

// cleanInline strips inline markdown and HTML, keeping link text.
func cleanInline(s string) string {
	s = imagePattern.ReplaceAllString(s, "")
	s = linkPattern.ReplaceAllString(s, "$1")
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = strings.NewReplacer("`", "", "**", "", "*", "").Replace(s)
	return strings.TrimSpace(s)
}

// firstSentence cuts text at the first sentence boundary.
func firstSentence(text string) string {
	if i := strings.Index(text, ". "); i >= 0 {
		return text[:i+1]
	}
	return text
}
