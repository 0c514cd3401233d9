package summarize

import (
	"testing"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

func swiftExample(code string) docs.CodeExample {
	return docs.CodeExample{PackageName: "swift-log", Code: code, Language: "swift"}
}

func TestExtractPatternsImportsAndInstantiations(t *testing.T) {
	examples := []docs.CodeExample{
		swiftExample("import Logging\n\nlet logger = Logger(label: \"com.example.app\")\nlogger.info(\"Hello\")\n"),
		swiftExample("import Logging\nimport Foundation\n\nlet logger = Logger(label: \"worker\")\nlet url = URL(string: \"https://example.com\")!\n"),
	}

	patterns := ExtractPatterns(examples)
	want := []struct {
		kind        PatternKind
		name        string
		occurrences int
	}{
		{PatternImport, "Logging", 2},
		{PatternImport, "Foundation", 1},
		{PatternInstantiation, "Logger", 2},
	}
	if len(patterns) != len(want) {
		t.Fatalf("patterns = %+v, want %d entries", patterns, len(want))
	}
	for i, w := range want {
		got := patterns[i]
		if got.Kind != w.kind || got.Name != w.name || got.Occurrences != w.occurrences {
			t.Errorf("patterns[%d] = %+v, want %+v", i, got, w)
		}
	}
	// The snippet is the first line the pattern was seen on.
	if patterns[2].Snippet != `let logger = Logger(label: "com.example.app")` {
		t.Errorf("Snippet = %q, want first sighting", patterns[2].Snippet)
	}
}

func TestExtractPatternsStaticCallsAreNotInstantiations(t *testing.T) {
	examples := []docs.CodeExample{
		swiftExample("LoggingSystem.bootstrap(StreamLogHandler.standardOutput)\n"),
	}

	if patterns := ExtractPatterns(examples); patterns != nil {
		t.Errorf("patterns = %+v, want none for method calls on types", patterns)
	}
}

func TestExtractPatternsSkipsBuiltins(t *testing.T) {
	examples := []docs.CodeExample{
		swiftExample("let s = String(describing: x)\nlet u = URL(string: \"x\")\nlet r = Request(url: u)\n"),
	}

	patterns := ExtractPatterns(examples)
	if len(patterns) != 1 {
		t.Fatalf("patterns = %+v, want only the package type", patterns)
	}
	if patterns[0].Name != "Request" || patterns[0].Kind != PatternInstantiation {
		t.Errorf("patterns[0] = %+v, want Request instantiation", patterns[0])
	}
}

func TestExtractPatternsSkipsComments(t *testing.T) {
	examples := []docs.CodeExample{
		swiftExample("// let logger = Logger(label: \"docs\")\n"),
	}

	if patterns := ExtractPatterns(examples); patterns != nil {
		t.Errorf("patterns = %+v, want commented code ignored", patterns)
	}
}

func TestExtractPatternsTestableImport(t *testing.T) {
	examples := []docs.CodeExample{
		swiftExample("@testable import MyLibrary\n"),
	}

	patterns := ExtractPatterns(examples)
	if len(patterns) != 1 || patterns[0].Name != "MyLibrary" {
		t.Fatalf("patterns = %+v, want the testable import's module", patterns)
	}
	if patterns[0].Snippet != "import MyLibrary" {
		t.Errorf("Snippet = %q, want normalized import line", patterns[0].Snippet)
	}
}

func TestExtractPatternsSubmoduleImportKeepsModule(t *testing.T) {
	examples := []docs.CodeExample{
		swiftExample("import class Foundation.NSDate\n"),
	}

	patterns := ExtractPatterns(examples)
	if len(patterns) != 1 || patterns[0].Name != "Foundation" {
		t.Fatalf("patterns = %+v, want the top-level module", patterns)
	}
}

func TestExtractPatternsTiesKeepDiscoveryOrder(t *testing.T) {
	examples := []docs.CodeExample{
		swiftExample("let a = Beta(x: 1)\nlet b = Alpha(y: 2)\n"),
	}

	patterns := ExtractPatterns(examples)
	if len(patterns) != 2 {
		t.Fatalf("patterns = %+v, want two entries", patterns)
	}
	if patterns[0].Name != "Beta" || patterns[1].Name != "Alpha" {
		t.Errorf("order = [%s %s], want discovery order on equal counts",
			patterns[0].Name, patterns[1].Name)
	}
}

func TestExtractPatternsEmpty(t *testing.T) {
	if patterns := ExtractPatterns(nil); patterns != nil {
		t.Errorf("patterns = %+v, want nil for no examples", patterns)
	}
}
