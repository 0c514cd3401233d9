package glob

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		// Single star stops at path separators.
		{"Examples/*.swift", "Examples/Foo.swift", true},
		{"Examples/*.swift", "Examples/sub/Foo.swift", false},
		{"Examples/*.swift", "Examples/.swift", true},
		{"Examples/*.swift", "Other/Foo.swift", false},

		// Double star crosses path separators.
		{"Examples/**/*.swift", "Examples/Foo.swift", true},
		{"Examples/**/*.swift", "Examples/sub/Foo.swift", true},
		{"Examples/**/*.swift", "Examples/a/b/c/Foo.swift", true},
		{"Examples/**/*.swift", "Examples/Foo.md", false},
		{"Examples/**/*.swift", "Sources/Foo.swift", false},

		// Bare double star.
		{"Tests/**", "Tests/FooTests.swift", true},
		{"Tests/**", "Tests/Unit/BarTests.swift", true},
		{"Tests/**", "Sources/Foo.swift", false},

		// Leading double star.
		{"**/*.md", "README.md", true},
		{"**/*.md", "docs/guide.md", true},
		{"**/*.md", "docs/deep/nested/guide.md", true},
		{"**/*.md", "docs/guide.txt", false},

		// Literals are exact; dots are not wildcards.
		{"Package.swift", "Package.swift", true},
		{"Package.swift", "PackageXswift", false},
		{"Package.swift", "Sources/Package.swift", false},

		// Whole-path anchoring.
		{"*.swift", "Foo.swift", true},
		{"*.swift", "Foo.swift.bak", false},
		{"*.swift", "dir/Foo.swift", false},

		// Playground bundles.
		{"Examples/**/*.playground", "Examples/Intro.playground", true},
		{"Examples/**/*.playground", "Examples/Basics/Intro.playground", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.path, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.pattern, err)
			}
			if got := p.Match(tt.path); got != tt.want {
				t.Errorf("Match(%q) against %q = %v, want %v", tt.path, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestCompile_EmptyPattern(t *testing.T) {
	if _, err := Compile(""); err == nil {
		t.Error("Compile(\"\") should fail")
	}
}

func TestCompile_QuotesRegexMetacharacters(t *testing.T) {
	// Pattern text that looks like regex syntax must be treated
	// literally.
	p, err := Compile("a+b(c)[d]")
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}
	if !p.Match("a+b(c)[d]") {
		t.Error("literal metacharacters should match themselves")
	}
	if p.Match("aab(c)[d]") {
		t.Error("'+' must not act as a regex quantifier")
	}
}

func TestMustCompile_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile(\"\") should panic")
		}
	}()
	MustCompile("")
}

func TestPattern_String(t *testing.T) {
	p := MustCompile("Examples/*.swift")
	if p.String() != "Examples/*.swift" {
		t.Errorf("String() = %q, want %q", p.String(), "Examples/*.swift")
	}
}
