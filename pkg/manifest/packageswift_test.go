package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParsePackageSwift(t *testing.T) {
	content := `// swift-tools-version:5.9
import PackageDescription

let package = Package(
    name: "MyApp",
    platforms: [.macOS(.v13)],
    dependencies: [
        .package(url: "https://github.com/Alamofire/Alamofire.git", from: "5.8.0"),
        .package(url: "https://github.com/apple/swift-argument-parser", exact: "1.3.0"),
        .package(url: "https://github.com/vapor/vapor.git", .upToNextMajor(from: "4.92.0")),
        .package(url: "https://github.com/apple/swift-nio.git", .upToNextMinor(from: "2.62.0")),
        .package(url: "https://github.com/apple/swift-log.git", "1.0.0"..<"2.0.0"),
        .package(url: "https://github.com/pointfreeco/swift-snapshot-testing", branch: "main"),
        .package(url: "https://github.com/realm/SwiftLint", revision: "f17a4f9dfb6a6afb0408426354e4180daaf49cee"),
        .package(name: "Nimble", url: "https://github.com/Quick/Nimble.git", from: "13.0.0"),
        .package(path: "../LocalKit"),
        .package(id: "mona.LinkedList", from: "1.1.0"),
    ],
    targets: [
        .target(name: "MyApp", dependencies: [
            .product(name: "Alamofire", package: "Alamofire"),
        ]),
    ]
)
`
	path := writeManifest(t, t.TempDir(), PackageSwiftName, content)

	m, err := ParsePackageSwift(path)
	if err != nil {
		t.Fatalf("ParsePackageSwift() failed: %v", err)
	}
	if m.Kind != docs.KindPackageManifest {
		t.Errorf("Kind = %q, want %q", m.Kind, docs.KindPackageManifest)
	}
	if len(m.Dependencies) != 10 {
		t.Fatalf("got %d dependencies, want 10: %+v", len(m.Dependencies), m.Dependencies)
	}

	want := []docs.PackageReference{
		{Name: "Alamofire", URL: "https://github.com/Alamofire/Alamofire.git", Version: "5.8.0", Kind: docs.KindSourceControl},
		{Name: "swift-argument-parser", URL: "https://github.com/apple/swift-argument-parser", Version: "1.3.0", Kind: docs.KindSourceControl},
		{Name: "vapor", URL: "https://github.com/vapor/vapor.git", Version: "4.92.0", Kind: docs.KindSourceControl},
		{Name: "swift-nio", URL: "https://github.com/apple/swift-nio.git", Version: "2.62.0", Kind: docs.KindSourceControl},
		{Name: "swift-log", URL: "https://github.com/apple/swift-log.git", Version: "1.0.0", Kind: docs.KindSourceControl},
		{Name: "swift-snapshot-testing", URL: "https://github.com/pointfreeco/swift-snapshot-testing", Branch: "main", Kind: docs.KindSourceControl},
		{Name: "SwiftLint", URL: "https://github.com/realm/SwiftLint", Revision: "f17a4f9dfb6a6afb0408426354e4180daaf49cee", Kind: docs.KindSourceControl},
		{Name: "Nimble", URL: "https://github.com/Quick/Nimble.git", Version: "13.0.0", Kind: docs.KindSourceControl},
		{Name: "LocalKit", URL: "../LocalKit", Kind: docs.KindLocalPath},
		{Name: "LinkedList", Version: "1.1.0", Kind: docs.KindRegistry},
	}

	for i, w := range want {
		got := m.Dependencies[i]
		if got != w {
			t.Errorf("dependency %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestParsePackageSwift_NoDependencies(t *testing.T) {
	content := `// swift-tools-version:5.9
import PackageDescription

let package = Package(
    name: "Standalone",
    targets: [.target(name: "Standalone")]
)
`
	path := writeManifest(t, t.TempDir(), PackageSwiftName, content)

	m, err := ParsePackageSwift(path)
	if err != nil {
		t.Fatalf("ParsePackageSwift() failed: %v", err)
	}
	if len(m.Dependencies) != 0 {
		t.Errorf("got %d dependencies, want 0", len(m.Dependencies))
	}
}

func TestParsePackageSwift_MissingFile(t *testing.T) {
	_, err := ParsePackageSwift(filepath.Join(t.TempDir(), PackageSwiftName))
	if err == nil {
		t.Fatal("ParsePackageSwift() on missing file should fail")
	}
}

func TestNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/Alamofire/Alamofire.git", "Alamofire"},
		{"https://github.com/apple/swift-nio", "swift-nio"},
		{"https://github.com/vapor/vapor.git/", "vapor"},
		{"git@github.com:Quick/Nimble.git", "Nimble"},
		{"plainname", "plainname"},
	}
	for _, tt := range tests {
		if got := nameFromURL(tt.url); got != tt.want {
			t.Errorf("nameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
