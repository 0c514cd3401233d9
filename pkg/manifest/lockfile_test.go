package manifest

import (
	"path/filepath"
	"testing"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
)

func TestParseLockfile_V1(t *testing.T) {
	content := `{
  "object": {
    "pins": [
      {
        "package": "Alamofire",
        "repositoryURL": "https://github.com/Alamofire/Alamofire.git",
        "state": {
          "branch": null,
          "revision": "f82c23a8a7ef8dc1c49a8a419a0701781525db1b",
          "version": "5.4.4"
        }
      },
      {
        "package": "SwiftyJSON",
        "repositoryURL": "https://github.com/SwiftyJSON/SwiftyJSON.git",
        "state": {
          "branch": "master",
          "revision": "b3dcd7dbd0d488e1a7077cb33b00f2083e382f07",
          "version": null
        }
      }
    ]
  },
  "version": 1
}`
	path := writeManifest(t, t.TempDir(), PackageResolvedName, content)

	m, err := ParseLockfile(path)
	if err != nil {
		t.Fatalf("ParseLockfile() failed: %v", err)
	}
	if m.Kind != docs.KindLockfile {
		t.Errorf("Kind = %q, want %q", m.Kind, docs.KindLockfile)
	}
	if len(m.Dependencies) != 2 {
		t.Fatalf("got %d dependencies, want 2", len(m.Dependencies))
	}

	first := m.Dependencies[0]
	if first.Name != "Alamofire" || first.Version != "5.4.4" || first.Kind != docs.KindSourceControl {
		t.Errorf("first pin = %+v, want Alamofire 5.4.4 source-control", first)
	}

	second := m.Dependencies[1]
	if second.Name != "SwiftyJSON" || second.Branch != "master" || second.Version != "" {
		t.Errorf("second pin = %+v, want SwiftyJSON branch master", second)
	}
}

func TestParseLockfile_V2(t *testing.T) {
	content := `{
  "pins": [
    {
      "identity": "swift-nio",
      "kind": "remoteSourceControl",
      "location": "https://github.com/apple/swift-nio.git",
      "state": {
        "revision": "fc79798d5a150d61361a27ce0c51169b889e23de",
        "version": "2.62.0"
      }
    },
    {
      "identity": "localkit",
      "kind": "localSourceControl",
      "location": "/Users/dev/LocalKit",
      "state": {
        "revision": "0000000000000000000000000000000000000000"
      }
    }
  ],
  "version": 2
}`
	path := writeManifest(t, t.TempDir(), PackageResolvedName, content)

	m, err := ParseLockfile(path)
	if err != nil {
		t.Fatalf("ParseLockfile() failed: %v", err)
	}
	if len(m.Dependencies) != 2 {
		t.Fatalf("got %d dependencies, want 2", len(m.Dependencies))
	}

	first := m.Dependencies[0]
	if first.Name != "swift-nio" {
		t.Errorf("Name = %q, want %q", first.Name, "swift-nio")
	}
	if first.URL != "https://github.com/apple/swift-nio.git" {
		t.Errorf("URL = %q, want repository location", first.URL)
	}
	if first.Version != "2.62.0" {
		t.Errorf("Version = %q, want %q", first.Version, "2.62.0")
	}
	if first.Revision != "" {
		t.Error("Revision should be empty when a version is pinned")
	}

	second := m.Dependencies[1]
	if second.Kind != docs.KindLocalPath {
		t.Errorf("Kind = %q, want %q", second.Kind, docs.KindLocalPath)
	}
	if second.Name != "LocalKit" {
		t.Errorf("Name = %q, want %q", second.Name, "LocalKit")
	}
}

func TestParseLockfile_Invalid(t *testing.T) {
	path := writeManifest(t, t.TempDir(), PackageResolvedName, "{broken")
	if _, err := ParseLockfile(path); err == nil {
		t.Fatal("ParseLockfile() on invalid JSON should fail")
	}
}

func TestLocate(t *testing.T) {
	t.Run("prefersLockfile", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, PackageSwiftName, "// manifest")
		writeManifest(t, dir, PackageResolvedName, `{"pins": [], "version": 2}`)

		path, kind, err := Locate(dir)
		if err != nil {
			t.Fatalf("Locate() failed: %v", err)
		}
		if kind != docs.KindLockfile {
			t.Errorf("kind = %q, want %q", kind, docs.KindLockfile)
		}
		if filepath.Base(path) != PackageResolvedName {
			t.Errorf("path = %q, want %s", path, PackageResolvedName)
		}
	})

	t.Run("fallsBackToManifest", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, PackageSwiftName, "// manifest")

		_, kind, err := Locate(dir)
		if err != nil {
			t.Fatalf("Locate() failed: %v", err)
		}
		if kind != docs.KindPackageManifest {
			t.Errorf("kind = %q, want %q", kind, docs.KindPackageManifest)
		}
	})

	t.Run("neitherPresent", func(t *testing.T) {
		if _, _, err := Locate(t.TempDir()); err == nil {
			t.Fatal("Locate() on empty dir should fail")
		}
	})
}

func TestParseProject_UsesLockfilePins(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, PackageSwiftName, `
let package = Package(
    dependencies: [.package(url: "https://github.com/Alamofire/Alamofire.git", from: "5.0.0")]
)
`)
	writeManifest(t, dir, PackageResolvedName, `{
  "pins": [
    {
      "identity": "alamofire",
      "kind": "remoteSourceControl",
      "location": "https://github.com/Alamofire/Alamofire.git",
      "state": {"revision": "abc", "version": "5.8.1"}
    }
  ],
  "version": 2
}`)

	m, err := ParseProject(dir)
	if err != nil {
		t.Fatalf("ParseProject() failed: %v", err)
	}
	if m.Kind != docs.KindLockfile {
		t.Errorf("Kind = %q, want lockfile fast path", m.Kind)
	}
	if len(m.Dependencies) != 1 || m.Dependencies[0].Version != "5.8.1" {
		t.Errorf("Dependencies = %+v, want pinned 5.8.1", m.Dependencies)
	}
}

func TestParseFile_UnsupportedName(t *testing.T) {
	if _, err := ParseFile("/tmp/Cargo.toml"); err == nil {
		t.Fatal("ParseFile() on unsupported name should fail")
	}
}
