package manifest

import (
	"encoding/json"
	"os"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
	"github.com/swiftdocs/swiftdocs/pkg/errors"
)

// lockFile covers both Package.resolved layouts. Version 1 nests the
// pins under "object"; version 2 and later put them at the top level.
type lockFile struct {
	Version int       `json:"version"`
	Pins    []lockPin `json:"pins"`
	Object  *struct {
		Pins []lockPinV1 `json:"pins"`
	} `json:"object"`
}

// lockPin is a version 2+ pin entry.
type lockPin struct {
	Identity string   `json:"identity"`
	Kind     string   `json:"kind"`
	Location string   `json:"location"`
	State    pinState `json:"state"`
}

// lockPinV1 is a version 1 pin entry.
type lockPinV1 struct {
	Package       string   `json:"package"`
	RepositoryURL string   `json:"repositoryURL"`
	State         pinState `json:"state"`
}

type pinState struct {
	Version  string `json:"version"`
	Branch   string `json:"branch"`
	Revision string `json:"revision"`
}

// ParseLockfile reads a Package.resolved lockfile in either layout.
func ParseLockfile(path string) (*docs.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read lockfile %s", path)
	}

	var lock lockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse lockfile %s", path)
	}

	var deps []docs.PackageReference
	switch {
	case lock.Object != nil:
		for _, pin := range lock.Object.Pins {
			deps = append(deps, pinV1Reference(pin))
		}
	default:
		for _, pin := range lock.Pins {
			deps = append(deps, pinReference(pin))
		}
	}

	return &docs.Manifest{
		Path:         path,
		Kind:         docs.KindLockfile,
		Dependencies: deps,
	}, nil
}

func pinV1Reference(pin lockPinV1) docs.PackageReference {
	ref := docs.PackageReference{
		Name: pin.Package,
		URL:  pin.RepositoryURL,
		Kind: docs.KindSourceControl,
	}
	if ref.Name == "" {
		ref.Name = nameFromURL(pin.RepositoryURL)
	}
	applyState(&ref, pin.State)
	return ref
}

func pinReference(pin lockPin) docs.PackageReference {
	ref := docs.PackageReference{
		Name: nameFromURL(pin.Location),
		URL:  pin.Location,
		Kind: docs.KindSourceControl,
	}
	switch pin.Kind {
	case "localSourceControl":
		ref.Kind = docs.KindLocalPath
	case "registry":
		ref.Kind = docs.KindRegistry
		ref.URL = ""
	}
	if ref.Name == "" {
		ref.Name = pin.Identity
	}
	applyState(&ref, pin.State)
	return ref
}

// applyState picks the single strongest requirement from a pin state:
// version, then branch, then revision.
func applyState(ref *docs.PackageReference, state pinState) {
	switch {
	case state.Version != "":
		ref.Version = state.Version
	case state.Branch != "":
		ref.Branch = state.Branch
	case state.Revision != "":
		ref.Revision = state.Revision
	}
}
