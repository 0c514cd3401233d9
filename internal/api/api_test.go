package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
	"github.com/swiftdocs/swiftdocs/pkg/summarize"
)

// stubIndex serves canned index results.
type stubIndex struct{}

func (stubIndex) Search(_ context.Context, query string, limit int) ([]docs.PackageMetadata, error) {
	return []docs.PackageMetadata{
		{Name: "swift-log", SourceURL: "https://github.com/apple/swift-log", Host: docs.HostGitHub},
	}, nil
}

func (stubIndex) PackageInfo(_ context.Context, name string) (*docs.PackageMetadata, error) {
	if name != "swift-log" {
		return nil, nil
	}
	return &docs.PackageMetadata{Name: "swift-log", SourceURL: "https://github.com/apple/swift-log"}, nil
}

// stubRepo serves canned repository content for swift-log and reports
// everything else as missing.
type stubRepo struct{}

func (stubRepo) FetchRepositoryInfo(_ context.Context, sourceURL string) (*docs.PackageMetadata, error) {
	if !strings.Contains(sourceURL, "swift-log") {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "no repository at %s", sourceURL)
	}
	return &docs.PackageMetadata{
		Name:        "swift-log",
		SourceURL:   sourceURL,
		Description: "A Logging API for Swift",
		Stars:       3500,
		Host:        docs.HostGitHub,
	}, nil
}

func (stubRepo) FetchDocumentation(_ context.Context, sourceURL, version string) (*docs.DocumentationArtifact, error) {
	return &docs.DocumentationArtifact{
		PackageName: "swift-log",
		Content:     "# SwiftLog\n\nA Logging API for Swift.",
		Kind:        docs.KindReadme,
		Origin:      sourceURL,
	}, nil
}

func (stubRepo) FindExamples(_ context.Context, sourceURL, filter string, limit int) ([]docs.CodeExample, error) {
	return []docs.CodeExample{
		{
			PackageName: "swift-log",
			Title:       "Basic",
			Language:    "swift",
			Path:        "Examples/Basic.swift",
			Code:        "import Logging\nlet logger = Logger(label: \"app\")\n",
		},
	}, nil
}

// noDocsRepo is a stubRepo without documentation.
type noDocsRepo struct{ stubRepo }

func (noDocsRepo) FetchDocumentation(_ context.Context, sourceURL, version string) (*docs.DocumentationArtifact, error) {
	return nil, apperrors.New(apperrors.ErrCodeDocsNotFound, "no documentation in %s", sourceURL)
}

func testRouter(t *testing.T, opts docs.ResolverOptions) http.Handler {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return NewRouter(NewHandler(docs.NewResolver(opts), log.New(io.Discard)))
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %s: %v", w.Body.String(), err)
	}
}

func TestSearchEndpoint(t *testing.T) {
	router := testRouter(t, docs.ResolverOptions{Index: stubIndex{}})

	w := get(t, router, "/api/v1/search?q=log&limit=5")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp searchResponse
	decode(t, w, &resp)
	if resp.Query != "log" {
		t.Errorf("query = %q, want log", resp.Query)
	}
	if len(resp.Results) != 1 || resp.Results[0].Name != "swift-log" {
		t.Errorf("results = %+v, want one swift-log entry", resp.Results)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	router := testRouter(t, docs.ResolverOptions{Index: stubIndex{}})

	w := get(t, router, "/api/v1/search")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp errResponse
	decode(t, w, &resp)
	if resp.Code != apperrors.ErrCodeInvalidInput {
		t.Errorf("error code = %q, want %q", resp.Code, apperrors.ErrCodeInvalidInput)
	}
}

func TestPackageEndpoint(t *testing.T) {
	router := testRouter(t, docs.ResolverOptions{Index: stubIndex{}, Repo: stubRepo{}})

	w := get(t, router, "/api/v1/packages/swift-log")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var meta docs.PackageMetadata
	decode(t, w, &meta)
	if meta.Stars != 3500 {
		t.Errorf("stars = %d, want 3500", meta.Stars)
	}
}

func TestPackageNotFound(t *testing.T) {
	router := testRouter(t, docs.ResolverOptions{Index: stubIndex{}, Repo: stubRepo{}})

	w := get(t, router, "/api/v1/packages/nonexistent")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp errResponse
	decode(t, w, &resp)
	if resp.Code != apperrors.ErrCodePackageNotFound {
		t.Errorf("error code = %q, want %q", resp.Code, apperrors.ErrCodePackageNotFound)
	}
}

func TestDocumentationEndpoint(t *testing.T) {
	router := testRouter(t, docs.ResolverOptions{Index: stubIndex{}, Repo: stubRepo{}})

	w := get(t, router, "/api/v1/packages/swift-log/documentation")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp documentationResponse
	decode(t, w, &resp)
	if resp.Documentation == nil || resp.Documentation.Kind != docs.KindReadme {
		t.Fatalf("documentation = %+v, want a readme artifact", resp.Documentation)
	}
	if resp.Summary == nil || resp.Summary.Headline != "SwiftLog" {
		t.Errorf("summary = %+v, want headline SwiftLog", resp.Summary)
	}
}

func TestDocumentationNotFound(t *testing.T) {
	router := testRouter(t, docs.ResolverOptions{Index: stubIndex{}, Repo: noDocsRepo{}})

	w := get(t, router, "/api/v1/packages/swift-log/documentation")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp errResponse
	decode(t, w, &resp)
	if resp.Code != apperrors.ErrCodeDocsNotFound {
		t.Errorf("error code = %q, want %q", resp.Code, apperrors.ErrCodeDocsNotFound)
	}
}

func TestExamplesEndpoint(t *testing.T) {
	router := testRouter(t, docs.ResolverOptions{Index: stubIndex{}, Repo: stubRepo{}})

	w := get(t, router, "/api/v1/packages/swift-log/examples?filter=basic&limit=3")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp examplesResponse
	decode(t, w, &resp)
	if len(resp.Examples) != 1 || resp.Examples[0].Title != "Basic" {
		t.Fatalf("examples = %+v, want one Basic example", resp.Examples)
	}
	if len(resp.Patterns) != 2 {
		t.Fatalf("patterns = %+v, want import plus instantiation", resp.Patterns)
	}
	if resp.Patterns[0].Kind != summarize.PatternImport || resp.Patterns[0].Name != "Logging" {
		t.Errorf("patterns[0] = %+v, want the Logging import", resp.Patterns[0])
	}
}

func TestDependenciesEndpoint(t *testing.T) {
	parse := func(projectPath string) (*docs.Manifest, error) {
		return &docs.Manifest{
			Path: projectPath + "/Package.resolved",
			Kind: docs.KindLockfile,
			Dependencies: []docs.PackageReference{
				{Name: "swift-log", URL: "https://github.com/apple/swift-log", Version: "1.5.4", Kind: docs.KindSourceControl},
				{Name: "missing", URL: "https://github.com/example/missing", Version: "1.0.0", Kind: docs.KindSourceControl},
			},
		}, nil
	}
	router := testRouter(t, docs.ResolverOptions{Repo: stubRepo{}, ParseManifest: parse})

	w := get(t, router, "/api/v1/dependencies?project=/tmp/proj")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp dependenciesResponse
	decode(t, w, &resp)
	if resp.Manifest == nil || resp.Manifest.Kind != docs.KindLockfile {
		t.Errorf("manifest = %+v, want the lockfile", resp.Manifest)
	}
	if len(resp.Packages) != 1 || resp.Packages[0].Name != "swift-log" {
		t.Errorf("packages = %+v, want swift-log only", resp.Packages)
	}
	if len(resp.Issues) != 1 || resp.Issues[0].PackageName != "missing" {
		t.Errorf("issues = %+v, want one warning for missing", resp.Issues)
	}
}

func TestDependenciesRequiresProject(t *testing.T) {
	router := testRouter(t, docs.ResolverOptions{})

	w := get(t, router, "/api/v1/dependencies")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t, docs.ResolverOptions{})

	w := get(t, router, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp healthResponse
	decode(t, w, &resp)
	if resp.Status != "ok" || resp.Version == "" {
		t.Errorf("health = %+v, want ok with a version", resp)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	router := testRouter(t, docs.ResolverOptions{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want the client's ID echoed", got)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	router := testRouter(t, docs.ResolverOptions{})

	w := get(t, router, "/health")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID missing, want a generated ID")
	}
}

func TestStatusForCodes(t *testing.T) {
	tests := []struct {
		code apperrors.Code
		want int
	}{
		{apperrors.ErrCodeInvalidInput, http.StatusBadRequest},
		{apperrors.ErrCodeInvalidManifest, http.StatusBadRequest},
		{apperrors.ErrCodePackageNotFound, http.StatusNotFound},
		{apperrors.ErrCodeDocsNotFound, http.StatusNotFound},
		{apperrors.ErrCodeRateLimited, http.StatusTooManyRequests},
		{apperrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{apperrors.ErrCodeNetwork, http.StatusBadGateway},
		{apperrors.ErrCodeUnsupported, http.StatusNotImplemented},
		{apperrors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
