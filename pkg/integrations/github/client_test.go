package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
	"github.com/swiftdocs/swiftdocs/pkg/integrations"
)

// fakeRunner simulates the gh CLI. The zero value behaves as "not installed",
// which forces the direct API path in tests that use httptest servers.
type fakeRunner struct {
	installed bool
	authOK    bool
	responses map[string]string
	runErr    error
	calls     []string
}

func (f *fakeRunner) look(name string) error {
	if !f.installed {
		return errors.New("executable file not found in $PATH")
	}
	return nil
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, strings.Join(args, " "))
	if len(args) > 0 && args[0] == "auth" {
		if !f.authOK {
			return nil, errors.New("gh: You are not logged into any GitHub hosts")
		}
		return nil, nil
	}
	if f.runErr != nil {
		return nil, f.runErr
	}
	if len(args) > 1 {
		if resp, ok := f.responses[args[1]]; ok {
			return []byte(resp), nil
		}
	}
	return nil, errors.New("gh: Not Found (HTTP 404)")
}

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	return &Client{
		Client: integrations.NewClient(nil, map[string]string{"Accept": "application/vnd.github.v3+json"}),
		apiURL: serverURL,
		runner: &fakeRunner{},
	}
}

func repoJSON(t *testing.T, branch string) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"name":             "Alamofire",
		"full_name":        "Alamofire/Alamofire",
		"description":      "Elegant HTTP Networking in Swift",
		"default_branch":   branch,
		"stargazers_count": 40000,
		"forks_count":      7500,
		"pushed_at":        "2025-06-01T12:00:00Z",
		"license":          map[string]string{"spdx_id": "MIT"},
		"owner":            map[string]string{"login": "Alamofire"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestClient_FetchRepositoryInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/Alamofire/Alamofire":
			fmt.Fprint(w, repoJSON(t, "master"))
		case "/repos/Alamofire/Alamofire/releases/latest":
			json.NewEncoder(w).Encode(releaseResponse{TagName: "5.8.1"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	meta, err := c.FetchRepositoryInfo(context.Background(), "https://github.com/Alamofire/Alamofire.git")
	if err != nil {
		t.Fatalf("FetchRepositoryInfo failed: %v", err)
	}

	if meta.Name != "Alamofire" {
		t.Errorf("Name = %q, want Alamofire", meta.Name)
	}
	if meta.SourceURL != "https://github.com/Alamofire/Alamofire" {
		t.Errorf("SourceURL = %q", meta.SourceURL)
	}
	if meta.Stars != 40000 {
		t.Errorf("Stars = %d, want 40000", meta.Stars)
	}
	if meta.License != "MIT" {
		t.Errorf("License = %q, want MIT", meta.License)
	}
	if meta.Version != "5.8.1" {
		t.Errorf("Version = %q, want 5.8.1", meta.Version)
	}
	if meta.Host != "github" {
		t.Errorf("Host = %q, want github", meta.Host)
	}
	if meta.LastUpdated.IsZero() {
		t.Error("LastUpdated should be set from pushed_at")
	}
}

func TestClient_FetchRepositoryInfo_NoRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/apple/swift-nio" {
			fmt.Fprint(w, repoJSON(t, "main"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	meta, err := c.FetchRepositoryInfo(context.Background(), "https://github.com/apple/swift-nio")
	if err != nil {
		t.Fatalf("FetchRepositoryInfo failed: %v", err)
	}
	if meta.Version != "" {
		t.Errorf("Version = %q, want empty when no release exists", meta.Version)
	}
}

func TestClient_FetchRepositoryInfo_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := c.FetchRepositoryInfo(context.Background(), "https://github.com/nobody/missing")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchRepositoryInfo_BadURLFailsFast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s: invalid URLs must fail before network I/O", r.URL.Path)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := c.FetchRepositoryInfo(context.Background(), "not a url at all")
	if err == nil {
		t.Fatal("expected error for invalid URL")
	}
	if apperrors.GetCode(err) != apperrors.ErrCodeParse {
		t.Errorf("expected PARSE_ERROR, got %q", apperrors.GetCode(err))
	}
}

func TestClient_FetchRepositoryInfo_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.FetchRepositoryInfo(ctx, "https://github.com/vapor/vapor")
	if err == nil {
		t.Fatal("expected error for timed-out request")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("request took %v, should fail near the deadline", elapsed)
	}
	if apperrors.GetCode(err) != apperrors.ErrCodeNetwork {
		t.Errorf("expected NETWORK_ERROR, got %q (%v)", apperrors.GetCode(err), err)
	}
}

func TestParseSourceURL(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"https", "https://github.com/vapor/vapor", "vapor", "vapor", false},
		{"https with .git", "https://github.com/vapor/vapor.git", "vapor", "vapor", false},
		{"scp-style", "git@github.com:apple/swift-nio.git", "apple", "swift-nio", false},
		{"git protocol", "git://github.com/apple/swift-log", "apple", "swift-log", false},
		{"www", "https://www.github.com/vapor/vapor", "vapor", "vapor", false},
		{"trailing path", "https://github.com/vapor/vapor/tree/main", "vapor", "vapor", false},
		{"not github", "https://gitlab.com/group/project", "", "", true},
		{"garbage", "not a url", "", "", true},
		{"empty", "", "", "", true},
		{"missing repo", "https://github.com/vapor", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseSourceURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSourceURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if apperrors.GetCode(err) != apperrors.ErrCodeParse {
					t.Errorf("expected PARSE_ERROR, got %q", apperrors.GetCode(err))
				}
				return
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseSourceURL(%q) = %q/%q, want %q/%q", tt.input, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestValidateRepoRef(t *testing.T) {
	if err := ValidateRepoRef("vapor", "vapor"); err != nil {
		t.Errorf("ValidateRepoRef(vapor, vapor) = %v", err)
	}
	if err := ValidateRepoRef("-bad", "repo"); err == nil {
		t.Error("expected error for owner starting with hyphen")
	}
	if err := ValidateRepoRef("owner", "bad/repo"); err == nil {
		t.Error("expected error for repo containing slash")
	}
}

func TestGhTransport_UsedWhenAvailable(t *testing.T) {
	runner := &fakeRunner{
		installed: true,
		authOK:    true,
		responses: map[string]string{
			"repos/vapor/vapor": repoJSON(t, "main"),
		},
	}
	c := testClient(t, "http://127.0.0.1:0")
	c.runner = runner

	var data repoResponse
	if err := c.apiGet(context.Background(), "/repos/vapor/vapor", &data); err != nil {
		t.Fatalf("apiGet failed: %v", err)
	}
	if data.Name != "Alamofire" {
		t.Errorf("Name = %q, decode through gh failed", data.Name)
	}

	var sawProbe, sawAPI bool
	for _, call := range runner.calls {
		if strings.HasPrefix(call, "auth status") {
			sawProbe = true
		}
		if strings.HasPrefix(call, "api repos/vapor/vapor") {
			sawAPI = true
		}
	}
	if !sawProbe {
		t.Error("expected an auth status probe before using gh")
	}
	if !sawAPI {
		t.Error("expected the api call to go through gh")
	}
}

func TestGhTransport_ProbeRunsPerCall(t *testing.T) {
	runner := &fakeRunner{
		installed: true,
		authOK:    true,
		responses: map[string]string{"repos/vapor/vapor": repoJSON(t, "main")},
	}
	c := testClient(t, "http://127.0.0.1:0")
	c.runner = runner

	var data repoResponse
	for i := 0; i < 3; i++ {
		if err := c.apiGet(context.Background(), "/repos/vapor/vapor", &data); err != nil {
			t.Fatalf("apiGet failed: %v", err)
		}
	}

	probes := 0
	for _, call := range runner.calls {
		if strings.HasPrefix(call, "auth status") {
			probes++
		}
	}
	if probes != 3 {
		t.Errorf("expected 3 probes (one per call, never cached), got %d", probes)
	}
}

func TestGhTransport_FallsBackWhenNotInstalled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, repoJSON(t, "main"))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	var data repoResponse
	if err := c.apiGet(context.Background(), "/repos/vapor/vapor", &data); err != nil {
		t.Fatalf("apiGet fallback failed: %v", err)
	}
	if data.Name != "Alamofire" {
		t.Errorf("Name = %q, direct API fallback failed", data.Name)
	}
}

func TestGhTransport_FallsBackWhenNotAuthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, repoJSON(t, "main"))
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	c.runner = &fakeRunner{installed: true, authOK: false}

	var data repoResponse
	if err := c.apiGet(context.Background(), "/repos/vapor/vapor", &data); err != nil {
		t.Fatalf("apiGet fallback failed: %v", err)
	}
	if data.Name != "Alamofire" {
		t.Errorf("Name = %q, direct API fallback failed", data.Name)
	}
}

func TestGhTransport_FailurePreservesMessage(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:0")
	c.runner = &fakeRunner{
		installed: true,
		authOK:    true,
		runErr:    errors.New("gh: connection reset by peer"),
	}

	var data repoResponse
	err := c.apiGet(context.Background(), "/repos/vapor/vapor", &data)
	if err == nil {
		t.Fatal("expected error when gh fails")
	}
	if apperrors.GetCode(err) != apperrors.ErrCodeNetwork {
		t.Errorf("expected NETWORK_ERROR, got %q", apperrors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "connection reset by peer") {
		t.Errorf("underlying gh message should be preserved, got %v", err)
	}
}

func TestGhTransport_404MapsToNotFound(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:0")
	c.runner = &fakeRunner{installed: true, authOK: true}

	var data releaseResponse
	err := c.apiGet(context.Background(), "/repos/vapor/vapor/releases/latest", &data)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound for gh HTTP 404, got %v", err)
	}
}
