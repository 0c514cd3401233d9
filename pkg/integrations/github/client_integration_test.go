//go:build integration

package github

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/swiftdocs/swiftdocs/pkg/integrations"
)

func TestFetchRepositoryInfo_Integration(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		t.Skip("GITHUB_TOKEN not set, skipping integration test")
	}

	client := NewClient(token)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tests := []struct {
		name      string
		sourceURL string
		wantErr   bool
	}{
		{"apple/swift-nio", "https://github.com/apple/swift-nio", false},
		{"nonexistent", "https://github.com/nonexistent-owner-12345/nonexistent-repo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := client.FetchRepositoryInfo(ctx, tt.sourceURL)
			if (err != nil) != tt.wantErr {
				t.Errorf("FetchRepositoryInfo(%q) error = %v, wantErr %v", tt.sourceURL, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, integrations.ErrNotFound) {
					t.Errorf("expected ErrNotFound, got %v", err)
				}
				return
			}
			if meta.Name == "" {
				t.Error("Name should not be empty")
			}
			if meta.Stars <= 0 {
				t.Error("Stars should be positive for swift-nio")
			}
		})
	}
}

func TestFetchDocumentation_Integration(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		t.Skip("GITHUB_TOKEN not set, skipping integration test")
	}

	client := NewClient(token)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	artifact, err := client.FetchDocumentation(ctx, "https://github.com/apple/swift-log", "")
	if err != nil {
		t.Fatalf("FetchDocumentation failed: %v", err)
	}
	if artifact.Content == "" {
		t.Error("Content should not be empty")
	}
	if artifact.Kind != "readme" {
		t.Errorf("Kind = %q, want readme for swift-log", artifact.Kind)
	}
}
