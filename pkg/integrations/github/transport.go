package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
	"github.com/swiftdocs/swiftdocs/pkg/integrations"
)

// ghProbeTimeout bounds the gh availability probe so a hung gh process
// cannot stall resolution.
const ghProbeTimeout = 2 * time.Second

// runner abstracts command execution so tests can fake the gh CLI.
type runner interface {
	look(name string) error
	run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) look(name string) error {
	_, err := exec.LookPath(name)
	return err
}

func (execRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(errBuf.String()); msg != "" {
			return nil, fmt.Errorf("%s: %v: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	return out.Bytes(), nil
}

// ghAvailable reports whether the gh CLI is installed and authenticated.
// Availability is probed on every call rather than cached: auth state can
// change between invocations and the probe is cheap. Any probe failure
// selects the direct API.
func (c *Client) ghAvailable(ctx context.Context) bool {
	if err := c.runner.look("gh"); err != nil {
		return false
	}
	probeCtx, cancel := context.WithTimeout(ctx, ghProbeTimeout)
	defer cancel()
	_, err := c.runner.run(probeCtx, "gh", "auth", "status")
	return err == nil
}

// apiGet performs a GET against the GitHub API, routing through the gh CLI
// when it is available and through the REST API otherwise. The gh CLI uses
// the user's existing authentication, which usually means better rate limits.
func (c *Client) apiGet(ctx context.Context, path string, v any) error {
	if c.ghAvailable(ctx) {
		return c.ghGet(ctx, path, v)
	}
	return c.Get(ctx, c.apiURL+path, v)
}

// ghGet fetches an API path through the gh CLI and decodes its JSON output.
func (c *Client) ghGet(ctx context.Context, path string, v any) error {
	out, err := c.runner.run(ctx, "gh", "api", strings.TrimPrefix(path, "/"))
	if err != nil {
		if strings.Contains(err.Error(), "HTTP 404") {
			return fmt.Errorf("%w: %s", integrations.ErrNotFound, path)
		}
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "gh api %s", path)
	}
	if err := json.Unmarshal(out, v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeParse, err, "malformed gh api response for %s", path)
	}
	return nil
}
