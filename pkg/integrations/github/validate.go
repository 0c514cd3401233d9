package github

import (
	"errors"
	"regexp"
	"strings"

	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
	"github.com/swiftdocs/swiftdocs/pkg/integrations"
)

// Regex patterns for GitHub resource validation.
var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
	// Repository URLs with owner and repo capture groups
	repoURLPattern = regexp.MustCompile(`https?://(?:www\.)?github\.com/([^/]+)/([^/]+?)(?:\.git)?(?:[/?#]|$)`)
)

// ValidateOwner validates a GitHub username or organization name.
func ValidateOwner(owner string) error {
	if owner == "" {
		return errors.New("owner is required")
	}
	if !validOwner.MatchString(owner) {
		return errors.New("invalid owner format: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen")
	}
	return nil
}

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(repo string) error {
	if repo == "" {
		return errors.New("repo is required")
	}
	if !validRepo.MatchString(repo) {
		return errors.New("invalid repo format: must be 1-100 alphanumeric characters, hyphens, underscores, or dots")
	}
	return nil
}

// ValidateRepoRef validates both owner and repo parameters.
func ValidateRepoRef(owner, repo string) error {
	if err := ValidateOwner(owner); err != nil {
		return err
	}
	return ValidateRepo(repo)
}

// ParseRepoRef parses an "owner/repo" string and validates both parts.
// Returns owner, repo, and any validation error.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 {
		return "", "", errors.New("invalid repo format: use owner/repo")
	}
	owner, repo = parts[0], parts[1]
	if err := ValidateRepoRef(owner, repo); err != nil {
		return "", "", err
	}
	return owner, repo, nil
}

// ParseSourceURL extracts and validates the owner and repository from a
// package source URL. It accepts https, git@, and git:// forms and ignores
// trailing paths. Failures are parse errors, returned before any network I/O.
func ParseSourceURL(sourceURL string) (owner, repo string, err error) {
	normalized := integrations.NormalizeRepoURL(sourceURL)
	m := repoURLPattern.FindStringSubmatch(normalized + "/")
	if m == nil {
		return "", "", apperrors.New(apperrors.ErrCodeParse, "not a GitHub repository URL: %s", sourceURL)
	}
	owner, repo = m[1], strings.TrimSuffix(m[2], ".git")
	if err := ValidateRepoRef(owner, repo); err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrCodeParse, err, "invalid repository URL: %s", sourceURL)
	}
	return owner, repo, nil
}
