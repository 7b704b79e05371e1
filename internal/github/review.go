// Package github looks up pull requests for branches gitmenu pushes.
package github

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// ReviewFinder finds the open pull request for a branch of one repository
type ReviewFinder struct {
	client *github.Client
	owner  string
	repo   string
}

// NewReviewFinder creates a finder for the repository behind remoteURL
func NewReviewFinder(ctx context.Context, remoteURL, token string) (*ReviewFinder, error) {
	info, err := ParseGitHubRemoteURL(remoteURL)
	if err != nil {
		return nil, err
	}
	client, err := createGitHubClient(ctx, info.Hostname, token)
	if err != nil {
		return nil, err
	}
	return &ReviewFinder{client: client, owner: info.Owner, repo: info.Repo}, nil
}

// NewReviewFinderWithClient creates a finder around an existing client
func NewReviewFinderWithClient(client *github.Client, owner, repo string) *ReviewFinder {
	return &ReviewFinder{client: client, owner: owner, repo: repo}
}

// OpenReviewURL returns the URL of the open pull request whose head is
// branch, or "" when there is none.
func (f *ReviewFinder) OpenReviewURL(ctx context.Context, branch string) (string, error) {
	prs, _, err := f.client.PullRequests.List(ctx, f.owner, f.repo, &github.PullRequestListOptions{
		Head:  fmt.Sprintf("%s:%s", f.owner, branch),
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: 1,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to list pull requests: %w", err)
	}
	if len(prs) == 0 {
		return "", nil
	}
	return prs[0].GetHTMLURL(), nil
}

// createGitHubClient creates a GitHub client configured for the given hostname.
// Supports both github.com and GitHub Enterprise instances.
func createGitHubClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	if hostname != "github.com" {
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
		}

		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}

	return client, nil
}

// Token gets a GitHub token from the environment or the gh CLI
func Token(ctx context.Context) (string, error) {
	for _, name := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if token := os.Getenv(name); token != "" {
			return token, nil
		}
	}

	output, err := exec.CommandContext(ctx, "gh", "auth", "token").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub token: %w", err)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}
	return token, nil
}

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// ParseGitHubRemoteURL parses a git remote URL and extracts hostname, owner, and repo.
// Examples:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - ssh://git@github.company.com/owner/repo.git
func ParseGitHubRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, "/")
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	var hostname, path string

	switch {
	case strings.Contains(remoteURL, "://"):
		u, err := url.Parse(remoteURL)
		if err != nil {
			return nil, fmt.Errorf("invalid remote URL %q: %w", remoteURL, err)
		}
		hostname = u.Hostname()
		path = strings.TrimPrefix(u.Path, "/")
	case strings.Contains(remoteURL, "@"):
		// scp-like syntax: git@hostname:owner/repo
		_, hostAndPath, _ := strings.Cut(remoteURL, "@")
		var ok bool
		hostname, path, ok = strings.Cut(hostAndPath, ":")
		if !ok {
			return nil, fmt.Errorf("invalid SSH remote URL %q: missing path", remoteURL)
		}
	default:
		return nil, fmt.Errorf("unsupported remote URL %q", remoteURL)
	}

	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid remote URL %q: path must be owner/repo", remoteURL)
	}
	owner := parts[len(parts)-2]
	repo := parts[len(parts)-1]

	if hostname == "" || owner == "" || repo == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL")
	}

	return &RepoInfo{
		Hostname: hostname,
		Owner:    owner,
		Repo:     repo,
	}, nil
}
