package git

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing"

	gmerrors "stackit.dev/gitmenu/internal/errors"
)

// Upstream is the tracking branch configured for a local branch
type Upstream struct {
	Remote string
	Branch string
}

// IsLocal reports whether the upstream is another local branch ("." remote)
func (u Upstream) IsLocal() bool {
	return u.Remote == "."
}

func (u Upstream) String() string {
	if u.IsLocal() {
		return u.Branch
	}
	return u.Remote + "/" + u.Branch
}

// UpstreamOf returns the tracking branch configured for branch
func (r *Repository) UpstreamOf(branch string) (Upstream, error) {
	cfg, err := r.Config()
	if err != nil {
		return Upstream{}, fmt.Errorf("failed to read git config: %w", err)
	}

	b, ok := cfg.Branches[branch]
	if !ok || b.Remote == "" || b.Merge == "" {
		return Upstream{}, gmerrors.NewRefNotFoundError(branch+"@{upstream}", "no upstream configured")
	}
	return Upstream{Remote: b.Remote, Branch: b.Merge.Short()}, nil
}

// RemoteBranchExists reports whether a remote-tracking ref exists for branch
func (r *Repository) RemoteBranchExists(remote, branch string) bool {
	_, err := r.Reference(plumbing.NewRemoteReferenceName(remote, branch), true)
	return err == nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RemoteURL returns the first URL configured for remote
func (r *Repository) RemoteURL(remote string) (string, error) {
	rem, err := r.Remote(remote)
	if err != nil {
		return "", gmerrors.NewRefNotFoundError(remote, err.Error())
	}
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", gmerrors.NewRefNotFoundError(remote, "remote has no URL")
	}
	return urls[0], nil
}
