package ops

import (
	"fmt"
	"strings"

	gmerrors "stackit.dev/gitmenu/internal/errors"
	"stackit.dev/gitmenu/internal/git"
	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/session"
	"stackit.dev/gitmenu/internal/term"
)

// PushAction sends the current branch to a remote
type PushAction int

const (
	PushUpstream PushAction = iota
	PushSetUpstream

	numPushActions
)

// PushActions lists the push actions in menu order
var PushActions = []PushAction{PushUpstream, PushSetUpstream}

var pushActionNames = [...]string{
	PushUpstream:    "to upstream",
	PushSetUpstream: "to new upstream",
}

var _ = [1]struct{}{}[len(pushActionNames)-int(numPushActions)]

// PushMenu is the option set of the push menu
var PushMenu = menu.Definition{
	Name: "push",
	Args: []menu.Arg{
		menu.NewFlag("f", "--force-with-lease", "Force with lease", false),
		menu.NewFlag("F", "--force", "Force", false),
		menu.NewFlag("n", "--no-verify", "Disable hooks", false),
		menu.NewFlag("d", "--dry-run", "Dry run", false),
	},
}

func (p PushAction) String() string {
	if p < 0 || p >= numPushActions {
		return fmt.Sprintf("PushAction(%d)", int(p))
	}
	return pushActionNames[p]
}

// Display implements Op. The upstream entry names the configured upstream
// when there is one.
func (p PushAction) Display(s *session.Session) string {
	if p == PushUpstream && s != nil {
		if branch, err := s.Repo.CurrentBranch(); err == nil {
			if upstream, err := s.Repo.UpstreamOf(branch); err == nil {
				return "to " + upstream.String()
			}
		}
	}
	return p.String()
}

// Action implements Op
func (p PushAction) Action(_ *Target) (Action, bool) {
	switch p {
	case PushUpstream:
		return Direct(pushToUpstream), true
	case PushSetUpstream:
		return Prompt("Set upstream and push to", pushSetUpstream, proposedUpstream, true), true
	default:
		return nil, false
	}
}

func pushToUpstream(s *session.Session, _ term.Terminal) error {
	branch, err := s.Repo.CurrentBranch()
	if err != nil {
		return err
	}
	upstream, err := s.Repo.UpstreamOf(branch)
	if err != nil {
		return err
	}
	pending, err := s.TakeMenuArgs()
	if err != nil {
		return err
	}
	return s.RunAsync(pushArgs(pending, upstream, branch)...)
}

func pushSetUpstream(s *session.Session, _ term.Terminal, raw string) error {
	upstream, err := ParseUpstream(raw)
	if err != nil {
		return err
	}
	branch, err := s.Repo.CurrentBranch()
	if err != nil {
		return err
	}
	pending, err := s.TakeMenuArgs()
	if err != nil {
		return err
	}
	args := append([]string{"push", "--set-upstream"}, pending...)
	return s.RunAsync(append(args, upstream.Remote, branch+":"+upstream.Branch)...)
}

func pushArgs(pending []string, upstream git.Upstream, branch string) []string {
	args := append([]string{"push"}, pending...)
	return append(args, upstream.Remote, branch+":"+upstream.Branch)
}

// proposedUpstream suggests <remote>/<current branch>
func proposedUpstream(s *session.Session) (string, error) {
	branch, err := s.Repo.CurrentBranch()
	if err != nil {
		return "", err
	}
	return s.Remote + "/" + branch, nil
}

// ParseUpstream splits "remote/branch". The branch part may itself contain
// slashes.
func ParseUpstream(raw string) (git.Upstream, error) {
	remote, branch, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok || remote == "" || branch == "" {
		return git.Upstream{}, gmerrors.NewRefNotFoundError(raw, "expected <remote>/<branch>")
	}
	return git.Upstream{Remote: remote, Branch: branch}, nil
}
