package ops

import (
	"fmt"

	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/session"
	"stackit.dev/gitmenu/internal/term"
)

// CommitAction records staged changes
type CommitAction int

const (
	CommitPlain CommitAction = iota
	CommitAmend

	numCommitActions
)

// CommitActions lists the commit actions in menu order
var CommitActions = []CommitAction{CommitPlain, CommitAmend}

var commitActionNames = [...]string{
	CommitPlain: "Commit",
	CommitAmend: "Amend",
}

var commitFixedArgs = [...][]string{
	CommitPlain: nil,
	CommitAmend: {"--amend"},
}

var (
	_ = [1]struct{}{}[len(commitActionNames)-int(numCommitActions)]
	_ = [1]struct{}{}[len(commitFixedArgs)-int(numCommitActions)]
)

// CommitMenu is the option set of the commit menu
var CommitMenu = menu.Definition{
	Name: "commit",
	Args: []menu.Arg{
		menu.NewFlag("a", "--all", "Stage all modified and deleted files", false),
		menu.NewFlag("e", "--allow-empty", "Allow empty commit", false),
		menu.NewFlag("n", "--no-verify", "Disable hooks", false),
	},
}

func (c CommitAction) String() string {
	if c < 0 || c >= numCommitActions {
		return fmt.Sprintf("CommitAction(%d)", int(c))
	}
	return commitActionNames[c]
}

// Display implements Op
func (c CommitAction) Display(_ *session.Session) string {
	return c.String()
}

// Action implements Op
func (c CommitAction) Action(_ *Target) (Action, bool) {
	if c < 0 || c >= numCommitActions {
		return nil, false
	}
	fixed := commitFixedArgs[c]
	return Direct(func(s *session.Session, t term.Terminal) error {
		pending, err := s.TakeMenuArgs()
		if err != nil {
			return err
		}
		args := append([]string{"commit"}, fixed...)
		return s.RunInteractive(t, append(args, pending...)...)
	}), true
}
