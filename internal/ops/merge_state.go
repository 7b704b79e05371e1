package ops

import (
	"fmt"

	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/session"
	"stackit.dev/gitmenu/internal/term"
)

// MergeState is an action offered while a merge is in progress
type MergeState int

const (
	MergeStateCommit MergeState = iota
	MergeStateAbort

	numMergeStates
)

// MergeStates lists the in-progress merge actions in menu order
var MergeStates = []MergeState{MergeStateCommit, MergeStateAbort}

var mergeStateNames = [...]string{
	MergeStateCommit: "commit",
	MergeStateAbort:  "abort",
}

var mergeStateActions = [...]func(*session.Session, term.Terminal) error{
	MergeStateCommit: concludeMerge,
	MergeStateAbort:  abortMerge,
}

var (
	_ = [1]struct{}{}[len(mergeStateNames)-int(numMergeStates)]
	_ = [1]struct{}{}[len(mergeStateActions)-int(numMergeStates)]
)

// MergeStateMenu is opened instead of MergeMenu while a merge is in progress.
// Neither action takes options.
var MergeStateMenu = menu.Definition{Name: "merge"}

func (m MergeState) String() string {
	if m < 0 || m >= numMergeStates {
		return fmt.Sprintf("MergeState(%d)", int(m))
	}
	return mergeStateNames[m]
}

// Display implements Op
func (m MergeState) Display(_ *session.Session) string {
	return m.String()
}

// Action implements Op
func (m MergeState) Action(_ *Target) (Action, bool) {
	if m < 0 || m >= numMergeStates {
		return nil, false
	}
	return Direct(mergeStateActions[m]), true
}

// concludeMerge commits the merge result with the prepared message
func concludeMerge(s *session.Session, t term.Terminal) error {
	if _, err := s.TakeMenuArgs(); err != nil {
		return err
	}
	return s.RunInteractive(t, "commit")
}

func abortMerge(s *session.Session, t term.Terminal) error {
	if _, err := s.TakeMenuArgs(); err != nil {
		return err
	}
	return s.RunInteractive(t, "merge", "--abort")
}
