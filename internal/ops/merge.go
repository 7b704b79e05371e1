package ops

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	gmerrors "stackit.dev/gitmenu/internal/errors"
	"stackit.dev/gitmenu/internal/git"
	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/session"
	"stackit.dev/gitmenu/internal/term"
)

// MergeAction is one flavor of merge offered while no merge is in progress
type MergeAction int

const (
	MergePlain MergeAction = iota
	MergeEdit
	MergeNoCommit
	MergeAbsorb
	MergeSquash
	MergeDissolve

	numMergeActions
)

// MergeActions lists every merge action in menu order
var MergeActions = []MergeAction{MergePlain, MergeEdit, MergeNoCommit, MergeAbsorb, MergeSquash, MergeDissolve}

var mergeActionNames = [...]string{
	MergePlain:    "Merge",
	MergeEdit:     "Merge and edit message",
	MergeNoCommit: "Merge but don't commit",
	MergeAbsorb:   "Absorb",
	MergeSquash:   "Squash merge",
	MergeDissolve: "Dissolve",
}

type mergeSpec struct {
	prompt  string
	resolve DefaultResolver
	cont    Continuation
}

var mergeSpecs = [...]mergeSpec{
	MergePlain:    {"Merge", SelectedRev, mergePlain},
	MergeEdit:     {"Merge", SelectedRev, mergeEdit},
	MergeNoCommit: {"Merge", SelectedRev, mergeNoCommit},
	MergeAbsorb:   {"Absorb branch", LatestLocalBranch, mergeAbsorb},
	MergeSquash:   {"Squash", SelectedRev, mergeSquash},
	// Dissolve's continuation is bound to the selection at dispatch
	MergeDissolve: {"Merge current branch into", LatestLocalBranch, nil},
}

// Both tables must have exactly one entry per MergeAction; a new action
// added without entries fails to compile here.
var (
	_ = [1]struct{}{}[len(mergeActionNames)-int(numMergeActions)]
	_ = [1]struct{}{}[len(mergeSpecs)-int(numMergeActions)]
)

func (m MergeAction) String() string {
	if m < 0 || m >= numMergeActions {
		return fmt.Sprintf("MergeAction(%d)", int(m))
	}
	return mergeActionNames[m]
}

// Display implements Op
func (m MergeAction) Display(_ *session.Session) string {
	return m.String()
}

// Action implements Op. Absorb is listed but not realized; its action fails
// with ErrNotImplemented before asking anything.
func (m MergeAction) Action(target *Target) (Action, bool) {
	if m < 0 || m >= numMergeActions {
		return nil, false
	}
	if m == MergeAbsorb {
		return func(*session.Session, term.Terminal) error {
			return gmerrors.NewNotImplementedError(m.String())
		}, true
	}
	spec := mergeSpecs[m]
	if m == MergeDissolve {
		return func(s *session.Session, t term.Terminal) error {
			selected := s.SelectedRev()
			if target != nil && target.Rev != "" {
				selected = target.Rev
			}
			return promptWith(dissolvePrompt, dissolveWith(selected), spec.resolve, true)(s, t)
		}, true
	}
	return Prompt(spec.prompt, spec.cont, spec.resolve, true), true
}

func dissolvePrompt(s *session.Session) string {
	if branch, err := s.Repo.CurrentBranch(); err == nil {
		return fmt.Sprintf("Merge %s into", branch)
	}
	return mergeSpecs[MergeDissolve].prompt
}

// fastForwardTokens are the args that already state a fast-forward preference
var fastForwardTokens = []string{"--no-ff", "--ff", "--ff-only"}

func mergeArgs(fixed, pending []string, rev string) []string {
	args := make([]string, 0, 1+len(fixed)+len(pending)+1)
	args = append(args, "merge")
	args = append(args, fixed...)
	args = append(args, pending...)
	return append(args, rev)
}

func mergePlain(s *session.Session, _ term.Terminal, rev string) error {
	if err := requireRevision(s, rev); err != nil {
		return err
	}
	pending, err := s.TakeMenuArgs()
	if err != nil {
		return err
	}
	return s.RunAsync(mergeArgs(nil, pending, rev)...)
}

func mergeEdit(s *session.Session, t term.Terminal, rev string) error {
	if err := requireRevision(s, rev); err != nil {
		return err
	}
	pending, err := s.TakeMenuArgs()
	if err != nil {
		return err
	}
	return s.RunInteractive(t, mergeArgs([]string{"--edit"}, pending, rev)...)
}

// mergeNoCommit stops before committing. Unless the user already chose a
// fast-forward mode, --no-ff is added so there is a merge to commit.
func mergeNoCommit(s *session.Session, t term.Terminal, rev string) error {
	if err := requireRevision(s, rev); err != nil {
		return err
	}
	pending, err := s.TakeMenuArgs()
	if err != nil {
		return err
	}
	fixed := []string{"--no-commit"}
	if !slices.ContainsFunc(pending, func(a string) bool { return slices.Contains(fastForwardTokens, a) }) {
		fixed = append(fixed, "--no-ff")
	}
	return s.RunInteractive(t, mergeArgs(fixed, pending, rev)...)
}

func mergeSquash(s *session.Session, _ term.Terminal, rev string) error {
	if err := requireRevision(s, rev); err != nil {
		return err
	}
	pending, err := s.TakeMenuArgs()
	if err != nil {
		return err
	}
	return s.RunAsync(mergeArgs([]string{"--squash"}, pending, rev)...)
}

// mergeAbsorb would merge branch without an edit step and delete it afterwards.
func mergeAbsorb(_ *session.Session, _ term.Terminal, _ string) error {
	return gmerrors.NewNotImplementedError(MergeAbsorb.String())
}

func dissolveWith(selected string) Continuation {
	return func(s *session.Session, t term.Terminal, destination string) error {
		return mergeDissolve(s, t, destination, selected)
	}
}

// mergeDissolve merges the current branch into destination and removes it.
// selected is the revision chosen when the operation was dispatched; it is
// merged instead when destination turns out to be a detached HEAD.
//
// Before switching, the current branch is force-pushed to its upstream when
// that remote branch already exists, so an open review is not left on stale
// commits. If the upstream cannot be determined or the checkout fails, no
// later step runs.
func mergeDissolve(s *session.Session, t term.Terminal, destination, selected string) error {
	op := MergeDissolve.String()

	source, err := s.Repo.CurrentBranch()
	if err != nil {
		return gmerrors.NewStepError(op, "upstream", err)
	}
	upstream, err := s.Repo.UpstreamOf(source)
	if err != nil {
		return gmerrors.NewStepError(op, "upstream", err)
	}

	pending, err := s.TakeMenuArgs()
	if err != nil {
		return err
	}

	if err := forcePushToUpstream(s, source, upstream); err != nil {
		return gmerrors.NewStepError(op, "push", err)
	}

	if _, err := s.Run("checkout", destination); err != nil {
		return gmerrors.NewStepError(op, "checkout", err)
	}

	_, err = s.Repo.CurrentBranch()
	switch {
	case err == nil:
		if err := mergeAbsorb(s, t, source); err != nil {
			return gmerrors.NewStepError(op, "merge", err)
		}
		return nil
	case errors.Is(err, gmerrors.ErrNotOnBranch):
		if selected == "" {
			return gmerrors.NewStepError(op, "merge", gmerrors.NewMissingArgumentError("Revision must be selected", nil))
		}
		if err := s.RunInteractive(t, mergeArgs([]string{"--edit"}, pending, selected)...); err != nil {
			return gmerrors.NewStepError(op, "merge", err)
		}
		return nil
	default:
		return gmerrors.NewStepError(op, "merge", err)
	}
}

// forcePushToUpstream updates upstream with branch if the remote branch exists
func forcePushToUpstream(s *session.Session, branch string, upstream git.Upstream) error {
	if upstream.IsLocal() || !s.Repo.RemoteBranchExists(upstream.Remote, upstream.Branch) {
		s.Splog.Debug("%s has no remote branch to update, skipping push", upstream)
		return nil
	}
	if _, err := s.Run("push", "--force-with-lease", upstream.Remote, branch+":"+upstream.Branch); err != nil {
		return err
	}
	announceReview(s, branch)
	return nil
}

func announceReview(s *session.Session, branch string) {
	if s.Reviews == nil {
		return
	}
	url, err := s.Reviews.OpenReviewURL(s.Context(), branch)
	if err != nil {
		s.Splog.Debug("review lookup for %s failed: %v", branch, err)
		return
	}
	if url != "" {
		s.Splog.Info("Updated review for %s: %s", branch, url)
	}
}

// MergeMenu is the option set offered while no merge is in progress
var MergeMenu = menu.Definition{
	Name: "merge",
	Args: []menu.Arg{
		menu.NewFlag("f", "--ff-only", "Fast-forward only", false),
		menu.NewFlag("n", "--no-ff", "No fast-forward", false),
		menu.NewValued("s", "--strategy=", "Strategy", ParseStrategy),
	},
}

// mergeStrategies are the strategies git merge accepts
var mergeStrategies = []string{"ort", "recursive", "resolve", "octopus", "ours", "subtree"}

// ParseStrategy validates a --strategy value
func ParseStrategy(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if slices.Contains(mergeStrategies, value) {
		return value, nil
	}
	return "", fmt.Errorf("unknown merge strategy %q (expected one of %s)", raw, strings.Join(mergeStrategies, ", "))
}
