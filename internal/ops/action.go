// Package ops defines the operations reachable from gitmenu's menus and the
// protocol that turns a key press into an external git invocation.
//
// Every operation family is a closed enum. Each variant yields an Action for
// the current selection, usually a Continuation wrapped in a Prompt that asks
// for the revision or branch to act on. Continuations render the open menu's
// args, close the menu and hand the command to the session's process engine.
package ops

import (
	"strings"

	gmerrors "stackit.dev/gitmenu/internal/errors"
	"stackit.dev/gitmenu/internal/session"
	"stackit.dev/gitmenu/internal/term"
)

// Action is an invocable unit produced by dispatch. It is used at most once.
type Action func(s *session.Session, t term.Terminal) error

// Continuation performs an operation with its resolved argument
type Continuation func(s *session.Session, t term.Terminal, arg string) error

// DefaultResolver computes the value a prompt starts with. Resolvers only
// read session and repository state.
type DefaultResolver func(s *session.Session) (string, error)

// Target is the selection an operation is dispatched against
type Target struct {
	Rev string
}

// Op is implemented by every operation variant
type Op interface {
	// Action returns the action for target, or false when the operation
	// does not apply. target is nil when nothing is selected.
	Action(target *Target) (Action, bool)
	// Display returns the label shown in the menu
	Display(s *session.Session) string
}

// Prompt wraps cont so that invoking the action first asks for its argument.
// The question starts out with resolve's value. When requireNonEmpty is set
// and resolve has nothing to offer, the action fails with ErrMissingArgument
// without asking.
func Prompt(label string, cont Continuation, resolve DefaultResolver, requireNonEmpty bool) Action {
	return promptWith(func(*session.Session) string { return label }, cont, resolve, requireNonEmpty)
}

func promptWith(label func(*session.Session) string, cont Continuation, resolve DefaultResolver, requireNonEmpty bool) Action {
	return func(s *session.Session, t term.Terminal) error {
		question := label(s)

		initial, err := resolve(s)
		if err != nil || initial == "" {
			if requireNonEmpty {
				return gmerrors.NewMissingArgumentError(question, err)
			}
			if err != nil {
				s.Splog.Debug("no default for %q: %v", question, err)
			}
			initial = ""
		}

		value, err := t.ReadLine(s.Context(), question, initial)
		if err != nil {
			return err
		}
		value = strings.TrimSpace(value)
		if value == "" && requireNonEmpty {
			return gmerrors.NewMissingArgumentError(question, nil)
		}
		return cont(s, t, value)
	}
}

// Direct adapts a function that needs no argument into an Action
func Direct(fn func(s *session.Session, t term.Terminal) error) Action {
	return fn
}

// Dispatch resolves op against target and runs the resulting action.
// Nothing is prompted or spawned when the operation is unavailable or an
// external run is still in flight.
func Dispatch(s *session.Session, t term.Terminal, op Op, target *Target) error {
	action, ok := op.Action(target)
	if !ok || action == nil {
		return gmerrors.ErrUnavailable
	}
	if s.Busy() {
		return gmerrors.ErrOperationInFlight
	}
	return action(s, t)
}

// requireRevision fails with ErrNoSuchRef when rev names nothing in the
// repository, so the menu stays open and nothing is spawned.
func requireRevision(s *session.Session, rev string) error {
	if _, err := s.Repo.ResolveRevision(rev); err != nil {
		return err
	}
	return nil
}

// SelectedRev resolves to the revision under the UI cursor
func SelectedRev(s *session.Session) (string, error) {
	if rev := s.SelectedRev(); rev != "" {
		return rev, nil
	}
	return "", gmerrors.NewRefNotFoundError("selection", "no revision selected")
}

// LatestLocalBranch resolves to the most recently created local branch
func LatestLocalBranch(s *session.Session) (string, error) {
	return s.Repo.LatestLocalBranch(s.Context())
}

// CurrentBranch resolves to the checked out branch
func CurrentBranch(s *session.Session) (string, error) {
	return s.Repo.CurrentBranch()
}
