package ops

import (
	"fmt"

	gmerrors "stackit.dev/gitmenu/internal/errors"
	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/session"
	"stackit.dev/gitmenu/internal/term"
	"stackit.dev/gitmenu/internal/utils"
)

// CheckoutAction switches the work tree
type CheckoutAction int

const (
	CheckoutRevision CheckoutAction = iota
	CheckoutNewBranch

	numCheckoutActions
)

// CheckoutActions lists the checkout actions in menu order
var CheckoutActions = []CheckoutAction{CheckoutRevision, CheckoutNewBranch}

var checkoutActionNames = [...]string{
	CheckoutRevision:  "Checkout branch/revision",
	CheckoutNewBranch: "Checkout new branch",
}

var _ = [1]struct{}{}[len(checkoutActionNames)-int(numCheckoutActions)]

// CheckoutMenu is the option set of the branch menu
var CheckoutMenu = menu.Definition{
	Name: "branch",
	Args: []menu.Arg{
		menu.NewFlag("d", "--detach", "Detach HEAD", false),
		menu.NewFlag("f", "--force", "Discard local changes", false),
	},
}

func (c CheckoutAction) String() string {
	if c < 0 || c >= numCheckoutActions {
		return fmt.Sprintf("CheckoutAction(%d)", int(c))
	}
	return checkoutActionNames[c]
}

// Display implements Op
func (c CheckoutAction) Display(_ *session.Session) string {
	return c.String()
}

// Action implements Op
func (c CheckoutAction) Action(_ *Target) (Action, bool) {
	switch c {
	case CheckoutRevision:
		return Prompt("Checkout", checkout, SelectedRev, true), true
	case CheckoutNewBranch:
		return Prompt("Create and checkout branch", checkoutNewBranch, noDefault, false), true
	default:
		return nil, false
	}
}

// checkout also accepts a branch that so far only exists on the remote;
// git creates the tracking branch.
func checkout(s *session.Session, _ term.Terminal, rev string) error {
	if !s.Repo.RemoteBranchExists(s.Remote, rev) {
		if err := requireRevision(s, rev); err != nil {
			return err
		}
	}
	pending, err := s.TakeMenuArgs()
	if err != nil {
		return err
	}
	args := append([]string{"checkout"}, pending...)
	return s.RunAsync(append(args, rev)...)
}

// checkoutNewBranch creates the branch under a sanitized form of the typed name
func checkoutNewBranch(s *session.Session, _ term.Terminal, raw string) error {
	name := utils.SanitizeBranchName(raw)
	if name == "" {
		return gmerrors.NewMissingArgumentError("Create and checkout branch", nil)
	}
	pending, err := s.TakeMenuArgs()
	if err != nil {
		return err
	}
	args := append([]string{"checkout"}, pending...)
	return s.RunAsync(append(args, "-b", name)...)
}

func noDefault(*session.Session) (string, error) {
	return "", nil
}
