package ops

import (
	"fmt"

	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/session"
)

// Entry binds a key to an operation inside a catalogue
type Entry struct {
	Key string
	Op  Op
}

// Catalogue is the set of operations shown by an open menu together with
// the options that menu offers
type Catalogue struct {
	Title   string
	Menu    menu.Definition
	Entries []Entry
}

// Lookup returns the operation bound to key
func (c Catalogue) Lookup(key string) (Op, bool) {
	for _, e := range c.Entries {
		if e.Key == key {
			return e.Op, true
		}
	}
	return nil, false
}

var (
	idleMergeCatalogue = Catalogue{
		Title: "Merge",
		Menu:  MergeMenu,
		Entries: []Entry{
			{Key: "m", Op: MergePlain},
			{Key: "e", Op: MergeEdit},
			{Key: "n", Op: MergeNoCommit},
			{Key: "a", Op: MergeAbsorb},
			{Key: "s", Op: MergeSquash},
			{Key: "i", Op: MergeDissolve},
		},
	}

	inProgressMergeCatalogue = Catalogue{
		Title: "Merge",
		Menu:  MergeStateMenu,
		Entries: []Entry{
			{Key: "m", Op: MergeStateCommit},
			{Key: "a", Op: MergeStateAbort},
		},
	}

	commitCatalogue = Catalogue{
		Title: "Commit",
		Menu:  CommitMenu,
		Entries: []Entry{
			{Key: "c", Op: CommitPlain},
			{Key: "a", Op: CommitAmend},
		},
	}

	pushCatalogue = Catalogue{
		Title: "Push",
		Menu:  PushMenu,
		Entries: []Entry{
			{Key: "u", Op: PushUpstream},
			{Key: "e", Op: PushSetUpstream},
		},
	}

	checkoutCatalogue = Catalogue{
		Title: "Branch",
		Menu:  CheckoutMenu,
		Entries: []Entry{
			{Key: "b", Op: CheckoutRevision},
			{Key: "c", Op: CheckoutNewBranch},
		},
	}
)

// CurrentCatalogue selects the merge catalogue for the repository state.
// While a merge is in progress only concluding or aborting it is offered.
func CurrentCatalogue(inProgress bool) Catalogue {
	if inProgress {
		return inProgressMergeCatalogue
	}
	return idleMergeCatalogue
}

// MenuKey identifies a top-level menu
type MenuKey struct {
	Key   string
	Label string
}

// Menus lists the top-level menus in the order they are shown in help
var Menus = []MenuKey{
	{Key: "b", Label: "Branch"},
	{Key: "c", Label: "Commit"},
	{Key: "m", Label: "Merge"},
	{Key: "P", Label: "Push"},
}

// CatalogueFor returns the catalogue behind a top-level menu key. The merge
// menu asks the repository whether a merge is in progress every time.
func CatalogueFor(s *session.Session, key string) (Catalogue, error) {
	switch key {
	case "b":
		return checkoutCatalogue, nil
	case "c":
		return commitCatalogue, nil
	case "m":
		inProgress, err := s.Repo.MergeInProgress()
		if err != nil {
			return Catalogue{}, fmt.Errorf("failed to check for a merge in progress: %w", err)
		}
		return CurrentCatalogue(inProgress), nil
	case "P":
		return pushCatalogue, nil
	default:
		return Catalogue{}, fmt.Errorf("no menu bound to %q", key)
	}
}

// OpenCatalogue selects the catalogue for key and opens its menu on s
func OpenCatalogue(s *session.Session, key string) (Catalogue, *menu.Pending, error) {
	c, err := CatalogueFor(s, key)
	if err != nil {
		return Catalogue{}, nil, err
	}
	return c, s.OpenMenu(c.Menu), nil
}
