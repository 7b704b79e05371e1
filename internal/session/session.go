// Package session holds the state one interactive run of gitmenu works on:
// the repository, the open menu, the UI selection and the process engine.
// It is passed explicitly to every operation; there is no global state.
package session

import (
	"context"
	"os/exec"
	"sync"

	gmerrors "stackit.dev/gitmenu/internal/errors"
	"stackit.dev/gitmenu/internal/git"
	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/output"
	"stackit.dev/gitmenu/internal/process"
	"stackit.dev/gitmenu/internal/term"
)

// Repository is the read-only view of the repository operations consume
type Repository interface {
	CurrentBranch() (string, error)
	HeadDescription() string
	UpstreamOf(branch string) (git.Upstream, error)
	RemoteBranchExists(remote, branch string) bool
	ResolveRevision(rev string) (string, error)
	LatestLocalBranch(ctx context.Context) (string, error)
	MergeInProgress() (bool, error)
	RecentCommits(limit int) ([]git.Commit, error)
}

// CommandBuilder builds unstarted git commands
type CommandBuilder interface {
	Command(ctx context.Context, args ...string) *exec.Cmd
}

// Executor runs external commands; process.Engine is the real one
type Executor interface {
	RunAsync(cmd *exec.Cmd) error
	Run(cmd *exec.Cmd) (process.Result, error)
	RunInteractive(t term.Terminal, cmd *exec.Cmd) error
	Busy() bool
}

// ReviewFinder looks up the open review for a branch. It is optional.
type ReviewFinder interface {
	OpenReviewURL(ctx context.Context, branch string) (string, error)
}

// Session is the context every operation runs against
type Session struct {
	ctx     context.Context
	Repo    Repository
	Git     CommandBuilder
	Exec    Executor
	Splog   *output.Splog
	Reviews ReviewFinder

	// MenuDefaults lists tokens that start active, keyed by menu name
	MenuDefaults map[string][]string
	// Remote is offered when a branch has no upstream yet
	Remote string

	mu       sync.Mutex
	menu     *menu.Pending
	selected string
}

// New creates a session
func New(ctx context.Context, repo Repository, gitCmd CommandBuilder, executor Executor, splog *output.Splog) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Session{
		ctx:          ctx,
		Repo:         repo,
		Git:          gitCmd,
		Exec:         executor,
		Splog:        splog,
		MenuDefaults: map[string][]string{},
		Remote:       "origin",
	}
}

// Context returns the session's context
func (s *Session) Context() context.Context {
	return s.ctx
}

// OpenMenu opens def as the pending menu, replacing any menu that was open
func (s *Session) OpenMenu(def menu.Definition) *menu.Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = menu.NewPending(def, s.MenuDefaults[def.Name]...)
	return s.menu
}

// Menu returns the open menu, or nil
func (s *Session) Menu() *menu.Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menu
}

// CloseMenu discards the open menu
func (s *Session) CloseMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = nil
}

// PendingArgs renders the open menu without closing it
func (s *Session) PendingArgs() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.menu == nil {
		return nil, gmerrors.ErrNoOpenMenu
	}
	return s.menu.Args(), nil
}

// TakeMenuArgs renders the open menu and closes it in one step, so the
// option set cannot be reused by a later dispatch.
func (s *Session) TakeMenuArgs() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.menu == nil {
		return nil, gmerrors.ErrNoOpenMenu
	}
	args := s.menu.Args()
	s.menu = nil
	return args, nil
}

// SetSelectedRev records the revision under the UI cursor
func (s *Session) SetSelectedRev(rev string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = rev
}

// SelectedRev returns the revision under the UI cursor, or ""
func (s *Session) SelectedRev() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Busy reports whether an external run is in flight
func (s *Session) Busy() bool {
	return s.Exec.Busy()
}

func (s *Session) command(args []string) *exec.Cmd {
	return s.Git.Command(s.ctx, args...)
}

// RunAsync starts git with args in the background
func (s *Session) RunAsync(args ...string) error {
	return s.Exec.RunAsync(s.command(args))
}

// Run runs git with args to completion, capturing its output
func (s *Session) Run(args ...string) (process.Result, error) {
	return s.Exec.Run(s.command(args))
}

// RunInteractive runs git with args in the foreground on t
func (s *Session) RunInteractive(t term.Terminal, args ...string) error {
	return s.Exec.RunInteractive(t, s.command(args))
}
