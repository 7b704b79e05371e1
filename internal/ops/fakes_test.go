package ops

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	gmerrors "stackit.dev/gitmenu/internal/errors"
	"stackit.dev/gitmenu/internal/git"
	"stackit.dev/gitmenu/internal/output"
	"stackit.dev/gitmenu/internal/process"
	"stackit.dev/gitmenu/internal/session"
	"stackit.dev/gitmenu/internal/term"
)

// fakeRepo answers repository queries from fields
type fakeRepo struct {
	branch       string // "" means detached
	branchAfter  map[string]string
	upstreams    map[string]git.Upstream
	remoteRefs   map[string]bool
	unknownRefs  map[string]bool
	latest       string
	latestErr    error
	mergeActive  bool
	mergeQueries int
}

func (r *fakeRepo) CurrentBranch() (string, error) {
	if r.branch == "" {
		return "", gmerrors.ErrNotOnBranch
	}
	return r.branch, nil
}

func (r *fakeRepo) HeadDescription() string {
	if r.branch == "" {
		return "(detached)"
	}
	return r.branch
}

func (r *fakeRepo) UpstreamOf(branch string) (git.Upstream, error) {
	u, ok := r.upstreams[branch]
	if !ok {
		return git.Upstream{}, gmerrors.NewRefNotFoundError(branch+"@{upstream}", "no upstream configured")
	}
	return u, nil
}

func (r *fakeRepo) RemoteBranchExists(remote, branch string) bool {
	return r.remoteRefs[remote+"/"+branch]
}

func (r *fakeRepo) ResolveRevision(rev string) (string, error) {
	if r.unknownRefs[rev] {
		return "", gmerrors.NewRefNotFoundError(rev, "reference not found")
	}
	return rev, nil
}

func (r *fakeRepo) LatestLocalBranch(context.Context) (string, error) {
	if r.latestErr != nil {
		return "", r.latestErr
	}
	if r.latest == "" {
		return "", gmerrors.NewRefNotFoundError("latest local branch", "no other local branch")
	}
	return r.latest, nil
}

func (r *fakeRepo) MergeInProgress() (bool, error) {
	r.mergeQueries++
	return r.mergeActive, nil
}

func (r *fakeRepo) RecentCommits(int) ([]git.Commit, error) {
	return nil, nil
}

// call is one command the recorder was asked to run
type call struct {
	Mode string // "async", "sync" or "interactive"
	Args []string
}

// recorder is an Executor that records commands instead of running them
type recorder struct {
	mu    sync.Mutex
	calls []call
	busy  bool
	// fail maps a git subcommand to the error its run returns
	fail map[string]error
	// repo moves HEAD per branchAfter when a checkout succeeds
	repo *fakeRepo
	// afterRun is called with the args of every successful command
	afterRun func(args []string)
}

func (e *recorder) record(mode string, cmd *exec.Cmd) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	args := append([]string(nil), cmd.Args[1:]...)
	e.calls = append(e.calls, call{Mode: mode, Args: args})
	if len(args) > 0 {
		if err, ok := e.fail[args[0]]; ok {
			return gmerrors.NewExternalToolError("git", args, "", "", err)
		}
		if args[0] == "checkout" && e.repo != nil {
			if b, ok := e.repo.branchAfter[args[len(args)-1]]; ok {
				e.repo.branch = b
			}
		}
	}
	if e.afterRun != nil {
		e.afterRun(args)
	}
	return nil
}

func (e *recorder) RunAsync(cmd *exec.Cmd) error {
	if e.Busy() {
		return gmerrors.ErrOperationInFlight
	}
	return e.record("async", cmd)
}

func (e *recorder) Run(cmd *exec.Cmd) (process.Result, error) {
	err := e.record("sync", cmd)
	return process.Result{Args: cmd.Args, Err: err}, err
}

func (e *recorder) RunInteractive(t term.Terminal, cmd *exec.Cmd) error {
	if e.Busy() {
		return gmerrors.ErrOperationInFlight
	}
	return term.Handoff(t, func() error { return e.record("interactive", cmd) })
}

func (e *recorder) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

func (e *recorder) commands() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.calls))
	for i, c := range e.calls {
		out[i] = c.Mode + ": " + strings.Join(c.Args, " ")
	}
	return out
}

type fixture struct {
	repo *fakeRepo
	exec *recorder
	sess *session.Session
	logs *bytes.Buffer
}

func newFixture(t *testing.T, repo *fakeRepo) *fixture {
	t.Helper()
	logs := &bytes.Buffer{}
	splog, err := output.NewSplogWithConfig(logs, "", true)
	require.NoError(t, err)

	rec := &recorder{repo: repo, fail: map[string]error{}}
	s := session.New(context.Background(), repo, git.NewCommandRunner("git", t.TempDir()), rec, splog)
	return &fixture{repo: repo, exec: rec, sess: s, logs: logs}
}

type fakeReviews struct {
	url      string
	err      error
	branches []string
}

func (f *fakeReviews) OpenReviewURL(_ context.Context, branch string) (string, error) {
	f.branches = append(f.branches, branch)
	return f.url, f.err
}
