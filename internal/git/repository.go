package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	gmerrors "stackit.dev/gitmenu/internal/errors"
)

// Repository wraps a go-git repository together with a runner for the
// queries go-git cannot answer.
type Repository struct {
	*gogit.Repository
	path   string
	runner *CommandRunner
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string, runner *CommandRunner) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	root := absPath
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	if runner == nil {
		runner = NewCommandRunner("", root)
	}

	return &Repository{
		Repository: repo,
		path:       root,
		runner:     runner,
	}, nil
}

// Root returns the root directory of the working tree
func (r *Repository) Root() string {
	return r.path
}

// Runner returns the command runner bound to this repository
func (r *Repository) Runner() *CommandRunner {
	return r.runner
}

// CurrentBranch returns the checked out branch, or ErrNotOnBranch when HEAD is detached
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return r.unbornBranch()
		}
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", gmerrors.ErrNotOnBranch
	}
	return head.Name().Short(), nil
}

// unbornBranch handles a fresh repository whose HEAD points at a branch with no commits
func (r *Repository) unbornBranch() (string, error) {
	ref, err := r.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", gmerrors.NewRefNotFoundError("HEAD", err.Error())
	}
	if ref.Type() == plumbing.SymbolicReference && ref.Target().IsBranch() {
		return ref.Target().Short(), nil
	}
	return "", gmerrors.ErrNotOnBranch
}

// HeadDescription returns the branch name, or the short hash when detached
func (r *Repository) HeadDescription() string {
	head, err := r.Head()
	if err != nil {
		if name, err := r.unbornBranch(); err == nil {
			return name
		}
		return "(no HEAD)"
	}
	if head.Name().IsBranch() {
		return head.Name().Short()
	}
	return head.Hash().String()[:7]
}

// BranchNames returns all local branch names
func (r *Repository) BranchNames() ([]string, error) {
	branches, err := r.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}

	var names []string
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}
	return names, nil
}

// ResolveRevision resolves a revision expression to a full hash
func (r *Repository) ResolveRevision(rev string) (string, error) {
	hash, err := r.Repository.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", gmerrors.NewRefNotFoundError(rev, err.Error())
	}
	return hash.String(), nil
}

// LatestLocalBranch returns the most recently created local branch other
// than the one that is checked out. A branch was created when its reflog
// begins; branches without a reflog fall back to the date of their tip.
func (r *Repository) LatestLocalBranch(ctx context.Context) (string, error) {
	current, _ := r.CurrentBranch()

	lines, err := r.runner.RunLines(ctx, "for-each-ref", "--sort=-creatordate", "--format=%(refname:short) %(creatordate:unix)", "refs/heads/")
	if err != nil {
		return "", fmt.Errorf("failed to list branches: %w", err)
	}

	latest, latestCreated := "", int64(-1)
	for _, line := range lines {
		name, tipDate, _ := strings.Cut(line, " ")
		if name == current {
			continue
		}
		created, ok := r.branchCreated(ctx, name)
		if !ok {
			created, _ = strconv.ParseInt(tipDate, 10, 64)
		}
		if created > latestCreated {
			latest, latestCreated = name, created
		}
	}
	if latest == "" {
		return "", gmerrors.NewRefNotFoundError("refs/heads/*", "no other local branch")
	}
	return latest, nil
}

// branchCreated returns the unix time of the oldest reflog entry of branch
func (r *Repository) branchCreated(ctx context.Context, branch string) (int64, bool) {
	entries, err := r.runner.RunLines(ctx, "reflog", "show", "--date=unix", "--format=%gd", "refs/heads/"+branch)
	if err != nil || len(entries) == 0 {
		return 0, false
	}
	oldest := entries[len(entries)-1]
	i := strings.LastIndex(oldest, "@{")
	if i < 0 {
		return 0, false
	}
	created, err := strconv.ParseInt(strings.TrimSuffix(oldest[i+2:], "}"), 10, 64)
	if err != nil {
		return 0, false
	}
	return created, true
}

// MergeInProgress reports whether a merge is waiting to be committed or aborted
func (r *Repository) MergeInProgress() (bool, error) {
	if _, err := r.Reference(plumbing.ReferenceName("MERGE_HEAD"), false); err == nil {
		return true, nil
	}

	// Linked worktrees keep MERGE_HEAD outside the common dir go-git reads.
	path, err := r.runner.Run(context.Background(), "rev-parse", "--git-path", "MERGE_HEAD")
	if err != nil {
		return false, fmt.Errorf("failed to locate MERGE_HEAD: %w", err)
	}
	if !filepath.IsAbs(path) {
		base := r.runner.WorkingDir()
		if base == "" {
			base = r.path
		}
		path = filepath.Join(base, path)
	}
	return fileExists(path), nil
}

// Commit is a summary of one commit for display and selection
type Commit struct {
	Hash     string
	Short    string
	Subject  string
	Author   string
	Branches []string
}

// Label returns the preferred revision name for the commit: its first
// branch if one points at it, otherwise its short hash.
func (c Commit) Label() string {
	if len(c.Branches) > 0 {
		return c.Branches[0]
	}
	return c.Short
}

func subjectOf(message string) string {
	subject, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return subject
}
