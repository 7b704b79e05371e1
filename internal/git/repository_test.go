package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	gmerrors "stackit.dev/gitmenu/internal/errors"
	"stackit.dev/gitmenu/internal/git"
	"stackit.dev/gitmenu/testhelpers"
)

func openScene(t *testing.T, setup testhelpers.SceneSetup) (*testhelpers.Scene, *git.Repository) {
	t.Helper()
	scene := testhelpers.NewScene(t, setup)
	repo, err := git.OpenRepository(scene.Dir, nil)
	require.NoError(t, err)
	return scene, repo
}

func TestCurrentBranch(t *testing.T) {
	t.Run("returns the checked out branch", func(t *testing.T) {
		_, repo := openScene(t, testhelpers.BranchSceneSetup)

		branch, err := repo.CurrentBranch()
		require.NoError(t, err)
		require.Equal(t, "feature", branch)
		require.Equal(t, "feature", repo.HeadDescription())
	})

	t.Run("reports a detached HEAD", func(t *testing.T) {
		scene, repo := openScene(t, testhelpers.BranchSceneSetup)
		require.NoError(t, scene.Repo.CheckoutDetached("main"))

		_, err := repo.CurrentBranch()
		require.ErrorIs(t, err, gmerrors.ErrNotOnBranch)

		sha, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)
		require.Equal(t, sha[:7], repo.HeadDescription())
	})

	t.Run("names the unborn branch of an empty repository", func(t *testing.T) {
		_, repo := openScene(t, nil)

		branch, err := repo.CurrentBranch()
		require.NoError(t, err)
		require.Equal(t, "main", branch)
	})
}

func TestOpenRepositoryFromSubdirectory(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	sub := filepath.Join(scene.Dir, "nested", "dir")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	repo, err := git.OpenRepository(sub, nil)
	require.NoError(t, err)
	require.Equal(t, scene.Dir, repo.Root())
	require.Equal(t, scene.Dir, repo.Runner().WorkingDir())
}

func TestBranchNamesAndResolve(t *testing.T) {
	scene, repo := openScene(t, testhelpers.BranchSceneSetup)

	names, err := repo.BranchNames()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"main", "feature"}, names)

	want, err := scene.Repo.GetRevision("feature")
	require.NoError(t, err)
	got, err := repo.ResolveRevision("feature")
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = repo.ResolveRevision("no-such-branch")
	require.ErrorIs(t, err, gmerrors.ErrNoSuchRef)
}

func TestLatestLocalBranch(t *testing.T) {
	t.Run("skips the current branch", func(t *testing.T) {
		_, repo := openScene(t, testhelpers.BranchSceneSetup)

		latest, err := repo.LatestLocalBranch(context.Background())
		require.NoError(t, err)
		require.Equal(t, "main", latest)
	})

	t.Run("orders by creation, not by the tip's date", func(t *testing.T) {
		scene, repo := openScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.RunGitCommandAt("1577836800 +0000", "checkout", "-b", "old-feature"))
		require.NoError(t, scene.Repo.CreateChange("future", "future", false))
		require.NoError(t, scene.Repo.RunGitCommandAt("1893456000 +0000", "commit", "-m", "future"))
		require.NoError(t, scene.Repo.CheckoutBranch("main"))
		require.NoError(t, scene.Repo.RunGitCommandAt("1609459200 +0000", "branch", "fresh"))

		latest, err := repo.LatestLocalBranch(context.Background())
		require.NoError(t, err)
		require.Equal(t, "fresh", latest)
	})

	t.Run("fails when there is no other branch", func(t *testing.T) {
		_, repo := openScene(t, testhelpers.BasicSceneSetup)

		_, err := repo.LatestLocalBranch(context.Background())
		require.ErrorIs(t, err, gmerrors.ErrNoSuchRef)
	})
}

func TestUpstream(t *testing.T) {
	t.Run("pushed branch tracks its remote branch", func(t *testing.T) {
		scene, repo := openScene(t, testhelpers.BranchSceneSetup)
		bare, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.PushBranch("origin", "feature"))

		upstream, err := repo.UpstreamOf("feature")
		require.NoError(t, err)
		require.Equal(t, git.Upstream{Remote: "origin", Branch: "feature"}, upstream)
		require.Equal(t, "origin/feature", upstream.String())
		require.False(t, upstream.IsLocal())

		require.True(t, repo.RemoteBranchExists("origin", "feature"))
		require.False(t, repo.RemoteBranchExists("origin", "main"))

		remoteURL, err := repo.RemoteURL("origin")
		require.NoError(t, err)
		require.Equal(t, bare, remoteURL)
	})

	t.Run("local upstream", func(t *testing.T) {
		scene, repo := openScene(t, testhelpers.BranchSceneSetup)
		require.NoError(t, scene.Repo.SetUpstream("feature", ".", "main"))

		upstream, err := repo.UpstreamOf("feature")
		require.NoError(t, err)
		require.True(t, upstream.IsLocal())
		require.Equal(t, "main", upstream.String())
	})

	t.Run("branch without upstream", func(t *testing.T) {
		_, repo := openScene(t, testhelpers.BranchSceneSetup)

		_, err := repo.UpstreamOf("feature")
		require.ErrorIs(t, err, gmerrors.ErrNoSuchRef)

		_, err = repo.RemoteURL("origin")
		require.ErrorIs(t, err, gmerrors.ErrNoSuchRef)
	})
}

func TestMergeInProgress(t *testing.T) {
	t.Run("false in a clean repository", func(t *testing.T) {
		_, repo := openScene(t, testhelpers.BranchSceneSetup)

		inProgress, err := repo.MergeInProgress()
		require.NoError(t, err)
		require.False(t, inProgress)
	})

	t.Run("true while a conflicting merge waits", func(t *testing.T) {
		scene, repo := openScene(t, testhelpers.ConflictSceneSetup)

		inProgress, err := repo.MergeInProgress()
		require.NoError(t, err)
		require.True(t, inProgress)

		require.NoError(t, scene.Repo.RunGitCommand("merge", "--abort"))
		inProgress, err = repo.MergeInProgress()
		require.NoError(t, err)
		require.False(t, inProgress)
	})
}

func TestRecentCommits(t *testing.T) {
	t.Run("newest first with branch decorations", func(t *testing.T) {
		_, repo := openScene(t, testhelpers.BranchSceneSetup)

		commits, err := repo.RecentCommits(10)
		require.NoError(t, err)
		require.Len(t, commits, 2)

		require.Equal(t, "feature work", commits[0].Subject)
		require.Equal(t, []string{"feature"}, commits[0].Branches)
		require.Equal(t, "feature", commits[0].Label())
		require.Equal(t, "Test User", commits[0].Author)

		require.Equal(t, "1", commits[1].Subject)
		require.Equal(t, "main", commits[1].Label())
		require.Len(t, commits[1].Short, 7)
	})

	t.Run("respects the limit", func(t *testing.T) {
		_, repo := openScene(t, testhelpers.BranchSceneSetup)

		commits, err := repo.RecentCommits(1)
		require.NoError(t, err)
		require.Len(t, commits, 1)
	})

	t.Run("undecorated commit is labelled by hash", func(t *testing.T) {
		scene, repo := openScene(t, testhelpers.BranchSceneSetup)
		require.NoError(t, scene.Repo.CreateChangeAndCommit("more", "more"))
		require.NoError(t, scene.Repo.CheckoutDetached("HEAD"))
		require.NoError(t, scene.Repo.RunGitCommand("branch", "-f", "feature", "HEAD~1"))

		commits, err := repo.RecentCommits(3)
		require.NoError(t, err)
		require.Empty(t, commits[0].Branches)
		require.Equal(t, commits[0].Short, commits[0].Label())
	})

	t.Run("empty repository", func(t *testing.T) {
		_, repo := openScene(t, nil)

		commits, err := repo.RecentCommits(10)
		require.NoError(t, err)
		require.Empty(t, commits)
	})
}
