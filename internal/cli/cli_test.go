package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	gmerrors "stackit.dev/gitmenu/internal/errors"
	"stackit.dev/gitmenu/internal/tui"
	"stackit.dev/gitmenu/testhelpers"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// runCLI executes gitmenu in the scene's repository with isolated git and
// gitmenu configuration
func runCLI(t *testing.T, scene *testhelpers.Scene, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GITMENU_LOG_FILE", filepath.Join(t.TempDir(), "gitmenu.log"))
	t.Setenv("GITMENU_CONFIG", scene.UserConfigPath())
	t.Setenv("GITMENU_GIT", "")

	cmd := NewRootCmd("1.2.3", "abc1234", "2026-10-01")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--cwd", scene.Dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func parentsOf(t *testing.T, scene *testhelpers.Scene, rev string) []string {
	t.Helper()
	out, err := scene.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%P", rev)
	require.NoError(t, err)
	return strings.Fields(out)
}

func TestVersion(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	out, err := runCLI(t, scene, "version")
	require.NoError(t, err)
	require.Equal(t, "gitmenu 1.2.3 (commit abc1234, built 2026-10-01)\n", out)
}

func TestRootNeedsTerminal(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	isTTY = func() bool { return false }
	t.Cleanup(func() { isTTY = tui.IsTTY })

	_, err := runCLI(t, scene)
	require.ErrorIs(t, err, ErrNoTerminal)
}

func TestMergeCommand(t *testing.T) {
	t.Run("plain merge fast-forwards", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)
		require.NoError(t, scene.Repo.CheckoutBranch("main"))

		out, err := runCLI(t, scene, "merge", "plain", "feature", "--yes")
		require.NoError(t, err)
		require.Contains(t, out, "✓ git merge feature")

		main := testhelpers.Must(scene.Repo.GetRevision("main"))
		feature := testhelpers.Must(scene.Repo.GetRevision("feature"))
		require.Equal(t, feature, main)
		require.Equal(t, "main", testhelpers.Must(scene.Repo.CurrentBranchName()))
		testhelpers.ExpectBranches(t, scene.Repo, []string{"main", "feature"})
	})

	t.Run("menu arguments reach git", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)
		require.NoError(t, scene.Repo.CheckoutBranch("main"))

		out, err := runCLI(t, scene, "merge", "plain", "feature", "--yes", "--arg=--no-ff")
		require.NoError(t, err)
		require.Contains(t, out, "✓ git merge --no-ff feature")
		require.Len(t, parentsOf(t, scene, "main"), 2)
	})

	t.Run("strategy value is validated", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)
		require.NoError(t, scene.Repo.CheckoutBranch("main"))

		_, err := runCLI(t, scene, "merge", "plain", "feature", "--yes", "--arg=--strategy=bogus")
		require.ErrorContains(t, err, "unknown merge strategy")
	})

	t.Run("edit merge runs the configured editor", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)
		require.NoError(t, scene.Repo.CheckoutBranch("main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("main work", "main"))
		require.NoError(t, os.WriteFile(scene.UserConfigPath(), []byte("editor: \"true\"\n"), 0o600))

		out, err := runCLI(t, scene, "merge", "edit", "feature", "--yes")
		require.NoError(t, err)
		require.Contains(t, out, "✓ git merge --edit feature")
		require.Len(t, parentsOf(t, scene, "main"), 2)
		testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"Merge branch 'feature'"})
	})

	t.Run("nothing selected", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)

		_, err := runCLI(t, scene, "merge", "squash", "--yes")
		require.ErrorIs(t, err, gmerrors.ErrMissingArgument)
	})

	t.Run("absorb is not implemented", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)

		_, err := runCLI(t, scene, "merge", "absorb", "--yes")
		require.ErrorIs(t, err, gmerrors.ErrNotImplemented)
	})

	t.Run("unknown revision never reaches git", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)

		out, err := runCLI(t, scene, "merge", "plain", "no-such-branch", "--yes")
		require.ErrorIs(t, err, gmerrors.ErrNoSuchRef)
		require.NotContains(t, out, "git merge")
	})

	t.Run("failed merge reports git's error", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)
		require.NoError(t, scene.Repo.CheckoutBranch("main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("main work", "main"))

		out, err := runCLI(t, scene, "merge", "plain", "feature", "--yes", "--arg=--ff-only")
		require.ErrorIs(t, err, gmerrors.ErrExternalToolFailure)
		require.Contains(t, out, "✗ git merge --ff-only feature")
		testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"main work"})
	})

	t.Run("unknown variant", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)

		_, err := runCLI(t, scene, "merge", "octopus")
		require.ErrorContains(t, err, `unknown merge variant "octopus"`)
	})

	t.Run("conclude is only offered during a merge", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)

		_, err := runCLI(t, scene, "merge", "commit")
		require.ErrorContains(t, err, "not offered in the current repository state")
	})

	t.Run("abort ends a merge in progress", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.ConflictSceneSetup)

		_, err := runCLI(t, scene, "merge", "plain", "feature", "--yes")
		require.ErrorContains(t, err, "not offered")

		out, err := runCLI(t, scene, "merge", "abort")
		require.NoError(t, err)
		require.Contains(t, out, "✓ git merge --abort")
		require.False(t, scene.Repo.MergeInProgress())
	})
}

func TestMenuCommand(t *testing.T) {
	t.Run("idle merge menu", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)

		out, err := runCLI(t, scene, "menu")
		require.NoError(t, err)
		require.Contains(t, out, "Merge  on feature")
		require.Contains(t, out, "  m  Merge\n")
		require.Contains(t, out, "  i  Dissolve\n")
		require.Contains(t, out, "  -n  No fast-forward  --no-ff\n")
		require.Contains(t, out, "  -s  Strategy  --strategy=…\n")
	})

	t.Run("merge in progress", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.ConflictSceneSetup)

		out, err := runCLI(t, scene, "menu", "m")
		require.NoError(t, err)
		require.Contains(t, out, "  m  commit\n")
		require.Contains(t, out, "  a  abort\n")
		require.NotContains(t, out, "Arguments")
	})

	t.Run("push menu", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)

		out, err := runCLI(t, scene, "menu", "P")
		require.NoError(t, err)
		require.Contains(t, out, "  u  to upstream\n")
		require.Contains(t, out, "--force-with-lease")
	})

	t.Run("unknown key", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)

		_, err := runCLI(t, scene, "menu", "x")
		require.ErrorContains(t, err, `no menu bound to "x"`)
	})
}

func TestConfigCommand(t *testing.T) {
	t.Run("remote", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		out, err := runCLI(t, scene, "config", "get", "remote")
		require.NoError(t, err)
		require.Equal(t, "origin\n", out)

		_, err = runCLI(t, scene, "config", "set", "remote", "upstream")
		require.NoError(t, err)

		out, err = runCLI(t, scene, "config", "get", "remote")
		require.NoError(t, err)
		require.Equal(t, "upstream\n", out)
	})

	t.Run("merge defaults start active", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BranchSceneSetup)

		_, err := runCLI(t, scene, "config", "set", "merge-defaults", "--", "--no-ff")
		require.NoError(t, err)

		out, err := runCLI(t, scene, "config", "get", "merge-defaults")
		require.NoError(t, err)
		require.Equal(t, "--no-ff\n", out)

		out, err = runCLI(t, scene, "menu")
		require.NoError(t, err)
		require.Contains(t, out, "--no-ff (active)")
	})

	t.Run("merge defaults must be merge flags", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		_, err := runCLI(t, scene, "config", "set", "merge-defaults", "--", "--force")
		require.ErrorContains(t, err, "the merge menu has no flag --force")
	})

	t.Run("git binary from the environment wins", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		_, err := runCLI(t, scene, "config", "set", "git-binary", "/opt/git/bin/git")
		require.NoError(t, err)

		out, err := runCLI(t, scene, "config", "get", "git-binary")
		require.NoError(t, err)
		require.Equal(t, "/opt/git/bin/git\n", out)

		out, err = runCLI(t, scene, "--git", "git", "config", "get", "git-binary")
		require.NoError(t, err)
		require.Equal(t, "git\n", out)
	})

	t.Run("unknown key", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		_, err := runCLI(t, scene, "config", "get", "color")
		require.ErrorContains(t, err, "unknown configuration key: color")
	})
}
