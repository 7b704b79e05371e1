// Package testhelpers provides testing utilities for gitmenu,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has exactly the expected local branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	branches, err := repo.GetLocalBranches()
	require.NoError(t, err, "Failed to list branches")

	sort.Strings(branches)
	want := append([]string(nil), expected...)
	sort.Strings(want)

	require.Equal(t, want, branches, "Branches do not match")
}

// ExpectCommits asserts the newest commit subjects on branch, newest first.
func ExpectCommits(t *testing.T, repo *GitRepo, branch string, expected []string) {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("log", "--format=%s", branch)
	require.NoError(t, err, "Failed to list commits")

	commits := splitLines(output)
	if len(commits) < len(expected) {
		require.Fail(t, "Not enough commits", "Expected %d commits, got %d", len(expected), len(commits))
		return
	}
	require.Equal(t, expected, commits[:len(expected)], "Commits do not match")
}
