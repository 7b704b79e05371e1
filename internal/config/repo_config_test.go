package config

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"stackit.dev/gitmenu/testhelpers"
)

func TestGetRemote(t *testing.T) {
	t.Parallel()

	t.Run("returns origin when config does not exist", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)

		remote, err := GetRemote(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "origin", remote)
	})

	t.Run("returns the configured remote", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)

		config := &RepoConfig{Remote: stringPtr("upstream")}
		configJSON, err := json.MarshalIndent(config, "", "  ")
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(RepoConfigPath(scene.Dir), configJSON, 0600))

		remote, err := GetRemote(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "upstream", remote)
	})

	t.Run("fails on malformed config", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)

		require.NoError(t, os.WriteFile(RepoConfigPath(scene.Dir), []byte("{not json"), 0600))

		_, err := GetRemote(scene.Dir)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse repo config")
	})
}

func TestSetRepoConfig(t *testing.T) {
	t.Parallel()

	t.Run("updates existing config without overwriting other fields", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)

		require.NoError(t, SetRemote(scene.Dir, "fork"))
		require.NoError(t, SetGitBinary(scene.Dir, "/usr/local/bin/git"))
		require.NoError(t, SetMergeDefaults(scene.Dir, []string{"--no-ff", "", "--no-ff"}))

		config, err := GetRepoConfig(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "fork", *config.Remote)
		require.Equal(t, "/usr/local/bin/git", *config.GitBinary)
		require.Equal(t, []string{"--no-ff"}, config.MergeDefaults)

		data, err := os.ReadFile(RepoConfigPath(scene.Dir))
		require.NoError(t, err)
		require.Contains(t, string(data), `"mergeDefaults"`)
	})

	t.Run("fails when repo root does not exist", func(t *testing.T) {
		t.Parallel()

		err := SetRemote("/non/existent/directory", "origin")
		require.Error(t, err)
	})
}

// Helper function to create string pointer
func stringPtr(s string) *string {
	return &s
}
