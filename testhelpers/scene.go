package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository.
// The directory is removed by t.Cleanup unless DEBUG is set. Scenes never
// change the process working directory, so tests using them may run in
// parallel.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gitmenu-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	// macOS hands out /var paths that resolve to /private/var
	if resolved, err := filepath.EvalSymlinks(tmpDir); err == nil {
		tmpDir = resolved
	}

	t.Cleanup(func() {
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(tmpDir)
			os.RemoveAll(tmpDir + "-origin.git")
		}
	})

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  tmpDir,
		Repo: repo,
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// UserConfigPath returns a user config location private to the scene
func (s *Scene) UserConfigPath() string {
	return filepath.Join(s.Dir, ".git", "gitmenu_user_config.yaml")
}

// BasicSceneSetup creates a single commit on main.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// BranchSceneSetup creates main with one commit and a feature branch with
// one more, leaving feature checked out.
func BranchSceneSetup(scene *Scene) error {
	if err := BasicSceneSetup(scene); err != nil {
		return err
	}
	if err := scene.Repo.CreateAndCheckoutBranch("feature"); err != nil {
		return err
	}
	return scene.Repo.CreateChangeAndCommit("feature work", "feature")
}

// ConflictSceneSetup leaves main in the middle of a conflicting merge of feature.
func ConflictSceneSetup(scene *Scene) error {
	if err := BasicSceneSetup(scene); err != nil {
		return err
	}
	if err := scene.Repo.CreateAndCheckoutBranch("feature"); err != nil {
		return err
	}
	if err := scene.Repo.CreateChangeAndCommit("theirs", "1"); err != nil {
		return err
	}
	if err := scene.Repo.CheckoutBranch("main"); err != nil {
		return err
	}
	if err := scene.Repo.CreateChangeAndCommit("ours", "1"); err != nil {
		return err
	}
	return scene.Repo.StartConflictingMerge("feature")
}
