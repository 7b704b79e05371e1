package config

import (
	"maps"
	"os"
	"slices"
)

// DefaultRemote is pushed to when nothing else is configured
const DefaultRemote = "origin"

// GitBinaryEnv overrides the configured git executable
const GitBinaryEnv = "GITMENU_GIT"

// Settings is the effective configuration of one run
type Settings struct {
	GitBinary    string
	Remote       string
	Editor       string
	ConfirmQuit  bool
	MenuDefaults map[string][]string
}

// Overrides are values given on the command line
type Overrides struct {
	GitBinary string
}

// Resolve merges the configuration layers. For each setting the first one
// present wins: command line, environment, repository config, user config,
// built-in default. Menu defaults from the repository config replace the
// user's list for the same menu.
func Resolve(flags Overrides, repo *RepoConfig, user UserConfig) Settings {
	if repo == nil {
		repo = &RepoConfig{}
	}

	s := Settings{
		GitBinary:    "git",
		Remote:       DefaultRemote,
		Editor:       user.Editor,
		MenuDefaults: map[string][]string{},
	}

	switch {
	case flags.GitBinary != "":
		s.GitBinary = flags.GitBinary
	case os.Getenv(GitBinaryEnv) != "":
		s.GitBinary = os.Getenv(GitBinaryEnv)
	case repo.GitBinary != nil && *repo.GitBinary != "":
		s.GitBinary = *repo.GitBinary
	case user.GitBinary != "":
		s.GitBinary = user.GitBinary
	}

	if repo.Remote != nil && *repo.Remote != "" {
		s.Remote = *repo.Remote
	}
	if user.ConfirmQuit != nil {
		s.ConfirmQuit = *user.ConfirmQuit
	}

	for name, tokens := range user.Menus {
		s.MenuDefaults[name] = slices.Clone(tokens)
	}
	if len(repo.MergeDefaults) > 0 {
		s.MenuDefaults["merge"] = slices.Clone(repo.MergeDefaults)
	}
	return s
}

// Load reads both configuration files and resolves them. userConfigPath
// may be empty to skip the user configuration.
func Load(repoRoot, userConfigPath string, flags Overrides) (Settings, error) {
	repo, err := GetRepoConfig(repoRoot)
	if err != nil {
		return Settings{}, err
	}

	user := UserConfig{Menus: map[string][]string{}}
	if userConfigPath != "" {
		if user, err = LoadUserConfig(userConfigPath); err != nil {
			return Settings{}, err
		}
	}
	return Resolve(flags, repo, user), nil
}

// MenuNames returns the menus that have defaults, sorted
func (s Settings) MenuNames() []string {
	return slices.Sorted(maps.Keys(s.MenuDefaults))
}
