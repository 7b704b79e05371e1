package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// repoConfigFile lives inside the repository's .git directory
const repoConfigFile = ".gitmenu_config"

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Remote        *string  `json:"remote,omitempty"`
	GitBinary     *string  `json:"gitBinary,omitempty"`
	MergeDefaults []string `json:"mergeDefaults,omitempty"`
}

// RepoConfigPath returns where the repository configuration is stored
func RepoConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", repoConfigFile)
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(RepoConfigPath(repoRoot))
	if err != nil {
		// Config doesn't exist - return default
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// GetRemote returns the configured remote, or "origin" as default
func GetRemote(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.Remote != nil && *config.Remote != "" {
		return *config.Remote, nil
	}

	return DefaultRemote, nil
}

// SetRemote updates the remote in the config
func SetRemote(repoRoot string, remote string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.Remote = &remote
	return writeRepoConfig(repoRoot, config)
}

// SetGitBinary updates the git executable in the config
func SetGitBinary(repoRoot string, binary string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.GitBinary = &binary
	return writeRepoConfig(repoRoot, config)
}

// SetMergeDefaults replaces the merge menu tokens that start active
func SetMergeDefaults(repoRoot string, tokens []string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	var cleaned []string
	for _, t := range tokens {
		if t != "" && !slices.Contains(cleaned, t) {
			cleaned = append(cleaned, t)
		}
	}
	config.MergeDefaults = cleaned
	return writeRepoConfig(repoRoot, config)
}

func writeRepoConfig(repoRoot string, config *RepoConfig) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(RepoConfigPath(repoRoot), configJSON, 0600)
}
