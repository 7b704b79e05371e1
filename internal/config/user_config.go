package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserConfigFile is the name of the per-user configuration file
const UserConfigFile = "config.yaml"

// UserConfig is the per-user configuration shared by every repository
type UserConfig struct {
	GitBinary   string              `yaml:"git_binary,omitempty"`
	Editor      string              `yaml:"editor,omitempty"`
	ConfirmQuit *bool               `yaml:"confirm_quit,omitempty"`
	Menus       map[string][]string `yaml:"menus,omitempty"`
}

// UserConfigPath returns the user configuration path. GITMENU_CONFIG
// overrides it; otherwise it is gitmenu/config.yaml under XDG_CONFIG_HOME
// or ~/.config.
func UserConfigPath() (string, error) {
	if path := os.Getenv("GITMENU_CONFIG"); path != "" {
		return path, nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gitmenu", UserConfigFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "gitmenu", UserConfigFile), nil
}

// LoadUserConfig reads the user configuration at path. A missing file is
// an empty configuration.
func LoadUserConfig(path string) (UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return UserConfig{Menus: map[string][]string{}}, nil
		}
		return UserConfig{}, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg UserConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return UserConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Menus == nil {
		cfg.Menus = map[string][]string{}
	}
	return cfg, nil
}

// SaveUserConfig writes cfg to path, creating its directory
func SaveUserConfig(path string, cfg UserConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
