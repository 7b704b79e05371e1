// Package config manages gitmenu configuration.
//
// It handles:
//   - Repository-specific configuration (.git/.gitmenu_config, JSON)
//   - Per-user configuration (~/.config/gitmenu/config.yaml, YAML)
//   - Resolving both with flags and environment into effective Settings
package config
