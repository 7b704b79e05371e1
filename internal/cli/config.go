package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stackit.dev/gitmenu/internal/cli/common"
	"stackit.dev/gitmenu/internal/config"
	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/ops"
	"stackit.dev/gitmenu/internal/runtime"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set repository configuration",
		Long: `Get and set repository configuration values.

get prints the effective value after flags, environment, repository and
user configuration are combined. set writes the repository configuration.

Examples:
  gitmenu config get remote
  gitmenu config set remote upstream
  gitmenu config set merge-defaults -- --no-ff
  gitmenu config set merge-defaults`,
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

// newConfigGetCmd creates the config get command
func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "get <key>",
		Short:     "Get a configuration value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"remote", "git-binary", "editor", "confirm-quit", "merge-defaults"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				s := ctx.Settings
				out := cmd.OutOrStdout()

				switch key := args[0]; key {
				case "remote":
					fmt.Fprintln(out, s.Remote)
				case "git-binary":
					fmt.Fprintln(out, s.GitBinary)
				case "editor":
					fmt.Fprintln(out, s.Editor)
				case "confirm-quit":
					fmt.Fprintln(out, strconv.FormatBool(s.ConfirmQuit))
				case "merge-defaults":
					fmt.Fprintln(out, strings.Join(s.MenuDefaults[ops.MergeMenu.Name], " "))
				default:
					return fmt.Errorf("unknown configuration key: %s", key)
				}
				return nil
			})
		},
	}

	return cmd
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "set <key> [value...]",
		Short:     "Set a configuration value",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{"remote", "git-binary", "merge-defaults"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				key, values := args[0], args[1:]

				switch key {
				case "remote", "git-binary":
					if len(values) != 1 {
						return fmt.Errorf("%s takes exactly one value", key)
					}
					set := config.SetRemote
					if key == "git-binary" {
						set = config.SetGitBinary
					}
					if err := set(ctx.RepoRoot, values[0]); err != nil {
						return fmt.Errorf("failed to set %s: %w", key, err)
					}
					ctx.Splog.Info("Set %s to: %s", key, values[0])
				case "merge-defaults":
					for _, token := range values {
						if !hasMergeToken(token) {
							return fmt.Errorf("the merge menu has no flag %s", token)
						}
					}
					if err := config.SetMergeDefaults(ctx.RepoRoot, values); err != nil {
						return fmt.Errorf("failed to set merge-defaults: %w", err)
					}
					ctx.Splog.Info("Set merge-defaults to: %s", strings.Join(values, " "))
				default:
					return fmt.Errorf("unknown configuration key: %s", key)
				}
				return nil
			})
		},
	}

	return cmd
}

func hasMergeToken(token string) bool {
	for _, a := range ops.MergeMenu.Args {
		if a.Token == token && a.Kind == menu.Flag {
			return true
		}
	}
	return false
}
