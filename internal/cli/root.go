// Package cli wires gitmenu's commands together with cobra.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"stackit.dev/gitmenu/internal/cli/common"
	"stackit.dev/gitmenu/internal/runtime"
	"stackit.dev/gitmenu/internal/tui"
)

// ErrNoTerminal is returned when the TUI is requested without a terminal
var ErrNoTerminal = errors.New("gitmenu needs a terminal; use 'gitmenu merge' for scripted use")

// isTTY is replaced in tests
var isTTY = tui.IsTTY

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitmenu",
		Short: "A keyboard-driven menu for everyday git",
		Long: `gitmenu shows the recent commits of a repository and opens menus on
single keys: b branch, c commit, m merge, P push. Inside a menu, "-"
followed by a key toggles an argument and the entry key runs the command.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTTY() {
				return ErrNoTerminal
			}
			return common.Run(cmd, func(ctx *runtime.Context) error {
				return tui.Run(ctx.Session, ctx.Engine, tui.Options{ConfirmQuit: ctx.Settings.ConfirmQuit})
			})
		},
	}

	rootCmd.PersistentFlags().String(common.FlagCwd, "", "run as if started in this directory")
	rootCmd.PersistentFlags().Bool(common.FlagDebug, false, "write debug output")
	rootCmd.PersistentFlags().String(common.FlagGit, "", "git executable to run")

	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newMenuCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
