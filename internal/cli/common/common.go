// Package common provides shared helper functions for CLI commands.
package common

import (
	"github.com/spf13/cobra"

	"stackit.dev/gitmenu/internal/git"
	"stackit.dev/gitmenu/internal/runtime"
)

// Flag names shared by every command
const (
	FlagCwd   = "cwd"
	FlagDebug = "debug"
	FlagGit   = "git"
)

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.NewContext(cmd.Context(), Options(cmd))
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Splog.Close() }()
	return fn(ctx)
}

// Options reads the persistent flags into runtime options
func Options(cmd *cobra.Command) runtime.Options {
	cwd, _ := cmd.Flags().GetString(FlagCwd)
	debug, _ := cmd.Flags().GetBool(FlagDebug)
	gitBinary, _ := cmd.Flags().GetString(FlagGit)
	return runtime.Options{
		Dir:       cwd,
		GitBinary: gitBinary,
		Debug:     debug,
		Stdout:    cmd.OutOrStdout(),
	}
}

// CompleteBranches is a helper for cobra.ValidArgsFunction and RegisterFlagCompletionFunc
// that returns all branch names in the repository.
func CompleteBranches(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	cwd, _ := cmd.Flags().GetString(FlagCwd)
	if cwd == "" {
		cwd = "."
	}
	repo, err := git.OpenRepository(cwd, nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	branches, err := repo.BranchNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return branches, cobra.ShellCompDirectiveNoFileComp
}
