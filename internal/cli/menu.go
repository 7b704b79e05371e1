package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stackit.dev/gitmenu/internal/cli/common"
	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/ops"
	"stackit.dev/gitmenu/internal/output"
	"stackit.dev/gitmenu/internal/runtime"
	"stackit.dev/gitmenu/internal/session"
)

// newMenuCmd creates the menu command
func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu [key]",
		Short: "Print the entries and arguments a menu offers right now",
		Long: `Print the entries and arguments a menu offers in the current repository
state. The key is the one pressed in the TUI (b, c, m or P) and defaults
to m. Arguments switched on by configuration are marked active.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgs: func() []string {
			keys := make([]string, len(ops.Menus))
			for i, mk := range ops.Menus {
				keys[i] = mk.Key
			}
			return keys
		}(),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := "m"
			if len(args) > 0 {
				key = args[0]
			}
			return common.Run(cmd, func(ctx *runtime.Context) error {
				c, pending, err := ops.OpenCatalogue(ctx.Session, key)
				if err != nil {
					return err
				}
				defer ctx.Session.CloseMenu()
				printCatalogue(cmd.OutOrStdout(), ctx.Session, c, pending)
				return nil
			})
		},
	}
	return cmd
}

func printCatalogue(out io.Writer, s *session.Session, c ops.Catalogue, pending *menu.Pending) {
	fmt.Fprintf(out, "%s  %s\n", c.Title, output.ColorDim("on "+s.Repo.HeadDescription()))
	for _, e := range c.Entries {
		fmt.Fprintln(out, output.FormatMenuLine(e.Key, e.Op.Display(s), ""))
	}

	entries := pending.Entries()
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(out, "Arguments")
	for _, e := range entries {
		token := e.Arg.Token
		if e.Arg.Kind == menu.Valued {
			if e.Active {
				token += e.Value
			} else {
				token += "…"
			}
		}
		if e.Active {
			token = output.ColorActive(token + " (active)")
		} else {
			token = output.ColorDim(token)
		}
		fmt.Fprintln(out, output.FormatMenuLine("-"+e.Arg.Key, e.Arg.Label, token))
	}
}
