package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"stackit.dev/gitmenu/internal/cli/common"
	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/ops"
	"stackit.dev/gitmenu/internal/output"
	"stackit.dev/gitmenu/internal/runtime"
	"stackit.dev/gitmenu/internal/term"
)

// mergeVariants names every operation reachable from the merge menu
var mergeVariants = []struct {
	name string
	op   ops.Op
}{
	{"plain", ops.MergePlain},
	{"edit", ops.MergeEdit},
	{"no-commit", ops.MergeNoCommit},
	{"absorb", ops.MergeAbsorb},
	{"squash", ops.MergeSquash},
	{"dissolve", ops.MergeDissolve},
	{"commit", ops.MergeStateCommit},
	{"abort", ops.MergeStateAbort},
}

func mergeVariantNames() []string {
	names := make([]string, len(mergeVariants))
	for i, v := range mergeVariants {
		names[i] = v.name
	}
	return names
}

// newMergeCmd creates the merge command
func newMergeCmd() *cobra.Command {
	var (
		args []string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "merge <variant> [revision]",
		Short: "Run one entry of the merge menu without the TUI",
		Long: `Run one entry of the merge menu without the TUI.

Variants: ` + strings.Join(mergeVariantNames(), ", ") + `.
commit and abort are only offered while a merge is in progress; the others
only while none is. The revision takes the place of the TUI selection and
seeds the prompt. Arguments are toggled in the menu with --arg, e.g.
--arg=--no-ff or --arg=--strategy=ours.`,
		Example: `  gitmenu merge plain feature --arg=--no-ff
  gitmenu merge dissolve --yes
  gitmenu merge abort`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeMergeArgs,
		RunE: func(cmd *cobra.Command, positional []string) error {
			op, err := parseMergeVariant(positional[0])
			if err != nil {
				return err
			}
			rev := ""
			if len(positional) > 1 {
				rev = positional[1]
			}
			return common.Run(cmd, func(ctx *runtime.Context) error {
				return runHeadless(ctx, cmd.OutOrStdout(), headlessRequest{
					menuKey: "m",
					op:      op,
					rev:     rev,
					args:    args,
					term:    term.NewHeadless(yes),
				})
			})
		},
	}

	cmd.Flags().StringArrayVarP(&args, "arg", "a", nil, "toggle a menu argument before running (repeatable)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept every prompt's default without asking")

	return cmd
}

func completeMergeArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return mergeVariantNames(), cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) == 1 {
		return common.CompleteBranches(cmd, args, toComplete)
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func parseMergeVariant(name string) (ops.Op, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, v := range mergeVariants {
		if v.name == name {
			return v.op, nil
		}
	}
	return nil, fmt.Errorf("unknown merge variant %q (expected one of %s)", name, strings.Join(mergeVariantNames(), ", "))
}

type headlessRequest struct {
	menuKey string
	op      ops.Op
	rev     string
	args    []string
	term    term.Terminal
}

// runHeadless dispatches one operation through the same protocol the TUI
// uses: select, open the menu, adjust its arguments, dispatch, then wait
// for background runs and report every result.
func runHeadless(ctx *runtime.Context, out io.Writer, req headlessRequest) error {
	s := ctx.Session
	s.SetSelectedRev(req.rev)

	catalogue, pending, err := ops.OpenCatalogue(s, req.menuKey)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(catalogue.Entries, func(e ops.Entry) bool { return e.Op == req.op }) {
		s.CloseMenu()
		return fmt.Errorf("%s is not offered in the current repository state", req.op.Display(s))
	}
	if err := applyArgs(pending, req.args); err != nil {
		s.CloseMenu()
		return err
	}

	var target *ops.Target
	if req.rev != "" {
		target = &ops.Target{Rev: req.rev}
	}
	dispatchErr := ops.Dispatch(s, req.term, req.op, target)
	ctx.Engine.Wait()

	var runErr error
	for _, res := range ctx.Engine.Results() {
		fmt.Fprintln(out, output.FormatResult(res.CommandLine(), res.Err))
		if res.Failed() && runErr == nil {
			runErr = res.Err
		}
	}
	if dispatchErr != nil {
		return dispatchErr
	}
	return runErr
}

// applyArgs toggles flags and sets valued args given as token=value
func applyArgs(pending *menu.Pending, args []string) error {
	for _, raw := range args {
		if token, value, ok := strings.Cut(raw, "="); ok {
			if err := pending.SetValue(token+"=", value); err != nil {
				return err
			}
			continue
		}
		if err := pending.Toggle(raw); err != nil {
			return err
		}
	}
	return nil
}
