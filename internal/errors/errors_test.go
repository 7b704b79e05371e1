package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	gmerrors "stackit.dev/gitmenu/internal/errors"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ref not found", gmerrors.NewRefNotFoundError("origin/main", "no upstream"), gmerrors.ErrNoSuchRef},
		{"missing argument", gmerrors.NewMissingArgumentError("Merge", nil), gmerrors.ErrMissingArgument},
		{"external tool", gmerrors.NewExternalToolError("git", []string{"merge"}, "", "conflict", errors.New("exit status 1")), gmerrors.ErrExternalToolFailure},
		{"not implemented", gmerrors.NewNotImplementedError("Absorb"), gmerrors.ErrNotImplemented},
		{"terminal", gmerrors.NewTerminalModeError("restore", errors.New("tty gone")), gmerrors.ErrTerminalMode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, tc.err, tc.sentinel)
			require.ErrorIs(t, fmt.Errorf("wrapped: %w", tc.err), tc.sentinel)
		})
	}
}

func TestStepErrorUnwraps(t *testing.T) {
	t.Parallel()

	inner := gmerrors.NewRefNotFoundError("@{upstream}", "")
	err := gmerrors.NewStepError("Dissolve", "upstream", inner)

	require.ErrorIs(t, err, gmerrors.ErrNoSuchRef)
	require.Contains(t, err.Error(), `step "upstream"`)

	var stepErr *gmerrors.StepError
	require.ErrorAs(t, fmt.Errorf("dispatch: %w", err), &stepErr)
	require.Equal(t, "upstream", stepErr.Step)
}

func TestExternalToolErrorMessage(t *testing.T) {
	t.Parallel()

	err := gmerrors.NewExternalToolError("git", []string{"merge", "--squash", "topic"}, "", "fatal: not something we can merge\n", errors.New("exit status 128"))
	require.Contains(t, err.Error(), "git command failed: merge --squash topic")
	require.Contains(t, err.Error(), "stderr: fatal: not something we can merge")
}
