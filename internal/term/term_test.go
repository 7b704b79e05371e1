package term_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	gmerrors "stackit.dev/gitmenu/internal/errors"
	"stackit.dev/gitmenu/internal/term"
	"stackit.dev/gitmenu/internal/term/termtest"
)

func TestHandoffRestoresMode(t *testing.T) {
	t.Run("after success", func(t *testing.T) {
		fake := termtest.New()
		var during termtest.Mode
		err := term.Handoff(fake, func() error {
			during = fake.Mode()
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, termtest.ModeReleased, during)
		require.Equal(t, termtest.ModeUI, fake.Mode())
	})

	t.Run("after failure", func(t *testing.T) {
		fake := termtest.New()
		boom := errors.New("exit status 1")
		err := term.Handoff(fake, func() error { return boom })
		require.ErrorIs(t, err, boom)
		require.Equal(t, termtest.ModeUI, fake.Mode())
	})

	t.Run("after panic", func(t *testing.T) {
		fake := termtest.New()
		require.Panics(t, func() {
			_ = term.Handoff(fake, func() error { panic("child blew up") })
		})
		require.Equal(t, termtest.ModeUI, fake.Mode())
		require.Equal(t, 1, fake.Restores)
	})
}

func TestHandoffReleaseFailure(t *testing.T) {
	fake := termtest.New()
	fake.ReleaseErr = errors.New("no tty")

	ran := false
	err := term.Handoff(fake, func() error {
		ran = true
		return nil
	})

	require.False(t, ran)
	require.ErrorIs(t, err, gmerrors.ErrTerminalMode)
	require.Equal(t, 1, fake.Restores, "restore is attempted before the error propagates")
	require.Equal(t, termtest.ModeUI, fake.Mode())
}

func TestHandoffRestoreFailure(t *testing.T) {
	fake := termtest.New()
	fake.RestoreErr = errors.New("tty vanished")
	boom := errors.New("editor failed")

	err := term.Handoff(fake, func() error { return boom })
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, gmerrors.ErrTerminalMode)
}

func TestHeadlessAssumeDefaults(t *testing.T) {
	h := term.NewHeadless(true)

	line, err := h.ReadLine(context.Background(), "Merge", "topic")
	require.NoError(t, err)
	require.Equal(t, "topic", line)

	require.NoError(t, term.Handoff(h, func() error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = h.ReadLine(ctx, "Merge", "topic")
	require.ErrorIs(t, err, context.Canceled)
}
