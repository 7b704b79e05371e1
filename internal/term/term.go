// Package term abstracts the terminal a session runs on: reading a line of
// input and handing the terminal to a child process for a while.
package term

import (
	"context"
	"errors"
	"io"

	gmerrors "stackit.dev/gitmenu/internal/errors"
)

// Terminal is the terminal a session owns.
type Terminal interface {
	// ReadLine reads one line of input pre-filled with initial.
	// It returns ErrCanceled when the user backs out.
	ReadLine(ctx context.Context, prompt, initial string) (string, error)

	// Release gives up raw/alternate-screen mode so a child can use the terminal.
	Release() error

	// Restore takes the terminal back after Release.
	Restore() error

	// Stdio returns the streams a child process should use while it owns the terminal.
	Stdio() (stdin io.Reader, stdout, stderr io.Writer)
}

// Handoff releases t, runs fn and restores t on every exit path, including
// a panic in fn. A failed release is followed by a restore attempt before
// the error is returned, and fn is not run.
func Handoff(t Terminal, fn func() error) (err error) {
	if releaseErr := t.Release(); releaseErr != nil {
		err = gmerrors.NewTerminalModeError("release", releaseErr)
		if restoreErr := t.Restore(); restoreErr != nil {
			err = errors.Join(err, gmerrors.NewTerminalModeError("restore", restoreErr))
		}
		return err
	}

	defer func() {
		if restoreErr := t.Restore(); restoreErr != nil {
			err = errors.Join(err, gmerrors.NewTerminalModeError("restore", restoreErr))
		}
	}()

	return fn()
}
