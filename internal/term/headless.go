package term

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	gmerrors "stackit.dev/gitmenu/internal/errors"
)

// Headless is a Terminal for running outside the TUI. There is no screen
// mode to give up, so Release and Restore only keep count.
type Headless struct {
	// AssumeDefaults accepts every prompt's initial value without asking.
	AssumeDefaults bool

	released int
}

// NewHeadless creates a terminal bound to the process's stdio
func NewHeadless(assumeDefaults bool) *Headless {
	return &Headless{AssumeDefaults: assumeDefaults}
}

// ReadLine asks with a survey input prompt seeded with initial
func (h *Headless) ReadLine(ctx context.Context, prompt, initial string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if h.AssumeDefaults {
		return initial, nil
	}

	var answer string
	q := &survey.Input{
		Message: prompt,
		Default: initial,
	}
	if err := survey.AskOne(q, &answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", gmerrors.ErrCanceled
		}
		return "", err
	}
	return answer, nil
}

// Release is a no-op beyond bookkeeping
func (h *Headless) Release() error {
	h.released++
	return nil
}

// Restore is a no-op beyond bookkeeping
func (h *Headless) Restore() error {
	if h.released > 0 {
		h.released--
	}
	return nil
}

// Stdio returns the process's own streams
func (h *Headless) Stdio() (io.Reader, io.Writer, io.Writer) {
	return os.Stdin, os.Stdout, os.Stderr
}
