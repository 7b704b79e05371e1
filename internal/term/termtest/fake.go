// Package termtest provides a scripted Terminal for tests.
package termtest

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	gmerrors "stackit.dev/gitmenu/internal/errors"
)

// Mode is the screen mode the fake terminal is in
type Mode string

const (
	// ModeUI means the session owns the terminal
	ModeUI Mode = "ui"
	// ModeReleased means a child process owns the terminal
	ModeReleased Mode = "released"
)

// Prompt records one ReadLine call
type Prompt struct {
	Label   string
	Initial string
}

// Fake is a Terminal whose answers are scripted
type Fake struct {
	mu sync.Mutex

	// Answers are returned by ReadLine in order. An empty Answers list
	// confirms the initial value.
	Answers []string
	// Cancel makes every ReadLine return ErrCanceled.
	Cancel bool
	// ReleaseErr and RestoreErr are returned by Release and Restore.
	ReleaseErr error
	RestoreErr error

	Prompts  []Prompt
	Releases int
	Restores int
	mode     Mode

	Stdout bytes.Buffer
	Stderr bytes.Buffer
}

// New creates a fake terminal in UI mode
func New(answers ...string) *Fake {
	return &Fake{Answers: answers, mode: ModeUI}
}

// Mode returns the current screen mode
func (f *Fake) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == "" {
		return ModeUI
	}
	return f.mode
}

// ReadLine implements term.Terminal
func (f *Fake) ReadLine(_ context.Context, prompt, initial string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Prompts = append(f.Prompts, Prompt{Label: prompt, Initial: initial})
	if f.Cancel {
		return "", gmerrors.ErrCanceled
	}
	if len(f.Answers) == 0 {
		return initial, nil
	}
	answer := f.Answers[0]
	f.Answers = f.Answers[1:]
	return answer, nil
}

// Release implements term.Terminal
func (f *Fake) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Releases++
	if f.ReleaseErr != nil {
		return f.ReleaseErr
	}
	f.mode = ModeReleased
	return nil
}

// Restore implements term.Terminal
func (f *Fake) Restore() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Restores++
	if f.RestoreErr != nil {
		return f.RestoreErr
	}
	f.mode = ModeUI
	return nil
}

// Stdio implements term.Terminal
func (f *Fake) Stdio() (io.Reader, io.Writer, io.Writer) {
	return strings.NewReader(""), &f.Stdout, &f.Stderr
}

// PromptCount returns how many times ReadLine was called
func (f *Fake) PromptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Prompts)
}
