package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// program is the part of *tea.Program the terminal adapter needs
type program interface {
	Send(msg tea.Msg)
	ReleaseTerminal() error
	RestoreTerminal() error
}

// promptReply carries the answer to a promptRequestMsg back to the
// goroutine blocked in ReadLine.
type promptReply struct {
	value string
	err   error
}

// promptRequestMsg asks the model to show a line editor
type promptRequestMsg struct {
	label   string
	initial string
	reply   chan<- promptReply
}

// ProgramTerminal is the term.Terminal of a running TUI. ReadLine is
// answered by the model's line editor; Release and Restore suspend the
// program so a child process can draw on the screen.
type ProgramTerminal struct {
	p program
}

// NewProgramTerminal wraps p. p may be set later with Attach.
func NewProgramTerminal(p program) *ProgramTerminal {
	return &ProgramTerminal{p: p}
}

// Attach binds the terminal to p
func (t *ProgramTerminal) Attach(p program) {
	t.p = p
}

// ReadLine blocks until the user answers in the TUI or ctx is done
func (t *ProgramTerminal) ReadLine(ctx context.Context, prompt, initial string) (string, error) {
	reply := make(chan promptReply, 1)
	t.p.Send(promptRequestMsg{label: prompt, initial: initial, reply: reply})
	select {
	case r := <-reply:
		return r.value, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Release hands the terminal to a child process
func (t *ProgramTerminal) Release() error {
	return t.p.ReleaseTerminal()
}

// Restore takes the terminal back and repaints
func (t *ProgramTerminal) Restore() error {
	return t.p.RestoreTerminal()
}

// Stdio returns the process's own streams
func (t *ProgramTerminal) Stdio() (io.Reader, io.Writer, io.Writer) {
	return os.Stdin, os.Stdout, os.Stderr
}
