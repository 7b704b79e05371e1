// Package errors provides sentinel errors and custom error types for gitmenu.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrMissingArgument indicates that a prompt required a value and none could be resolved
	ErrMissingArgument = errors.New("missing argument")

	// ErrNoSuchRef indicates that a repository query could not resolve a ref
	ErrNoSuchRef = errors.New("no such ref")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrExternalToolFailure indicates that an external process exited unsuccessfully
	ErrExternalToolFailure = errors.New("external tool failure")

	// ErrNotImplemented indicates an operation that exists in a menu but is not realized yet
	ErrNotImplemented = errors.New("not implemented")

	// ErrTerminalMode indicates that the terminal could not be released or restored
	ErrTerminalMode = errors.New("terminal mode error")

	// ErrCanceled indicates that the user canceled a prompt
	ErrCanceled = errors.New("canceled")

	// ErrOperationInFlight indicates that another external operation is still running
	ErrOperationInFlight = errors.New("another operation is already running")

	// ErrNoOpenMenu indicates that a continuation ran without an open menu
	ErrNoOpenMenu = errors.New("no menu is open")

	// ErrUnavailable indicates that an operation does not apply to the current selection
	ErrUnavailable = errors.New("not available here")
)

// RefNotFoundError represents a repository query that found nothing
type RefNotFoundError struct {
	Ref    string
	Reason string
}

func (e *RefNotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("no such ref %s: %s", e.Ref, e.Reason)
	}
	return fmt.Sprintf("no such ref %s", e.Ref)
}

// Is returns true if the target error is ErrNoSuchRef
func (e *RefNotFoundError) Is(target error) bool {
	return target == ErrNoSuchRef
}

// NewRefNotFoundError creates a new RefNotFoundError
func NewRefNotFoundError(ref, reason string) *RefNotFoundError {
	return &RefNotFoundError{Ref: ref, Reason: reason}
}

// MissingArgumentError names the prompt whose value could not be resolved
type MissingArgumentError struct {
	Prompt string
	Err    error
}

func (e *MissingArgumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: no value available: %v", e.Prompt, e.Err)
	}
	return fmt.Sprintf("%s: no value available", e.Prompt)
}

// Is returns true if the target error is ErrMissingArgument
func (e *MissingArgumentError) Is(target error) bool {
	return target == ErrMissingArgument
}

func (e *MissingArgumentError) Unwrap() error {
	return e.Err
}

// NewMissingArgumentError creates a new MissingArgumentError
func NewMissingArgumentError(prompt string, err error) *MissingArgumentError {
	return &MissingArgumentError{Prompt: prompt, Err: err}
}

// ExternalToolError represents an error from an external command execution
type ExternalToolError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s command failed", e.Command)
	if len(e.Args) > 0 {
		msg += ": " + strings.Join(e.Args, " ")
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", strings.TrimSpace(e.Stderr))
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", strings.TrimSpace(e.Stdout))
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrExternalToolFailure
func (e *ExternalToolError) Is(target error) bool {
	return target == ErrExternalToolFailure
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// NewExternalToolError creates a new ExternalToolError
func NewExternalToolError(command string, args []string, stdout, stderr string, err error) *ExternalToolError {
	return &ExternalToolError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// NotImplementedError names the operation that is not realized
type NotImplementedError struct {
	Operation string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Operation)
}

// Is returns true if the target error is ErrNotImplemented
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// NewNotImplementedError creates a new NotImplementedError
func NewNotImplementedError(operation string) *NotImplementedError {
	return &NotImplementedError{Operation: operation}
}

// TerminalModeError represents a failure to release or restore the terminal
type TerminalModeError struct {
	Phase string // "release" or "restore"
	Err   error
}

func (e *TerminalModeError) Error() string {
	return fmt.Sprintf("failed to %s terminal: %v", e.Phase, e.Err)
}

// Is returns true if the target error is ErrTerminalMode
func (e *TerminalModeError) Is(target error) bool {
	return target == ErrTerminalMode
}

func (e *TerminalModeError) Unwrap() error {
	return e.Err
}

// NewTerminalModeError creates a new TerminalModeError
func NewTerminalModeError(phase string, err error) *TerminalModeError {
	return &TerminalModeError{Phase: phase, Err: err}
}

// StepError reports which step of a compound operation failed.
// Later steps are never attempted once a step fails.
type StepError struct {
	Operation string
	Step      string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed at step %q: %v", e.Operation, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError creates a new StepError
func NewStepError(operation, step string, err error) *StepError {
	return &StepError{Operation: operation, Step: step, Err: err}
}
