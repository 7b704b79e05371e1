package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	gmerrors "stackit.dev/gitmenu/internal/errors"
)

// DefaultBinary is the git executable used when none is configured
const DefaultBinary = "git"

// CommandRunner builds and runs git commands in a working directory
type CommandRunner struct {
	binary     string
	workingDir string
	env        []string
}

// NewCommandRunner creates a new CommandRunner. An empty binary selects DefaultBinary.
func NewCommandRunner(binary, workingDir string) *CommandRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CommandRunner{binary: binary, workingDir: workingDir}
}

// Binary returns the git executable this runner invokes
func (r *CommandRunner) Binary() string {
	return r.binary
}

// SetEnv adds KEY=value pairs to the environment of every command built
// after the call
func (r *CommandRunner) SetEnv(kv ...string) {
	r.env = append(r.env, kv...)
}

// WorkingDir returns the directory commands run in
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Command builds an unstarted git command. The caller decides how its
// stdio is wired and how it is run.
func (r *CommandRunner) Command(ctx context.Context, args ...string) *exec.Cmd {
	if ctx == nil {
		ctx = context.Background()
	}
	cmd := exec.CommandContext(ctx, r.binary, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}
	return cmd
}

// Run executes a git command and returns its trimmed stdout
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := r.Command(ctx, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", gmerrors.NewExternalToolError(r.binary, args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RunLines executes a git command and returns its output as non-empty lines
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
