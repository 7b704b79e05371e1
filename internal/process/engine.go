// Package process runs the external commands operations produce, either in
// the background with captured output or in the foreground with the
// terminal handed over.
package process

import (
	"bytes"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gmerrors "stackit.dev/gitmenu/internal/errors"
	"stackit.dev/gitmenu/internal/output"
	"stackit.dev/gitmenu/internal/term"
)

// Result describes one finished external run
type Result struct {
	Args        []string
	Stdout      string
	Stderr      string
	Err         error
	Interactive bool
	Started     time.Time
	Duration    time.Duration
}

// Failed reports whether the run ended in an error
func (r Result) Failed() bool {
	return r.Err != nil
}

// CommandLine returns the argv joined for display
func (r Result) CommandLine() string {
	return strings.Join(r.Args, " ")
}

// Engine serializes external runs for one session: at most one process is
// in flight at any time.
type Engine struct {
	splog *output.Splog

	mu       sync.Mutex
	busy     bool
	results  []Result
	notifier func(Result)

	wg sync.WaitGroup
}

// NewEngine creates an engine that logs through splog
func NewEngine(splog *output.Splog) *Engine {
	return &Engine{splog: splog}
}

// SetNotifier registers fn to be called after every run completes.
// For async runs it is called from the goroutine that waited on the process.
func (e *Engine) SetNotifier(fn func(Result)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifier = fn
}

// Busy reports whether a run is in flight
func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Results returns a copy of the result log, oldest first
func (e *Engine) Results() []Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Result, len(e.results))
	copy(out, e.results)
	return out
}

// Wait blocks until every async run has completed
func (e *Engine) Wait() {
	e.wg.Wait()
}

func (e *Engine) acquire() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return gmerrors.ErrOperationInFlight
	}
	e.busy = true
	return nil
}

// finish records res, frees the engine and notifies, in that order, so a
// notified listener can start the next run.
func (e *Engine) finish(res Result) {
	e.mu.Lock()
	e.results = append(e.results, res)
	e.busy = false
	notify := e.notifier
	e.mu.Unlock()

	if res.Failed() {
		e.splog.Error("%s: %v", res.CommandLine(), res.Err)
	} else {
		e.splog.Debug("finished %s in %s", res.CommandLine(), res.Duration.Round(time.Millisecond))
	}
	if notify != nil {
		notify(res)
	}
}

// RunAsync starts cmd without the terminal and returns immediately. Output
// is captured and the outcome lands in the result log. A non-zero exit is
// recorded as an ExternalToolError carrying stderr; nothing is retried.
func (e *Engine) RunAsync(cmd *exec.Cmd) error {
	if err := e.acquire(); err != nil {
		return err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdin = nil
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	disableCredentialPrompts(cmd)

	e.splog.Debug("starting %s", strings.Join(cmd.Args, " "))
	started := time.Now()
	if err := cmd.Start(); err != nil {
		res := Result{
			Args:    cmd.Args,
			Err:     gmerrors.NewExternalToolError(commandName(cmd), cmd.Args[1:], "", "", err),
			Started: started,
		}
		e.finish(res)
		return res.Err
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		err := cmd.Wait()
		res := Result{
			Args:     cmd.Args,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Started:  started,
			Duration: time.Since(started),
		}
		if err != nil {
			res.Err = gmerrors.NewExternalToolError(commandName(cmd), cmd.Args[1:], res.Stdout, res.Stderr, err)
		}
		e.finish(res)
	}()
	return nil
}

// Run executes cmd to completion with captured output. Compound operations
// use it for steps whose outcome decides whether to continue.
func (e *Engine) Run(cmd *exec.Cmd) (Result, error) {
	if err := e.acquire(); err != nil {
		return Result{}, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdin = nil
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	disableCredentialPrompts(cmd)

	e.splog.Debug("running %s", strings.Join(cmd.Args, " "))
	started := time.Now()
	err := cmd.Run()
	res := Result{
		Args:     cmd.Args,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Started:  started,
		Duration: time.Since(started),
	}
	if err != nil {
		res.Err = gmerrors.NewExternalToolError(commandName(cmd), cmd.Args[1:], res.Stdout, res.Stderr, err)
	}
	e.finish(res)
	return res, res.Err
}

// RunInteractive hands the terminal to cmd and blocks until it exits. The
// terminal is restored on every exit path. Interrupts typed while the child
// owns the terminal reach the child only.
func (e *Engine) RunInteractive(t term.Terminal, cmd *exec.Cmd) error {
	if err := e.acquire(); err != nil {
		return err
	}

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	e.splog.Debug("running %s interactively", strings.Join(cmd.Args, " "))
	started := time.Now()
	err := term.Handoff(t, func() error {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = t.Stdio()
		if runErr := cmd.Run(); runErr != nil {
			return gmerrors.NewExternalToolError(commandName(cmd), cmd.Args[1:], "", "", runErr)
		}
		return nil
	})

	e.finish(Result{
		Args:        cmd.Args,
		Err:         err,
		Interactive: true,
		Started:     started,
		Duration:    time.Since(started),
	})
	return err
}

// disableCredentialPrompts keeps a captured git from waiting on a terminal it cannot reach
func disableCredentialPrompts(cmd *exec.Cmd) {
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	cmd.Env = append(cmd.Env, "GIT_TERMINAL_PROMPT=0")
}

func commandName(cmd *exec.Cmd) string {
	if len(cmd.Args) > 0 {
		return filepath.Base(cmd.Args[0])
	}
	return filepath.Base(cmd.Path)
}
