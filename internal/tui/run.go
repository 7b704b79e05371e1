package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"stackit.dev/gitmenu/internal/process"
	"stackit.dev/gitmenu/internal/session"
)

// IsTTY returns true if we can use a TTY for interactive TUI
func IsTTY() bool {
	if !((isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))) {
		return false
	}
	// Also try to open /dev/tty to verify it's actually available
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Run shows the TUI for s until the user quits. Results of the engine's
// runs are fed into the log pane while it is up.
func Run(s *session.Session, engine *process.Engine, opts Options) error {
	t := NewProgramTerminal(nil)
	m := NewModel(s, t, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	t.Attach(p)

	wasQuiet := s.Splog.IsQuiet()
	s.Splog.SetQuiet(true)
	engine.SetNotifier(func(res process.Result) {
		p.Send(resultMsg(res))
	})
	defer func() {
		engine.SetNotifier(nil)
		s.Splog.SetQuiet(wasQuiet)
	}()

	_, err := p.Run()
	return err
}
