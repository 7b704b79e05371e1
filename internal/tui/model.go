package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	gmerrors "stackit.dev/gitmenu/internal/errors"
	"stackit.dev/gitmenu/internal/git"
	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/ops"
	"stackit.dev/gitmenu/internal/process"
	"stackit.dev/gitmenu/internal/session"
	"stackit.dev/gitmenu/internal/term"
)

const (
	commitLimit = 50
	logLimit    = 6
)

type refreshMsg struct {
	commits []git.Commit
	head    string
	merging bool
	err     error
}

type dispatchDoneMsg struct {
	op  ops.Op
	err error
}

type resultMsg process.Result

type logKind int

const (
	logInfo logKind = iota
	logDone
	logWarn
	logError
)

type logLine struct {
	kind logKind
	text string
}

// Options configures the model
type Options struct {
	// ConfirmQuit asks before leaving
	ConfirmQuit bool
}

// Model is the bubbletea model of the commit list and its menus
type Model struct {
	s      *session.Session
	term   term.Terminal
	opts   Options
	keys   keyMap
	help   help.Model
	styles styles

	spinner spinner.Model
	input   textinput.Model

	commits []git.Commit
	cursor  int
	head    string
	merging bool

	catalogue   *ops.Catalogue
	argMode     bool
	valueArg    *menu.Arg
	prompt      *promptRequestMsg
	dispatching bool
	confirming  bool

	log    []logLine
	width  int
	height int
}

// NewModel creates a model driving s. Prompts and child processes go
// through t.
func NewModel(s *session.Session, t term.Terminal, opts Options) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	st := newStyles()
	sp.Style = st.spinner

	return &Model{
		s:       s,
		term:    t,
		opts:    opts,
		keys:    defaultKeys,
		help:    help.New(),
		styles:  st,
		spinner: sp,
		input:   textinput.New(),
	}
}

// Init loads the commit list
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.spinner.Tick)
}

func (m *Model) refresh() tea.Cmd {
	repo := m.s.Repo
	return func() tea.Msg {
		commits, err := repo.RecentCommits(commitLimit)
		if err != nil {
			return refreshMsg{err: err}
		}
		merging, err := repo.MergeInProgress()
		if err != nil {
			return refreshMsg{err: err}
		}
		return refreshMsg{commits: commits, head: repo.HeadDescription(), merging: merging}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		if msg.err != nil {
			m.addLog(logError, fmt.Sprintf("refresh failed: %v", msg.err))
			return m, nil
		}
		m.commits = msg.commits
		m.head = msg.head
		m.merging = msg.merging
		m.moveCursor(0)
		return m, nil

	case promptRequestMsg:
		m.prompt = &msg
		m.startInput(msg.label, msg.initial)
		return m, textinput.Blink

	case dispatchDoneMsg:
		m.dispatching = false
		m.reportDispatch(msg.op, msg.err)
		if m.s.Menu() == nil {
			m.closeMenu()
		}
		return m, m.refresh()

	case resultMsg:
		m.reportResult(process.Result(msg))
		return m, m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.prompt != nil || m.valueArg != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.prompt != nil:
		return m.handlePromptKey(msg)
	case m.valueArg != nil:
		return m.handleValueKey(msg)
	case key.Matches(msg, m.keys.Force):
		return m, tea.Quit
	case m.confirming:
		m.confirming = false
		if msg.String() == "y" || msg.String() == "Y" {
			return m, tea.Quit
		}
		return m, nil
	case m.dispatching:
		return m, nil
	case m.catalogue != nil:
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Quit):
		if m.opts.ConfirmQuit {
			m.confirming = true
			return m, nil
		}
		return m, tea.Quit
	default:
		m.openMenu(msg.String())
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.answerPrompt(promptReply{value: m.input.Value()})
		return m, nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.answerPrompt(promptReply{err: gmerrors.ErrCanceled})
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) answerPrompt(r promptReply) {
	m.prompt.reply <- r
	m.prompt = nil
	m.input.Blur()
}

func (m *Model) handleValueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		arg := *m.valueArg
		m.valueArg = nil
		m.input.Blur()
		if pending := m.s.Menu(); pending != nil {
			if err := pending.SetValue(arg.Token, m.input.Value()); err != nil {
				m.addLog(logError, err.Error())
			}
		}
		return m, nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.valueArg = nil
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.argMode {
		m.argMode = false
		return m, m.toggleArg(msg.String())
	}

	switch {
	case key.Matches(msg, m.keys.Args):
		m.argMode = true
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.s.CloseMenu()
		m.closeMenu()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	}

	op, ok := m.catalogue.Lookup(msg.String())
	if !ok {
		return m, nil
	}
	return m, m.dispatch(op)
}

func (m *Model) toggleArg(k string) tea.Cmd {
	pending := m.s.Menu()
	if pending == nil {
		return nil
	}
	arg, ok := pending.ByKey(k)
	if !ok {
		m.addLog(logWarn, fmt.Sprintf("no argument on -%s", k))
		return nil
	}
	if arg.Kind == menu.Valued && !pending.IsActive(arg.Token) {
		m.valueArg = &arg
		m.startInput(arg.Label, "")
		return textinput.Blink
	}
	if err := pending.Toggle(arg.Token); err != nil {
		m.addLog(logError, err.Error())
	}
	return nil
}

func (m *Model) openMenu(k string) {
	for _, mk := range ops.Menus {
		if mk.Key != k {
			continue
		}
		c, _, err := ops.OpenCatalogue(m.s, k)
		if err != nil {
			m.addLog(logError, err.Error())
			return
		}
		m.catalogue = &c
		return
	}
}

func (m *Model) closeMenu() {
	m.catalogue = nil
	m.argMode = false
}

// dispatch runs op off the event loop so prompts and child processes can
// call back into the program while it is running.
func (m *Model) dispatch(op ops.Op) tea.Cmd {
	var target *ops.Target
	if rev := m.s.SelectedRev(); rev != "" {
		target = &ops.Target{Rev: rev}
	}
	m.dispatching = true
	s, t := m.s, m.term
	return func() tea.Msg {
		return dispatchDoneMsg{op: op, err: ops.Dispatch(s, t, op, target)}
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.commits) == 0 {
		m.cursor = 0
		m.s.SetSelectedRev("")
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.commits) {
		m.cursor = len(m.commits) - 1
	}
	m.s.SetSelectedRev(m.commits[m.cursor].Label())
}

func (m *Model) startInput(label, initial string) {
	m.input = textinput.New()
	m.input.Prompt = label + ": "
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) reportDispatch(op ops.Op, err error) {
	if err == nil {
		return
	}
	name := op.Display(m.s)
	switch {
	case errors.Is(err, gmerrors.ErrCanceled):
		m.addLog(logInfo, name+": canceled")
	case errors.Is(err, gmerrors.ErrExternalToolFailure):
		// already reported through the result log
	default:
		m.addLog(logError, fmt.Sprintf("%s: %v", name, err))
	}
}

func (m *Model) reportResult(res process.Result) {
	if !res.Failed() {
		m.addLog(logDone, res.CommandLine())
		return
	}
	detail := strings.TrimSpace(res.Stderr)
	if first, _, ok := strings.Cut(detail, "\n"); ok {
		detail = first
	}
	if detail == "" {
		detail = res.Err.Error()
	}
	m.addLog(logError, fmt.Sprintf("%s: %s", res.CommandLine(), detail))
}

func (m *Model) addLog(kind logKind, text string) {
	m.log = append(m.log, logLine{kind: kind, text: text})
	if len(m.log) > logLimit {
		m.log = m.log[len(m.log)-logLimit:]
	}
}
