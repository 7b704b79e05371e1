package tui

import (
	"fmt"
	"strings"

	"stackit.dev/gitmenu/internal/menu"
	"stackit.dev/gitmenu/internal/ops"
)

// View renders the screen
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderCommits())

	if m.catalogue != nil {
		b.WriteString("\n")
		b.WriteString(m.renderMenu())
	}

	if m.prompt != nil || m.valueArg != nil {
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}

	if len(m.log) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderLog())
	}

	if m.dispatching || m.s.Busy() {
		b.WriteString("\n")
		b.WriteString(m.spinner.View() + " " + m.styles.dim.Render("running"))
	}

	b.WriteString("\n\n")
	switch {
	case m.confirming:
		b.WriteString(m.styles.warn.Render("Quit gitmenu? (y/N)"))
	case m.catalogue == nil:
		b.WriteString(m.renderMenuKeys())
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m *Model) renderHeader() string {
	head := m.head
	if head == "" {
		head = "(no commits)"
	}
	header := m.styles.header.Render("gitmenu") + "  " + m.styles.branch.Render(head)
	if m.merging {
		header += "  " + m.styles.badge.Render("MERGING")
	}
	return header
}

func (m *Model) renderCommits() string {
	if len(m.commits) == 0 {
		return m.styles.dim.Render("  no commits yet")
	}

	start, end := m.visibleRange()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := m.commits[i]
		marker := "  "
		subject := c.Subject
		if i == m.cursor {
			marker = m.styles.cursor.Render("▸ ")
			subject = m.styles.selected.Render(subject)
		}
		line := marker + m.styles.hash.Render(c.Short)
		if len(c.Branches) > 0 {
			line += " " + m.styles.branch.Render("("+strings.Join(c.Branches, ", ")+")")
		}
		line += " " + subject
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// visibleRange keeps the cursor on screen when the list is taller than
// the space left by the other panes.
func (m *Model) visibleRange() (int, int) {
	rows := len(m.commits)
	if m.height > 0 {
		avail := m.height - 16
		if avail < 5 {
			avail = 5
		}
		if avail < rows {
			rows = avail
		}
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	return start, start + rows
}

func (m *Model) renderMenu() string {
	c := m.catalogue
	var b strings.Builder
	b.WriteString(m.styles.title.Render(c.Title))
	b.WriteString("\n")
	for _, e := range c.Entries {
		fmt.Fprintf(&b, " %s %s\n", m.styles.key.Render(e.Key), e.Op.Display(m.s))
	}

	if pending := m.s.Menu(); pending != nil && len(pending.Entries()) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.title.Render("Arguments"))
		b.WriteString("\n")
		for _, e := range pending.Entries() {
			b.WriteString(m.renderArg(e))
			b.WriteString("\n")
		}
	}

	hint := "- argument  q close"
	if m.argMode {
		hint = "argument key..."
	}
	b.WriteString(m.styles.dim.Render(hint))

	return m.styles.panel.Render(b.String())
}

func (m *Model) renderArg(e menu.Entry) string {
	token := e.Arg.Token
	if e.Arg.Kind == menu.Valued && e.Active {
		token += e.Value
	}
	if e.Active {
		token = m.styles.active.Render(token)
	} else {
		token = m.styles.dim.Render(token)
	}
	return fmt.Sprintf(" %s %s %s", m.styles.key.Render("-"+e.Arg.Key), e.Arg.Label, token)
}

func (m *Model) renderMenuKeys() string {
	parts := make([]string, 0, len(ops.Menus))
	for _, mk := range ops.Menus {
		parts = append(parts, m.styles.key.Render(mk.Key)+" "+m.styles.dim.Render(strings.ToLower(mk.Label)))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderLog() string {
	lines := make([]string, len(m.log))
	for i, l := range m.log {
		switch l.kind {
		case logDone:
			lines[i] = m.styles.done.Render("✓ " + l.text)
		case logWarn:
			lines[i] = m.styles.warn.Render("! " + l.text)
		case logError:
			lines[i] = m.styles.error.Render("✗ " + l.text)
		default:
			lines[i] = m.styles.dim.Render("· " + l.text)
		}
	}
	return strings.Join(lines, "\n")
}
