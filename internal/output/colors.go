package output

import "github.com/charmbracelet/lipgloss"

// Palette used for plain console output outside the TUI
var (
	ColorKeyFg     = lipgloss.Color("5")
	ColorBranchFg  = lipgloss.Color("12")
	ColorCurrentFg = lipgloss.Color("6")
	ColorActiveFg  = lipgloss.Color("2")
	ColorDimFg     = lipgloss.Color("8")
	ColorErrorFg   = lipgloss.Color("1")
)
