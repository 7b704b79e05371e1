package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ColorBranchName colors a branch name based on whether it's current
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return lipgloss.NewStyle().
			Foreground(ColorCurrentFg).
			Render(branchName + " (current)")
	}
	return lipgloss.NewStyle().
		Foreground(ColorBranchFg).
		Render(branchName)
}

// ColorKey colors the key that selects a menu entry
func ColorKey(key string) string {
	return lipgloss.NewStyle().
		Foreground(ColorKeyFg).
		Bold(true).
		Render(key)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(ColorDimFg).
		Render(text)
}

// ColorActive marks an argument that is switched on
func ColorActive(text string) string {
	return lipgloss.NewStyle().
		Foreground(ColorActiveFg).
		Render(text)
}

// FormatMenuLine lays out one menu line: key, label and an optional detail
func FormatMenuLine(key, label, detail string) string {
	line := fmt.Sprintf("  %s  %s", ColorKey(key), label)
	if detail != "" {
		line += "  " + detail
	}
	return line
}

// FormatResult summarizes a finished command for the console
func FormatResult(commandLine string, err error) string {
	if err != nil {
		return lipgloss.NewStyle().Foreground(ColorErrorFg).Render("✗ "+commandLine) + ColorDim(": "+err.Error())
	}
	return ColorActive("✓ " + commandLine)
}
