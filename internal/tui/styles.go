package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header   lipgloss.Style
	badge    lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	hash     lipgloss.Style
	branch   lipgloss.Style
	dim      lipgloss.Style
	title    lipgloss.Style
	key      lipgloss.Style
	active   lipgloss.Style
	spinner  lipgloss.Style
	done     lipgloss.Style
	error    lipgloss.Style
	warn     lipgloss.Style
	panel    lipgloss.Style
}

func newStyles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		badge:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1),
		cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		hash:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		branch:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		key:      lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		active:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		spinner:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		done:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	}
}
