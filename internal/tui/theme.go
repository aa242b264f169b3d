package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the palette of the directory TUI. Colors are ANSI 256 codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	ErrorText   lipgloss.Color
	AccentText  lipgloss.Color
	PendingText lipgloss.Color
}

// DefaultTheme targets dark 256-color terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ErrorText:   lipgloss.Color("196"), // red
	AccentText:  lipgloss.Color("75"),  // blue
	PendingText: lipgloss.Color("220"), // amber
}

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	row      lipgloss.Style
	selected lipgloss.Style
	faint    lipgloss.Style
	err      lipgloss.Style
	accent   lipgloss.Style
	pending  lipgloss.Style
	help     lipgloss.Style
	box      lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		header:   lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Underline(true),
		row:      lipgloss.NewStyle().Foreground(theme.NormalText),
		selected: lipgloss.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground),
		faint:    lipgloss.NewStyle().Foreground(theme.FaintText),
		err:      lipgloss.NewStyle().Foreground(theme.ErrorText),
		accent:   lipgloss.NewStyle().Foreground(theme.AccentText).Bold(true),
		pending:  lipgloss.NewStyle().Foreground(theme.PendingText),
		help:     lipgloss.NewStyle().Foreground(theme.HelpText),
		box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.BorderColor).Padding(0, 1),
	}
}
