// Package components renders the board pieces: snippet cards, columns and the status bar.
// Styles read the active theme on every call, so theme.Init takes effect immediately.
package components

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/snipboard/internal/tui/theme"
)

// columnStyle is a board lane; selected lanes use the accent color
func columnStyle(selected bool) lipgloss.Style {
	border := theme.ColumnBorder
	if selected {
		border = theme.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(columnInnerWidth + 4)
}

// snippetStyle is a card; a grabbed card wins over a selected one
func snippetStyle(selected, grabbed bool) lipgloss.Style {
	border := theme.SnippetBorder
	switch {
	case grabbed:
		border = theme.GrabbedBorder
	case selected:
		border = theme.SelectedBorder
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(snippetCardWidth)
	if grabbed {
		style = style.BorderStyle(lipgloss.DoubleBorder())
	}
	return style
}

// TitleStyle renders column headers and the app title
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title))
}

// SubtleStyle renders hints and placeholders
func SubtleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))
}

// DialogStyle frames modal dialogs
func DialogStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2)
}
