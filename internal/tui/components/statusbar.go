package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// StatusBarProps describes the bottom line of the board
type StatusBarProps struct {
	Width    int
	Mode     string // persistence mode
	State    string // board lifecycle state
	EditMode bool
	Pending  int
	Search   string
	Grabbing bool
}

// RenderStatusBar renders a status bar with left and right aligned text
func RenderStatusBar(props StatusBarProps) string {
	parts := []string{"snipboard", props.Mode, props.State}
	if props.EditMode {
		parts = append(parts, "EDIT")
	}
	if props.Grabbing {
		parts = append(parts, "moving: h/j/k/l, space to drop")
	}
	if props.Pending > 0 {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("↻ %d unsaved", props.Pending)))
	}
	if props.Search != "" {
		parts = append(parts, "/"+props.Search)
	}

	style := SubtleStyle()
	left := style.Render(strings.Join(parts, " · "))
	right := style.Render("press ? for help")

	gap := max(props.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
}
