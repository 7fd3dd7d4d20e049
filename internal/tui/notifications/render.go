package notifications

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/snipboard/internal/tui/state"
)

// maxMessageWidth wraps long messages inside the box
const maxMessageWidth = 40

// Render renders a notification box based on severity level
func Render(severity Severity, message string) string {
	st := severity.style()

	headerText := st.icon + " " + st.title
	width := min(max(lipgloss.Width(headerText), lipgloss.Width(message)), maxMessageWidth)

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(st.foreground)).
		Bold(true).
		Width(width).
		Render(headerText)

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color(st.foreground)).
		Width(width).
		Render(message)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(st.foreground)).
		Padding(0, 1)
	if st.background != "" {
		box = box.Background(lipgloss.Color(st.background))
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

// RenderFromState renders a notification box from a state.Notification
func RenderFromState(n state.Notification) string {
	return Render(FromLevel(n.Level), n.Message)
}

// RenderBanner renders the one-line board error banner
func RenderBanner(message string, width int) string {
	st := Error.style()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(st.foreground)).
		Background(lipgloss.Color(st.background)).
		Bold(true).
		Width(width).
		Padding(0, 1).
		Render(st.icon + " " + message)
}
