package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/snipboard/internal/tui/state"
)

// handleSearchMode edits the query; the board filters as it is typed
func (m Model) handleSearchMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchState.Clear()
		m.searchState.Deactivate()
		m.uiState.SetMode(state.NormalMode)
	case "enter":
		if m.searchState.Query == "" {
			m.searchState.Deactivate()
		} else {
			m.searchState.Activate()
		}
		m.uiState.SetMode(state.NormalMode)
	case "backspace":
		m.searchState.Backspace()
	case "ctrl+u":
		m.searchState.Clear()
	default:
		m.searchState.AppendText(msg.Text)
	}
	m.clampSelection()
	return m, nil
}
