package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/tui/components"
	"github.com/thenoetrevino/snipboard/internal/tui/layers"
	"github.com/thenoetrevino/snipboard/internal/tui/notifications"
	"github.com/thenoetrevino/snipboard/internal/tui/state"
)

// View renders the board with any dialog and notifications layered on top
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.uiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderColumns(),
		m.renderStatusBar(),
	)

	all := []*lipgloss.Layer{lipgloss.NewLayer(base)}
	if layer := layers.CreateCenteredLayer(m.renderDialog(), m.uiState.Width(), m.uiState.Height()); layer != nil {
		all = append(all, layer)
	}
	all = append(all, m.notificationState.GetLayers(notifications.RenderFromState)...)

	view.Content = lipgloss.NewCanvas(all...).Render()
	return view
}

// renderHeader renders the title line and the error banner line
func (m Model) renderHeader() string {
	title := components.TitleStyle().Render("snipboard") + "  " +
		components.SubtleStyle().Render(string(m.board.Mode())+" storage")

	banner := ""
	switch {
	case m.board.Banner() != "":
		banner = notifications.RenderBanner(m.board.Banner(), m.uiState.Width())
	case m.board.State() == board.StateUnauthenticated:
		banner = notifications.RenderBanner("Not logged in. Press "+m.config.KeyMappings.Login+" to log in", m.uiState.Width())
	case m.board.State() == board.StateLoading:
		banner = components.SubtleStyle().Render("Loading...")
	}
	return title + "\n" + banner + "\n"
}

// renderColumns renders the columns inside the horizontal viewport
func (m Model) renderColumns() string {
	columns := m.columns()
	if len(columns) == 0 {
		return components.SubtleStyle().Render("No columns")
	}

	pending := make(map[string]bool)
	for _, id := range m.board.Pending() {
		pending[id] = true
	}

	height := m.uiState.ContentHeight()
	start := m.uiState.ViewportOffset()
	end := min(start+m.uiState.ViewportSize(), len(columns))

	rendered := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rendered = append(rendered, components.RenderColumn(components.ColumnProps{
			Column:       columns[i],
			Selected:     i == m.uiState.SelectedColumn(),
			SelectedIdx:  m.uiState.SelectedSnippet(),
			Grabbed:      m.uiState.Grabbed(),
			Pending:      pending,
			Expanded:     m.uiState.ExpandedCards(),
			Height:       height,
			ScrollOffset: m.uiState.ScrollOffset(i),
		}))
	}

	var left, right string
	if start > 0 {
		left = components.SubtleStyle().Render("◀ ")
	}
	if end < len(columns) {
		right = components.SubtleStyle().Render(" ▶")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Join(rendered, " "), right)
}

func (m Model) renderStatusBar() string {
	search := ""
	if m.uiState.Mode() == state.SearchMode {
		search = m.searchState.Query + "█"
	} else if m.searchState.IsActive {
		search = m.searchState.Query
	}

	return "\n" + components.RenderStatusBar(components.StatusBarProps{
		Width:    m.uiState.Width(),
		Mode:     string(m.board.Mode()),
		State:    m.board.State().String(),
		EditMode: m.board.EditMode(),
		Pending:  len(m.board.Pending()),
		Search:   search,
		Grabbing: m.uiState.Grabbed() != "",
	})
}

// visibleSnippets returns how many cards fit in a column
func (m Model) visibleSnippets() int {
	return components.VisibleSnippets(m.uiState.ContentHeight())
}
