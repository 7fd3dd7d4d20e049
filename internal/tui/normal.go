package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/tui/state"
)

// ============================================================================
// NORMAL MODE HANDLERS
// ============================================================================

// handleNormalMode dispatches key events in NormalMode to specific handlers.
func (m Model) handleNormalMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	km := m.config.KeyMappings

	switch key {
	case km.Quit, "ctrl+c":
		return m, tea.Quit
	case km.ShowHelp:
		m.uiState.SetMode(state.HelpMode)
		return m, nil
	case "esc":
		return m.handleEscape()
	case km.PrevColumn, "left":
		return m.handleHorizontal(-1)
	case km.NextColumn, "right":
		return m.handleHorizontal(1)
	case km.PrevSnippet, "up":
		return m.handleVertical(-1)
	case km.NextSnippet, "down":
		return m.handleVertical(1)
	case km.GrabSnippet:
		return m.handleGrab()
	case km.MoveToTop:
		return m.handleMoveToTop()
	case km.ToggleEditMode:
		return m.handleToggleEditMode()
	case km.DeleteSnippet:
		return m.handleDeleteSnippet()
	case km.AddSnippet:
		return m.openSnippetForm(models.Snippet{}, false)
	case km.EditSnippet:
		if s, ok := m.currentSnippet(); ok {
			return m.openSnippetForm(s, true)
		}
		return m, nil
	case km.ToggleCode:
		if s, ok := m.currentSnippet(); ok {
			m.uiState.ToggleExpanded(s.ID)
		}
		return m, nil
	case km.CopySnippet:
		return m.handleCopy()
	case km.PasteSnippet:
		return m.handlePaste()
	case km.RenameColumn:
		return m.openRenameForm()
	case km.Search:
		m.uiState.Drop()
		m.searchState.Clear()
		m.searchState.Deactivate()
		m.uiState.SetMode(state.SearchMode)
		return m, nil
	case km.Resync:
		m.notify(state.LevelInfo, "Reloading board...")
		return m, m.resyncCmd()
	case km.Login:
		return m.openLoginForm()
	case km.ToggleMode:
		return m.handleToggleMode()
	}

	return m, nil
}

// handleEscape drops a held snippet, then clears the search, then the banner
func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	switch {
	case m.uiState.Grabbed() != "":
		m.uiState.Drop()
	case m.searchState.IsActive:
		m.searchState.Clear()
		m.searchState.Deactivate()
		m.clampSelection()
	default:
		m.board.ClearError()
		m.notificationState.Clear()
	}
	return m, nil
}

// handleHorizontal changes column, carrying the held snippet along
func (m Model) handleHorizontal(delta int) (tea.Model, tea.Cmd) {
	columns := m.columns()
	target := m.uiState.SelectedColumn() + delta
	if target < 0 || target >= len(columns) {
		return m, nil
	}

	if id := m.uiState.Grabbed(); id != "" {
		if err := m.board.MoveToColumn(id, columns[target].Title); err != nil {
			m.report(err)
			return m, nil
		}
		m.clampSelection()
		return m, m.waitCommitted("move")
	}

	m.uiState.SetSelectedColumn(target)
	m.uiState.SetSelectedSnippet(0)
	m.uiState.EnsureSelectionVisible(target)
	return m, nil
}

// handleVertical changes the selected snippet, or moves the held one past its neighbour
func (m Model) handleVertical(delta int) (tea.Model, tea.Cmd) {
	column, ok := m.currentColumn()
	if !ok {
		return m, nil
	}
	idx := m.uiState.SelectedSnippet()
	target := idx + delta
	if target < 0 || target >= len(column.Snippets) {
		return m, nil
	}

	if id := m.uiState.Grabbed(); id != "" {
		// Up: insert before the neighbour above. Down: the neighbour below jumps above.
		dragged, anchor := id, column.Snippets[target].ID
		if delta > 0 {
			dragged, anchor = column.Snippets[target].ID, id
		}
		if err := m.board.ReorderWithinColumn(dragged, anchor); err != nil {
			m.report(err)
			return m, nil
		}
		m.clampSelection()
		m.ensureSnippetVisible()
		return m, m.waitCommitted("reorder")
	}

	m.uiState.SetSelectedSnippet(target)
	m.ensureSnippetVisible()
	return m, nil
}

func (m Model) ensureSnippetVisible() {
	m.uiState.EnsureSnippetVisible(m.uiState.SelectedColumn(), m.uiState.SelectedSnippet(), m.visibleSnippets())
}

// handleGrab picks up the selected snippet or drops the held one
func (m Model) handleGrab() (tea.Model, tea.Cmd) {
	if m.uiState.Grabbed() != "" {
		m.uiState.Drop()
		return m, nil
	}
	s, ok := m.currentSnippet()
	if !ok {
		return m, nil
	}
	if !m.board.State().Interactive() {
		m.notify(state.LevelWarning, "The board is "+m.board.State().String())
		return m, nil
	}
	m.uiState.Grab(s.ID)
	return m, nil
}

// handleMoveToTop drops the selected snippet on its own column, which puts it first
func (m Model) handleMoveToTop() (tea.Model, tea.Cmd) {
	s, ok := m.currentSnippet()
	if !ok {
		return m, nil
	}
	if err := m.board.MoveToColumn(s.ID, s.Category); err != nil {
		m.report(err)
		return m, nil
	}
	m.selectSnippet(s.ID)
	m.ensureSnippetVisible()
	return m, m.waitCommitted("move")
}

func (m Model) handleToggleEditMode() (tea.Model, tea.Cmd) {
	on := !m.board.EditMode()
	m.board.SetEditMode(on)
	if on {
		m.notify(state.LevelWarning, "Edit mode on: "+m.config.KeyMappings.DeleteSnippet+" deletes")
	} else {
		m.notify(state.LevelInfo, "Edit mode off")
	}
	return m, nil
}

func (m Model) handleDeleteSnippet() (tea.Model, tea.Cmd) {
	if _, ok := m.currentSnippet(); !ok {
		return m, nil
	}
	if !m.board.EditMode() {
		m.notify(state.LevelWarning, "Press "+m.config.KeyMappings.ToggleEditMode+" to enable edit mode first")
		return m, nil
	}
	m.uiState.SetMode(state.DeleteConfirmMode)
	return m, nil
}

// handleDeleteConfirm handles the y/n prompt shown before a delete
func (m Model) handleDeleteConfirm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.uiState.SetMode(state.NormalMode)
		s, ok := m.currentSnippet()
		if !ok {
			return m, nil
		}
		if err := m.board.DeleteSnippet(s.ID); err != nil {
			m.report(err)
			return m, nil
		}
		m.clampSelection()
		return m, m.waitCommitted("delete")
	case "n", "esc", "q":
		m.uiState.SetMode(state.NormalMode)
	}
	return m, nil
}

func (m Model) handleCopy() (tea.Model, tea.Cmd) {
	s, ok := m.currentSnippet()
	if !ok {
		return m, nil
	}
	if err := m.clipboard.WriteAll(s.Code); err != nil {
		m.report(err)
		return m, nil
	}
	m.notify(state.LevelInfo, "Copied '"+s.Title+"'")
	return m, nil
}

// handlePaste creates a snippet from the clipboard text
func (m Model) handlePaste() (tea.Model, tea.Cmd) {
	text, err := m.clipboard.ReadAll()
	if err != nil {
		m.report(err)
		return m, nil
	}
	if strings.TrimSpace(text) == "" {
		m.notify(state.LevelWarning, "The clipboard is empty")
		return m, nil
	}
	b, ctx := m.board, m.ctx
	return m, func() tea.Msg {
		s, err := b.PasteSnippet(ctx, text, models.ColorDefault)
		return createdMsg{snippet: s, err: err}
	}
}

// handleToggleMode switches between local and remote storage
func (m Model) handleToggleMode() (tea.Model, tea.Cmd) {
	next := models.ModeRemote
	if m.board.Mode() == models.ModeRemote {
		next = models.ModeLocal
	}
	m.uiState.Drop()
	m.notify(state.LevelInfo, "Switching to "+string(next)+" storage...")
	b, ctx := m.board, m.ctx
	return m, func() tea.Msg {
		return boardLoadedMsg{err: b.SetPersistenceMode(ctx, next)}
	}
}

// handleHelpMode leaves the help screen
func (m Model) handleHelpMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.config.KeyMappings.ShowHelp, m.config.KeyMappings.Quit, "esc", "enter", "space":
		m.uiState.SetMode(state.NormalMode)
	}
	return m, nil
}

