package tui

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/persistence"
	"github.com/thenoetrevino/snipboard/internal/tui/state"
)

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	select {
	case <-m.ctx.Done():
		return m, tea.Quit
	default:
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.uiState.SetWidth(msg.Width)
		m.uiState.SetHeight(msg.Height)
		m.notificationState.SetWindowSize(msg.Width, msg.Height)
		m.clampSelection()
		return m, nil

	case boardLoadedMsg:
		m.uiState.Drop()
		m.clampSelection()
		// load failures arrive as board notifications; auth needs a hint on top
		if errors.Is(msg.err, persistence.ErrAuth) {
			m.notify(state.LevelWarning, "Press "+m.config.KeyMappings.Login+" to log in")
		}
		return m, nil

	case committedMsg:
		m.clampSelection()
		return m, nil

	case createdMsg:
		if msg.err != nil {
			m.report(msg.err)
			return m, nil
		}
		m.selectSnippet(msg.snippet.ID)
		m.notify(state.LevelInfo, "Added '"+msg.snippet.Title+"'")
		return m, m.waitCommitted("create")

	case loginMsg:
		if msg.err != nil {
			m.report(msg.err)
			return m, nil
		}
		m.clampSelection()
		return m, nil

	case notificationMsg:
		m.notify(levelOf(msg.notification.Level), msg.notification.Message)
		return m, m.listenNotifications()

	case tickMsg:
		m.notificationState.Expire(m.now(), notificationTTL)
		return m, m.tick()

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// cursor blinks and other widget messages
	if m.uiState.Mode() == state.SnippetFormMode || m.uiState.Mode() == state.RenameColumnMode ||
		m.uiState.Mode() == state.LoginMode {
		if m.form != nil {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// handleKey dispatches key presses to the handler of the current mode
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.uiState.Mode() {
	case state.HelpMode:
		return m.handleHelpMode(msg)
	case state.SearchMode:
		return m.handleSearchMode(msg)
	case state.SnippetFormMode, state.RenameColumnMode, state.LoginMode:
		return m.handleFormMode(msg)
	case state.DeleteConfirmMode:
		return m.handleDeleteConfirm(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// selectSnippet moves the cursor onto the snippet with id if it is visible
func (m Model) selectSnippet(id string) {
	for i, c := range m.columns() {
		for j, s := range c.Snippets {
			if s.ID == id {
				m.uiState.SetSelectedColumn(i)
				m.uiState.SetSelectedSnippet(j)
				m.uiState.EnsureSelectionVisible(i)
				return
			}
		}
	}
}

func levelOf(l board.Level) state.NotificationLevel {
	switch l {
	case board.LevelWarning:
		return state.LevelWarning
	case board.LevelError:
		return state.LevelError
	}
	return state.LevelInfo
}
