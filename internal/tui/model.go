// Package tui is the interactive board: columns of snippet cards that can be
// grabbed and moved with the keyboard, edited, searched and copied.
package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/clipboard"
	"github.com/thenoetrevino/snipboard/internal/config"
	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/tui/components"
	"github.com/thenoetrevino/snipboard/internal/tui/forms"
	"github.com/thenoetrevino/snipboard/internal/tui/state"
	"github.com/thenoetrevino/snipboard/internal/tui/theme"
)

// notificationTTL is how long info and warning notifications stay on screen
const notificationTTL = 4 * time.Second

// Model represents the application state for the TUI
type Model struct {
	ctx       context.Context
	board     *board.Controller
	config    *config.Config
	clipboard clipboard.Clipboard
	now       func() time.Time

	uiState           *state.UIState
	searchState       *state.SearchState
	notificationState *state.NotificationState
	form              *forms.Form
}

// Option configures a Model
type Option func(*Model)

// WithClipboard replaces the system clipboard
func WithClipboard(c clipboard.Clipboard) Option {
	return func(m *Model) {
		m.clipboard = c
	}
}

// WithClock overrides the clock used to age notifications
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates the board model. The board is loaded by Init.
func New(ctx context.Context, b *board.Controller, cfg *config.Config, opts ...Option) Model {
	theme.Init(cfg.Theme)
	forms.TitleStyle = components.TitleStyle()

	m := Model{
		ctx:               ctx,
		board:             b,
		config:            cfg,
		clipboard:         clipboard.System{},
		now:               time.Now,
		uiState:           state.NewUIState(),
		searchState:       state.NewSearchState(),
		notificationState: state.NewNotificationState(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init loads the board and starts listening for background notifications
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.listenNotifications(), m.tick())
}

// columns returns the board as currently filtered
func (m Model) columns() []models.Column {
	return m.board.Columns(m.searchState.Filter(m.uiState.Mode()))
}

// currentColumn returns the selected column, or false when the board has none
func (m Model) currentColumn() (models.Column, bool) {
	columns := m.columns()
	idx := m.uiState.SelectedColumn()
	if idx < 0 || idx >= len(columns) {
		return models.Column{}, false
	}
	return columns[idx], true
}

// currentSnippet returns the selected snippet, or false when the column is empty
func (m Model) currentSnippet() (models.Snippet, bool) {
	column, ok := m.currentColumn()
	if !ok {
		return models.Snippet{}, false
	}
	idx := m.uiState.SelectedSnippet()
	if idx < 0 || idx >= len(column.Snippets) {
		return models.Snippet{}, false
	}
	return column.Snippets[idx], true
}

// clampSelection keeps the cursor on the board after its contents changed.
// A held snippet is followed to wherever it now sits.
func (m Model) clampSelection() {
	columns := m.columns()
	lens := make([]int, len(columns))
	for i, c := range columns {
		lens[i] = len(c.Snippets)
		if id := m.uiState.Grabbed(); id != "" {
			for j, s := range c.Snippets {
				if s.ID == id {
					m.uiState.SetSelectedColumn(i)
					m.uiState.SetSelectedSnippet(j)
				}
			}
		}
	}
	m.uiState.Clamp(lens)
}

// notify shows a notification
func (m Model) notify(level state.NotificationLevel, message string) {
	m.notificationState.Add(level, message, m.now())
}

// report shows err as an error notification
func (m Model) report(err error) {
	if err != nil {
		m.notify(state.LevelError, err.Error())
	}
}
