package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/models"
)

// boardLoadedMsg reports a finished Load, Resync or settings change
type boardLoadedMsg struct {
	err error
}

// committedMsg reports that queued commits settled
type committedMsg struct {
	op  string
	err error
}

// createdMsg reports a finished snippet creation
type createdMsg struct {
	snippet models.Snippet
	err     error
}

// loginMsg reports a finished login attempt
type loginMsg struct {
	err error
}

// notificationMsg carries a notification published by the board
type notificationMsg struct {
	notification board.Notification
}

// tickMsg ages notifications
type tickMsg time.Time

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return boardLoadedMsg{err: m.board.Load(m.ctx)}
	}
}

func (m Model) resyncCmd() tea.Cmd {
	return func() tea.Msg {
		return boardLoadedMsg{err: m.board.Resync(m.ctx)}
	}
}

// waitCommitted waits for the commits queued by op
func (m Model) waitCommitted(op string) tea.Cmd {
	return func() tea.Msg {
		return committedMsg{op: op, err: m.board.Wait(m.ctx)}
	}
}

func (m Model) listenNotifications() tea.Cmd {
	ch := m.board.Notifications()
	return func() tea.Msg {
		select {
		case n, ok := <-ch:
			if !ok {
				return nil
			}
			return notificationMsg{notification: n}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
