package state

import (
	"time"

	"charm.land/lipgloss/v2"
)

// NotificationLevel represents the severity of a notification.
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	LevelWarning
	LevelError
)

// maxNotifications bounds how many notifications are stacked on screen
const maxNotifications = 4

// Notification represents a single notification message with a severity level.
type Notification struct {
	Level   NotificationLevel
	Message string
	At      time.Time
}

// NotificationState keeps the notifications shown in the top-right corner.
type NotificationState struct {
	notifications []Notification
	windowWidth   int
	windowHeight  int
}

// NewNotificationState creates a new NotificationState with no notifications.
func NewNotificationState() *NotificationState {
	return &NotificationState{}
}

// Add adds a notification. Only the newest few are kept.
func (s *NotificationState) Add(level NotificationLevel, message string, at time.Time) {
	s.notifications = append(s.notifications, Notification{Level: level, Message: message, At: at})
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}
}

// Clear removes all notifications.
func (s *NotificationState) Clear() {
	s.notifications = nil
}

// Expire drops notifications older than ttl at now. Errors stay until cleared.
func (s *NotificationState) Expire(now time.Time, ttl time.Duration) {
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.Level == LevelError || now.Sub(n.At) < ttl {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
}

// All returns all current notifications.
func (s *NotificationState) All() []Notification {
	return s.notifications
}

// HasAny returns true if there are any notifications.
func (s *NotificationState) HasAny() bool {
	return len(s.notifications) > 0
}

// SetWindowSize updates the window dimensions for positioning calculations.
func (s *NotificationState) SetWindowSize(width, height int) {
	s.windowWidth = width
	s.windowHeight = height
}

// GetLayers creates floating layers for all active notifications, stacked
// vertically in the top-right corner of the screen.
func (s *NotificationState) GetLayers(renderFunc func(Notification) string) []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	if s.windowWidth == 0 {
		return layers
	}

	row := 0
	for _, notification := range s.notifications {
		view := renderFunc(notification)
		width := lipgloss.Width(view)
		height := lipgloss.Height(view)

		if row+height >= s.windowHeight {
			break
		}
		col := max(s.windowWidth-width-1, 0)

		layers = append(layers, lipgloss.NewLayer(view).X(col).Y(row))
		row += height + 1
	}

	return layers
}
