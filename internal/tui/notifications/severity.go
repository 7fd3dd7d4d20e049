// Package notifications renders the floating notification boxes and the inline banner.
package notifications

import "github.com/thenoetrevino/snipboard/internal/tui/state"

// Severity represents the severity level of a notification
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// FromLevel maps a notification level onto a severity
func FromLevel(level state.NotificationLevel) Severity {
	switch level {
	case state.LevelWarning:
		return Warning
	case state.LevelError:
		return Error
	}
	return Info
}
