package board

import "time"

// Level is the severity of a notification
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "info"
}

// Notification is a user-facing message about something the board did in the background
type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// notificationBuffer bounds undelivered notifications; older ones are dropped first
const notificationBuffer = 16

// publish delivers n without blocking. When the buffer is full the oldest
// notification is discarded.
func (c *Controller) publish(level Level, message string) {
	n := Notification{Level: level, Message: message, At: c.now()}
	for range 2 {
		select {
		case c.notifications <- n:
			return
		default:
		}
		select {
		case <-c.notifications:
		default:
		}
	}
}
