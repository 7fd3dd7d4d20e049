package notifications

import "github.com/thenoetrevino/snipboard/internal/tui/theme"

type style struct {
	icon       string
	title      string
	foreground string
	background string // "" keeps the terminal background
}

func (s Severity) style() style {
	switch s {
	case Warning:
		return style{icon: "⚠", title: "Warning", foreground: theme.WarningFg}
	case Error:
		return style{icon: "✕", title: "Error", foreground: theme.ErrorFg, background: theme.ErrorBg}
	default:
		return style{icon: "🔔", title: "Info", foreground: theme.InfoFg}
	}
}
