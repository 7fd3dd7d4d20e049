// Package theme holds the active TUI colors. Call Init before rendering.
package theme

import "github.com/thenoetrevino/snipboard/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Accent         string
	ColumnBorder   string
	SnippetBorder  string
	SelectedBorder string
	GrabbedBorder  string
	Title          string
	Subtle         string
	Normal         string
	InfoFg         string
	WarningFg      string
	ErrorFg        string
	ErrorBg        string
)

func init() {
	Init(config.ThemePreset(config.PresetDefault))
}

// Init initializes the theme colors from t
func Init(t config.Theme) {
	Accent = t.Accent
	ColumnBorder = t.ColumnBorder
	SnippetBorder = t.SnippetBorder
	SelectedBorder = t.SelectedBorder
	GrabbedBorder = t.GrabbedBorder
	Title = t.Title
	Subtle = t.Subtle
	Normal = t.Normal
	InfoFg = t.InfoFg
	WarningFg = t.WarningFg
	ErrorFg = t.ErrorFg
	ErrorBg = t.ErrorBg
}
