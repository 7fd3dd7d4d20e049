package tui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/snipboard/internal/tui/components"
)

// helpText lists the active key bindings
func (m Model) helpText() string {
	km := m.config.KeyMappings
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Navigation", [][2]string{
			{km.PrevColumn + "/" + km.NextColumn, "previous / next column"},
			{km.PrevSnippet + "/" + km.NextSnippet, "previous / next snippet"},
		}},
		{"Moving", [][2]string{
			{km.GrabSnippet, "grab or drop the selected snippet"},
			{"while held", "move keys carry the snippet"},
			{km.MoveToTop, "move snippet to the top of its column"},
		}},
		{"Snippets", [][2]string{
			{km.AddSnippet, "new snippet in this column"},
			{km.EditSnippet, "edit snippet"},
			{km.ToggleCode, "show or hide the full code"},
			{km.CopySnippet, "copy code to the clipboard"},
			{km.PasteSnippet, "new snippet from the clipboard"},
			{km.ToggleEditMode, "toggle edit mode"},
			{km.DeleteSnippet, "delete snippet (edit mode)"},
		}},
		{"Board", [][2]string{
			{km.RenameColumn, "rename column"},
			{km.Search, "search titles and code"},
			{km.Resync, "reload from storage"},
			{km.ToggleMode, "switch local / remote storage"},
			{km.Login, "log in to the remote backend"},
			{"esc", "drop, clear search, dismiss errors"},
			{km.Quit, "quit"},
		}},
	}

	keyStyle := lipgloss.NewStyle().Bold(true).Width(12)
	var b strings.Builder
	b.WriteString(components.TitleStyle().Render("snipboard keys"))
	for _, section := range sections {
		b.WriteString("\n\n" + components.SubtleStyle().Render(section.title))
		for _, k := range section.keys {
			b.WriteString("\n" + keyStyle.Render(k[0]) + k[1])
		}
	}
	b.WriteString("\n\n" + components.SubtleStyle().Render("press ? or esc to close"))
	return b.String()
}
