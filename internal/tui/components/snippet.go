package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/tui/theme"
)

// RenderSnippet renders a single snippet as a card. Collapsed cards have a fixed
// size; expanded cards show up to expandedLines lines of code.
//
//	╭────────────────────────╮
//	│ ■ {Title}              │
//	│ {code line 1}          │
//	│ {code line 2}          │
//	╰────────────────────────╯
func RenderSnippet(s models.Snippet, selected, grabbed, pending, expanded bool) string {
	chip := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color.Hex())).Render("■")

	marker := ""
	if pending {
		marker = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.WarningFg)).Render(" ↻")
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Normal)).
		Render(truncate(s.Title, titleEllipsisAfter))

	lines := codePreview(s.Code, previewLines)
	if expanded {
		lines = codePreview(s.Code, expandedCodeLines(s.Code))
	}
	preview := SubtleStyle().Render(strings.Join(lines, "\n"))

	return snippetStyle(selected, grabbed).Render(chip + " " + title + marker + "\n" + preview)
}

// CardHeight returns the rendered height of a card
func CardHeight(s models.Snippet, expanded bool) int {
	if !expanded {
		return SnippetCardHeight
	}
	return SnippetCardHeight - previewLines + expandedCodeLines(s.Code)
}

// expandedCodeLines is the number of code lines an expanded card shows
func expandedCodeLines(code string) int {
	n := strings.Count(code, "\n") + 1
	return min(max(n, previewLines), expandedLines)
}

// codePreview returns exactly n lines, tabs expanded and cut to the card width.
// A cut at the last line is marked with an ellipsis line.
func codePreview(code string, n int) []string {
	lines := strings.Split(strings.ReplaceAll(code, "\t", "  "), "\n")
	out := make([]string, n)
	for i := range out {
		if i < len(lines) {
			out[i] = truncate(lines[i], snippetInnerWidth)
		}
	}
	if n > previewLines && len(lines) > n {
		out[n-1] = "…"
	}
	return out
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:max(n-1, 0)]) + "…"
}
