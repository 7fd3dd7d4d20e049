package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/thenoetrevino/snipboard/internal/models"
)

// ColumnProps describes how one column is drawn
type ColumnProps struct {
	Column       models.Column
	Selected     bool   // the cursor is in this column
	SelectedIdx  int    // index of the selected snippet, meaningful when Selected
	Grabbed      string // ID of the held snippet
	Pending      map[string]bool
	Expanded     map[string]bool // IDs of cards showing their full code
	Height       int // outer height; 0 sizes to content
	ScrollOffset int
}

// VisibleSnippets returns how many cards fit in a column of the given outer height
func VisibleSnippets(height int) int {
	if height <= 0 {
		return 0
	}
	return max((height-columnOverhead)/SnippetCardHeight, 1)
}

// RenderColumn renders a column with its title and the cards that fit
//
//	{Column Title} ({count})
//	▲ (if scrolled down)
//	{Snippet 1}
//	...
//	▼ (if more snippets below)
func RenderColumn(p ColumnProps) string {
	snippets := p.Column.Snippets
	content := renderColumnHeader(p.Column.Title, len(snippets)) + "\n"

	if len(snippets) == 0 {
		content += SubtleStyle().Italic(true).Render("No snippets")
	} else {
		// Expanded cards take the room of the cards after them
		visible, budget := len(snippets), math.MaxInt
		if n := VisibleSnippets(p.Height); n > 0 {
			visible, budget = n, n*SnippetCardHeight
		}
		offset := min(max(p.ScrollOffset, 0), max(len(snippets)-1, 0))
		limit := min(offset+visible, len(snippets))
		end := fitCards(snippets, offset, limit, budget, p.Expanded)
		for p.Selected && p.SelectedIdx >= end && offset < p.SelectedIdx {
			offset++
			limit = min(offset+visible, len(snippets))
			end = fitCards(snippets, offset, limit, budget, p.Expanded)
		}

		if offset > 0 {
			content += SubtleStyle().Render("▲ more above") + "\n"
		} else {
			content += "\n"
		}

		cards := make([]string, 0, end-offset)
		for i := offset; i < end; i++ {
			s := snippets[i]
			cards = append(cards, RenderSnippet(s, p.Selected && i == p.SelectedIdx, s.ID == p.Grabbed, p.Pending[s.ID], p.Expanded[s.ID]))
		}
		content += strings.Join(cards, "\n")

		if end < len(snippets) {
			content += "\n" + SubtleStyle().Render("▼ more below")
		}
	}

	style := columnStyle(p.Selected)
	if p.Height > 0 {
		style = style.Height(p.Height)
	}
	return style.Render(content)
}

// fitCards returns the end index of the cards from offset that fit in budget lines.
// The first card is always shown.
func fitCards(snippets []models.Snippet, offset, limit, budget int, expanded map[string]bool) int {
	used := 0
	for i := offset; i < limit; i++ {
		h := CardHeight(snippets[i], expanded[snippets[i].ID])
		if i > offset && used+h > budget {
			return i
		}
		used += h
	}
	return limit
}

func renderColumnHeader(title string, count int) string {
	return TitleStyle().Render(fmt.Sprintf("%s (%d)", truncate(title, columnInnerWidth-6), count))
}
