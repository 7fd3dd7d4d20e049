// Package styles renders snippets for the human-readable CLI output
package styles

import (
	"fmt"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/thenoetrevino/snipboard/internal/config"
	"github.com/thenoetrevino/snipboard/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Column:", "Color:"
	ValueStyle    lipgloss.Style
	SectionStyle  lipgloss.Style // For section headers like "Code"

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
)

func init() {
	Init(config.ThemePreset(config.PresetDefault))
}

// Init initializes all CLI styles with the given theme
func Init(theme config.Theme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.InfoFg))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ErrorFg)).
		Background(lipgloss.Color(theme.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.WarningFg))
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColorChip renders a palette color as "● Name" in that color
func ColorChip(c models.Color) string {
	c = models.NormalizeColor(c)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Hex())).
		Bold(true).
		Render("● " + string(c))
}

// SnippetLine renders a one-line summary for list output
func SnippetLine(s models.Snippet) string {
	return fmt.Sprintf("%s %s %s",
		ColorChip(s.Color),
		ValueStyle.Render(s.Title),
		SubtitleStyle.Render("("+s.ID+")"))
}

// RenderSnippetCard renders a full snippet with its code highlighted
func RenderSnippetCard(s models.Snippet) string {
	var content strings.Builder

	content.WriteString(TitleStyle.Render(s.Title))
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("%s %s  %s %s\n",
		LabelStyle.Render("Column:"), ValueStyle.Render(s.Category),
		LabelStyle.Render("Color:"), ColorChip(s.Color)))
	content.WriteString(fmt.Sprintf("%s %s\n",
		LabelStyle.Render("ID:"), SubtitleStyle.Render(s.ID)))

	content.WriteString(SectionStyle.Render("Code"))
	content.WriteString("\n")
	content.WriteString(RenderCode(s.Code, CardWidth-6))

	return CardStyle.Render(content.String())
}

// Cache glamour renderers by width, they are expensive to build
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderCode syntax-highlights code as a fenced block. The raw code is returned
// when rendering fails.
func RenderCode(code string, width int) string {
	renderer, err := getRenderer(width)
	if err != nil {
		return code
	}
	fence := "```"
	for strings.Contains(code, fence) {
		fence += "`"
	}
	out, err := renderer.Render(fence + "\n" + code + "\n" + fence + "\n")
	if err != nil {
		return code
	}
	return strings.TrimRight(out, "\n")
}

// RenderMarkdown renders a markdown document, falling back to the source
func RenderMarkdown(md string, width int) string {
	renderer, err := getRenderer(width)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
