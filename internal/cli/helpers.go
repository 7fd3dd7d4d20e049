package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/app"
	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/persistence"
)

// AddOutputFlags registers the agent-friendly flags every command carries
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// FormatterFromFlags builds the formatter selected by --json and --quiet
func FormatterFromFlags(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// ParseColor maps a palette name onto a Color, ignoring case.
// An empty string is the default color.
func ParseColor(name string) (models.Color, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ColorDefault, nil
	}
	for _, c := range models.Palette {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	names := make([]string, len(models.Palette))
	for i, c := range models.Palette {
		names[i] = string(c)
	}
	return "", &board.ValidationError{Fields: []board.FieldError{{
		Field:   "color",
		Message: fmt.Sprintf("must be one of %s", strings.Join(names, ", ")),
	}}}
}

// ResolveColumn accepts a column title or its 1-based position and returns the
// 0-based index and title
func ResolveColumn(settings models.BoardSettings, ref string) (int, string, error) {
	ref = strings.TrimSpace(ref)
	if idx := slices.Index(settings.ColumnTitles, ref); idx >= 0 {
		return idx, ref, nil
	}
	for i, title := range settings.ColumnTitles {
		if strings.EqualFold(title, ref) {
			return i, title, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(settings.ColumnTitles) {
		return n - 1, settings.ColumnTitles[n-1], nil
	}
	return -1, "", fmt.Errorf("%w: %q", models.ErrUnknownColumn, ref)
}

// SnippetJSON is the wire shape of a snippet in --json output
func SnippetJSON(s models.Snippet) map[string]any {
	return map[string]any{
		"id":        s.ID,
		"title":     s.Title,
		"code":      s.Code,
		"color":     s.Color,
		"category":  s.Category,
		"order_key": s.OrderKey,
	}
}

// Suggestion returns a follow-up command for errors the user can fix
func Suggestion(err error) string {
	switch {
	case errors.Is(err, persistence.ErrAuth):
		return "Log in with: snipboard login --username <name>"
	case errors.Is(err, app.ErrNoEndpoint):
		return "Set one with: snipboard settings endpoint <url>"
	case errors.Is(err, persistence.ErrConnectivity):
		return "Check the backend with: snipboard settings show"
	case errors.Is(err, models.ErrUnknownColumn), errors.Is(err, models.ErrColumnIndex):
		return "List columns with: snipboard column list"
	case errors.Is(err, board.ErrSnippetNotFound):
		return "List snippets with: snipboard snippet list"
	}
	return ""
}
