// Package snippet implements `snipboard snippet ...`
package snippet

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/models"
)

// SnippetCmd returns the snippet parent command
func SnippetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snippet",
		Short: "Manage snippets",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(EditCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(ReorderCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(CopyCmd())

	return cmd
}

// readCode resolves a --code value, where "-" means stdin
func readCode(cmd *cobra.Command, value string) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read code from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// lookup returns the snippet with id or a wrapped ErrSnippetNotFound
func lookup(b *board.Controller, id string) (models.Snippet, error) {
	s, ok := b.Snippet(id)
	if !ok {
		return models.Snippet{}, fmt.Errorf("%w: %s", board.ErrSnippetNotFound, id)
	}
	return s, nil
}
