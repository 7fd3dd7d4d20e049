package snippet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/cli/styles"
)

// ReorderCmd returns the snippet reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <id> <target-id>",
		Short: "Place a snippet directly above another one in the same column",
		Long: `Place a snippet directly above another snippet of its column, as if it
had been dragged onto it. Targets in another column are ignored; use
'snipboard snippet move' to change columns.

Examples:
  snipboard snippet reorder 3f2a 9bc1
`,
		Args: cobra.ExactArgs(2),
		RunE: runReorder,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runReorder(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	draggedID, targetID := args[0], args[1]

	cliInstance, b, err := cli.OpenBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	dragged, err := lookup(b, draggedID)
	if err != nil {
		return formatter.Fail("SNIPPET_NOT_FOUND", err)
	}
	if _, err := lookup(b, targetID); err != nil {
		return formatter.Fail("SNIPPET_NOT_FOUND", err)
	}

	if err := b.ReorderWithinColumn(draggedID, targetID); err != nil {
		return formatter.Fail("REORDER_ERROR", err)
	}
	if err := b.Wait(ctx); err != nil {
		return formatter.Fail("COMMIT_ERROR", err)
	}

	return printColumn(formatter, b, dragged.Category)
}

// printColumn reports the resulting order of one column
func printColumn(formatter *cli.OutputFormatter, b *board.Controller, title string) error {
	col, err := b.Column(title, "")
	if err != nil {
		return formatter.Fail("COLUMN_NOT_FOUND", err)
	}

	if formatter.Quiet {
		for _, s := range col.Snippets {
			fmt.Println(s.ID)
		}
		return nil
	}
	if formatter.JSON {
		snippets := make([]map[string]any, len(col.Snippets))
		for i, s := range col.Snippets {
			snippets[i] = cli.SnippetJSON(s)
		}
		return formatter.JSONResult("column", map[string]any{
			"index":    col.Index,
			"title":    col.Title,
			"snippets": snippets,
		})
	}

	fmt.Println(styles.TitleStyle.Render(col.Title))
	for i, s := range col.Snippets {
		fmt.Printf("  %d. %s\n", i+1, styles.SnippetLine(s))
	}
	return nil
}
