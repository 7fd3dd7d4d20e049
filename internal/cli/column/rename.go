package column

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
)

// RenameCmd returns the column rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <column> <new-title>",
		Short: "Rename a column",
		Long: `Rename a column, given by title or 1-based position. Every snippet in the
column moves along with it.

Examples:
  snipboard column rename Review "Code Review"
  snipboard column rename 3 "Code Review" --json
`,
		Args: cobra.ExactArgs(2),
		RunE: runRename,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, b, err := cli.OpenBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	index, oldTitle, err := cli.ResolveColumn(b.Settings(), args[0])
	if err != nil {
		return formatter.Fail("COLUMN_NOT_FOUND", err)
	}

	if err := b.RenameColumn(index, args[1]); err != nil {
		return formatter.Fail("RENAME_ERROR", err)
	}
	if err := b.Wait(ctx); err != nil {
		return formatter.Fail("COMMIT_ERROR", err)
	}

	newTitle := b.Settings().ColumnTitles[index]
	col, err := b.Column(newTitle, "")
	if err != nil {
		return formatter.Fail("COLUMN_NOT_FOUND", err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.JSONResult("column", map[string]any{
			"index":    index,
			"title":    newTitle,
			"old_name": oldTitle,
			"snippets": len(col.Snippets),
		})
	}

	fmt.Printf("✓ Column %d renamed\n", index+1)
	fmt.Printf("  '%s' → '%s' (%d snippets moved)\n", oldTitle, newTitle, len(col.Snippets))
	return nil
}
