package snippet

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
)

// MoveCmd returns the snippet move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <column>",
		Short: "Drop a snippet on a column",
		Long: `Drop a snippet on a column, given by title or 1-based position.
The snippet lands on top of the column. Dropping it on its own column
moves it to the top.

Examples:
  snipboard snippet move 3f2a "In Uitvoering"
  snipboard snippet move 3f2a 4 --json
`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	id := args[0]

	cliInstance, b, err := cli.OpenBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	if _, err := lookup(b, id); err != nil {
		return formatter.Fail("SNIPPET_NOT_FOUND", err)
	}
	_, title, err := cli.ResolveColumn(b.Settings(), args[1])
	if err != nil {
		return formatter.Fail("COLUMN_NOT_FOUND", err)
	}

	if err := b.MoveToColumn(id, title); err != nil {
		return formatter.Fail("MOVE_ERROR", err)
	}
	if err := b.Wait(ctx); err != nil {
		return formatter.Fail("COMMIT_ERROR", err)
	}

	return printColumn(formatter, b, title)
}
