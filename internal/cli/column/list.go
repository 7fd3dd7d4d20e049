package column

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List columns",
		Long: `List the board columns in order with their snippet counts.

Examples:
  snipboard column list
  snipboard column list --json
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, b, err := cli.OpenBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	columns := b.Columns("")

	if formatter.Quiet {
		for _, col := range columns {
			fmt.Println(col.Title)
		}
		return nil
	}

	if formatter.JSON {
		columnList := make([]map[string]any, len(columns))
		for i, col := range columns {
			columnList[i] = map[string]any{
				"index":    col.Index,
				"title":    col.Title,
				"snippets": len(col.Snippets),
			}
		}
		return formatter.JSONResult("columns", columnList)
	}

	fmt.Println("Columns:")
	for _, col := range columns {
		fmt.Printf("  %d. %s (%d snippets)\n", col.Index+1, col.Title, len(col.Snippets))
	}
	return nil
}
