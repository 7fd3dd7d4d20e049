package snippet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/cli/styles"
	"github.com/thenoetrevino/snipboard/internal/models"
)

// ListCmd returns the snippet list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snippets column by column",
		Long: `List snippets in board order (top of each column first).

Examples:
  # Whole board
  snipboard snippet list

  # One column, filtered by title or code
  snipboard snippet list --column=Review --search=select

  # Quiet mode (one ID per line)
  snipboard snippet list --quiet
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("column", "", "Only list this column (title or position)")
	cmd.Flags().String("search", "", "Case-insensitive filter over title and code")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFromFlags(cmd)
	columnRef, _ := cmd.Flags().GetString("column")
	search, _ := cmd.Flags().GetString("search")

	cliInstance, b, err := cli.OpenBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	columns := b.Columns(search)
	if columnRef != "" {
		idx, _, err := cli.ResolveColumn(b.Settings(), columnRef)
		if err != nil {
			return formatter.Fail("COLUMN_NOT_FOUND", err)
		}
		columns = []models.Column{columns[idx]}
	}

	if formatter.Quiet {
		for _, col := range columns {
			for _, s := range col.Snippets {
				fmt.Println(s.ID)
			}
		}
		return nil
	}

	if formatter.JSON {
		out := make([]map[string]any, len(columns))
		for i, col := range columns {
			snippets := make([]map[string]any, len(col.Snippets))
			for j, s := range col.Snippets {
				snippets[j] = cli.SnippetJSON(s)
			}
			out[i] = map[string]any{
				"index":    col.Index,
				"title":    col.Title,
				"snippets": snippets,
			}
		}
		return formatter.JSONResult("columns", out)
	}

	for _, col := range columns {
		fmt.Printf("%s %s\n", styles.TitleStyle.Render(col.Title),
			styles.SubtitleStyle.Render(fmt.Sprintf("(%d)", len(col.Snippets))))
		if len(col.Snippets) == 0 {
			fmt.Println("  " + styles.SubtitleStyle.Render("no snippets"))
		}
		for _, s := range col.Snippets {
			fmt.Println("  " + styles.SnippetLine(s))
		}
	}
	return nil
}
