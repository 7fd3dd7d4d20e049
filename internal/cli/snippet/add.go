package snippet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/cli/styles"
	"github.com/thenoetrevino/snipboard/internal/models"
)

// AddCmd returns the snippet add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a snippet to the board",
		Long: `Add a snippet. New snippets land on top of their column.

Examples:
  # Add to the first column
  snipboard snippet add --title="List users" --code="SELECT * FROM users;"

  # Read the code from stdin into a given column
  cat query.sql | snipboard snippet add --title="Report" --code=- --column=Review

  # Create from the clipboard (title = first characters of the code)
  snipboard snippet add --from-clipboard --color=Groen

  # Quiet mode for bash capture
  ID=$(snipboard snippet add --title=x --code=y --quiet)
`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}

	cmd.Flags().String("title", "", "Snippet title")
	cmd.Flags().String("code", "", "Snippet code (use - for stdin)")
	cmd.Flags().String("color", "", "Color: Default, Groen, Blauw, Paars, Geel, Rood")
	cmd.Flags().String("column", "", "Column title or position (defaults to the first column)")
	cmd.Flags().Bool("from-clipboard", false, "Create the snippet from the clipboard contents")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	title, _ := cmd.Flags().GetString("title")
	codeFlag, _ := cmd.Flags().GetString("code")
	colorName, _ := cmd.Flags().GetString("color")
	columnRef, _ := cmd.Flags().GetString("column")
	fromClipboard, _ := cmd.Flags().GetBool("from-clipboard")

	color, err := cli.ParseColor(colorName)
	if err != nil {
		return formatter.Fail("INVALID_COLOR", err)
	}

	var code string
	if fromClipboard {
		if cmd.Flags().Changed("code") || cmd.Flags().Changed("title") || columnRef != "" {
			return formatter.Usage("INVALID_FLAGS",
				"--from-clipboard cannot be combined with --title, --code or --column",
				"Drop the extra flags or add the snippet without --from-clipboard")
		}
		code, err = cli.Clipboard.ReadAll()
		if err != nil {
			return formatter.Fail("CLIPBOARD_ERROR", err)
		}
		if strings.TrimSpace(code) == "" {
			if fmtErr := formatter.Error("EMPTY_CLIPBOARD", "the clipboard is empty"); fmtErr != nil {
				return fmtErr
			}
			return &cli.CommandError{Code: cli.ExitDataErr, Err: errors.New("the clipboard is empty")}
		}
	} else if code, err = readCode(cmd, codeFlag); err != nil {
		return formatter.Fail("INPUT_ERROR", err)
	}

	cliInstance, b, err := cli.OpenBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	var snippet models.Snippet
	if fromClipboard {
		snippet, err = b.PasteSnippet(ctx, code, color)
	} else {
		category := ""
		if columnRef != "" {
			if _, category, err = cli.ResolveColumn(b.Settings(), columnRef); err != nil {
				return formatter.Fail("COLUMN_NOT_FOUND", err)
			}
		}
		snippet, err = b.CreateSnippet(ctx, models.Draft{
			Title:    title,
			Code:     code,
			Color:    color,
			Category: category,
		})
	}
	if err != nil {
		return formatter.Fail("CREATE_ERROR", err)
	}

	if formatter.Quiet {
		fmt.Println(snippet.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.JSONResult("snippet", cli.SnippetJSON(snippet))
	}

	fmt.Printf("✓ Snippet %s created in '%s'\n", snippet.ID, snippet.Category)
	fmt.Println("  " + styles.SnippetLine(snippet))
	return nil
}
