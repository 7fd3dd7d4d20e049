package snippet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/models"
)

// EditCmd returns the snippet edit subcommand
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a snippet's title, code or color",
		Long: `Change a snippet's title, code or color. Only the given flags change.

Examples:
  snipboard snippet edit 3f2a --title="Active users"
  pbpaste | snipboard snippet edit 3f2a --code=-
  snipboard snippet edit 3f2a --color=Rood --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("code", "", "New code (use - for stdin)")
	cmd.Flags().String("color", "", "New color")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	id := args[0]

	var patch models.Patch
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		patch.Title = &title
	}
	if cmd.Flags().Changed("code") {
		value, _ := cmd.Flags().GetString("code")
		code, err := readCode(cmd, value)
		if err != nil {
			return formatter.Fail("INPUT_ERROR", err)
		}
		patch.Code = &code
	}
	if cmd.Flags().Changed("color") {
		name, _ := cmd.Flags().GetString("color")
		color, err := cli.ParseColor(name)
		if err != nil {
			return formatter.Fail("INVALID_COLOR", err)
		}
		patch.Color = &color
	}
	if patch.IsEmpty() {
		return formatter.Usage("NO_CHANGES", "nothing to change", "Pass at least one of --title, --code or --color")
	}

	cliInstance, b, err := cli.OpenBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	if err := b.EditSnippet(id, patch); err != nil {
		return formatter.Fail("UPDATE_ERROR", err)
	}
	if err := b.Wait(ctx); err != nil {
		return formatter.Fail("COMMIT_ERROR", err)
	}

	snippet, err := lookup(b, id)
	if err != nil {
		return formatter.Fail("SNIPPET_NOT_FOUND", err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.JSONResult("snippet", cli.SnippetJSON(snippet))
	}

	fmt.Printf("✓ Snippet %s updated\n", snippet.ID)
	if banner := b.Banner(); banner != "" {
		fmt.Printf("  ⚠ %s\n", banner)
	}
	return nil
}
