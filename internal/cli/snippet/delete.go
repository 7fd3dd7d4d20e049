package snippet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
)

// DeleteCmd returns the snippet delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a snippet",
		Long: `Delete a snippet. Deleting is only possible in edit mode, which this
command switches on for its own run; pass --force to confirm.

Examples:
  snipboard snippet delete 3f2a --force
`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("force", false, "Confirm the deletion")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	id := args[0]

	if force, _ := cmd.Flags().GetBool("force"); !force {
		return formatter.Usage("CONFIRMATION_REQUIRED",
			"deleting a snippet cannot be undone",
			fmt.Sprintf("Run again with --force: snipboard snippet delete %s --force", id))
	}

	cliInstance, b, err := cli.OpenBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	snippet, err := lookup(b, id)
	if err != nil {
		return formatter.Fail("SNIPPET_NOT_FOUND", err)
	}

	b.SetEditMode(true)
	defer b.SetEditMode(false)

	if err := b.DeleteSnippet(id); err != nil {
		return formatter.Fail("DELETE_ERROR", err)
	}
	if err := b.Wait(ctx); err != nil {
		return formatter.Fail("COMMIT_ERROR", err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.JSONResult("deleted", map[string]any{"id": snippet.ID, "title": snippet.Title})
	}

	fmt.Printf("✓ Snippet %s ('%s') deleted\n", snippet.ID, snippet.Title)
	return nil
}
