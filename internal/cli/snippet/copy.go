package snippet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
)

// CopyCmd returns the snippet copy subcommand
func CopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a snippet's code to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE:  runCopy,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runCopy(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, b, err := cli.OpenBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	snippet, err := lookup(b, args[0])
	if err != nil {
		return formatter.Fail("SNIPPET_NOT_FOUND", err)
	}
	if err := cli.Clipboard.WriteAll(snippet.Code); err != nil {
		return formatter.Fail("CLIPBOARD_ERROR", err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.JSONResult("copied", map[string]any{"id": snippet.ID, "bytes": len(snippet.Code)})
	}

	fmt.Printf("✓ Copied '%s' to the clipboard\n", snippet.Title)
	return nil
}
