package snippet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/cli/styles"
)

// ShowCmd returns the snippet show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a snippet with highlighted code",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	if formatter.Quiet {
		fmt.Println(snippet.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.JSONResult("snippet", cli.SnippetJSON(snippet))
	}

	fmt.Println(styles.RenderSnippetCard(snippet))
	return nil
}
