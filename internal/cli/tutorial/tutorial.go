package tutorial

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli/styles"
)

//go:embed tutorial.md
var tutorialContent string

const tutorialWidth = 80

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show a short guide to the board and the CLI",
		Long: `Show the keys of the board, the scripting commands and how to set up
remote storage. Use --raw for plain markdown.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			raw, _ := cmd.Flags().GetBool("raw")
			outputTutorial(raw)
		},
	}
	cmd.Flags().Bool("raw", false, "print markdown without rendering")
	return cmd
}

func outputTutorial(raw bool) {
	if raw {
		fmt.Print(tutorialContent)
		return
	}
	fmt.Print(styles.RenderMarkdown(tutorialContent, tutorialWidth))
}
