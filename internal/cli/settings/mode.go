package settings

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/models"
)

// ModeCmd returns the settings mode subcommand
func ModeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode <local|remote>",
		Short: "Switch between local and remote storage",
		Long: `Switch the board between the local database and the remote backend.
The board is reloaded from the new storage; nothing is copied across.
The switch is kept even when the new storage cannot be loaded yet, for
example before logging in.

Examples:
  snipboard settings mode remote
  snipboard settings mode local --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runMode,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runMode(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	mode, err := models.ParseMode(args[0])
	if err != nil {
		return formatter.Fail("INVALID_MODE", err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer cli.CloseQuietly(cliInstance)

	b := cliInstance.App.Board
	loadErr := b.SetPersistenceMode(ctx, mode)
	if b.Settings().Mode != mode {
		return formatter.Fail("SETTINGS_ERROR", loadErr)
	}

	return printSettings(formatter, cliInstance.App, b.Settings(), loadWarning(loadErr))
}
