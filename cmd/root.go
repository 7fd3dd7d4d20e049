// Package cmd assembles the snipboard command tree.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/cli/auth"
	"github.com/thenoetrevino/snipboard/internal/cli/column"
	"github.com/thenoetrevino/snipboard/internal/cli/mockserver"
	"github.com/thenoetrevino/snipboard/internal/cli/settings"
	"github.com/thenoetrevino/snipboard/internal/cli/snippet"
	"github.com/thenoetrevino/snipboard/internal/cli/tutorial"
	"github.com/thenoetrevino/snipboard/internal/launcher"
	"github.com/thenoetrevino/snipboard/internal/logging"
)

// logFile is the open log of the running command
var logFile io.Closer

// NewRootCmd returns the snipboard command. Without a subcommand it opens the board.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snipboard",
		Short: "snipboard - a kanban board for code snippets",
		Long: `snipboard keeps code snippets on a kanban board.

Run it without arguments for the interactive board, or use the subcommands
to script it. Every subcommand accepts --json and --quiet.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLog()
		},
		RunE: runBoard,
	}

	cmd.AddCommand(snippet.SnippetCmd())
	cmd.AddCommand(column.ColumnCmd())
	cmd.AddCommand(settings.SettingsCmd())
	cmd.AddCommand(auth.LoginCmd())
	cmd.AddCommand(auth.LogoutCmd())
	cmd.AddCommand(mockserver.ServeMockCmd())
	cmd.AddCommand(tutorial.TutorialCmd())

	return cmd
}

// Execute runs the command tree. Errors a command already reported are not printed again.
func Execute(ctx context.Context) error {
	err := NewRootCmd().ExecuteContext(ctx)
	closeLog()

	var cmdErr *cli.CommandError
	if err != nil && !errors.As(err, &cmdErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// initLogging sends slog output to the log file under the data directory
func initLogging(cmd *cobra.Command, args []string) error {
	cfg, err := cli.ConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	closer, err := logging.Init(cfg.DataDir, cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logFile = closer
	return nil
}

func closeLog() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// runBoard opens the interactive board
func runBoard(cmd *cobra.Command, args []string) error {
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return err
	}
	defer cli.CloseQuietly(cliInstance)

	return launcher.Launch(cmd.Context(), cliInstance.App)
}
