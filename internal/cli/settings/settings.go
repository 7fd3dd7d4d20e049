// Package settings implements `snipboard settings ...`
package settings

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/app"
	"github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/models"
)

var timeNow = time.Now

// SettingsCmd returns the settings parent command
func SettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change where the board is stored",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(ModeCmd())
	cmd.AddCommand(EndpointCmd())

	return cmd
}

// ShowCmd returns the settings show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the board settings",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer cli.CloseQuietly(cliInstance)

	// Settings are readable even when the remote backend is not
	settings, err := cliInstance.App.Store.LoadSettings(ctx)
	if err != nil {
		return formatter.Fail("SETTINGS_ERROR", err)
	}

	return printSettings(formatter, cliInstance.App, settings, "")
}

// printSettings reports settings. warning explains why the board could not be
// loaded with them, if it could not.
func printSettings(formatter *cli.OutputFormatter, a *app.App, settings models.BoardSettings, warning string) error {
	loggedIn := settings.Session.Valid(timeNow())
	endpoint := a.Endpoint(settings)

	if formatter.Quiet {
		fmt.Println(settings.Mode)
		return nil
	}
	if formatter.JSON {
		out := map[string]any{
			"mode":      settings.Mode,
			"columns":   settings.ColumnTitles,
			"endpoint":  endpoint,
			"username":  settings.Username,
			"logged_in": loggedIn,
		}
		if settings.Session != nil && !settings.Session.ValidUntil.IsZero() {
			out["session_expires_at"] = settings.Session.ValidUntil
		}
		if warning != "" {
			out["warning"] = warning
		}
		return formatter.JSONResult("settings", out)
	}

	fmt.Printf("Mode:      %s\n", settings.Mode)
	fmt.Printf("Columns:   %v\n", settings.ColumnTitles)
	if endpoint != "" {
		fmt.Printf("Endpoint:  %s\n", endpoint)
	}
	if settings.Username != "" {
		state := "logged out"
		if loggedIn {
			state = "logged in"
		}
		fmt.Printf("User:      %s (%s)\n", settings.Username, state)
	}
	if warning != "" {
		fmt.Printf("⚠ %s\n", warning)
	}
	return nil
}

// loadWarning describes a failed reload after a settings change
func loadWarning(err error) string {
	if err == nil {
		return ""
	}
	if hint := cli.Suggestion(err); hint != "" {
		return err.Error() + ". " + hint
	}
	return err.Error()
}
