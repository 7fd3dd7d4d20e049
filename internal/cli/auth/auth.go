// Package auth implements `snipboard login` and `snipboard logout`
package auth

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/user"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the remote backend",
		Long: `Log in to the remote backend and load the board from it.
The board must be in remote mode with an endpoint set.
The password is never stored, only the session token.
Without --username the previous username, $SNIPBOARD_USER or the system
account is used.

Examples:
  snipboard login --username demo --password demo
  echo "$PASSWORD" | snipboard login --username demo --password-stdin
`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}

	cmd.Flags().String("username", "", "Username (defaults to the previous one)")
	cmd.Flags().String("password", "", "Password")
	cmd.Flags().Bool("password-stdin", false, "Read the password from stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	cmd.MarkFlagsOneRequired("password", "password-stdin")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	if fromStdin, _ := cmd.Flags().GetBool("password-stdin"); fromStdin {
		var err error
		if password, err = readPassword(cmd.InOrStdin()); err != nil {
			return formatter.Fail("INPUT_ERROR", err)
		}
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer cli.CloseQuietly(cliInstance)

	if strings.TrimSpace(username) == "" {
		stored, err := cliInstance.App.Store.LoadSettings(ctx)
		if err != nil {
			return formatter.Fail("SETTINGS_ERROR", err)
		}
		username = user.LoginName(stored.Username)
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return formatter.Usage("MISSING_CREDENTIALS", "username and password must not be empty",
			"Pass them with --username and --password-stdin")
	}

	b := cliInstance.App.Board
	if err := b.Login(ctx, username, password); err != nil {
		return formatter.Fail("LOGIN_FAILED", err)
	}

	settings := b.Settings()
	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		out := map[string]any{
			"username": settings.Username,
			"snippets": len(b.Snippets()),
		}
		if settings.Session != nil {
			out["expires_at"] = settings.Session.ValidUntil
		}
		return formatter.JSONResult("session", out)
	}

	fmt.Printf("✓ Logged in as %s (%d snippets)\n", settings.Username, len(b.Snippets()))
	return nil
}

// readPassword returns the first line of r without its line ending
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the remote session",
		Args:  cobra.NoArgs,
		RunE:  runLogout,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer cli.CloseQuietly(cliInstance)

	b := cliInstance.App.Board
	if err := b.Logout(ctx); err != nil {
		return formatter.Fail("LOGOUT_FAILED", err)
	}
	username := b.Settings().Username

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.JSONResult("logout", map[string]any{
			"username": username,
			"state":    board.StateUnauthenticated.String(),
		})
	}

	fmt.Println("✓ Logged out")
	return nil
}
