// Package cli runs cobra commands against an in-memory application.
// It lives apart from testutil so the board and database tests can import
// testutil without pulling in the command tree.
package cli

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/app"
	clipkg "github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/config"
	"github.com/thenoetrevino/snipboard/internal/database"
	"github.com/thenoetrevino/snipboard/internal/logging"
	"github.com/thenoetrevino/snipboard/internal/testutil"
)

// Epoch is the fixed start of the test clock used by SetupCLITest
var Epoch = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// SetupCLITest creates an App on an in-memory database with a fake clock.
// The App is closed when the test ends.
func SetupCLITest(t *testing.T, opts ...app.Option) (*app.App, *testutil.Clock) {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Remote.BaseDelay = time.Millisecond

	clock := testutil.NewClock(Epoch)
	opts = append([]app.Option{
		app.WithLogger(logging.Discard()),
		app.WithClock(clock.Now),
	}, opts...)

	a := app.NewWithDB(db, cfg, opts...)
	t.Cleanup(func() {
		_ = a.Close(context.Background())
	})
	return a, clock
}

// ExecuteCLICommand executes a CLI command with a test app instance
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctxWithApp := clipkg.ContextWithApp(ctx, testApp)

	cmd.SetArgs(args)
	cmd.SetContext(ctxWithApp)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctxWithApp)
	})

	return output, executeErr
}
