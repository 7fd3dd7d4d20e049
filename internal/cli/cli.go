package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/app"
	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/clipboard"
	"github.com/thenoetrevino/snipboard/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App   *app.App
	owned bool
}

// Clipboard backs the copy and paste commands
var Clipboard clipboard.Clipboard = clipboard.System{}

type contextKey string

const appKey contextKey = "app"

// ContextWithApp makes commands run against a prepared App instead of opening
// the one under the configured data directory
func ContextWithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// NewCLI loads the configuration and opens the application container
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(ctx, cfg, app.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &CLI{App: application, owned: true}, nil
}

// GetCLIFromContext returns the CLI for a command, reusing an App placed in
// ctx by ContextWithApp
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx != nil {
		if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
			return &CLI{App: a}, nil
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return NewCLI(ctx)
}

// ConfigFromContext returns the configuration of an App placed in ctx, or
// loads it from disk
func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	if ctx != nil {
		if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
			return a.Config, nil
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Board loads the board and returns its controller
func (c *CLI) Board(ctx context.Context) (*board.Controller, error) {
	if err := c.App.Board.Load(ctx); err != nil {
		return nil, err
	}
	return c.App.Board, nil
}

// Close waits for background commits and releases resources the CLI opened
func (c *CLI) Close() error {
	if !c.owned {
		return c.App.Board.Wait(context.Background())
	}
	return c.App.Close(context.Background())
}

// OpenBoard resolves the CLI for cmd and loads the board. Failures are already
// reported through formatter. The caller closes the returned CLI.
func OpenBoard(cmd *cobra.Command, formatter *OutputFormatter) (*CLI, *board.Controller, error) {
	ctx := cmd.Context()

	cliInstance, err := GetCLIFromContext(ctx)
	if err != nil {
		return nil, nil, formatter.Fail("INITIALIZATION_ERROR", err)
	}

	b, err := cliInstance.Board(ctx)
	if err != nil {
		CloseQuietly(cliInstance)
		return nil, nil, formatter.Fail("LOAD_ERROR", err)
	}
	return cliInstance, b, nil
}

// CloseQuietly closes c and logs a failure
func CloseQuietly(c *CLI) {
	if err := c.Close(); err != nil {
		slog.Error("Error closing CLI", "error", err)
	}
}
