// Package launcher runs the interactive board until it quits or ctx is cancelled.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/snipboard/internal/app"
	"github.com/thenoetrevino/snipboard/internal/tui"
)

// drainTimeout bounds how long queued commits may run after the board closes
const drainTimeout = 10 * time.Second

// Launch runs the board TUI on a. The caller closes a.
func Launch(ctx context.Context, a *app.App, opts ...tui.Option) error {
	model := tui.New(ctx, a.Board, a.Config, opts...)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && ctx.Err() == nil {
			runErr = fmt.Errorf("error running board: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, saving pending changes")
		<-errChan
	}

	// the board keeps committing in the background; let the queue settle
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := a.Board.Wait(drainCtx); err != nil {
		slog.Warn("changes were not saved before exit", "error", err)
	}
	return runErr
}
