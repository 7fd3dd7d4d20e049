// Command snipboard-mock runs the mock remote backend as a standalone service.
// It reads the mock section of the snipboard config file.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/snipboard/internal/config"
	"github.com/thenoetrevino/snipboard/internal/logging"
	"github.com/thenoetrevino/snipboard/internal/mockapi"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.SlogLevel())
	slog.SetDefault(logger)

	server := mockapi.NewServer(mockapi.Config{
		Addr:     cfg.Mock.Addr,
		Users:    cfg.Mock.Users,
		TokenTTL: cfg.Mock.TokenTTL,
	}, mockapi.WithLogger(logger))

	slog.Info("snipboard mock backend starting", "addr", cfg.Mock.Addr, "users", len(cfg.Mock.Users), "pid", os.Getpid())

	// Blocks until shutdown
	if err := server.Start(ctx); err != nil {
		slog.Error("mock backend error", "error", err)
		os.Exit(1)
	}

	slog.Info("snipboard mock backend shut down gracefully")
}
