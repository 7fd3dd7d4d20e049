// Package mockserver runs the bundled mock backend from the command line.
package mockserver

import (
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/mockapi"
)

// ServeMockCmd returns the serve-mock command
func ServeMockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve-mock",
		Short: "Run the mock remote backend",
		Long: `Run an in-memory backend speaking the remote snippet protocol.
Users and the token lifetime come from the mock section of the config file.

Examples:
  snipboard serve-mock
  snipboard serve-mock --addr 127.0.0.1:9000 --token-ttl 10m

  # then, in another terminal
  snipboard settings endpoint http://127.0.0.1:8787
  snipboard settings mode remote
  snipboard login --username demo --password demo
`,
		Args: cobra.NoArgs,
		RunE: runServeMock,
	}

	cmd.Flags().String("addr", "", "listen address (default from config)")
	cmd.Flags().Duration("token-ttl", 0, "session token lifetime (default from config)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runServeMock(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cfg, err := cli.ConfigFromContext(ctx)
	if err != nil {
		return formatter.Fail("CONFIG_ERROR", err)
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Mock.Addr
	}
	ttl, _ := cmd.Flags().GetDuration("token-ttl")
	if ttl < 0 {
		return formatter.Usage("INVALID_TOKEN_TTL", "token TTL must be positive", "Use a duration such as --token-ttl 30m")
	}
	if ttl == 0 {
		ttl = cfg.Mock.TokenTTL
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return formatter.Fail("LISTEN_ERROR", fmt.Errorf("failed to listen on %s: %w", addr, err))
	}

	server := mockapi.NewServer(mockapi.Config{
		Addr:     listener.Addr().String(),
		Users:    cfg.Mock.Users,
		TokenTTL: ttl,
	}, mockapi.WithLogger(slog.Default()))

	url := "http://" + listener.Addr().String()
	switch {
	case formatter.Quiet:
		fmt.Println(url)
	case formatter.JSON:
		if err := formatter.JSONResult("server", map[string]any{
			"url":       url,
			"users":     len(cfg.Mock.Users),
			"token_ttl": ttl.Round(time.Second).String(),
		}); err != nil {
			return err
		}
	default:
		fmt.Printf("Mock backend listening on %s (%d users, tokens valid %s)\n", url, len(cfg.Mock.Users), ttl)
		fmt.Println("Press Ctrl+C to stop.")
	}

	if err := server.Serve(ctx, listener); err != nil {
		return formatter.Fail("SERVER_ERROR", err)
	}
	return nil
}
