package settings

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/remote"
)

// EndpointCmd returns the settings endpoint subcommand
func EndpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endpoint <url>",
		Short: "Set the remote backend URL",
		Long: `Set the remote backend URL. Changing it logs you out.

Examples:
  snipboard settings endpoint http://127.0.0.1:8787
`,
		Args: cobra.ExactArgs(1),
		RunE: runEndpoint,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runEndpoint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	endpoint := strings.TrimSpace(args[0])

	if _, err := remote.NewClient(endpoint); err != nil {
		return formatter.Usage("INVALID_ENDPOINT", err.Error(), "Use an absolute URL such as http://127.0.0.1:8787")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer cli.CloseQuietly(cliInstance)

	b := cliInstance.App.Board
	loadErr := b.SetEndpoint(ctx, endpoint)
	if b.Settings().Endpoint != endpoint {
		return formatter.Fail("SETTINGS_ERROR", loadErr)
	}

	return printSettings(formatter, cliInstance.App, b.Settings(), loadWarning(loadErr))
}
