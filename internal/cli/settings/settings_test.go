package settings

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clipkg "github.com/thenoetrevino/snipboard/internal/cli"
	"github.com/thenoetrevino/snipboard/internal/logging"
	"github.com/thenoetrevino/snipboard/internal/mockapi"
	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/testutil"
	"github.com/thenoetrevino/snipboard/internal/testutil/cli"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startMock(t *testing.T) string {
	t.Helper()
	srv := mockapi.NewServer(mockapi.Config{Users: map[string]string{"demo": "demo"}},
		mockapi.WithLogger(logging.Discard()))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

// ============================================================================
// show
// ============================================================================

func TestShowSettings(t *testing.T) {
	a, _ := cli.SetupCLITest(t)

	t.Run("human output", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, a, ShowCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, "Mode:      local")
		assert.Contains(t, output, "Alle Snippets")
	})

	t.Run("quiet prints the mode", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, a, ShowCmd(), []string{"--quiet"})
		require.NoError(t, err)
		assert.Equal(t, "local\n", output)
	})

	t.Run("JSON output", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, a, ShowCmd(), []string{"--json"})
		require.NoError(t, err)

		settings := testutil.ParseJSON(t, output)["settings"].(map[string]any)
		assert.Equal(t, "local", settings["mode"])
		assert.Equal(t, false, settings["logged_in"])
		assert.Len(t, settings["columns"], 4)
		assert.NotContains(t, settings, "warning")
	})
}

// ============================================================================
// mode
// ============================================================================

func TestModeInvalid(t *testing.T) {
	a, _ := cli.SetupCLITest(t)

	_, err := cli.ExecuteCLICommand(t, a, ModeCmd(), []string{"cloud", "--json"})
	require.Error(t, err)
	assert.Equal(t, clipkg.ExitValidation, clipkg.ExitCode(err))
}

func TestModeRemoteWithoutEndpointKeepsSwitch(t *testing.T) {
	a, _ := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, a, ModeCmd(), []string{"remote", "--json"})
	require.NoError(t, err)

	settings := testutil.ParseJSON(t, output)["settings"].(map[string]any)
	assert.Equal(t, "remote", settings["mode"])
	assert.Contains(t, settings["warning"], "settings endpoint")

	stored, err := a.Store.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ModeRemote, stored.Mode)
	assert.Len(t, stored.ColumnTitles, 4, "columns survive a mode switch")
}

func TestModeRemoteNeedsLogin(t *testing.T) {
	a, _ := cli.SetupCLITest(t)
	url := startMock(t)

	_, err := cli.ExecuteCLICommand(t, a, EndpointCmd(), []string{url, "--quiet"})
	require.NoError(t, err)

	output, err := cli.ExecuteCLICommand(t, a, ModeCmd(), []string{"remote"})
	require.NoError(t, err)
	assert.Contains(t, output, "Mode:      remote")
	assert.Contains(t, output, "snipboard login")
}

func TestModeBackToLocal(t *testing.T) {
	a, _ := cli.SetupCLITest(t)

	_, err := cli.ExecuteCLICommand(t, a, ModeCmd(), []string{"remote", "--quiet"})
	require.NoError(t, err)

	output, err := cli.ExecuteCLICommand(t, a, ModeCmd(), []string{"local", "--json"})
	require.NoError(t, err)

	settings := testutil.ParseJSON(t, output)["settings"].(map[string]any)
	assert.Equal(t, "local", settings["mode"])
	assert.NotContains(t, settings, "warning")
	assert.Len(t, a.Board.Snippets(), 3)
}

// ============================================================================
// endpoint
// ============================================================================

func TestEndpoint(t *testing.T) {
	a, _ := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, a, EndpointCmd(), []string{"  http://127.0.0.1:9999  ", "--json"})
	require.NoError(t, err)

	settings := testutil.ParseJSON(t, output)["settings"].(map[string]any)
	assert.Equal(t, "http://127.0.0.1:9999", settings["endpoint"])

	stored, err := a.Store.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", stored.Endpoint)
}

func TestEndpointInvalid(t *testing.T) {
	a, _ := cli.SetupCLITest(t)

	_, err := cli.ExecuteCLICommand(t, a, EndpointCmd(), []string{"not a url", "--json"})
	require.Error(t, err)
	assert.Equal(t, clipkg.ExitUsage, clipkg.ExitCode(err))

	stored, err := a.Store.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored.Endpoint)
}
