package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/models"
)

// captureStdout runs fn with stdout redirected and returns what it wrote
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

// ============================================================================
// Success Method Tests
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	snippet := models.Snippet{ID: "abc", Title: "Query", Category: "Review"}

	output := captureStdout(t, func() {
		formatter := &OutputFormatter{JSON: true}
		if err := formatter.Success(snippet); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, output)
	}
	assert.Equal(t, true, result["success"])
	data := result["data"].(map[string]any)
	assert.Equal(t, "abc", data["id"])
	assert.Equal(t, "Review", data["category"])
}

func TestOutputFormatter_Success_Quiet_WithID(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"value", models.Snippet{ID: "s-1"}, "s-1"},
		{"pointer", &models.Snippet{ID: "s-2"}, "s-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureStdout(t, func() {
				formatter := &OutputFormatter{Quiet: true}
				if err := formatter.Success(tt.data); err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
			})
			assert.Equal(t, tt.want, strings.TrimSpace(output))
		})
	}
}

func TestOutputFormatter_Success_Quiet_WithoutID(t *testing.T) {
	output := captureStdout(t, func() {
		formatter := &OutputFormatter{Quiet: true}
		_ = formatter.Success(map[string]string{"test": "value"})
	})

	// falls through to pretty print
	assert.Contains(t, output, "test")
}

// ============================================================================
// Error Method Tests
// ============================================================================

func TestOutputFormatter_ErrorWithSuggestion_JSON(t *testing.T) {
	output := captureStdout(t, func() {
		formatter := &OutputFormatter{JSON: true}
		if err := formatter.ErrorWithSuggestion("SNIPPET_NOT_FOUND", "no such snippet", "try list"); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, false, result["success"])
	errData := result["error"].(map[string]any)
	assert.Equal(t, "SNIPPET_NOT_FOUND", errData["code"])
	assert.Equal(t, "no such snippet", errData["message"])
	assert.Equal(t, "try list", errData["suggestion"])
}

func TestOutputFormatter_Error_HumanGoesToStderr(t *testing.T) {
	output := captureStdout(t, func() {
		formatter := &OutputFormatter{}
		_ = formatter.Error("X", "boom")
	})
	assert.Empty(t, output)

	var buf bytes.Buffer
	writeHumanError(&buf, "boom", "do this")
	assert.Contains(t, buf.String(), "Error: boom")
	assert.Contains(t, buf.String(), "Suggestion: do this")
}

func TestOutputFormatter_Fail_CarriesExitCode(t *testing.T) {
	var err error
	_ = captureStdout(t, func() {
		formatter := &OutputFormatter{JSON: true}
		err = formatter.Fail("SNIPPET_NOT_FOUND", board.ErrSnippetNotFound)
	})

	var exitErr *CommandError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitNotFound, exitErr.Code)
	assert.ErrorIs(t, err, board.ErrSnippetNotFound)
}
