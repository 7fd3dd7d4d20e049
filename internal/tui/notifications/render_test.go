package notifications

import (
	"strings"
	"testing"

	"github.com/thenoetrevino/snipboard/internal/tui/state"
)

func TestRenderFromState(t *testing.T) {
	tests := []struct {
		level state.NotificationLevel
		title string
	}{
		{state.LevelInfo, "Info"},
		{state.LevelWarning, "Warning"},
		{state.LevelError, "Error"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			out := RenderFromState(state.Notification{Level: tt.level, Message: "saved"})
			if !strings.Contains(out, tt.title) || !strings.Contains(out, "saved") {
				t.Errorf("RenderFromState() = %q, want title %q and message", out, tt.title)
			}
		})
	}
}

func TestRenderBanner(t *testing.T) {
	out := RenderBanner("backend unreachable", 60)
	if !strings.Contains(out, "backend unreachable") {
		t.Errorf("RenderBanner() = %q, want the message", out)
	}
}
