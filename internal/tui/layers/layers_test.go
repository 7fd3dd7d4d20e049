package layers

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestCreateCenteredLayer_Empty(t *testing.T) {
	if layer := CreateCenteredLayer("", 80, 24); layer != nil {
		t.Error("CreateCenteredLayer(\"\") should return nil")
	}
}

func TestCreateCenteredLayer_Position(t *testing.T) {
	layer := CreateCenteredLayer("abcd\nefgh", 20, 10)
	if layer == nil {
		t.Fatal("CreateCenteredLayer() = nil")
	}
	lines := strings.Split(lipgloss.NewCanvas(layer).Render(), "\n")
	if len(lines) < 6 {
		t.Fatalf("canvas has %d lines, want the dialog pushed down to row 4", len(lines))
	}
	if !strings.Contains(lines[4], "abcd") || !strings.Contains(lines[5], "efgh") {
		t.Errorf("dialog not centered vertically:\n%s", strings.Join(lines, "\n"))
	}
}

func TestDialogWidth(t *testing.T) {
	tests := []struct{ screen, want int }{
		{40, DialogMinWidth},
		{120, 60},
		{400, DialogMaxWidth},
	}
	for _, tt := range tests {
		if got := DialogWidth(tt.screen); got != tt.want {
			t.Errorf("DialogWidth(%d) = %d, want %d", tt.screen, got, tt.want)
		}
	}
}
