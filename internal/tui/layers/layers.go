// Package layers provides helpers for placing modal layers over the board
package layers

import "charm.land/lipgloss/v2"

// Dialog width bounds
const (
	DialogMinWidth = 40
	DialogMaxWidth = 80
)

// CreateCenteredLayer creates a layer positioned at the center of the screen,
// or nil if content is empty.
func CreateCenteredLayer(content string, screenWidth int, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	x := max((screenWidth-lipgloss.Width(content))/2, 0)
	y := max((screenHeight-lipgloss.Height(content))/2, 0)

	return lipgloss.NewLayer(content).X(x).Y(y)
}

// DialogWidth returns the content width of a dialog on a screen of the given width
func DialogWidth(screenWidth int) int {
	return min(max(screenWidth/2, DialogMinWidth), DialogMaxWidth)
}
