package layout

import (
	"github.com/charmbracelet/lipgloss"
)

// MinTerminalWidth is the narrowest terminal the timer view is drawn in.
const MinTerminalWidth = 40

// Center places content in the middle of a Width x Height area.
// A zero width or height leaves content unplaced in that direction.
func Center(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// TooNarrow reports whether a known terminal width is below MinTerminalWidth.
func TooNarrow(width int) bool {
	return width > 0 && width < MinTerminalWidth
}
