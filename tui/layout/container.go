package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/countdown-timer-cli/tui/styles"
)

// Container fits content into a Width x Height box. A zero dimension means
// the terminal size is not known yet and that dimension is left as-is.
// When content is cut vertically, the last visible line says so.
type Container struct {
	Width  int
	Height int
}

// Render returns the content constrained to the container.
func (c Container) Render(content string) string {
	lines := strings.Split(content, "\n")

	if c.Height > 0 {
		truncated := len(lines) > c.Height
		lines = NormalizeLines(lines, c.Height)
		if truncated {
			lines[c.Height-1] = lipgloss.NewStyle().Foreground(styles.Purple).Render("↓ enlarge terminal")
		}
	}

	if c.Width > 0 {
		for i, line := range lines {
			lines[i] = PadToWidth(line, c.Width)
		}
	}

	return strings.Join(lines, "\n")
}
