package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/countdown-timer-cli/pkg/timeutil"
	"github.com/user/countdown-timer-cli/tui/styles"
)

// StatusBarState holds what the status bar shows.
type StatusBarState struct {
	// Running indicates if the countdown is running
	Running bool
	// Expired indicates no time remains
	Expired bool
	// Configured is the reset target in seconds
	Configured int
	// Mode is the input mode name: Normal, Edit or Command
	Mode string
}

// StatusBar renders the status bar: run state on the left, reset target and
// input mode on the right.
func StatusBar(state StatusBarState, width int) string {
	var icon, label string
	switch {
	case state.Running && state.Expired:
		icon, label = "■", "Done"
	case state.Running:
		icon, label = "▶", "Running"
	default:
		icon, label = "⏸", "Paused"
	}

	left := fmt.Sprintf(" %s %s", icon, label)
	right := fmt.Sprintf("Reset: %s  %s ", timeutil.FormatClock(state.Configured), state.Mode)

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	statusBarStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true)
	if width > 0 {
		statusBarStyle = statusBarStyle.Width(width)
	}

	return statusBarStyle.Render(left + strings.Repeat(" ", padding) + right)
}
