// Package components provides reusable TUI components.
package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/user/countdown-timer-cli/countdown"
	"github.com/user/countdown-timer-cli/tui/styles"
)

// Display renders the remaining time as three digit blocks labelled h, m and s.
// Under five minutes the digits turn amber; at zero the block gets a red background.
func Display(snap countdown.Snapshot) string {
	digitStyle := styles.Digits
	if snap.Warning {
		digitStyle = styles.WarningDigits
	}

	parts := []string{
		digitStyle.Render(snap.Hours), styles.Unit.Render(" h "),
		digitStyle.Render(snap.Minutes), styles.Unit.Render(" m "),
		digitStyle.Render(snap.Seconds), styles.Unit.Render(" s"),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, parts...)

	if snap.Expired {
		return styles.Expired.Padding(0, 2).Render(row)
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(row)
}
