package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/countdown-timer-cli/tui/styles"
)

type binding struct {
	key  string
	desc string
}

type bindingGroup struct {
	title    string
	bindings []binding
}

var helpGroups = []bindingGroup{
	{
		title: "Timer",
		bindings: []binding{
			{"S", "Start countdown"},
			{"R", "Reset to configured duration"},
			{"E", "Edit duration fields"},
		},
	},
	{
		title: "Editing",
		bindings: []binding{
			{"0-9", "Type into the focused field"},
			{"Tab", "Next field"},
			{"Shift+Tab", "Previous field"},
			{"Enter", "Set countdown from fields"},
			{"Esc", "Stop editing"},
		},
	},
	{
		title: "Commands",
		bindings: []binding{
			{":", "Enter command mode"},
			{"set H M S", "Set countdown (or set HH:MM:SS)"},
			{"preset NAME", "Load a saved preset"},
			{"start / reset", "Same as S / R"},
			{"?", "Show/hide this help"},
			{"q", "Quit application"},
		},
	},
}

// HelpOverlay renders the keybinding help panel centred in a width x height area.
func HelpOverlay(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	groupHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Width(15)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender)

	lines := []string{titleStyle.Render("Keybindings")}
	for _, group := range helpGroups {
		lines = append(lines, groupHeaderStyle.Render(group.title))
		for _, b := range group.bindings {
			lines = append(lines, "  "+keyStyle.Render(b.key)+descStyle.Render(b.desc))
		}
	}
	lines = append(lines, "", lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Italic(true).
		Render("Press any key to close"))

	panel := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	if width <= 0 || height <= 0 {
		return panel
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
