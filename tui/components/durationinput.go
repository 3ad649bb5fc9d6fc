package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/user/countdown-timer-cli/countdown"
	"github.com/user/countdown-timer-cli/tui/styles"
)

// DurationInputState holds the focus state of the three duration fields.
// The text itself lives in the controller as pending input.
type DurationInputState struct {
	// Active indicates if the fields are being edited
	Active bool
	// CurrentField is the currently focused field
	CurrentField countdown.Field
}

// DurationInput renders the hours/minutes/seconds fields and the Set hint.
func DurationInput(state DurationInputState, pending countdown.Pending) string {
	labelStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender)

	inactiveInputStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(styles.Purple).
		Width(5)

	activeInputStyle := inactiveInputStyle.
		Background(styles.Purple).
		BorderForeground(styles.BrightPurple)

	fields := []struct {
		field countdown.Field
		label string
	}{
		{countdown.FieldHours, "Hours"},
		{countdown.FieldMinutes, "Minutes"},
		{countdown.FieldSeconds, "Seconds"},
	}

	var cols []string
	for _, f := range fields {
		value := pending.Get(f.field)
		style := inactiveInputStyle
		if state.Active && state.CurrentField == f.field {
			style = activeInputStyle
			value += "_"
		}
		col := lipgloss.JoinVertical(lipgloss.Left, labelStyle.Render(f.label), style.Render(value))
		cols = append(cols, lipgloss.NewStyle().MarginRight(2).Render(col))
	}

	var hint string
	if state.Active {
		hint = "Tab: next field | Enter: set | Esc: done"
	} else {
		hint = "E: edit duration"
	}
	footer := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Italic(true).
		Render(hint)

	return lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinHorizontal(lipgloss.Top, cols...), footer)
}

// Open activates editing on the hours field.
func (s *DurationInputState) Open() {
	s.Active = true
	s.CurrentField = countdown.FieldHours
}

// Close stops editing. Pending text is kept.
func (s *DurationInputState) Close() {
	s.Active = false
}

// NextField moves to the next field (cycles back to hours).
func (s *DurationInputState) NextField() {
	s.CurrentField = (s.CurrentField + 1) % 3
}

// PrevField moves to the previous field (cycles back to seconds).
func (s *DurationInputState) PrevField() {
	if s.CurrentField == countdown.FieldHours {
		s.CurrentField = countdown.FieldSeconds
	} else {
		s.CurrentField--
	}
}

// AppendChar returns text with c appended.
func AppendChar(text string, c rune) string {
	return text + string(c)
}

// TrimLastChar returns text without its last character.
func TrimLastChar(text string) string {
	r := []rune(text)
	if len(r) == 0 {
		return text
	}
	return string(r[:len(r)-1])
}
