package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/user/countdown-timer-cli/tui/styles"
)

// CommandInputState holds the state for the ':' command line and the result line.
type CommandInputState struct {
	// Active indicates if command mode is active
	Active bool
	// Input is the current command input buffer
	Input []rune
	// CursorPos is the cursor position within the input
	CursorPos int
	// Last is the most recently executed command, recalled with Up
	Last string
	// Result is the result message to display (success or error)
	Result string
	// IsError indicates if the result is an error message
	IsError bool
}

// CommandInput renders the bottom line: the ':' prompt while in command mode,
// otherwise the last result message, otherwise an empty bar.
func CommandInput(state CommandInputState, width int) string {
	lineStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple)
	if width > 0 {
		lineStyle = lineStyle.Width(width)
	}

	if state.Active {
		promptStyle := lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)
		inputStyle := lipgloss.NewStyle().
			Foreground(styles.LightLavender)

		input := state.Input
		pos := min(state.CursorPos, len(input))
		display := string(input[:pos]) + "_" + string(input[pos:])

		return lineStyle.Render(promptStyle.Render(":") + inputStyle.Render(display))
	}

	if state.Result != "" {
		resultStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
		if state.IsError {
			resultStyle = lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
		}
		return lineStyle.Render(" " + resultStyle.Render(state.Result))
	}

	return lineStyle.Render(" ")
}

// Open activates command mode with an empty buffer.
func (s *CommandInputState) Open() {
	s.Active = true
	s.Input = nil
	s.CursorPos = 0
	s.ClearResult()
}

// InsertChar inserts a character at the current cursor position.
func (s *CommandInputState) InsertChar(c rune) {
	pos := min(s.CursorPos, len(s.Input))
	s.Input = append(s.Input[:pos], append([]rune{c}, s.Input[pos:]...)...)
	s.CursorPos = pos + 1
}

// Backspace deletes the character before the cursor.
func (s *CommandInputState) Backspace() {
	if s.CursorPos == 0 || len(s.Input) == 0 {
		return
	}
	pos := min(s.CursorPos, len(s.Input))
	s.Input = append(s.Input[:pos-1], s.Input[pos:]...)
	s.CursorPos = pos - 1
}

// MoveCursorLeft moves the cursor left.
func (s *CommandInputState) MoveCursorLeft() {
	if s.CursorPos > 0 {
		s.CursorPos--
	}
}

// MoveCursorRight moves the cursor right.
func (s *CommandInputState) MoveCursorRight() {
	if s.CursorPos < len(s.Input) {
		s.CursorPos++
	}
}

// Recall replaces the buffer with the last executed command.
func (s *CommandInputState) Recall() {
	s.Input = []rune(s.Last)
	s.CursorPos = len(s.Input)
}

// Clear clears the input buffer and deactivates command mode.
func (s *CommandInputState) Clear() {
	s.Input = nil
	s.CursorPos = 0
	s.Active = false
}

// GetCommand returns the current command, remembers it, and clears the input.
func (s *CommandInputState) GetCommand() string {
	cmd := string(s.Input)
	if cmd != "" {
		s.Last = cmd
	}
	s.Clear()
	return cmd
}

// SetResult sets the result message.
func (s *CommandInputState) SetResult(msg string, isError bool) {
	s.Result = msg
	s.IsError = isError
}

// ClearResult clears the result message.
func (s *CommandInputState) ClearResult() {
	s.Result = ""
	s.IsError = false
}
