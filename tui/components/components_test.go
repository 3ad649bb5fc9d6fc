package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/countdown-timer-cli/countdown"
)

func TestDurationInputFieldCycling(t *testing.T) {
	var s DurationInputState
	s.Open()
	assert.True(t, s.Active)
	assert.Equal(t, countdown.FieldHours, s.CurrentField)

	s.NextField()
	assert.Equal(t, countdown.FieldMinutes, s.CurrentField)
	s.NextField()
	s.NextField()
	assert.Equal(t, countdown.FieldHours, s.CurrentField)

	s.PrevField()
	assert.Equal(t, countdown.FieldSeconds, s.CurrentField)

	s.Close()
	assert.False(t, s.Active)
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "12", AppendChar("1", '2'))
	assert.Equal(t, "1", TrimLastChar("12"))
	assert.Equal(t, "", TrimLastChar(""))
	assert.Equal(t, "é", TrimLastChar("é5"))
}

func TestCommandInputEditing(t *testing.T) {
	var s CommandInputState
	s.SetResult("old", true)
	s.Open()
	assert.Empty(t, s.Result)

	for _, r := range "strt" {
		s.InsertChar(r)
	}
	s.MoveCursorLeft()
	s.MoveCursorLeft()
	s.InsertChar('a')
	assert.Equal(t, "start", string(s.Input))
	assert.Equal(t, 3, s.CursorPos)

	s.Backspace()
	assert.Equal(t, "strt", string(s.Input))
	s.InsertChar('a')
	s.MoveCursorRight()
	s.MoveCursorRight()
	s.MoveCursorRight()
	assert.Equal(t, 5, s.CursorPos)
	assert.Equal(t, "start", string(s.Input))

	assert.Equal(t, "start", s.GetCommand())
	assert.False(t, s.Active)
	assert.Empty(t, s.Input)

	s.Open()
	s.Recall()
	assert.Equal(t, "start", string(s.Input))
	assert.Equal(t, 5, s.CursorPos)
}

func TestCommandInputRendersResult(t *testing.T) {
	s := CommandInputState{Result: "Set to 00:04:30"}
	assert.Contains(t, CommandInput(s, 40), "Set to 00:04:30")

	s.Open()
	s.InsertChar('q')
	assert.Contains(t, CommandInput(s, 40), ":q_")
}

func TestDisplay(t *testing.T) {
	snap := countdown.Snapshot{Remaining: 60, Hours: "00", Minutes: "01", Seconds: "00"}
	out := Display(snap)
	assert.Contains(t, out, "00")
	assert.Contains(t, out, "01")
	assert.Contains(t, out, " h ")
}

func TestDurationInputShowsPending(t *testing.T) {
	pending := countdown.Pending{Hours: "1", Minutes: "2x", Seconds: ""}
	out := DurationInput(DurationInputState{Active: true, CurrentField: countdown.FieldMinutes}, pending)
	assert.Contains(t, out, "2x_")
	assert.Contains(t, out, "Enter: set")

	out = DurationInput(DurationInputState{}, pending)
	assert.NotContains(t, out, "_")
	assert.Contains(t, out, "E: edit duration")
}

func TestStatusBar(t *testing.T) {
	assert.Contains(t, StatusBar(StatusBarState{Configured: 3600, Mode: "Normal"}, 60), "Paused")
	assert.Contains(t, StatusBar(StatusBarState{Running: true, Configured: 3600}, 60), "Running")
	assert.Contains(t, StatusBar(StatusBarState{Running: true, Expired: true}, 60), "Done")
	assert.Contains(t, StatusBar(StatusBarState{Configured: 3600}, 60), "Reset: 01:00:00")
}

func TestHelpOverlayListsNoPause(t *testing.T) {
	out := HelpOverlay(0, 0)
	assert.Contains(t, out, "Start countdown")
	assert.NotContains(t, out, "Pause")
}
