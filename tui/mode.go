package tui

// Mode represents which input mode the TUI is in.
type Mode int

const (
	// ModeNormal routes single-key timer actions.
	ModeNormal Mode = iota
	// ModeEdit routes keys into the pending duration fields.
	ModeEdit
	// ModeCommand routes keys into the ':' command line.
	ModeCommand
)

// String returns the mode name shown in the status bar.
func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "Edit"
	case ModeCommand:
		return "Command"
	default:
		return "Normal"
	}
}
