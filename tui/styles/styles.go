// Package styles provides Lipgloss styles for the TUI using the Ciapre colour palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// DeepPurple is the main background colour (Ciapre background)
	DeepPurple = lipgloss.Color("#191C27")
	// DarkPurple is a secondary dark background (Ciapre ANSI 0 black)
	DarkPurple = lipgloss.Color("#181818")
	// Purple is the border/dim accent colour (Ciapre ANSI 6 brown)
	Purple = lipgloss.Color("#5C4F4B")
	// BrightPurple is used for highlights and focus states (Ciapre ANSI 5 magenta)
	BrightPurple = lipgloss.Color("#724D7C")
	// Lavender is a secondary text colour (Ciapre foreground)
	Lavender = lipgloss.Color("#AEA47A")
	// LightLavender is the primary text colour (Ciapre ANSI 14 cream)
	LightLavender = lipgloss.Color("#F3DBB2")
	// Pink is an accent colour for headers and errors (Ciapre ANSI 13 bright magenta)
	Pink = lipgloss.Color("#D33061")
	// Cyan is an accent colour for prompts and results (Ciapre ANSI 12 bright blue)
	Cyan = lipgloss.Color("#3097C6")
	// Amber marks a countdown under five minutes
	Amber = lipgloss.Color("#FCD34D")
	// Red is the expired countdown background (Ciapre ANSI 1)
	Red = lipgloss.Color("#AC3835")
	// Green is used for success messages (Ciapre ANSI 2)
	Green = lipgloss.Color("#A6A75D")
)

// Title is the heading above the timer display
var Title = lipgloss.NewStyle().
	Foreground(Pink).
	Bold(true)

// Digits is the style for one block of the timer display
var Digits = lipgloss.NewStyle().
	Foreground(LightLavender).
	Bold(true).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Purple).
	Padding(0, 1)

// Unit is the h/m/s label next to each digit block
var Unit = lipgloss.NewStyle().
	Foreground(Lavender)

// WarningDigits overrides the digit colour under five minutes
var WarningDigits = Digits.
	Foreground(Amber).
	BorderForeground(Amber)

// Expired is the background of the display once the countdown reaches zero
var Expired = lipgloss.NewStyle().
	Background(Red)

// Highlight is the style for the focused input field
var Highlight = lipgloss.NewStyle().
	Background(BrightPurple).
	Foreground(LightLavender).
	Bold(true)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(LightLavender)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// Warning is the style for warning messages
var Warning = lipgloss.NewStyle().
	Foreground(Pink).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)
