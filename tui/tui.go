package tui

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/countdown-timer-cli/countdown"
	"github.com/user/countdown-timer-cli/db"
	"github.com/user/countdown-timer-cli/pkg/timeutil"
	"github.com/user/countdown-timer-cli/tui/components"
	"github.com/user/countdown-timer-cli/tui/layout"
	"github.com/user/countdown-timer-cli/tui/styles"
)

const (
	// resultDisplayDuration is how long to show command results.
	resultDisplayDuration = 3 * time.Second
	// updateBuffer is how many controller updates may wait for the program.
	updateBuffer = 16
)

// stateMsg is sent whenever the controller changes state.
type stateMsg countdown.Snapshot

// clearResultMsg is sent to clear the result message it was scheduled for.
type clearResultMsg struct {
	seq int
}

// Options configures a Model.
type Options struct {
	// Configured is the duration restored by reset
	Configured timeutil.Duration
	// Clock schedules ticks; nil uses the real clock
	Clock countdown.Clock
	// Logger receives structured logs; nil discards them
	Logger *slog.Logger
	// DB provides presets and history; nil disables both
	DB *sql.DB
	// History records countdown events when DB is set
	History bool
}

// Model is the Bubbletea model for the countdown timer.
// It implements the tea.Model interface with Init, Update, and View methods.
type Model struct {
	// ctrl owns the countdown state and tick scheduling
	ctrl *countdown.Controller
	// database connection for presets
	db *sql.DB
	// history records transitions, nil when disabled
	history *HistoryRecorder
	logger  *slog.Logger
	// updates carries controller changes into the program
	updates chan countdown.Snapshot
	// done is closed on teardown to release waitForState
	done      chan struct{}
	closeOnce sync.Once

	mode          Mode
	durationInput components.DurationInputState
	commandInput  components.CommandInputState
	// resultSeq identifies the result message currently shown
	resultSeq int
	showHelp  bool
	quitting  bool
	width     int
	height    int
}

// NewModel mounts a countdown controller for opts.Configured and wraps it in a model.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Model{
		db:      opts.DB,
		logger:  logger,
		updates: make(chan countdown.Snapshot, updateBuffer),
		done:    make(chan struct{}),
	}
	if opts.DB != nil && opts.History {
		m.history = NewHistoryRecorder(opts.DB, opts.Configured.Total(), logger)
	}

	ctrlOpts := []countdown.Option{
		countdown.WithLogger(logger),
		countdown.WithOnChange(m.forward),
	}
	if opts.Clock != nil {
		ctrlOpts = append(ctrlOpts, countdown.WithClock(opts.Clock))
	}
	m.ctrl = countdown.New(opts.Configured, ctrlOpts...)
	return m
}

// Controller returns the underlying countdown controller.
func (m *Model) Controller() *countdown.Controller {
	return m.ctrl
}

// Close tears down the controller. Safe to call more than once.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.ctrl.Close()
		close(m.done)
	})
}

// forward runs on whichever goroutine is delivering controller updates,
// often the tick goroutine. Updates arrive in transition order. It must not block.
func (m *Model) forward(snap countdown.Snapshot) {
	m.history.Record(snap)
	if snap.Event == countdown.EventInput {
		return
	}
	select {
	case m.updates <- snap:
	default:
		// View reads the controller directly, so a dropped update only skips a redraw trigger
	}
}

// waitForState returns a command that delivers the next controller update.
func (m *Model) waitForState() tea.Cmd {
	updates, done := m.updates, m.done
	return func() tea.Msg {
		select {
		case snap := <-updates:
			return stateMsg(snap)
		case <-done:
			return nil
		}
	}
}

// Init initializes the model. It starts listening for controller updates.
func (m *Model) Init() tea.Cmd {
	return m.waitForState()
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		// Nothing to copy; View reads the controller. Keep listening.
		return m, m.waitForState()

	case clearResultMsg:
		if msg.seq == m.resultSeq {
			m.commandInput.ClearResult()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}

		// Help overlay - any key dismisses it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch m.mode {
		case ModeEdit:
			return m.handleEditInput(msg)
		case ModeCommand:
			return m.handleCommandInput(msg)
		}

		switch msg.String() {
		case "?":
			m.showHelp = true
		case "q":
			return m.quit()
		case "s", "S":
			m.ctrl.Start()
		case "r", "R":
			m.ctrl.Reset()
		case "e", "E", "i":
			m.mode = ModeEdit
			m.durationInput.Open()
		case ":":
			m.mode = ModeCommand
			m.commandInput.Open()
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

// handleEditInput handles key events while editing the duration fields.
func (m *Model) handleEditInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := m.durationInput.CurrentField

	switch msg.String() {
	case "esc":
		m.durationInput.Close()
		m.mode = ModeNormal
		return m, nil

	case "enter":
		return m.set()

	case "tab":
		m.durationInput.NextField()
		return m, nil

	case "shift+tab":
		m.durationInput.PrevField()
		return m, nil

	case "backspace":
		m.ctrl.SetPending(field, components.TrimLastChar(m.ctrl.Pending().Get(field)))
		return m, nil
	}

	// Any printable text is accepted; Set decides whether it is valid
	if msg.Type == tea.KeyRunes {
		text := m.ctrl.Pending().Get(field)
		for _, r := range msg.Runes {
			text = components.AppendChar(text, r)
		}
		m.ctrl.SetPending(field, text)
	}
	return m, nil
}

// set commits the pending fields. Invalid input leaves the countdown and the
// typed text as they are and keeps the fields open for correction.
func (m *Model) set() (tea.Model, tea.Cmd) {
	total, err := m.ctrl.Configure()
	if err != nil {
		return m, m.showResult("Error: "+err.Error(), true)
	}
	m.durationInput.Close()
	m.mode = ModeNormal
	return m, m.showResult("Set to "+timeutil.FormatClock(total), false)
}

// handleCommandInput handles key events when in command mode.
func (m *Model) handleCommandInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commandInput.Clear()
		m.mode = ModeNormal
		return m, nil

	case "enter":
		cmd := strings.TrimSpace(m.commandInput.GetCommand())
		m.mode = ModeNormal
		if cmd == "" {
			return m, nil
		}
		if cmd == "q" || cmd == "quit" {
			return m.quit()
		}
		result, err := m.executeCommand(cmd)
		if err != nil {
			return m, m.showResult("Error: "+err.Error(), true)
		}
		if result == "" {
			return m, nil
		}
		return m, m.showResult(result, false)

	case "backspace":
		m.commandInput.Backspace()
		return m, nil

	case "left":
		m.commandInput.MoveCursorLeft()
		return m, nil

	case "right":
		m.commandInput.MoveCursorRight()
		return m, nil

	case "up":
		m.commandInput.Recall()
		return m, nil
	}

	switch msg.Type {
	case tea.KeySpace:
		m.commandInput.InsertChar(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.commandInput.InsertChar(r)
		}
	}
	return m, nil
}

// executeCommand runs a ':' command and returns the message to show.
func (m *Model) executeCommand(cmdStr string) (string, error) {
	fields := strings.Fields(cmdStr)
	args := fields[1:]

	switch strings.ToLower(fields[0]) {
	case "start":
		m.ctrl.Start()
		return "Started", nil
	case "reset":
		m.ctrl.Reset()
		return "Reset to " + timeutil.FormatClock(m.ctrl.Configured().Total()), nil
	case "set":
		return m.executeSetCommand(args)
	case "preset":
		return m.executePresetCommand(args)
	case "presets":
		return m.listPresets()
	case "help":
		m.showHelp = true
		return "", nil
	}
	return "", fmt.Errorf("unknown command: %s", fields[0])
}

// executeSetCommand handles "set H M S" and "set HH:MM:SS".
func (m *Model) executeSetCommand(args []string) (string, error) {
	var pending countdown.Pending
	switch len(args) {
	case 3:
		pending = countdown.Pending{Hours: args[0], Minutes: args[1], Seconds: args[2]}
	case 1:
		total, err := timeutil.ParseTimeToSeconds(args[0])
		if err != nil {
			return "", err
		}
		h, mm, s := timeutil.Split(total).Strings()
		pending = countdown.Pending{Hours: h, Minutes: mm, Seconds: s}
	default:
		return "", fmt.Errorf("usage: set H M S | set HH:MM:SS")
	}

	total, err := m.ctrl.ConfigureFrom(pending)
	if err != nil {
		return "", err
	}
	return "Set to " + timeutil.FormatClock(total), nil
}

// executePresetCommand loads a saved preset into the fields and sets it.
func (m *Model) executePresetCommand(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: preset NAME")
	}
	if m.db == nil {
		return "", fmt.Errorf("presets unavailable: no database")
	}

	p, err := db.SelectPresetByName(m.db, args[0])
	if err != nil {
		return "", err
	}
	h, mm, s := timeutil.Split(p.TotalSeconds).Strings()
	total, err := m.ctrl.ConfigureFrom(countdown.Pending{Hours: h, Minutes: mm, Seconds: s})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Loaded preset %s (%s)", p.Name, timeutil.FormatClock(total)), nil
}

func (m *Model) listPresets() (string, error) {
	if m.db == nil {
		return "", fmt.Errorf("presets unavailable: no database")
	}
	presets, err := db.SelectPresets(m.db)
	if err != nil {
		return "", err
	}
	if len(presets) == 0 {
		return "No presets saved", nil
	}
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name + " " + timeutil.FormatClock(p.TotalSeconds)
	}
	return strings.Join(names, ", "), nil
}

// showResult displays a message on the bottom line and schedules clearing it.
func (m *Model) showResult(msg string, isError bool) tea.Cmd {
	m.resultSeq++
	seq := m.resultSeq
	m.commandInput.SetResult(msg, isError)
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{seq: seq}
	})
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.showHelp {
		return components.HelpOverlay(m.width, m.height)
	}

	if layout.TooNarrow(m.width) {
		hintStyle := lipgloss.NewStyle().
			Foreground(styles.Lavender).
			Italic(true)
		return styles.Warning.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			hintStyle.Render(fmt.Sprintf("Minimum width: %d columns", layout.MinTerminalWidth))
	}

	snap := m.ctrl.Snapshot()

	statusBar := components.StatusBar(components.StatusBarState{
		Running:    snap.Running,
		Expired:    snap.Expired,
		Configured: m.ctrl.Configured().Total(),
		Mode:       m.mode.String(),
	}, m.width)

	hints := styles.SecondaryText.Render("S: start | R: reset | E: edit | : command | ?: help | q: quit")
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.Title.Render("Timer"),
		"",
		components.Display(snap),
		"",
		components.DurationInput(m.durationInput, snap.Pending),
		"",
		hints,
	)
	// Status bar and command line take one row each
	body = layout.Center(body, m.width, m.height-2)

	commandInput := components.CommandInput(m.commandInput, m.width)

	view := statusBar + "\n" + body + "\n" + commandInput
	return layout.Container{Width: m.width, Height: m.height}.Render(view)
}

// Run starts the Bubbletea program for a new countdown.
// It returns an error if the program fails to start or run.
func Run(opts Options, programOpts ...tea.ProgramOption) error {
	model := NewModel(opts)
	defer model.Close()
	p := tea.NewProgram(model, programOpts...)
	_, err := p.Run()
	return err
}
