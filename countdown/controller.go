// Package countdown implements the countdown timer state machine and its
// one-second tick scheduler.
//
// A Controller is either Paused or Running. Start moves it to Running, Pause
// and Reset move it to Paused. While Running with time left, exactly one tick
// is scheduled at a time; each tick decrements the remaining seconds by one.
// Reaching zero stops scheduling but leaves the controller Running.
package countdown

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/user/countdown-timer-cli/pkg/timeutil"
)

const (
	// DefaultInterval is the time between ticks.
	DefaultInterval = time.Second
	// WarningThreshold is the remaining time, in seconds, below which the
	// countdown is shown as a warning.
	WarningThreshold = 5 * 60
)

// Field identifies one of the three pending input fields.
type Field int

const (
	// FieldHours is the hours input.
	FieldHours Field = iota
	// FieldMinutes is the minutes input.
	FieldMinutes
	// FieldSeconds is the seconds input.
	FieldSeconds
)

// String returns the field name.
func (f Field) String() string {
	switch f {
	case FieldHours:
		return "hours"
	case FieldMinutes:
		return "minutes"
	case FieldSeconds:
		return "seconds"
	default:
		return "unknown"
	}
}

// Pending holds the raw, uncommitted text of the three duration fields.
type Pending struct {
	Hours   string
	Minutes string
	Seconds string
}

// Get returns the text of a single field.
func (p Pending) Get(f Field) string {
	switch f {
	case FieldHours:
		return p.Hours
	case FieldMinutes:
		return p.Minutes
	case FieldSeconds:
		return p.Seconds
	}
	return ""
}

func (p *Pending) set(f Field, text string) {
	switch f {
	case FieldHours:
		p.Hours = text
	case FieldMinutes:
		p.Minutes = text
	case FieldSeconds:
		p.Seconds = text
	}
}

func pendingFrom(d timeutil.Duration) Pending {
	h, m, s := d.Strings()
	return Pending{Hours: h, Minutes: m, Seconds: s}
}

// Event names the transition that produced a Snapshot.
type Event string

const (
	EventSet     Event = "set"
	EventStart   Event = "start"
	EventPause   Event = "pause"
	EventReset   Event = "reset"
	EventTick    Event = "tick"
	EventExpired Event = "expired"
	EventInput   Event = "input"
)

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	Event     Event
	Remaining int
	Running   bool
	// Warning is true while less than five minutes remain.
	Warning bool
	// Expired is true once no time remains.
	Expired bool
	Hours   string
	Minutes string
	Seconds string
	Pending Pending
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used to schedule ticks.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithInterval overrides the tick interval.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithOnChange registers a callback invoked after every state change. It is
// called without the controller lock held, possibly from the clock's goroutine.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller owns the countdown state and the scheduled tick.
type Controller struct {
	mu sync.Mutex

	clock    Clock
	interval time.Duration
	logger   *slog.Logger
	onChange func(Snapshot)

	configured timeutil.Duration
	remaining  int
	running    bool
	pending    Pending

	// handle is the single outstanding tick, nil when none is scheduled
	handle Timer
	// gen identifies the current handle; callbacks from older handles are dropped
	gen    uint64
	closed bool

	// queue holds snapshots not yet delivered to onChange
	queue []Snapshot
	// delivering is true while a goroutine is draining queue
	delivering bool
}

// New mounts a controller for the given configured duration. The controller
// starts Paused with the configured duration remaining.
func New(configured timeutil.Duration, opts ...Option) *Controller {
	c := &Controller{
		clock:      RealClock{},
		interval:   DefaultInterval,
		configured: configured,
		remaining:  configured.Total(),
		pending:    pendingFrom(configured),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.logger.Debug("countdown mounted", "configured", configured.Total())
	return c
}

// Configured returns the immutable baseline duration.
func (c *Controller) Configured() timeutil.Duration {
	return c.configured
}

// SetPending replaces the text of one pending field. The countdown is not affected.
func (c *Controller) SetPending(f Field, text string) {
	c.mu.Lock()
	c.pending.set(f, text)
	c.queueLocked(c.snapshotLocked(EventInput))
	c.mu.Unlock()
	c.flush()
}

// Pending returns the pending input text.
func (c *Controller) Pending() Pending {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Configure commits the pending input as the remaining time and returns the
// new total. If any field fails to parse, nothing changes and the returned
// error matches ErrInvalidDurationInput. The running flag is left alone.
func (c *Controller) Configure() (int, error) {
	c.mu.Lock()
	snap, err := c.configureLocked()
	c.mu.Unlock()
	return c.finishConfigure(snap, err)
}

// ConfigureFrom replaces the pending input and commits it in one step.
func (c *Controller) ConfigureFrom(p Pending) (int, error) {
	c.mu.Lock()
	c.pending = p
	snap, err := c.configureLocked()
	c.mu.Unlock()
	return c.finishConfigure(snap, err)
}

// configureLocked parses pending and, on success, applies it and queues a
// set notification. Must be called with mu held.
func (c *Controller) configureLocked() (Snapshot, error) {
	pending := c.pending
	total, err := timeutil.ParseHMS(pending.Hours, pending.Minutes, pending.Seconds)
	if err != nil {
		inputErr := &InputError{Err: err}
		var fe *timeutil.FieldError
		if errors.As(err, &fe) {
			inputErr.Field = fe.Field
			inputErr.Text = fe.Text
		}
		return Snapshot{}, inputErr
	}

	c.remaining = total
	c.reschedule()
	snap := c.snapshotLocked(EventSet)
	c.queueLocked(snap)
	return snap, nil
}

// finishConfigure logs the outcome and delivers the set notification.
func (c *Controller) finishConfigure(snap Snapshot, err error) (int, error) {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		c.logger.Warn("rejected duration input", "field", inputErr.Field, "text", inputErr.Text)
		return 0, err
	}
	c.logger.Info("countdown set", "remaining", snap.Remaining, "running", snap.Running)
	c.flush()
	return snap.Remaining, nil
}

// Start begins counting down. Calling Start while running has no effect.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.reschedule()
	snap := c.snapshotLocked(EventStart)
	c.queueLocked(snap)
	c.mu.Unlock()

	c.logger.Info("countdown started", "remaining", snap.Remaining)
	c.flush()
}

// Pause stops counting down and cancels the scheduled tick.
func (c *Controller) Pause() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.reschedule()
	snap := c.snapshotLocked(EventPause)
	c.queueLocked(snap)
	c.mu.Unlock()

	c.logger.Info("countdown paused", "remaining", snap.Remaining)
	c.flush()
}

// Reset restores the configured duration and pending text and leaves the
// controller Paused.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.remaining = c.configured.Total()
	c.running = false
	c.pending = pendingFrom(c.configured)
	c.reschedule()
	snap := c.snapshotLocked(EventReset)
	c.queueLocked(snap)
	c.mu.Unlock()

	c.logger.Info("countdown reset", "remaining", snap.Remaining)
	c.flush()
}

// Close cancels the scheduled tick. No tick fires after Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.reschedule()
}

// Remaining returns the remaining seconds.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Running reports whether the controller is Running.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// IsWarning reports whether less than five minutes remain.
func (c *Controller) IsWarning() bool {
	return c.Remaining() < WarningThreshold
}

// IsExpired reports whether no time remains.
func (c *Controller) IsExpired() bool {
	return c.Remaining() <= 0
}

// Display returns the remaining time as zero-padded hour, minute and second strings.
func (c *Controller) Display() (hh, mm, ss string) {
	return timeutil.Format(c.Remaining())
}

// Snapshot returns a consistent copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked("")
}

func (c *Controller) snapshotLocked(ev Event) Snapshot {
	hh, mm, ss := timeutil.Format(c.remaining)
	return Snapshot{
		Event:     ev,
		Remaining: c.remaining,
		Running:   c.running,
		Warning:   c.remaining < WarningThreshold,
		Expired:   c.remaining <= 0,
		Hours:     hh,
		Minutes:   mm,
		Seconds:   ss,
		Pending:   c.pending,
	}
}

// reschedule cancels the outstanding tick and, if the countdown is running
// with time left, installs a new one. Must be called with mu held.
func (c *Controller) reschedule() {
	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}
	c.gen++
	if c.closed || !c.running || c.remaining <= 0 {
		return
	}
	gen := c.gen
	c.handle = c.clock.AfterFunc(c.interval, func() { c.fire(gen) })
}

// fire runs a scheduled tick unless a later transition superseded it.
func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	c.handle = nil
	ev := c.tick()
	c.reschedule()
	snap := c.snapshotLocked(ev)
	c.queueLocked(snap)
	c.mu.Unlock()

	if ev == EventExpired {
		c.logger.Info("countdown expired")
	} else {
		c.logger.Debug("tick", "remaining", snap.Remaining)
	}
	c.flush()
}

// tick decrements the remaining time by one second if any is left.
// Must be called with mu held.
func (c *Controller) tick() Event {
	if !c.running || c.remaining <= 0 {
		return EventTick
	}
	c.remaining--
	if c.remaining == 0 {
		return EventExpired
	}
	return EventTick
}

// queueLocked appends a snapshot for the observer. Must be called with mu held,
// so the queue order is the order of the transitions.
func (c *Controller) queueLocked(snap Snapshot) {
	if c.onChange != nil {
		c.queue = append(c.queue, snap)
	}
}

// flush delivers queued snapshots in order, outside the lock. Only one
// goroutine delivers at a time; a caller that finds delivery in progress
// leaves its snapshot for that goroutine. Observers may call back into the
// controller; their snapshots are delivered after the current one.
func (c *Controller) flush() {
	c.mu.Lock()
	if c.delivering {
		c.mu.Unlock()
		return
	}
	c.delivering = true
	defer func() {
		c.delivering = false
		c.mu.Unlock()
	}()

	for len(c.queue) > 0 {
		snap := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()
		c.onChange(snap)
		c.mu.Lock()
	}
}
