package countdown_test

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/countdown-timer-cli/countdown"
	"github.com/user/countdown-timer-cli/countdown/countdowntest"
	"github.com/user/countdown-timer-cli/pkg/timeutil"
)

func newController(t *testing.T, d timeutil.Duration, opts ...countdown.Option) (*countdown.Controller, *countdowntest.FakeClock) {
	t.Helper()
	clock := countdowntest.NewFakeClock()
	c := countdown.New(d, append([]countdown.Option{countdown.WithClock(clock)}, opts...)...)
	t.Cleanup(c.Close)
	return c, clock
}

func TestNewSeedsFromConfigured(t *testing.T) {
	c, clock := newController(t, timeutil.Duration{Minutes: 1})

	assert.Equal(t, 60, c.Remaining())
	assert.False(t, c.Running())
	assert.Equal(t, countdown.Pending{Hours: "0", Minutes: "1", Seconds: "0"}, c.Pending())
	assert.Equal(t, "00:01:00", joinDisplay(c))
	assert.Zero(t, clock.Pending(), "nothing scheduled while paused")
}

func TestCountdownToZero(t *testing.T) {
	c, clock := newController(t, timeutil.Duration{Minutes: 1})

	c.Start()
	require.True(t, c.Running())
	require.Equal(t, 1, clock.Pending())

	for i := 1; i <= 60; i++ {
		clock.Advance(time.Second)
		require.Equal(t, 60-i, c.Remaining(), "after %d ticks", i)
	}

	assert.Equal(t, "00:00:00", joinDisplay(c))
	assert.True(t, c.IsExpired())
	assert.True(t, c.IsWarning())
	assert.True(t, c.Running(), "running flag does not auto-clear at zero")
	assert.Zero(t, clock.Pending(), "no tick scheduled at zero")

	clock.Advance(time.Second)
	assert.Equal(t, 0, c.Remaining())
}

func TestNoTickWhilePaused(t *testing.T) {
	c, clock := newController(t, timeutil.Duration{Seconds: 10})

	clock.Advance(5 * time.Second)
	assert.Equal(t, 10, c.Remaining())
}

func TestPartialSecondDoesNotTick(t *testing.T) {
	c, clock := newController(t, timeutil.Duration{Seconds: 10})

	c.Start()
	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, 10, c.Remaining())
	clock.Advance(time.Millisecond)
	assert.Equal(t, 9, c.Remaining())
}

func TestStartIsIdempotent(t *testing.T) {
	c, clock := newController(t, timeutil.Duration{Seconds: 10})

	c.Start()
	clock.Advance(500 * time.Millisecond)
	c.Start()

	assert.True(t, c.Running())
	assert.Equal(t, 1, clock.Pending(), "second Start must not add a tick")

	// The first tick still lands on the original one-second boundary.
	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 9, c.Remaining())
}

func TestStartAtZero(t *testing.T) {
	c, clock := newController(t, timeutil.Duration{})

	c.Start()
	assert.True(t, c.Running())
	assert.Zero(t, clock.Pending())
	assert.True(t, c.IsExpired())
}

func TestPause(t *testing.T) {
	c, clock := newController(t, timeutil.Duration{Seconds: 10})

	c.Start()
	clock.Advance(3 * time.Second)
	c.Pause()

	assert.False(t, c.Running())
	assert.Zero(t, clock.Pending(), "pause cancels the scheduled tick")

	clock.Advance(5 * time.Second)
	assert.Equal(t, 7, c.Remaining())

	c.Start()
	clock.Advance(2 * time.Second)
	assert.Equal(t, 5, c.Remaining())
}

func TestReset(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *countdown.Controller, clock *countdowntest.FakeClock)
	}{
		{"paused", func(c *countdown.Controller, clock *countdowntest.FakeClock) {}},
		{"running", func(c *countdown.Controller, clock *countdowntest.FakeClock) {
			c.Start()
			clock.Advance(4 * time.Second)
		}},
		{"expired", func(c *countdown.Controller, clock *countdowntest.FakeClock) {
			c.Start()
			clock.Advance(time.Minute)
		}},
		{"reconfigured", func(c *countdown.Controller, clock *countdowntest.FakeClock) {
			c.SetPending(countdown.FieldMinutes, "9")
			_, _ = c.Configure()
			c.SetPending(countdown.FieldHours, "junk")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newController(t, timeutil.Duration{Seconds: 30})
			tt.setup(c, clock)

			c.Reset()

			assert.Equal(t, 30, c.Remaining())
			assert.False(t, c.Running())
			assert.Equal(t, countdown.Pending{Hours: "0", Minutes: "0", Seconds: "30"}, c.Pending())
			assert.Zero(t, clock.Pending())

			clock.Advance(3 * time.Second)
			assert.Equal(t, 30, c.Remaining(), "no stale tick after reset")
		})
	}
}

func TestConfigure(t *testing.T) {
	c, _ := newController(t, timeutil.Duration{Hours: 1})

	c.SetPending(countdown.FieldHours, "0")
	c.SetPending(countdown.FieldMinutes, "4")
	c.SetPending(countdown.FieldSeconds, "30")
	assert.Equal(t, 3600, c.Remaining(), "pending edits do not touch remaining")

	total, err := c.Configure()
	require.NoError(t, err)
	assert.Equal(t, 270, total)
	assert.Equal(t, 270, c.Remaining())
	assert.True(t, c.IsWarning())
	assert.False(t, c.IsExpired())
	assert.False(t, c.Running(), "configure leaves the running flag alone")
	assert.Equal(t, timeutil.Duration{Hours: 1}, c.Configured(), "configured baseline is immutable")
}

func TestConfigureOverflowingFields(t *testing.T) {
	c, _ := newController(t, timeutil.Duration{})

	total, err := c.ConfigureFrom(countdown.Pending{Hours: "1", Minutes: "90", Seconds: "0"})
	require.NoError(t, err)
	assert.Equal(t, 9000, total)
	assert.Equal(t, "02:30:00", joinDisplay(c))
}

func TestConfigureWhileRunning(t *testing.T) {
	c, clock := newController(t, timeutil.Duration{Seconds: 5})

	c.Start()
	clock.Advance(500 * time.Millisecond)
	_, err := c.ConfigureFrom(countdown.Pending{Hours: "0", Minutes: "0", Seconds: "20"})
	require.NoError(t, err)

	assert.True(t, c.Running())
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(time.Second)
	assert.Equal(t, 19, c.Remaining())
}

func TestConfigureRevivesExpiredCountdown(t *testing.T) {
	c, clock := newController(t, timeutil.Duration{Seconds: 2})

	c.Start()
	clock.Advance(5 * time.Second)
	require.True(t, c.IsExpired())

	_, err := c.ConfigureFrom(countdown.Pending{Hours: "0", Minutes: "0", Seconds: "3"})
	require.NoError(t, err)
	clock.Advance(time.Second)
	assert.Equal(t, 2, c.Remaining())
}

func TestConfigureRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		pending countdown.Pending
		field   string
	}{
		{"empty hours", countdown.Pending{Hours: "", Minutes: "1", Seconds: "0"}, "hours"},
		{"letters in minutes", countdown.Pending{Hours: "0", Minutes: "ab", Seconds: "0"}, "minutes"},
		{"negative seconds", countdown.Pending{Hours: "0", Minutes: "1", Seconds: "-5"}, "seconds"},
		{"decimal", countdown.Pending{Hours: "0", Minutes: "1.5", Seconds: "0"}, "minutes"},
		{"hours overflow total", countdown.Pending{Hours: "3000000000000000", Minutes: "0", Seconds: "0"}, "hours"},
		{"hours just past the limit", countdown.Pending{Hours: "2562047788015216", Minutes: "0", Seconds: "0"}, "hours"},
		{"minutes overflow total", countdown.Pending{Hours: "0", Minutes: "9223372036854775807", Seconds: "0"}, "minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newController(t, timeutil.Duration{Minutes: 2})
			c.Start()
			clock.Advance(10 * time.Second)

			_, err := c.ConfigureFrom(tt.pending)
			require.Error(t, err)
			assert.ErrorIs(t, err, countdown.ErrInvalidDurationInput)
			assert.ErrorIs(t, err, timeutil.ErrInvalidField)

			var inputErr *countdown.InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)

			assert.Equal(t, 110, c.Remaining(), "remaining unchanged")
			assert.Equal(t, tt.pending, c.Pending(), "typed text kept for correction")

			clock.Advance(time.Second)
			assert.Equal(t, 109, c.Remaining(), "countdown keeps running")
		})
	}
}

func TestWarningAndExpiredFlags(t *testing.T) {
	tests := []struct {
		remaining        int
		warning, expired bool
	}{
		{3600, false, false},
		{300, false, false},
		{299, true, false},
		{1, true, false},
		{0, true, true},
	}
	for _, tt := range tests {
		c, _ := newController(t, timeutil.Split(tt.remaining))
		assert.Equal(t, tt.warning, c.IsWarning(), "warning at %d", tt.remaining)
		assert.Equal(t, tt.expired, c.IsExpired(), "expired at %d", tt.remaining)

		snap := c.Snapshot()
		assert.Equal(t, tt.warning, snap.Warning)
		assert.Equal(t, tt.expired, snap.Expired)
	}
}

func TestFlagsFollowReset(t *testing.T) {
	c, clock := newController(t, timeutil.Duration{Minutes: 10})

	_, err := c.ConfigureFrom(countdown.Pending{Hours: "0", Minutes: "0", Seconds: "1"})
	require.NoError(t, err)
	c.Start()
	clock.Advance(time.Second)
	require.True(t, c.IsExpired())

	c.Reset()
	assert.False(t, c.IsExpired())
	assert.False(t, c.IsWarning())
}

func TestCloseCancelsTick(t *testing.T) {
	clock := countdowntest.NewFakeClock()
	c := countdown.New(timeutil.Duration{Seconds: 10}, countdown.WithClock(clock))

	c.Start()
	c.Close()
	assert.Zero(t, clock.Pending())

	clock.Advance(3 * time.Second)
	assert.Equal(t, 10, c.Remaining())

	c.Pause()
	c.Start()
	assert.True(t, c.Running())
	assert.Zero(t, clock.Pending(), "closed controller never schedules")
}

func TestOnChangeEvents(t *testing.T) {
	var mu sync.Mutex
	var events []countdown.Event
	c, clock := newController(t, timeutil.Duration{Seconds: 2}, countdown.WithOnChange(func(s countdown.Snapshot) {
		mu.Lock()
		events = append(events, s.Event)
		mu.Unlock()
	}))

	c.Start()
	clock.Advance(3 * time.Second)
	c.Reset()
	_, _ = c.ConfigureFrom(countdown.Pending{Hours: "x"})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []countdown.Event{
		countdown.EventStart,
		countdown.EventTick,
		countdown.EventExpired,
		countdown.EventReset,
	}, events)
}

// recordingClock keeps every scheduled callback and never cancels any, the
// way a real timer that already fired cannot be stopped.
type recordingClock struct {
	callbacks []func()
}

func (c *recordingClock) AfterFunc(_ time.Duration, f func()) countdown.Timer {
	c.callbacks = append(c.callbacks, f)
	return firedTimer{}
}

type firedTimer struct{}

func (firedTimer) Stop() bool { return false }

func TestSupersededTickIsDropped(t *testing.T) {
	tests := []struct {
		name       string
		transition func(c *countdown.Controller)
		remaining  int
		running    bool
	}{
		{"reset", func(c *countdown.Controller) { c.Reset() }, 10, false},
		{"pause", func(c *countdown.Controller) { c.Pause() }, 10, false},
		{"configure", func(c *countdown.Controller) {
			_, err := c.ConfigureFrom(countdown.Pending{Hours: "0", Minutes: "0", Seconds: "20"})
			require.NoError(t, err)
		}, 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &recordingClock{}
			c := countdown.New(timeutil.Duration{Seconds: 10}, countdown.WithClock(clock))
			t.Cleanup(c.Close)

			c.Start()
			require.Len(t, clock.callbacks, 1)
			stale := clock.callbacks[0]

			tt.transition(c)
			stale()

			assert.Equal(t, tt.remaining, c.Remaining(), "stale tick must not decrement")
			assert.Equal(t, tt.running, c.Running())
		})
	}
}

func TestSupersededTickAfterRestartIsDropped(t *testing.T) {
	clock := &recordingClock{}
	c := countdown.New(timeutil.Duration{Seconds: 10}, countdown.WithClock(clock))
	t.Cleanup(c.Close)

	c.Start()
	c.Reset()
	c.Start()
	require.Len(t, clock.callbacks, 2)

	clock.callbacks[0]()
	assert.Equal(t, 10, c.Remaining(), "tick from the first run is dropped")

	clock.callbacks[1]()
	assert.Equal(t, 9, c.Remaining(), "current tick still counts")
}

func TestConfigureFromIsAtomic(t *testing.T) {
	c, _ := newController(t, timeutil.Duration{Minutes: 1})

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				c.SetPending(countdown.FieldHours, "9")
			}
		}
	}()

	for i := 0; i < 500; i++ {
		total, err := c.ConfigureFrom(countdown.Pending{Hours: "0", Minutes: "1", Seconds: "0"})
		require.NoError(t, err)
		require.Equal(t, 60, total, "fields from another edit leaked into the commit")
	}
	close(stop)
	wg.Wait()
}

func TestObserverSeesTransitionsInOrder(t *testing.T) {
	var c *countdown.Controller
	var events []countdown.Event
	paused := false
	c, _ = newController(t, timeutil.Duration{Seconds: 10}, countdown.WithOnChange(func(s countdown.Snapshot) {
		// Pause from inside the start notification; it must be seen after start
		if s.Event == countdown.EventStart && !paused {
			paused = true
			c.Pause()
		}
		events = append(events, s.Event)
	}))

	c.Start()

	assert.Equal(t, []countdown.Event{countdown.EventStart, countdown.EventPause}, events)
	assert.False(t, c.Running())
}

func TestObserverOrderUnderConcurrentTicks(t *testing.T) {
	var mu sync.Mutex
	var seen []countdown.Snapshot
	c := countdown.New(timeutil.Duration{Seconds: 50},
		countdown.WithInterval(time.Millisecond),
		countdown.WithOnChange(func(s countdown.Snapshot) {
			mu.Lock()
			seen = append(seen, s)
			mu.Unlock()
		}),
	)
	defer c.Close()

	for i := 0; i < 20; i++ {
		c.Start()
		time.Sleep(2 * time.Millisecond)
		c.Reset()
	}
	c.Close()

	// A tick goroutine may still be delivering the final reset
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1].Event == countdown.EventReset
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	// After a reset, the next snapshot is a start from the full duration
	for i := 1; i < len(seen); i++ {
		if seen[i-1].Event == countdown.EventReset {
			assert.Equal(t, countdown.EventStart, seen[i].Event, "snapshot %d", i)
			assert.Equal(t, 50, seen[i].Remaining, "snapshot %d", i)
		}
	}
}

func TestCustomInterval(t *testing.T) {
	c, clock := newController(t, timeutil.Duration{Seconds: 3}, countdown.WithInterval(100*time.Millisecond))

	c.Start()
	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, 0, c.Remaining())
}

func TestLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	c, clock := newController(t, timeutil.Duration{Seconds: 1}, countdown.WithLogger(logger))

	c.Start()
	clock.Advance(time.Second)
	_, _ = c.ConfigureFrom(countdown.Pending{Hours: "?", Minutes: "0", Seconds: "0"})

	out := buf.String()
	assert.Contains(t, out, "countdown started")
	assert.Contains(t, out, "countdown expired")
	assert.Contains(t, out, "rejected duration input")
	assert.NotContains(t, out, "msg=tick", "ticks log at debug")
}

func TestRealClockTicks(t *testing.T) {
	done := make(chan struct{})
	var once sync.Once
	c := countdown.New(timeutil.Duration{Seconds: 2},
		countdown.WithInterval(10*time.Millisecond),
		countdown.WithOnChange(func(s countdown.Snapshot) {
			if s.Event == countdown.EventExpired {
				once.Do(func() { close(done) })
			}
		}),
	)
	defer c.Close()

	c.Start()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not expire")
	}
	assert.Equal(t, 0, c.Remaining())
}

func joinDisplay(c *countdown.Controller) string {
	hh, mm, ss := c.Display()
	return hh + ":" + mm + ":" + ss
}
