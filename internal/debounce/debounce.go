// Package debounce provides cancel-and-reschedule timers for Bubble Tea
// models. A Timer never blocks and never polls; every schedule produces a
// tea.Tick whose message carries the generation it was issued under, and
// Fire only accepts the most recent one.
package debounce

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// FireMsg is delivered when a scheduled delay elapses.
type FireMsg struct {
	ID  string
	Gen uint64
}

// Timer is a single debounce handle. The zero value is not usable; create
// timers with New. Timer is not safe for concurrent use; it is meant to be
// owned by one model and touched only from Update.
type Timer struct {
	id      string
	delay   time.Duration
	gen     uint64
	pending bool
	stopped bool
}

// New returns a timer that reports FireMsg{ID: id} after delay of quiet.
func New(id string, delay time.Duration) *Timer {
	return &Timer{id: id, delay: delay}
}

// ID returns the timer identifier carried by its messages.
func (t *Timer) ID() string { return t.id }

// Delay returns the configured quiet period.
func (t *Timer) Delay() time.Duration { return t.delay }

// Schedule supersedes any pending fire and starts a new delay. A stopped
// timer schedules nothing and returns nil.
func (t *Timer) Schedule() tea.Cmd {
	if t.stopped {
		return nil
	}
	t.gen++
	t.pending = true
	id, gen := t.id, t.gen
	return tea.Tick(t.delay, func(time.Time) tea.Msg {
		return FireMsg{ID: id, Gen: gen}
	})
}

// Cancel drops the pending fire, if any.
func (t *Timer) Cancel() {
	t.gen++
	t.pending = false
}

// Stop cancels the timer permanently. Later Schedule calls are no-ops and
// late ticks are rejected by Fire.
func (t *Timer) Stop() {
	t.Cancel()
	t.stopped = true
}

// Pending reports whether a scheduled fire is outstanding.
func (t *Timer) Pending() bool { return t.pending && !t.stopped }

// Owns reports whether msg was produced by this timer, current or not.
func (t *Timer) Owns(msg FireMsg) bool { return msg.ID == t.id }

// Fire reports whether msg is the live fire of this timer and consumes it.
// Stale generations, foreign IDs and fires after Stop return false.
func (t *Timer) Fire(msg FireMsg) bool {
	if t.stopped || !t.pending || msg.ID != t.id || msg.Gen != t.gen {
		return false
	}
	t.pending = false
	return true
}

// Current returns the message the pending schedule will deliver. It is
// meaningful only while Pending is true.
func (t *Timer) Current() FireMsg { return FireMsg{ID: t.id, Gen: t.gen} }
