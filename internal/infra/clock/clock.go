package clock

import "time"

// Scheduler defers a callback. The returned cancel stops the callback if it
// has not fired yet; calling it after the callback ran is a no-op.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// System schedules on real timers.
type System struct{}

func (System) After(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

// Manual is a test scheduler. Callbacks queue until Fire or FireAll is
// called; nothing runs on real time.
type Manual struct {
	pending []*manualEntry
}

type manualEntry struct {
	d        time.Duration
	fn       func()
	canceled bool
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) After(d time.Duration, fn func()) func() {
	entry := &manualEntry{d: d, fn: fn}
	m.pending = append(m.pending, entry)
	return func() { entry.canceled = true }
}

// Fire runs the oldest pending callback that has not been canceled and
// reports whether one ran.
func (m *Manual) Fire() bool {
	for len(m.pending) > 0 {
		entry := m.pending[0]
		m.pending = m.pending[1:]
		if entry.canceled {
			continue
		}
		entry.fn()
		return true
	}
	return false
}

// FireAll drains every pending callback, including ones queued by callbacks
// themselves, and returns how many ran.
func (m *Manual) FireAll() int {
	fired := 0
	for m.Fire() {
		fired++
	}
	return fired
}

// Pending reports how many callbacks are queued and not canceled.
func (m *Manual) Pending() int {
	n := 0
	for _, entry := range m.pending {
		if !entry.canceled {
			n++
		}
	}
	return n
}

// LastDelay returns the delay of the most recently queued callback.
func (m *Manual) LastDelay() time.Duration {
	if len(m.pending) == 0 {
		return 0
	}
	return m.pending[len(m.pending)-1].d
}
