package loop

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by explicit calls, for tests and headless use.
// Posted closures run on RunPending; timers fire on Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	pending []func()
	timers  []*manualTimer
}

type manualTimer struct {
	interval time.Duration
	next     time.Duration
	fn       func()
	stopped  bool
}

// NewManual creates a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Post implements Scheduler.
func (m *Manual) Post(fn func()) {
	m.mu.Lock()
	m.pending = append(m.pending, fn)
	m.mu.Unlock()
}

// Every implements Scheduler.
func (m *Manual) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		return func() {}
	}
	m.mu.Lock()
	t := &manualTimer{interval: interval, next: m.now + interval, fn: fn}
	m.timers = append(m.timers, t)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		t.stopped = true
		m.mu.Unlock()
	}
}

// RunPending runs queued closures, including ones queued while running, and
// returns how many ran.
func (m *Manual) RunPending() int {
	ran := 0
	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.mu.Unlock()
			return ran
		}
		fn := m.pending[0]
		m.pending = m.pending[1:]
		m.mu.Unlock()

		fn()
		ran++
	}
}

// Advance moves the clock forward, firing due timers in time order, then
// drains posted closures.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		var due *manualTimer
		for _, t := range m.timers {
			if t.stopped || t.next > target {
				continue
			}
			if due == nil || t.next < due.next {
				due = t
			}
		}
		if due == nil {
			m.now = target
			m.mu.Unlock()
			break
		}
		m.now = due.next
		due.next += due.interval
		fn := due.fn
		m.mu.Unlock()

		fn()
	}
	m.RunPending()
}

// ActiveTimers returns the number of timers that have not been stopped.
func (m *Manual) ActiveTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}
