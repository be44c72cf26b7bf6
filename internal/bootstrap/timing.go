package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/startdash/internal/logging"
)

// StartupTimer tracks how long each startup phase of the desk takes.
type StartupTimer struct {
	start  time.Time
	phases map[string]time.Duration
	order  []string
	last   time.Time
	mu     sync.Mutex
	now    func() time.Time
}

// NewStartupTimer creates a new timer starting from now.
func NewStartupTimer() *StartupTimer {
	return newStartupTimer(time.Now)
}

func newStartupTimer(now func() time.Time) *StartupTimer {
	start := now()
	return &StartupTimer{
		start:  start,
		phases: make(map[string]time.Duration),
		last:   start,
		now:    now,
	}
}

// Mark records the duration since the last mark (or start) for the given phase.
func (t *StartupTimer) Mark(phase string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if _, seen := t.phases[phase]; !seen {
		t.order = append(t.order, phase)
	}
	t.phases[phase] = now.Sub(t.last)
	t.last = now
}

// Phase returns the recorded duration of phase.
func (t *StartupTimer) Phase(phase string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.phases[phase]
	return d, ok
}

// Total returns the elapsed time since the timer was created.
func (t *StartupTimer) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Sub(t.start)
}

// Log writes every phase to the context logger at debug level.
func (t *StartupTimer) Log(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	event := logging.FromContext(ctx).Debug().Dur("total", t.now().Sub(t.start))
	for _, phase := range t.order {
		event = event.Dur(phase, t.phases[phase])
	}
	event.Msg("startup timing")
}
