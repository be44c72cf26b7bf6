package widgets_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/dom"
	"github.com/bnema/startdash/internal/ui/loop"
	"github.com/bnema/startdash/internal/ui/widgets"
)

var fixedNow = time.Date(2026, time.October, 17, 13, 4, 5, 0, time.UTC)

type harness struct {
	doc   *dom.Document
	sched *loop.Manual
	now   time.Time
	deps  widgets.Dependencies
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		doc:   dom.NewDocument(120, 40),
		sched: loop.NewManual(),
		now:   fixedNow,
	}
	logger := zerolog.Nop()
	h.deps = widgets.Dependencies{
		Ctx:       logging.WithContext(context.Background(), logger),
		Scheduler: h.sched,
		Now:       func() time.Time { return h.now },
	}
	return h
}

func (h *harness) click(target *dom.Node) *dom.Event {
	e := &dom.Event{Type: dom.EventClick, Target: target}
	h.doc.Dispatch(e)
	return e
}

// drain runs posted closures until at least one ran.
func (h *harness) drain(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool { return h.sched.RunPending() > 0 }, time.Second, 5*time.Millisecond)
}
