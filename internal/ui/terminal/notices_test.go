package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/ui/loop"
)

type pendingExpiry struct {
	after time.Duration
	fn    func()
}

func newTestNotices() (*Notices, *loop.Manual, *[]pendingExpiry) {
	sched := loop.NewManual()
	n := NewNotices(sched)
	var pending []pendingExpiry
	n.after = func(d time.Duration, fn func()) {
		pending = append(pending, pendingExpiry{after: d, fn: fn})
	}
	return n, sched, &pending
}

func TestNotices_ShowAndExpire(t *testing.T) {
	ctx := context.Background()
	n, sched, pending := newTestNotices()

	n.Show(ctx, "first", port.NotificationInfo, 0)
	n.Show(ctx, "second", port.NotificationError, 1500*time.Millisecond)

	msg, kind, ok := n.Latest()
	require.True(t, ok)
	assert.Equal(t, "second", msg)
	assert.Equal(t, port.NotificationError, kind)

	require.Len(t, *pending, 2)
	assert.Equal(t, defaultNoticeDuration, (*pending)[0].after)
	assert.Equal(t, 1500*time.Millisecond, (*pending)[1].after)

	(*pending)[1].fn()
	assert.Equal(t, 2, n.Len(), "expiry runs on the loop")
	sched.RunPending()

	msg, _, ok = n.Latest()
	require.True(t, ok)
	assert.Equal(t, "first", msg)
}

func TestNotices_KeepsMostRecent(t *testing.T) {
	ctx := context.Background()
	n, _, _ := newTestNotices()

	for _, m := range []string{"a", "b", "c", "d"} {
		n.Show(ctx, m, port.NotificationInfo, 0)
	}

	assert.Equal(t, maxNotices, n.Len())
	n.Clear(ctx)
	_, _, ok := n.Latest()
	assert.False(t, ok)
}

func TestNotices_DismissUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	n, _, _ := newTestNotices()
	id := n.Show(ctx, "kept", port.NotificationWarning, 0)

	n.Dismiss(ctx, "missing")
	assert.Equal(t, 1, n.Len())

	n.Dismiss(ctx, id)
	assert.Zero(t, n.Len())
}
