package terminal

import (
	"context"
	"strconv"
	"time"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/loop"
)

const (
	defaultNoticeDuration = 4 * time.Second
	maxNotices            = 3
)

var _ port.Notification = (*Notices)(nil)

type notice struct {
	id      port.NotificationID
	message string
	kind    port.NotificationType
}

// Notices is the desk's status line. It keeps the last few notices and
// expires each one through the scheduler, so every mutation happens on the
// event loop.
type Notices struct {
	sched loop.Scheduler
	after func(time.Duration, func())
	seq   int
	items []notice
}

// NewNotices creates an empty status line.
func NewNotices(sched loop.Scheduler) *Notices {
	return &Notices{
		sched: sched,
		after: func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

// Show adds a notice and schedules its expiry.
func (n *Notices) Show(ctx context.Context, message string, kind port.NotificationType, ttl time.Duration) port.NotificationID {
	n.seq++
	id := port.NotificationID(strconv.Itoa(n.seq))
	n.items = append(n.items, notice{id: id, message: message, kind: kind})
	if len(n.items) > maxNotices {
		n.items = n.items[len(n.items)-maxNotices:]
	}

	if ttl <= 0 {
		ttl = defaultNoticeDuration
	}
	n.after(ttl, func() {
		n.sched.Post(func() { n.Dismiss(ctx, id) })
	})

	logging.FromContext(ctx).Debug().
		Str("notice_id", string(id)).
		Str("kind", kind.String()).
		Str("message", message).
		Msg("notice shown")
	return id
}

// Dismiss removes the notice with id, if it is still shown.
func (n *Notices) Dismiss(_ context.Context, id port.NotificationID) {
	for i, item := range n.items {
		if item.id == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

// Clear removes every notice.
func (n *Notices) Clear(context.Context) {
	n.items = nil
}

// Latest returns the most recent notice still shown.
func (n *Notices) Latest() (message string, kind port.NotificationType, ok bool) {
	if len(n.items) == 0 {
		return "", port.NotificationInfo, false
	}
	last := n.items[len(n.items)-1]
	return last.message, last.kind, true
}

// Len returns the number of notices shown.
func (n *Notices) Len() int { return len(n.items) }
