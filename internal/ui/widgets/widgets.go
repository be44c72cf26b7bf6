// Package widgets holds the desk's built-in windows. Every widget embeds a
// *component.Component and renders itself as markup; timers and background
// results reach it through the loop.Scheduler.
package widgets

import (
	"context"
	"time"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/domain/entity"
	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/component"
	"github.com/bnema/startdash/internal/ui/dom"
	"github.com/bnema/startdash/internal/ui/loop"
)

// Window ids of the built-in widgets. They key the persisted layout.
const (
	ClockID    = "clock-component"
	LinksID    = "links-component"
	WeatherID  = "weather-component"
	MealPlanID = "mealplan-component"
)

// Dependencies holds what widgets share with the host.
type Dependencies struct {
	Ctx       context.Context
	Scheduler loop.Scheduler
	Notifier  port.Notification
	// Opener is optional; without it links only produce a notice.
	Opener port.URLOpener
	Now    func() time.Time
}

func (d Dependencies) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Dependencies) context() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// forWindow returns a copy whose context logs with the window's id.
func (d Dependencies) forWindow(id string) Dependencies {
	d.Ctx = logging.WithWindowID(d.context(), id)
	return d
}

func (d Dependencies) notify(message string, kind port.NotificationType) {
	if d.Notifier == nil {
		return
	}
	d.Notifier.Show(d.context(), message, kind, 0)
}

// Placement is a widget's default geometry. Zero Width or Height leaves that
// axis to the content.
type Placement struct {
	X, Y          int
	Width, Height int
}

func (p Placement) apply(cfg *component.Config) {
	cfg.Position = entity.Position{X: p.X, Y: p.Y}
	if p.Width > 0 {
		w := p.Width
		cfg.Size.Width = &w
	}
	if p.Height > 0 {
		h := p.Height
		cfg.Size.Height = &h
	}
}

// clickBinding keeps one click listener on a component's live node. Rebind
// must be called after every mount and update because updates swap the node.
type clickBinding struct {
	node *dom.Node
	id   dom.ListenerID
}

func (b *clickBinding) rebind(c *component.Component, fn dom.Handler) {
	b.unbind()
	node := c.Node()
	if node == nil {
		return
	}
	b.node = node
	b.id = node.AddEventListener(dom.EventClick, fn)
}

func (b *clickBinding) unbind() {
	if b.node != nil {
		b.node.RemoveEventListener(dom.EventClick, b.id)
	}
	b.node = nil
	b.id = 0
}

// openURL hands url to the opener and reports the outcome as a notice.
func openURL(deps Dependencies, url string) {
	if deps.Opener == nil {
		deps.notify(url, port.NotificationInfo)
		return
	}
	if err := deps.Opener.Open(deps.context(), url); err != nil {
		logging.FromContext(deps.context()).Warn().Err(err).Str("url", url).Msg("failed to open link")
		deps.notify("Could not open "+url, port.NotificationError)
		return
	}
	deps.notify("Opened "+url, port.NotificationInfo)
}

// refresh re-renders c and logs a failure. Timer callbacks use it because
// they have nobody to return an error to.
func refresh(ctx context.Context, c *component.Component) {
	if err := c.Update(); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("widget update skipped")
	}
}
