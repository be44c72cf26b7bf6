package widgets

import (
	"fmt"
	"time"

	"github.com/bnema/startdash/internal/ui/component"
)

// ClockOptions configures a Clock.
type ClockOptions struct {
	HourOffset int
	Placement  Placement
}

// Clock shows the local time shifted by a whole number of hours and ticks
// once per second while mounted.
type Clock struct {
	*component.Component

	deps       Dependencies
	hourOffset int
	stop       func()
}

// NewClock creates an unmounted clock.
func NewClock(deps Dependencies, opts ClockOptions) *Clock {
	c := &Clock{deps: deps.forWindow(ClockID), hourOffset: opts.HourOffset}
	cfg := component.NewConfig(ClockID)
	opts.Placement.apply(&cfg)
	c.Component = component.New(cfg, c)
	return c
}

// Render implements component.Renderer.
func (c *Clock) Render() component.RenderResult {
	t := c.deps.now().Add(time.Duration(c.hourOffset) * time.Hour)
	return component.Markup(fmt.Sprintf(
		`<div class="clock-window drag-handle"><div class="clock-display">%s</div></div>`,
		t.Format("15:04:05"),
	))
}

// SetHourOffset changes the offset and re-renders when mounted.
func (c *Clock) SetHourOffset(offset int) {
	if offset == c.hourOffset {
		return
	}
	c.hourOffset = offset
	if c.IsMounted() {
		refresh(c.deps.context(), c.Component)
	}
}

// OnMount starts the one-second tick.
func (c *Clock) OnMount() {
	if c.stop != nil {
		c.stop()
	}
	c.stop = c.deps.Scheduler.Every(time.Second, func() {
		refresh(c.deps.context(), c.Component)
	})
}

// OnUnmount stops the tick.
func (c *Clock) OnUnmount() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}
