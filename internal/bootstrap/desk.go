// Package bootstrap assembles the desk: it turns configuration into a window
// manager with mounted widgets, applies live config changes and guards the
// layout database with a single-instance lock.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/config"
	"github.com/bnema/startdash/internal/layout"
	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/component"
	"github.com/bnema/startdash/internal/ui/dom"
	"github.com/bnema/startdash/internal/ui/loop"
	"github.com/bnema/startdash/internal/ui/widgets"
	"github.com/bnema/startdash/internal/ui/window"
)

// Services are the adapters a desk runs on. Opener, Printer and Weather are
// optional; a nil Weather disables the weather widget.
type Services struct {
	KV        port.KeyValueStore
	Scheduler loop.Scheduler
	Notifier  port.Notification
	Opener    port.URLOpener
	Printer   port.Printer
	Weather   port.WeatherProvider
	Now       func() time.Time
	// ReadFile loads widget scripts; defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// Desk is a document with its window manager and mounted widgets.
type Desk struct {
	ctx     context.Context
	doc     *dom.Document
	manager *window.Manager
	layout  *layout.Store

	clock    *widgets.Clock
	links    *widgets.Links
	weather  *widgets.Weather
	mealPlan *widgets.MealPlan
	scripts  []*widgets.Script
	mounted  []*component.Component
}

// WindowOptions maps the window section of the config to manager options.
func WindowOptions(cfg config.WindowConfig) window.Options {
	return window.Options{
		MinVisibleWidth:  cfg.MinVisibleWidth,
		MinVisibleHeight: cfg.MinVisibleHeight,
		MinWidth:         cfg.MinWidth,
		MinHeight:        cfg.MinHeight,
		InitialZ:         cfg.InitialZ,
	}
}

// NewDesk builds the document, registers every enabled widget with the
// manager and restores its persisted layout.
func NewDesk(ctx context.Context, cfg *config.Config, svc Services, width, height int) (*Desk, error) {
	if svc.ReadFile == nil {
		svc.ReadFile = os.ReadFile
	}
	ctx = logging.WithComponent(ctx, "desk")
	doc := dom.NewDocument(width, height)
	store := layout.NewStore(svc.KV)

	d := &Desk{
		ctx:     ctx,
		doc:     doc,
		manager: window.NewManager(ctx, doc, store, WindowOptions(cfg.Window)),
		layout:  store,
	}
	deps := widgets.Dependencies{
		Ctx:       ctx,
		Scheduler: svc.Scheduler,
		Notifier:  svc.Notifier,
		Opener:    svc.Opener,
		Now:       svc.Now,
	}
	w := cfg.Widgets

	if w.MealPlan.Enabled {
		d.mealPlan = widgets.NewMealPlan(deps, svc.Printer, widgets.MealPlanOptions{
			Placement: placement(w.MealPlan.Placement),
		})
		if err := d.mount(d.mealPlan.Component); err != nil {
			return nil, err
		}
	}
	if w.Links.Enabled {
		d.links = widgets.NewLinks(deps, linksOptions(w.Links))
		if err := d.mount(d.links.Component); err != nil {
			return nil, err
		}
	}
	if w.Clock.Enabled {
		d.clock = widgets.NewClock(deps, widgets.ClockOptions{
			HourOffset: w.Clock.HourOffset,
			Placement:  placement(w.Clock.Placement),
		})
		if err := d.mount(d.clock.Component); err != nil {
			return nil, err
		}
	}
	if w.Weather.Enabled && svc.Weather != nil {
		d.weather = widgets.NewWeather(deps, svc.Weather, widgets.WeatherOptions{
			Latitude:   w.Weather.Latitude,
			Longitude:  w.Weather.Longitude,
			Interval:   w.Weather.Interval,
			DetailsURL: w.Weather.DetailsURL,
			Placement:  placement(w.Weather.Placement),
		})
		if err := d.mount(d.weather.Component); err != nil {
			return nil, err
		}
	}
	for _, sc := range w.Scripts {
		src, err := svc.ReadFile(sc.File)
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("window_id", sc.ID).Str("file", sc.File).Msg("skipping widget script")
			if svc.Notifier != nil {
				svc.Notifier.Show(ctx, fmt.Sprintf("Could not load script %s", sc.ID), port.NotificationWarning, 0)
			}
			continue
		}
		s := widgets.NewScript(deps, widgets.ScriptOptions{
			ID:        sc.ID,
			Name:      sc.File,
			Source:    string(src),
			Refresh:   sc.Refresh,
			Resizable: sc.Resizable,
			Placement: placement(sc.Placement),
		})
		if err := d.mount(s.Component); err != nil {
			return nil, err
		}
		d.scripts = append(d.scripts, s)
	}

	logging.FromContext(ctx).Info().Int("windows", d.manager.Len()).Msg("desk ready")
	return d, nil
}

func (d *Desk) mount(c *component.Component) error {
	if err := c.Mount(d.doc.Body()); err != nil {
		return fmt.Errorf("mount %s: %w", c.ID(), err)
	}
	d.manager.RegisterComponent(c)
	d.mounted = append(d.mounted, c)
	return nil
}

// Document returns the desk's document.
func (d *Desk) Document() *dom.Document { return d.doc }

// Manager returns the desk's window manager.
func (d *Desk) Manager() *window.Manager { return d.manager }

// Layout returns the layout store the manager persists to.
func (d *Desk) Layout() *layout.Store { return d.layout }

// Components returns the mounted windows in mount order.
func (d *Desk) Components() []*component.Component { return d.mounted }

// Apply pushes a reloaded config into the running desk. Window limits,
// the clock offset and the links content change in place; enabling or
// disabling widgets needs a restart.
func (d *Desk) Apply(cfg *config.Config) {
	d.manager.SetOptions(WindowOptions(cfg.Window))
	if d.clock != nil {
		d.clock.SetHourOffset(cfg.Widgets.Clock.HourOffset)
	}
	if d.links != nil {
		d.links.SetContent(linksOptions(cfg.Widgets.Links))
	}
	logging.FromContext(d.ctx).Info().Msg("config applied")
}

// Refresh refetches the weather and re-renders script widgets.
func (d *Desk) Refresh() {
	if d.weather != nil {
		d.weather.Refresh()
	}
	for _, s := range d.scripts {
		if err := s.Update(); err != nil {
			logging.FromContext(d.ctx).Debug().Err(err).Str("window_id", s.ID()).Msg("script refresh skipped")
		}
	}
}

// Close unmounts every window in reverse mount order.
func (d *Desk) Close() {
	for i := len(d.mounted) - 1; i >= 0; i-- {
		d.mounted[i].Unmount()
	}
	d.mounted = nil
}

func placement(p config.Placement) widgets.Placement {
	return widgets.Placement{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

func linksOptions(cfg config.LinksConfig) widgets.LinksOptions {
	categories := make([]widgets.LinkCategory, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		links := make([]widgets.Link, 0, len(c.Links))
		for _, l := range c.Links {
			links = append(links, widgets.Link{Name: l.Name, URL: l.URL})
		}
		categories = append(categories, widgets.LinkCategory{Title: c.Title, Links: links})
	}
	return widgets.LinksOptions{
		Title:      cfg.Title,
		Subtitle:   cfg.Subtitle,
		Categories: categories,
		OpenLinks:  cfg.OpenLinks,
		Placement:  placement(cfg.Placement),
	}
}
