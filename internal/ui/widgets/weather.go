package widgets

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math"
	"time"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/domain/entity"
	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/component"
	"github.com/bnema/startdash/internal/ui/dom"
)

const (
	defaultWeatherInterval = 30 * time.Minute
	weatherLoadingText     = "Fetching weather..."
	weatherFailedText      = "unavailable"
)

// WeatherOptions configures a Weather widget.
type WeatherOptions struct {
	Latitude  float64
	Longitude float64
	// Interval between forecast fetches; zero means 30 minutes.
	Interval time.Duration
	// DetailsURL is opened when the forecast text is clicked.
	DetailsURL string
	Placement  Placement
}

var errNoForecast = errors.New("provider returned no forecast")

type weatherState int

const (
	weatherLoading weatherState = iota
	weatherReady
	weatherFailed
)

// Weather shows the current temperature and the next hour's symbol. Fetches
// run off the event loop and their results are posted back to it.
type Weather struct {
	*component.Component

	deps     Dependencies
	provider port.WeatherProvider
	opts     WeatherOptions

	state    weatherState
	forecast *entity.Forecast
	seq      uint64
	stop     func()
	fetchCtx context.Context
	cancel   context.CancelFunc
	click    clickBinding
}

// NewWeather creates an unmounted weather widget.
func NewWeather(deps Dependencies, provider port.WeatherProvider, opts WeatherOptions) *Weather {
	if opts.Interval <= 0 {
		opts.Interval = defaultWeatherInterval
	}
	w := &Weather{deps: deps.forWindow(WeatherID), provider: provider, opts: opts}
	cfg := component.NewConfig(WeatherID)
	opts.Placement.apply(&cfg)
	w.Component = component.New(cfg, w)
	return w
}

// Render implements component.Renderer.
func (w *Weather) Render() component.RenderResult {
	return component.Markup(fmt.Sprintf(
		`<div class="weather-box"><span class="weather-title drag-handle">Weather</span> - <span class="weather-text">%s</span></div>`,
		html.EscapeString(w.Text()),
	))
}

// Text returns the forecast text shown after the title.
func (w *Weather) Text() string {
	switch w.state {
	case weatherReady:
		return fmt.Sprintf("%s %d°C", WeatherEmoji(w.forecast.Symbol), int(math.Round(w.forecast.TemperatureC)))
	case weatherFailed:
		return weatherFailedText
	default:
		return weatherLoadingText
	}
}

// OnMount fetches immediately and then on every interval.
func (w *Weather) OnMount() {
	w.click.rebind(w.Component, w.onClick)

	w.stopPolling()
	ctx, cancel := context.WithCancel(w.deps.context())
	w.fetchCtx, w.cancel = ctx, cancel
	w.fetch(ctx)
	w.stop = w.deps.Scheduler.Every(w.opts.Interval, func() { w.fetch(ctx) })
}

// OnUpdate rebinds the click listener on the new node.
func (w *Weather) OnUpdate() { w.click.rebind(w.Component, w.onClick) }

// OnUnmount stops polling and abandons any fetch in flight.
func (w *Weather) OnUnmount() {
	w.click.unbind()
	w.stopPolling()
}

// Refresh fetches now, outside the regular interval. It does nothing while
// unmounted.
func (w *Weather) Refresh() {
	if w.fetchCtx == nil {
		return
	}
	w.fetch(w.fetchCtx)
}

func (w *Weather) stopPolling() {
	if w.stop != nil {
		w.stop()
		w.stop = nil
	}
	if w.cancel != nil {
		w.cancel()
		w.fetchCtx, w.cancel = nil, nil
	}
	// Results of fetches started before this point are dropped.
	w.seq++
}

func (w *Weather) fetch(ctx context.Context) {
	w.seq++
	seq := w.seq
	lat, lon := w.opts.Latitude, w.opts.Longitude

	go func() {
		forecast, err := w.provider.Current(ctx, lat, lon)
		w.deps.Scheduler.Post(func() { w.apply(seq, forecast, err) })
	}()
}

func (w *Weather) apply(seq uint64, forecast *entity.Forecast, err error) {
	if seq != w.seq || !w.IsMounted() {
		return
	}
	if err == nil && forecast == nil {
		err = errNoForecast
	}
	if err != nil {
		logging.FromContext(w.deps.context()).Warn().Err(err).Msg("failed to fetch weather")
		w.state = weatherFailed
		w.forecast = nil
	} else {
		w.state = weatherReady
		w.forecast = forecast
	}
	refresh(w.deps.context(), w.Component)
}

func (w *Weather) onClick(e *dom.Event) {
	if w.opts.DetailsURL == "" || e.Target == nil {
		return
	}
	if e.Target.ClosestWithin("."+component.ClassDragHandle, w.Node()) != nil {
		return
	}
	openURL(w.deps, w.opts.DetailsURL)
}
