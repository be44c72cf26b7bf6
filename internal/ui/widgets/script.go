package widgets

import (
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/grafana/sobek"

	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/component"
)

// scriptTimeout bounds a single render() call.
const scriptTimeout = 100 * time.Millisecond

var errNoRenderFunc = errors.New("script does not define a render function")

// ScriptOptions configures a Script widget.
type ScriptOptions struct {
	ID string
	// Name labels the source in error messages, typically its file path.
	Name   string
	Source string
	// Refresh re-renders periodically while mounted; zero renders on demand only.
	Refresh   time.Duration
	Resizable bool
	Placement Placement
}

// Script is a user-defined widget. Its body is the string returned by the
// script's global render(count) function; count is the number of refreshes so
// far, so rendering twice without a refresh yields the same markup. Scripts may also call now() for the current time in milliseconds.
// A script that fails to compile, lacks render or throws renders an error
// placeholder instead.
type Script struct {
	*component.Component

	deps      Dependencies
	opts      ScriptOptions
	rt        *sobek.Runtime
	render    sobek.Callable
	loadErr   error
	refreshes int
	stop      func()
}

// NewScript compiles opts.Source and creates an unmounted widget.
func NewScript(deps Dependencies, opts ScriptOptions) *Script {
	s := &Script{deps: deps.forWindow(opts.ID), opts: opts}
	s.loadErr = s.load()
	if s.loadErr != nil {
		logging.FromContext(s.deps.context()).Warn().
			Err(s.loadErr).
			Str("script", opts.Name).
			Msg("failed to load widget script")
	}

	cfg := component.NewConfig(opts.ID)
	cfg.Resizable = opts.Resizable
	opts.Placement.apply(&cfg)
	s.Component = component.New(cfg, s)
	return s
}

func (s *Script) load() error {
	prg, err := sobek.Compile(s.opts.Name, s.opts.Source, false)
	if err != nil {
		return fmt.Errorf("compile %s: %w", s.opts.Name, err)
	}

	rt := sobek.New()
	if err := rt.Set("now", func() int64 { return s.deps.now().UnixMilli() }); err != nil {
		return fmt.Errorf("install now(): %w", err)
	}
	if _, err := s.runGuarded(rt, func() (sobek.Value, error) { return rt.RunProgram(prg) }); err != nil {
		return fmt.Errorf("run %s: %w", s.opts.Name, err)
	}

	fn, ok := sobek.AssertFunction(rt.Get("render"))
	if !ok {
		return errNoRenderFunc
	}
	s.rt = rt
	s.render = fn
	return nil
}

// runGuarded runs fn and interrupts the runtime when it exceeds scriptTimeout.
func (s *Script) runGuarded(rt *sobek.Runtime, fn func() (sobek.Value, error)) (sobek.Value, error) {
	timer := time.AfterFunc(scriptTimeout, func() {
		rt.Interrupt(fmt.Sprintf("script exceeded %s", scriptTimeout))
	})
	defer func() {
		timer.Stop()
		rt.ClearInterrupt()
	}()
	return fn()
}

// Err returns the load error, if any.
func (s *Script) Err() error { return s.loadErr }

// Render implements component.Renderer.
func (s *Script) Render() component.RenderResult {
	body, err := s.body()
	class := "script-body"
	if err != nil {
		class = "script-body script-error"
		body = html.EscapeString("Script error: " + err.Error())
	}
	return component.Markup(fmt.Sprintf(
		`<div class="script-window"><div class="script-title drag-handle">%s</div><div class="%s">%s</div></div>`,
		html.EscapeString(s.opts.ID), class, body,
	))
}

func (s *Script) body() (string, error) {
	if s.loadErr != nil {
		return "", s.loadErr
	}
	v, err := s.runGuarded(s.rt, func() (sobek.Value, error) {
		return s.render(sobek.Undefined(), s.rt.ToValue(s.refreshes))
	})
	if err != nil {
		logging.FromContext(s.deps.context()).Debug().Err(err).Msg("script render failed")
		return "", err
	}
	if v == nil || sobek.IsUndefined(v) || sobek.IsNull(v) {
		return "", nil
	}
	return v.String(), nil
}

// Update advances the refresh count and re-renders.
func (s *Script) Update() error {
	s.refreshes++
	return s.Component.Update()
}

// OnMount starts the refresh timer when one is configured.
func (s *Script) OnMount() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	if s.opts.Refresh <= 0 || s.loadErr != nil {
		return
	}
	s.stop = s.deps.Scheduler.Every(s.opts.Refresh, func() {
		if err := s.Update(); err != nil {
			logging.FromContext(s.deps.context()).Debug().Err(err).Msg("widget update skipped")
		}
	})
}

// OnUnmount stops the refresh timer.
func (s *Script) OnUnmount() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}
