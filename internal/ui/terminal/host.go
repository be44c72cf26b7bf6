// Package terminal hosts the desk document inside a Bubble Tea program. It
// paints the windows, hit-tests mouse input against the last frame and turns
// it into pointer events, and runs scheduled work on the program's loop.
package terminal

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/bnema/startdash/internal/cli/styles"
	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/dom"
	"github.com/bnema/startdash/internal/ui/window"
)

// footerLines is the height of the status line plus the short help.
const footerLines = 2

// Viewport returns the document size for a terminal of width by height cells.
func Viewport(width, height int) (int, int) {
	return width, max(0, height-footerLines)
}

// Options wires the host to the rest of the desk.
type Options struct {
	Theme     *styles.Theme
	Scheduler *Scheduler
	Notices   *Notices
	// OnRefresh runs when the refresh key is pressed.
	OnRefresh func()
}

// Host is the Bubble Tea model of the desk.
type Host struct {
	ctx     context.Context
	doc     *dom.Document
	wm      *window.Manager
	sched   *Scheduler
	notices *Notices
	painter *painter
	theme   *styles.Theme
	keys    styles.DeskKeyMap
	help    help.Model

	onRefresh func()

	width  int
	height int
	canvas *canvas
	frame  string

	pressed   *dom.Node
	pressX    int
	pressY    int
	pressing  bool
	pressedBy dom.Button
	quitting  bool
}

// New creates a host for doc. Missing options get fresh defaults.
func New(ctx context.Context, doc *dom.Document, wm *window.Manager, opts Options) *Host {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewScheduler()
	}
	if opts.Notices == nil {
		opts.Notices = NewNotices(opts.Scheduler)
	}
	h := &Host{
		ctx:       logging.WithComponent(ctx, "terminal"),
		doc:       doc,
		wm:        wm,
		sched:     opts.Scheduler,
		notices:   opts.Notices,
		painter:   newPainter(opts.Theme),
		theme:     opts.Theme,
		keys:      styles.DefaultDeskKeyMap(),
		help:      styles.NewStyledHelp(opts.Theme),
		onRefresh: opts.OnRefresh,
	}
	vw, vh := doc.Viewport()
	h.width, h.height = vw, vh+footerLines
	h.repaint()
	return h
}

// Notices returns the status line the host renders.
func (h *Host) Notices() *Notices { return h.notices }

// Init starts listening for scheduled work.
func (h *Host) Init() tea.Cmd {
	return h.sched.wait()
}

// Update handles one message and repaints.
func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		h.handleMouse(tea.MouseEvent(msg))
	case tea.BlurMsg:
		h.pressing, h.pressed = false, nil
		h.doc.Blur()
	case tea.KeyMsg:
		cmd = h.handleKey(msg)
	case tasksMsg:
		for _, fn := range msg {
			fn()
		}
		cmd = h.sched.wait()
	}
	h.repaint()
	return h, cmd
}

// View returns the last painted frame.
func (h *Host) View() string {
	if h.quitting {
		return ""
	}
	return h.frame
}

func (h *Host) resize(width, height int) {
	h.width, h.height = width, height
	h.help.Width = width
	h.doc.SetViewport(Viewport(width, height))
	logging.FromContext(h.ctx).Debug().Int("width", width).Int("height", height).Msg("terminal resized")
}

func (h *Host) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, h.keys.Quit):
		h.quitting = true
		h.sched.Close()
		return tea.Quit
	case key.Matches(msg, h.keys.Help):
		h.help.ShowAll = !h.help.ShowAll
	case key.Matches(msg, h.keys.Dismiss):
		h.notices.Clear(h.ctx)
	case key.Matches(msg, h.keys.Raise):
		h.raiseBottom()
	case key.Matches(msg, h.keys.Refresh):
		if h.onRefresh != nil {
			h.onRefresh()
		}
	}
	return nil
}

// raiseBottom brings the lowest window to the front, cycling the stack.
func (h *Host) raiseBottom() {
	wins := windows(h.doc)
	if len(wins) < 2 {
		return
	}
	if c, ok := h.wm.Component(wins[0].ID()); ok {
		h.wm.BringToFront(c)
	}
}

func (h *Host) repaint() {
	h.canvas = h.painter.paint(h.doc)

	var b strings.Builder
	b.WriteString(h.canvas.render(&h.painter.styles))
	b.WriteByte('\n')
	b.WriteString(h.statusLine())
	b.WriteByte('\n')
	b.WriteString(h.help.View(h.keys))
	h.frame = b.String()
}

func (h *Host) statusLine() string {
	message, kind, ok := h.notices.Latest()
	if !ok {
		return ""
	}
	if h.width > 0 {
		message = runewidth.Truncate(message, h.width, "…")
	}
	return h.theme.NoticeStyle(kind.String()).Render(message)
}

// hit returns the node painted at (x, y) in the last frame.
func (h *Host) hit(x, y int) *dom.Node {
	if h.canvas == nil {
		return nil
	}
	return h.canvas.ownerAt(x, y)
}

func (h *Host) handleMouse(m tea.MouseEvent) {
	switch m.Action {
	case tea.MouseActionPress:
		button, ok := pointerButton(m.Button)
		if !ok {
			return
		}
		target := h.hit(m.X, m.Y)
		h.pressed, h.pressing, h.pressedBy = target, true, button
		h.pressX, h.pressY = m.X, m.Y
		h.dispatch(dom.EventPointerDown, target, m.X, m.Y, button)

	case tea.MouseActionMotion:
		h.dispatch(dom.EventPointerMove, h.hit(m.X, m.Y), m.X, m.Y, h.pressedBy)

	case tea.MouseActionRelease:
		target := h.hit(m.X, m.Y)
		h.dispatch(dom.EventPointerUp, target, m.X, m.Y, h.pressedBy)
		if h.pressing && h.pressedBy == dom.ButtonPrimary {
			pressed := h.pressed
			// A window re-rendered mid-press no longer holds the pressed node.
			if !h.doc.Body().Contains(pressed) {
				pressed = h.hit(h.pressX, h.pressY)
			}
			if common := commonAncestor(pressed, target); common != nil {
				h.dispatch(dom.EventClick, common, m.X, m.Y, dom.ButtonPrimary)
			}
		}
		h.pressed, h.pressing = nil, false
	}
}

func (h *Host) dispatch(t dom.EventType, target *dom.Node, x, y int, button dom.Button) {
	h.doc.Dispatch(&dom.Event{Type: t, Target: target, X: x, Y: y, Button: button})
}

// commonAncestor returns the nearest node containing both a and b. A click
// lands there when press and release hit different nodes.
func commonAncestor(a, b *dom.Node) *dom.Node {
	if a == nil || b == nil {
		return nil
	}
	for n := a; n != nil; n = n.Parent() {
		if n.Contains(b) {
			return n
		}
	}
	return nil
}

func pointerButton(b tea.MouseButton) (dom.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return dom.ButtonPrimary, true
	case tea.MouseButtonMiddle:
		return dom.ButtonAuxiliary, true
	case tea.MouseButtonRight:
		return dom.ButtonSecondary, true
	default:
		return 0, false
	}
}
