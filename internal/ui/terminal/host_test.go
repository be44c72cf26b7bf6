package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/domain/entity"
	"github.com/bnema/startdash/internal/infrastructure/persistence/memory"
	"github.com/bnema/startdash/internal/layout"
	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/component"
	"github.com/bnema/startdash/internal/ui/dom"
	"github.com/bnema/startdash/internal/ui/window"
)

const noteMarkup = `<div class="note"><div class="drag-handle">Title</div><p>hello world</p></div>`

type markupContent string

func (m markupContent) Render() component.RenderResult { return component.Markup(string(m)) }

type desk struct {
	ctx    context.Context
	doc    *dom.Document
	wm     *window.Manager
	layout *layout.Store
	host   *Host
}

func newDesk(t *testing.T) *desk {
	t.Helper()
	ctx := logging.WithContext(context.Background(), zerolog.Nop())
	doc := dom.NewDocument(60, 20)
	store := layout.NewStore(memory.NewStore())
	wm := window.NewManager(ctx, doc, store, window.Options{
		MinVisibleWidth:  4,
		MinVisibleHeight: 1,
		MinWidth:         10,
		MinHeight:        3,
		InitialZ:         1000,
	})
	return &desk{ctx: ctx, doc: doc, wm: wm, layout: store}
}

func (d *desk) mount(t *testing.T, id string, x, y int, resizable bool) *component.Component {
	t.Helper()
	cfg := component.NewConfig(id)
	cfg.Position = entity.Position{X: x, Y: y}
	cfg.Resizable = resizable
	c := component.New(cfg, markupContent(noteMarkup))
	require.NoError(t, c.Mount(d.doc.Body()))
	d.wm.RegisterComponent(c)
	return c
}

func (d *desk) start() *Host {
	d.host = New(d.ctx, d.doc, d.wm, Options{})
	return d.host
}

func (d *desk) mouse(action tea.MouseAction, x, y int) {
	d.host.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
}

func (d *desk) row(y int) string {
	return strings.Split(d.host.canvas.plain(), "\n")[y]
}

func TestHost_PaintsWindowsWithFrame(t *testing.T) {
	d := newDesk(t)
	c := d.mount(t, "note", 5, 2, false)
	d.start()

	assert.Contains(t, d.row(2), "╭")
	assert.Contains(t, d.row(3), "│Title")
	assert.Contains(t, d.row(4), "│hello world│")

	w, h := c.Node().IntrinsicSize()
	assert.Equal(t, 13, w)
	assert.Equal(t, 4, h)
	assert.Contains(t, d.host.View(), "hello world")
}

func TestHost_HitTestsLastFrame(t *testing.T) {
	d := newDesk(t)
	c := d.mount(t, "note", 5, 2, false)
	d.start()

	handle := c.Node().QuerySelector(".drag-handle")
	assert.Same(t, handle, d.host.hit(6, 3), "content cell")
	assert.Same(t, handle, d.host.hit(8, 2), "top edge belongs to the drag handle")
	assert.Same(t, c.Node(), d.host.hit(5, 4), "side edge")
	assert.Nil(t, d.host.hit(40, 15), "empty desk")
}

func TestHost_DragMovesAndPersists(t *testing.T) {
	d := newDesk(t)
	c := d.mount(t, "note", 5, 2, false)
	d.start()

	d.mouse(tea.MouseActionPress, 7, 3)
	require.Same(t, c, d.wm.Dragging())

	d.mouse(tea.MouseActionMotion, 17, 8)
	assert.Equal(t, entity.Position{X: 15, Y: 7}, c.Position())
	assert.Contains(t, d.row(7), "┏", "dragging windows get the gesture border")

	d.mouse(tea.MouseActionRelease, 17, 8)
	assert.Nil(t, d.wm.Dragging())

	pos, ok := d.layout.LoadPosition(d.ctx, "note")
	require.True(t, ok)
	assert.Equal(t, entity.Position{X: 15, Y: 7}, pos)
	assert.Contains(t, d.row(8), "│Title")
}

func TestHost_ResizeThroughGrip(t *testing.T) {
	d := newDesk(t)
	c := d.mount(t, "note", 5, 2, true)
	d.start()

	assert.Contains(t, d.row(5), resizeGrip)
	grip := c.Node().QuerySelector("." + component.ClassResizeHandle)
	require.Same(t, grip, d.host.hit(17, 5))

	d.mouse(tea.MouseActionPress, 17, 5)
	require.Same(t, c, d.wm.Resizing())
	d.mouse(tea.MouseActionMotion, 22, 7)
	d.mouse(tea.MouseActionRelease, 22, 7)

	size, ok := d.layout.LoadSize(d.ctx, "note")
	require.True(t, ok)
	assert.Equal(t, 18, size.WidthOr(0))
	assert.Equal(t, 6, size.HeightOr(0))
	assert.Equal(t, dom.Rect{Left: 5, Top: 2, Width: 18, Height: 6}, c.Node().BoundingRect())
}

func TestHost_ClickSynthesis(t *testing.T) {
	d := newDesk(t)
	c := d.mount(t, "note", 5, 2, false)
	d.start()

	var clicked []*dom.Node
	d.doc.AddEventListener(dom.EventClick, func(e *dom.Event) { clicked = append(clicked, e.Target) })

	d.mouse(tea.MouseActionPress, 7, 4)
	d.mouse(tea.MouseActionRelease, 8, 4)
	require.Len(t, clicked, 1)
	assert.Same(t, c.Node().QuerySelector("p"), clicked[0])

	d.mouse(tea.MouseActionPress, 7, 4)
	d.mouse(tea.MouseActionRelease, 40, 15)
	assert.Len(t, clicked, 1, "release off the window does not click")

	d.mouse(tea.MouseActionPress, 7, 3)
	d.mouse(tea.MouseActionRelease, 7, 4)
	require.Len(t, clicked, 2)
	assert.Same(t, c.Node(), clicked[1], "click lands on the common ancestor")
}

func TestHost_ClickSurvivesRerenderDuringPress(t *testing.T) {
	d := newDesk(t)
	c := d.mount(t, "note", 5, 2, false)
	d.start()

	var clicked []*dom.Node
	d.doc.AddEventListener(dom.EventClick, func(e *dom.Event) { clicked = append(clicked, e.Target) })

	d.mouse(tea.MouseActionPress, 7, 4)
	before := c.Node().QuerySelector("p")
	d.host.sched.Post(func() { require.NoError(t, c.Update()) })
	d.host.Update(d.host.Init()())
	require.NotSame(t, before, c.Node().QuerySelector("p"))

	d.mouse(tea.MouseActionRelease, 8, 4)
	require.Len(t, clicked, 1)
	assert.Same(t, c.Node().QuerySelector("p"), clicked[0])
}

func TestHost_BlurEndsGesture(t *testing.T) {
	d := newDesk(t)
	c := d.mount(t, "note", 5, 2, false)
	d.start()

	d.mouse(tea.MouseActionPress, 7, 3)
	d.mouse(tea.MouseActionMotion, 9, 3)
	d.host.Update(tea.BlurMsg{})

	assert.Nil(t, d.wm.Dragging())
	pos, ok := d.layout.LoadPosition(d.ctx, "note")
	require.True(t, ok)
	assert.Equal(t, c.Position(), pos)
	assert.Zero(t, d.doc.ListenerCount(dom.EventPointerMove))
}

func TestHost_PaintsByStackingOrder(t *testing.T) {
	d := newDesk(t)
	below := d.mount(t, "below", 5, 2, false)
	above := d.mount(t, "above", 8, 3, false)
	d.start()

	assert.Same(t, above.Node().QuerySelector("p"), d.host.hit(10, 5))

	d.mouse(tea.MouseActionPress, 6, 4)
	d.mouse(tea.MouseActionRelease, 6, 4)
	assert.Greater(t, below.Node().Style.ZIndex, above.Node().Style.ZIndex)
	assert.Same(t, below.Node(), d.host.hit(10, 5), "raised window covers the other")
}

func TestHost_RaiseKeyCyclesStack(t *testing.T) {
	d := newDesk(t)
	first := d.mount(t, "first", 5, 2, false)
	second := d.mount(t, "second", 30, 2, false)
	d.wm.BringToFront(second)
	d.start()

	d.host.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Greater(t, first.Node().Style.ZIndex, second.Node().Style.ZIndex)

	d.host.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Greater(t, second.Node().Style.ZIndex, first.Node().Style.ZIndex)
}

func TestHost_WindowSizeSetsViewport(t *testing.T) {
	d := newDesk(t)
	d.start()

	d.host.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	w, h := d.doc.Viewport()
	assert.Equal(t, 80, w)
	assert.Equal(t, 28, h)
	assert.Len(t, strings.Split(d.host.canvas.plain(), "\n"), 28)
}

func TestHost_StatusLineAndDismiss(t *testing.T) {
	d := newDesk(t)
	d.start()
	d.host.Notices().after = func(time.Duration, func()) {}

	d.host.Notices().Show(d.ctx, "Opened https://example.com", port.NotificationSuccess, 0)
	d.host.Update(tasksMsg(nil))
	assert.Contains(t, d.host.View(), "Opened https://example.com")

	d.host.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, d.host.View(), "Opened")
}

func TestHost_RefreshAndQuitKeys(t *testing.T) {
	d := newDesk(t)
	refreshed := 0
	d.host = New(d.ctx, d.doc, d.wm, Options{OnRefresh: func() { refreshed++ }})

	d.host.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, 1, refreshed)

	_, cmd := d.host.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, d.host.View())
	assert.Nil(t, d.host.sched.wait()(), "closed scheduler stops waiting")
}

func TestHost_RunsScheduledTasks(t *testing.T) {
	d := newDesk(t)
	d.start()
	ran := 0
	d.host.sched.Post(func() { ran++ })
	d.host.sched.Post(func() { ran++ })

	msg := d.host.Init()()
	_, cmd := d.host.Update(msg)

	assert.Equal(t, 2, ran)
	assert.NotNil(t, cmd, "host waits for the next batch")
}
