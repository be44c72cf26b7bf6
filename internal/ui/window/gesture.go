package window

import (
	"github.com/bnema/startdash/internal/domain/entity"
	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/component"
	"github.com/bnema/startdash/internal/ui/dom"
)

// documentListeners are the document-scoped listeners of one active gesture.
// A gesture ends on pointerup, pointercancel or when the host loses focus.
type documentListeners struct {
	move   dom.ListenerID
	up     dom.ListenerID
	cancel dom.ListenerID
	blur   dom.ListenerID
}

func (m *Manager) listenDocument(onMove, onEnd dom.Handler) documentListeners {
	return documentListeners{
		move:   m.doc.AddEventListener(dom.EventPointerMove, onMove),
		up:     m.doc.AddEventListener(dom.EventPointerUp, onEnd),
		cancel: m.doc.AddEventListener(dom.EventPointerCancel, onEnd),
		blur:   m.doc.AddEventListener(dom.EventBlur, onEnd),
	}
}

func (m *Manager) unlistenDocument(l documentListeners) {
	m.doc.RemoveEventListener(dom.EventPointerMove, l.move)
	m.doc.RemoveEventListener(dom.EventPointerUp, l.up)
	m.doc.RemoveEventListener(dom.EventPointerCancel, l.cancel)
	m.doc.RemoveEventListener(dom.EventBlur, l.blur)
}

type dragGesture struct {
	target    *component.Component
	offsetX   int
	offsetY   int
	listeners documentListeners
}

type resizeGesture struct {
	target      *component.Component
	startWidth  int
	startHeight int
	startX      int
	startY      int
	listeners   documentListeners
}

// Dragging returns the component being dragged, or nil.
func (m *Manager) Dragging() *component.Component {
	if m.drag == nil {
		return nil
	}
	return m.drag.target
}

// Resizing returns the component being resized, or nil.
func (m *Manager) Resizing() *component.Component {
	if m.resize == nil {
		return nil
	}
	return m.resize.target
}

// startDrag enters the dragging state when e is a primary press on c's drag
// handle that is neither on a link nor on the resize handle.
func (m *Manager) startDrag(e *dom.Event, c *component.Component) bool {
	if e.Button != dom.ButtonPrimary || e.Target == nil {
		return false
	}
	node := c.Node()
	if node == nil {
		return false
	}
	if e.Target.ClosestWithin("a", node) != nil {
		return false
	}
	if e.Target.ClosestWithin("."+component.ClassResizeHandle, node) != nil {
		return false
	}
	if e.Target.ClosestWithin("."+component.ClassDragHandle, node) == nil {
		return false
	}

	if m.drag != nil {
		m.endDrag(nil)
	}

	m.BringToFront(c)
	rect := node.BoundingRect()
	m.drag = &dragGesture{
		target:  c,
		offsetX: e.X - rect.Left,
		offsetY: e.Y - rect.Top,
	}
	node.AddClass(component.ClassDragging)
	m.drag.listeners = m.listenDocument(m.onDragMove, m.endDrag)
	e.PreventDefault()

	logging.FromContext(m.ctx).Debug().
		Str("window_id", c.ID()).
		Int("offset_x", m.drag.offsetX).
		Int("offset_y", m.drag.offsetY).
		Msg("drag started")
	return true
}

func (m *Manager) onDragMove(e *dom.Event) {
	if m.drag == nil {
		return
	}
	vw, vh := m.doc.Viewport()
	x := clamp(e.X-m.drag.offsetX, 0, vw-m.opts.MinVisibleWidth)
	y := clamp(e.Y-m.drag.offsetY, 0, vh-m.opts.MinVisibleHeight)
	m.drag.target.SetPosition(x, y)
}

// endDrag leaves the dragging state and persists the live position.
func (m *Manager) endDrag(*dom.Event) {
	d := m.drag
	if d == nil {
		return
	}
	m.drag = nil
	m.unlistenDocument(d.listeners)

	if node := d.target.Node(); node != nil {
		node.RemoveClass(component.ClassDragging)
	}
	pos := d.target.Position()
	m.SavePosition(d.target.ID(), pos.X, pos.Y)

	logging.FromContext(m.ctx).Debug().
		Str("window_id", d.target.ID()).
		Int("x", pos.X).
		Int("y", pos.Y).
		Msg("drag ended")
}

// startResize enters the resizing state for a primary press on c's resize
// handle. The press never reaches the window's drag listener.
func (m *Manager) startResize(e *dom.Event, c *component.Component) {
	if e.Button != dom.ButtonPrimary {
		return
	}
	node := c.Node()
	if node == nil {
		return
	}

	if m.resize != nil {
		m.endResize(nil)
	}

	m.BringToFront(c)
	rect := node.BoundingRect()
	size := c.Size()
	m.resize = &resizeGesture{
		target:      c,
		startWidth:  size.WidthOr(rect.Width),
		startHeight: size.HeightOr(rect.Height),
		startX:      e.X,
		startY:      e.Y,
	}
	node.AddClass(component.ClassResizing)
	m.resize.listeners = m.listenDocument(m.onResizeMove, m.endResize)
	e.PreventDefault()
	e.StopPropagation()

	logging.FromContext(m.ctx).Debug().
		Str("window_id", c.ID()).
		Int("width", m.resize.startWidth).
		Int("height", m.resize.startHeight).
		Msg("resize started")
}

func (m *Manager) onResizeMove(e *dom.Event) {
	r := m.resize
	if r == nil {
		return
	}
	width := max(m.opts.MinWidth, r.startWidth+e.X-r.startX)
	height := max(m.opts.MinHeight, r.startHeight+e.Y-r.startY)
	r.target.SetSize(entity.NewSize(width, height))
}

// endResize leaves the resizing state and persists the live size.
func (m *Manager) endResize(*dom.Event) {
	r := m.resize
	if r == nil {
		return
	}
	m.resize = nil
	m.unlistenDocument(r.listeners)

	if node := r.target.Node(); node != nil {
		node.RemoveClass(component.ClassResizing)
	}
	size := r.target.Size()
	m.SaveSize(r.target.ID(), size)

	logging.FromContext(m.ctx).Debug().
		Str("window_id", r.target.ID()).
		Int("width", size.WidthOr(0)).
		Int("height", size.HeightOr(0)).
		Msg("resize ended")
}

// clamp bounds v to [lo, hi]; lo wins when hi < lo.
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
