// Package window arbitrates the desk's managed windows: it tracks mounted
// components, turns pointer events into drag and resize gestures, owns the
// stacking order and persists layout when a gesture ends.
//
// The manager is single-threaded. Every method must be called from the
// host's event loop.
package window

import (
	"context"

	"github.com/bnema/startdash/internal/domain/entity"
	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/component"
	"github.com/bnema/startdash/internal/ui/dom"
)

// LayoutStore persists window geometry keyed by window id.
type LayoutStore interface {
	LoadPosition(ctx context.Context, id entity.WindowID) (entity.Position, bool)
	SavePosition(ctx context.Context, id entity.WindowID, pos entity.Position) error
	LoadSize(ctx context.Context, id entity.WindowID) (entity.Size, bool)
	SaveSize(ctx context.Context, id entity.WindowID, size entity.Size) error
}

// Options holds the gesture limits and the first stacking value.
type Options struct {
	// MinVisibleWidth and MinVisibleHeight keep part of a dragged window on screen.
	MinVisibleWidth  int
	MinVisibleHeight int
	// MinWidth and MinHeight floor a resize.
	MinWidth  int
	MinHeight int
	// InitialZ is the counter value before the first BringToFront.
	InitialZ int
}

// DefaultOptions returns the limits used by a pixel-based host.
func DefaultOptions() Options {
	return Options{
		MinVisibleWidth:  100,
		MinVisibleHeight: 50,
		MinWidth:         200,
		MinHeight:        100,
		InitialZ:         1000,
	}
}

// binding records the listeners attached for one window so a later attach or
// unregister can remove them.
type binding struct {
	node       *dom.Node
	downID     dom.ListenerID
	handle     *dom.Node
	handleDown dom.ListenerID
}

// Manager is the window manager.
type Manager struct {
	ctx   context.Context
	doc   *dom.Document
	store LayoutStore
	opts  Options

	registry map[entity.WindowID]*component.Component
	bindings map[entity.WindowID]*binding
	zCounter int

	drag   *dragGesture
	resize *resizeGesture
}

// NewManager creates a manager for windows living in doc.
func NewManager(ctx context.Context, doc *dom.Document, store LayoutStore, opts Options) *Manager {
	return &Manager{
		ctx:      logging.WithComponent(ctx, "window-manager"),
		doc:      doc,
		store:    store,
		opts:     opts,
		registry: make(map[entity.WindowID]*component.Component),
		bindings: make(map[entity.WindowID]*binding),
		zCounter: opts.InitialZ,
	}
}

// Options returns the active limits.
func (m *Manager) Options() Options { return m.opts }

// SetOptions replaces the gesture limits. The stacking counter only moves up,
// so a lower InitialZ is ignored once windows have been raised.
func (m *Manager) SetOptions(opts Options) {
	m.opts = opts
	if opts.InitialZ > m.zCounter {
		m.zCounter = opts.InitialZ
	}
}

// RegisterComponent adds c to the registry, restores its persisted geometry and
// attaches drag and resize handlers according to its flags.
func (m *Manager) RegisterComponent(c *component.Component) {
	id := c.ID()
	if prev, ok := m.registry[id]; ok && prev != c {
		m.UnregisterComponent(prev)
	}
	m.registry[id] = c

	if pos, ok := m.LoadPosition(id); ok {
		c.SetPosition(pos.X, pos.Y)
	}
	if size, ok := m.LoadSize(id); ok {
		c.SetSize(size)
	}

	c.SetReRegisterCallback(func() { m.ReRegisterComponent(c) })
	c.SetDetachCallback(func() { m.UnregisterComponent(c) })
	m.attach(c)

	logging.FromContext(m.ctx).Debug().
		Str("window_id", id).
		Bool("draggable", c.IsDraggable()).
		Bool("resizable", c.IsResizable()).
		Msg("window registered")
}

// ReRegisterComponent re-attaches handlers to c's current node. It never touches
// the registry or persisted layout and may be called any number of times.
func (m *Manager) ReRegisterComponent(c *component.Component) {
	if m.registry[c.ID()] != c {
		return
	}
	m.attach(c)
}

// UnregisterComponent detaches every handler bound for c, ends any gesture it
// owns and drops it from the registry.
func (m *Manager) UnregisterComponent(c *component.Component) {
	id := c.ID()
	if m.registry[id] != c {
		return
	}
	if m.drag != nil && m.drag.target == c {
		m.endDrag(nil)
	}
	if m.resize != nil && m.resize.target == c {
		m.endResize(nil)
	}
	m.unbind(id)
	delete(m.registry, id)
	c.SetReRegisterCallback(nil)
	c.SetDetachCallback(nil)

	logging.FromContext(m.ctx).Debug().Str("window_id", id).Msg("window unregistered")
}

// Component returns the registered component with id.
func (m *Manager) Component(id entity.WindowID) (*component.Component, bool) {
	c, ok := m.registry[id]
	return c, ok
}

// Len returns the number of registered components.
func (m *Manager) Len() int { return len(m.registry) }

// BringToFront raises c above every other window and returns its new
// stacking value. An unmounted component is left alone and 0 is returned.
func (m *Manager) BringToFront(c *component.Component) int {
	node := c.Node()
	if node == nil {
		return 0
	}
	m.zCounter++
	node.Style.ZIndex = m.zCounter
	return m.zCounter
}

// SavePosition persists a position for id.
func (m *Manager) SavePosition(id entity.WindowID, x, y int) {
	if err := m.store.SavePosition(m.ctx, id, entity.Position{X: x, Y: y}); err != nil {
		logging.FromContext(m.ctx).Warn().Err(err).Str("window_id", id).Msg("failed to save window position")
	}
}

// LoadPosition returns the persisted position for id; ok is false when none is stored.
func (m *Manager) LoadPosition(id entity.WindowID) (entity.Position, bool) {
	return m.store.LoadPosition(m.ctx, id)
}

// SaveSize persists a size for id.
func (m *Manager) SaveSize(id entity.WindowID, size entity.Size) {
	if err := m.store.SaveSize(m.ctx, id, size); err != nil {
		logging.FromContext(m.ctx).Warn().Err(err).Str("window_id", id).Msg("failed to save window size")
	}
}

// LoadSize returns the persisted size for id; ok is false when none is stored.
func (m *Manager) LoadSize(id entity.WindowID) (entity.Size, bool) {
	return m.store.LoadSize(m.ctx, id)
}

// attach binds the pointer handlers for c's current node, replacing any
// handlers bound by an earlier attach.
func (m *Manager) attach(c *component.Component) {
	id := c.ID()
	m.unbind(id)

	node := c.Node()
	if node == nil {
		return
	}
	b := &binding{node: node}

	if c.IsDraggable() {
		node.AddClass(component.ClassDraggable)
		node.Style.Cursor = "move"
		node.Style.Position = dom.PositionFixed
		b.downID = node.AddEventListener(dom.EventPointerDown, func(e *dom.Event) {
			if !m.startDrag(e, c) {
				m.BringToFront(c)
			}
		})
	}

	if c.IsResizable() {
		handle := node.QuerySelector("." + component.ClassResizeHandle)
		if handle == nil {
			handle = dom.NewElement("div")
			handle.AddClass(component.ClassResizeHandle)
			node.AppendChild(handle)
		}
		b.handle = handle
		b.handleDown = handle.AddEventListener(dom.EventPointerDown, func(e *dom.Event) {
			m.startResize(e, c)
		})
	}

	if m.drag != nil && m.drag.target == c {
		node.AddClass(component.ClassDragging)
	}
	if m.resize != nil && m.resize.target == c {
		node.AddClass(component.ClassResizing)
	}

	m.bindings[id] = b
}

func (m *Manager) unbind(id entity.WindowID) {
	b, ok := m.bindings[id]
	if !ok {
		return
	}
	if b.downID != 0 {
		b.node.RemoveEventListener(dom.EventPointerDown, b.downID)
	}
	if b.handle != nil {
		b.handle.RemoveEventListener(dom.EventPointerDown, b.handleDown)
	}
	delete(m.bindings, id)
}
