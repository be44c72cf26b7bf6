// Package component provides the base for desk windows: a stateful unit that
// owns one rendered node and re-projects its identity, geometry and stacking
// order onto every node it renders.
package component

import (
	"errors"
	"fmt"

	"github.com/bnema/startdash/internal/domain/entity"
	"github.com/bnema/startdash/internal/ui/dom"
)

// Class names shared with the window manager and with widget markup.
const (
	ClassWindow       = "component-window"
	ClassDraggable    = "draggable"
	ClassDragHandle   = "drag-handle"
	ClassResizeHandle = "resize-handle"
	ClassDragging     = "dragging"
	ClassResizing     = "resizing"
)

var (
	// ErrNotMounted is returned by operations that need a live node.
	ErrNotMounted = errors.New("component not mounted")
	// ErrEmptyRender is returned when Render produced no element.
	ErrEmptyRender = errors.New("render produced no element")
)

// RenderResult is either a markup fragment or a ready node.
type RenderResult struct {
	Markup string
	Node   *dom.Node
}

// Markup wraps an HTML fragment.
func Markup(markup string) RenderResult { return RenderResult{Markup: markup} }

// Element wraps a ready node.
func Element(n *dom.Node) RenderResult { return RenderResult{Node: n} }

// Renderer produces a component's content. Render must be free of side
// effects and must not fail; missing data renders a placeholder.
type Renderer interface {
	Render() RenderResult
}

// Optional lifecycle hooks a Renderer may implement.
type (
	MountHook   interface{ OnMount() }
	UnmountHook interface{ OnUnmount() }
	UpdateHook  interface{ OnUpdate() }
)

// Config holds construction-time state.
type Config struct {
	ID        string
	Position  entity.Position
	Size      entity.Size
	Draggable bool
	Resizable bool
}

// NewConfig returns a draggable, non-resizable config at the origin.
func NewConfig(id string) Config {
	return Config{ID: id, Draggable: true}
}

// Component is the base every desk window embeds.
type Component struct {
	id        string
	content   Renderer
	position  entity.Position
	size      entity.Size
	draggable bool
	resizable bool

	node       *dom.Node
	reRegister func()
	detach     func()
}

// New creates an unmounted component rendering content.
func New(cfg Config, content Renderer) *Component {
	return &Component{
		id:        cfg.ID,
		content:   content,
		position:  cfg.Position,
		size:      cfg.Size.Clone(),
		draggable: cfg.Draggable,
		resizable: cfg.Resizable,
	}
}

// ID returns the stable identity.
func (c *Component) ID() string { return c.id }

// Node returns the live node, or nil when unmounted. The node changes on
// every Update; do not hold on to it.
func (c *Component) Node() *dom.Node { return c.node }

// IsMounted reports whether the component has a live node.
func (c *Component) IsMounted() bool { return c.node != nil }

// SetReRegisterCallback installs the callback run at the end of every Update.
// Only the last installed callback is kept.
func (c *Component) SetReRegisterCallback(fn func()) { c.reRegister = fn }

// SetDetachCallback installs the callback run when the component unmounts.
// Only the last installed callback is kept.
func (c *Component) SetDetachCallback(fn func()) { c.detach = fn }

// Mount renders the component and appends its node to container.
func (c *Component) Mount(container *dom.Node) error {
	if container == nil {
		return ErrNotMounted
	}
	if c.node != nil {
		c.Unmount()
	}

	el, err := c.renderElement()
	if err != nil {
		return err
	}
	container.AppendChild(el)
	c.node = el

	el.SetID(c.id)
	el.AddClass(ClassWindow)
	if c.draggable {
		el.AddClass(ClassDraggable)
	}
	c.applyPosition()
	c.applySize()

	if h, ok := c.content.(MountHook); ok {
		h.OnMount()
	}
	return nil
}

// Update re-renders and swaps the replacement node in place of the old one.
// Identity, marker classes, z-order and the resize handle move to the new node;
// geometry is re-applied from logical state.
func (c *Component) Update() error {
	old := c.node
	if old == nil || old.Parent() == nil {
		return ErrNotMounted
	}

	el, err := c.renderElement()
	if err != nil {
		return err
	}

	el.SetID(c.id)
	el.AddClass(ClassWindow)
	if c.draggable {
		el.AddClass(ClassDraggable)
	}
	el.Style.ZIndex = old.Style.ZIndex
	if c.resizable {
		if handle := old.QuerySelector("." + ClassResizeHandle); handle != nil {
			el.AppendChild(handle)
		}
	}

	old.Parent().ReplaceChild(el, old)
	c.node = el
	c.applyPosition()
	c.applySize()

	if h, ok := c.content.(UpdateHook); ok {
		h.OnUpdate()
	}
	if c.reRegister != nil {
		c.reRegister()
	}
	return nil
}

// Unmount removes the node. It is a no-op when already unmounted.
func (c *Component) Unmount() {
	if c.node == nil {
		return
	}
	if c.detach != nil {
		c.detach()
	}
	c.node.Remove()
	c.node = nil

	if h, ok := c.content.(UnmountHook); ok {
		h.OnUnmount()
	}
}

func (c *Component) renderElement() (*dom.Node, error) {
	res := c.content.Render()
	if res.Node != nil {
		if !res.Node.IsElement() {
			return nil, ErrEmptyRender
		}
		return res.Node, nil
	}
	el, err := dom.ParseFirstElement(res.Markup)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", c.id, err)
	}
	if el == nil {
		return nil, ErrEmptyRender
	}
	return el, nil
}

// SetPosition moves the component.
func (c *Component) SetPosition(x, y int) {
	c.position = entity.Position{X: x, Y: y}
	c.applyPosition()
}

// Position returns the logical top-left offset.
func (c *Component) Position() entity.Position { return c.position }

// SetSize sets the axes present in size; nil axes keep their current value.
func (c *Component) SetSize(size entity.Size) {
	c.size = c.size.Merge(size)
	c.applySize()
}

// Size returns a copy of the logical size.
func (c *Component) Size() entity.Size { return c.size.Clone() }

// IsDraggable reports whether the manager should attach drag handlers.
func (c *Component) IsDraggable() bool { return c.draggable }

// SetDraggable toggles dragging; the draggable class follows on the live node.
func (c *Component) SetDraggable(draggable bool) {
	c.draggable = draggable
	if c.node != nil {
		c.node.ToggleClass(ClassDraggable, draggable)
	}
}

// IsResizable reports whether the manager should attach resize handlers.
func (c *Component) IsResizable() bool { return c.resizable }

// SetResizable toggles resizing. Takes effect on the next registration.
func (c *Component) SetResizable(resizable bool) { c.resizable = resizable }

// ZIndex returns the live node's stacking order, zero when unmounted.
func (c *Component) ZIndex() int {
	if c.node == nil {
		return 0
	}
	return c.node.Style.ZIndex
}

func (c *Component) applyPosition() {
	if c.node == nil {
		return
	}
	c.node.Style.Position = dom.PositionFixed
	c.node.Style.Left = c.position.X
	c.node.Style.Top = c.position.Y
}

func (c *Component) applySize() {
	if c.node == nil {
		return
	}
	if c.size.Width != nil {
		c.node.Style.Width = dom.Px(*c.size.Width)
		c.node.Style.MaxWidth = dom.Px(*c.size.Width)
	}
	if c.size.Height != nil {
		c.node.Style.Height = dom.Px(*c.size.Height)
		c.node.Style.MaxHeight = dom.Px(*c.size.Height)
	}
}
