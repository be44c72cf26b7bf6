package dom

import "slices"

// EventType names a dispatched event.
type EventType string

// Event types dispatched by hosts.
const (
	EventPointerDown   EventType = "pointerdown"
	EventPointerMove   EventType = "pointermove"
	EventPointerUp     EventType = "pointerup"
	EventPointerCancel EventType = "pointercancel"
	EventClick         EventType = "click"
	EventBlur          EventType = "blur"
)

// Button identifies the pointer button of a pointer event.
type Button int

// Pointer buttons, numbered like DOM MouseEvent.button.
const (
	ButtonPrimary Button = iota
	ButtonAuxiliary
	ButtonSecondary
)

// Event is a pointer or document event travelling through the tree.
type Event struct {
	Type   EventType
	Target *Node
	// CurrentTarget is the node whose listener is running; nil for document listeners.
	CurrentTarget *Node
	X, Y          int
	Button        Button

	stopped          bool
	defaultPrevented bool
}

// StopPropagation prevents the event from reaching further ancestors and the document.
func (e *Event) StopPropagation() { e.stopped = true }

// PreventDefault marks the default host action as cancelled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// Handler handles a dispatched event.
type Handler func(*Event)

// ListenerID identifies a registered listener for later removal.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn Handler
}

type listenerSet struct {
	byType map[EventType][]listener
	next   ListenerID
}

func (s *listenerSet) add(t EventType, fn Handler) ListenerID {
	if s.byType == nil {
		s.byType = make(map[EventType][]listener)
	}
	s.next++
	s.byType[t] = append(s.byType[t], listener{id: s.next, fn: fn})
	return s.next
}

func (s *listenerSet) remove(t EventType, id ListenerID) bool {
	ls := s.byType[t]
	i := slices.IndexFunc(ls, func(l listener) bool { return l.id == id })
	if i < 0 {
		return false
	}
	s.byType[t] = slices.Delete(ls, i, i+1)
	return true
}

func (s *listenerSet) snapshot(t EventType) []listener {
	return slices.Clone(s.byType[t])
}

// AddEventListener registers fn for events of type t on the node.
func (n *Node) AddEventListener(t EventType, fn Handler) ListenerID {
	return n.listeners.add(t, fn)
}

// RemoveEventListener removes a listener and reports whether it was registered.
func (n *Node) RemoveEventListener(t EventType, id ListenerID) bool {
	return n.listeners.remove(t, id)
}

// ListenerCount returns the number of listeners registered for t on the node.
func (n *Node) ListenerCount(t EventType) int {
	return len(n.listeners.byType[t])
}

func (n *Node) fire(e *Event) {
	for _, l := range n.listeners.snapshot(e.Type) {
		e.CurrentTarget = n
		l.fn(e)
	}
}
