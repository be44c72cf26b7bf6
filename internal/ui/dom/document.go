package dom

// Document owns the body root, the viewport size and document-scoped listeners.
type Document struct {
	body      *Node
	width     int
	height    int
	listeners listenerSet
}

// NewDocument creates a document with an empty body and the given viewport.
func NewDocument(viewportWidth, viewportHeight int) *Document {
	return &Document{
		body:   NewElement("body"),
		width:  viewportWidth,
		height: viewportHeight,
	}
}

// Body returns the root container.
func (d *Document) Body() *Node { return d.body }

// Viewport returns the viewport size.
func (d *Document) Viewport() (width, height int) { return d.width, d.height }

// SetViewport updates the viewport size.
func (d *Document) SetViewport(width, height int) {
	d.width = width
	d.height = height
}

// AddEventListener registers a document-scoped listener. Document listeners
// receive every bubbling event that was not stopped, plus blur events.
func (d *Document) AddEventListener(t EventType, fn Handler) ListenerID {
	return d.listeners.add(t, fn)
}

// RemoveEventListener removes a document-scoped listener.
func (d *Document) RemoveEventListener(t EventType, id ListenerID) bool {
	return d.listeners.remove(t, id)
}

// ListenerCount returns the number of document-scoped listeners for t.
func (d *Document) ListenerCount(t EventType) int {
	return len(d.listeners.byType[t])
}

// Dispatch delivers e to its target, each ancestor in turn, and finally the
// document, unless a listener stops propagation. A nil target goes straight
// to the document.
func (d *Document) Dispatch(e *Event) {
	for cur := e.Target; cur != nil; cur = cur.parent {
		cur.fire(e)
		if e.stopped {
			return
		}
	}
	e.CurrentTarget = nil
	for _, l := range d.listeners.snapshot(e.Type) {
		l.fn(e)
	}
}

// Blur tells document listeners that the host lost input focus.
func (d *Document) Blur() {
	d.Dispatch(&Event{Type: EventBlur})
}

// ElementByID returns the first element in the body with the given id.
func (d *Document) ElementByID(id string) *Node {
	return d.body.QuerySelector("#" + id)
}
