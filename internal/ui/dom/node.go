// Package dom provides the in-memory document model the window core works on.
// Nodes are plain Go values with a class list, a typed style and per-node event
// listeners, so components and the window manager can be exercised without any
// rendering backend. A host (the terminal front end, tests) paints the tree and
// feeds pointer events back through Document.Dispatch.
//
// The model is single-threaded: all calls must come from the host's event loop.
package dom

import (
	"slices"
	"strings"
)

// NodeKind distinguishes element nodes from text nodes.
type NodeKind int

const (
	// ElementNode is a tagged node that can carry classes, style and children.
	ElementNode NodeKind = iota
	// TextNode holds character data only.
	TextNode
)

// Node is an element or text node in the document tree.
type Node struct {
	kind    NodeKind
	tag     string
	id      string
	classes []string
	attrs   map[string]string
	text    string

	Style Style

	parent   *Node
	children []*Node

	listeners listenerSet

	intrinsicWidth  int
	intrinsicHeight int
}

// NewElement creates a detached element node with the given tag name.
func NewElement(tag string) *Node {
	return &Node{
		kind: ElementNode,
		tag:  strings.ToLower(tag),
	}
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{kind: TextNode, tag: "#text", text: text}
}

// Kind returns whether the node is an element or text node.
func (n *Node) Kind() NodeKind { return n.kind }

// IsElement reports whether the node is an element.
func (n *Node) IsElement() bool { return n != nil && n.kind == ElementNode }

// Tag returns the lower-case tag name ("#text" for text nodes).
func (n *Node) Tag() string { return n.tag }

// ID returns the node's id attribute.
func (n *Node) ID() string { return n.id }

// SetID sets the node's id attribute.
func (n *Node) SetID(id string) { n.id = id }

// Text returns the character data of a text node.
func (n *Node) Text() string { return n.text }

// SetText replaces the node's content with a single text child.
// On a text node it replaces the character data.
func (n *Node) SetText(text string) {
	if n.kind == TextNode {
		n.text = text
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = []*Node{NewText(text)}
	n.children[0].parent = n
}

// TextContent returns the concatenated text of the node and its descendants.
func (n *Node) TextContent() string {
	if n.kind == TextNode {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Attr returns an attribute value.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute value. "id" and "class" update the dedicated fields.
func (n *Node) SetAttr(name, value string) {
	switch name {
	case "id":
		n.id = value
		return
	case "class":
		n.classes = n.classes[:0]
		for _, c := range strings.Fields(value) {
			n.AddClass(c)
		}
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// HasClass reports whether the class list contains class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// AddClass adds class if it is not present.
func (n *Node) AddClass(class string) {
	if class == "" || n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
}

// RemoveClass removes class if present.
func (n *Node) RemoveClass(class string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool { return c == class })
}

// ToggleClass adds or removes class according to on.
func (n *Node) ToggleClass(class string, on bool) {
	if on {
		n.AddClass(class)
		return
	}
	n.RemoveClass(class)
}

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildCount returns the number of child nodes.
func (n *Node) ChildCount() int { return len(n.children) }

// FirstElementChild returns the first element child, or nil.
func (n *Node) FirstElementChild() *Node {
	for _, c := range n.children {
		if c.kind == ElementNode {
			return c
		}
	}
	return nil
}

// IndexOf returns the index of child in the child list, or -1.
func (n *Node) IndexOf(child *Node) int {
	return slices.Index(n.children, child)
}

// AppendChild appends child, detaching it from any previous parent first.
func (n *Node) AppendChild(child *Node) {
	if child == nil || child == n {
		return
	}
	child.Remove()
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild removes child and reports whether it was a child of n.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.IndexOf(child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	return true
}

// ReplaceChild puts newChild at oldChild's index and detaches oldChild.
func (n *Node) ReplaceChild(newChild, oldChild *Node) bool {
	i := n.IndexOf(oldChild)
	if i < 0 || newChild == nil {
		return false
	}
	if newChild == oldChild {
		return true
	}
	newChild.Remove()
	// Removing newChild may have shifted oldChild if both shared this parent.
	i = n.IndexOf(oldChild)
	n.children[i] = newChild
	newChild.parent = n
	oldChild.parent = nil
	return true
}

// Remove detaches the node from its parent.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Matches reports whether the node matches a simple selector.
func (n *Node) Matches(selector string) bool {
	return parseSelector(selector).match(n)
}

// Closest returns the nearest inclusive ancestor matching selector.
func (n *Node) Closest(selector string) *Node {
	return n.ClosestWithin(selector, nil)
}

// ClosestWithin is Closest that stops after checking boundary.
// A nil boundary walks up to the root.
func (n *Node) ClosestWithin(selector string, boundary *Node) *Node {
	sel := parseSelector(selector)
	for cur := n; cur != nil; cur = cur.parent {
		if sel.match(cur) {
			return cur
		}
		if cur == boundary {
			return nil
		}
	}
	return nil
}

// QuerySelector returns the first descendant (depth-first, excluding n) matching selector.
func (n *Node) QuerySelector(selector string) *Node {
	sel := parseSelector(selector)
	var found *Node
	n.walk(func(d *Node) bool {
		if d != n && sel.match(d) {
			found = d
			return false
		}
		return true
	})
	return found
}

// QuerySelectorAll returns every descendant matching selector in document order.
func (n *Node) QuerySelectorAll(selector string) []*Node {
	sel := parseSelector(selector)
	var out []*Node
	n.walk(func(d *Node) bool {
		if d != n && sel.match(d) {
			out = append(out, d)
		}
		return true
	})
	return out
}

// walk visits n and its descendants depth-first until visit returns false.
func (n *Node) walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}

// SetIntrinsicSize records the size the host measured for the node's content.
func (n *Node) SetIntrinsicSize(width, height int) {
	n.intrinsicWidth = width
	n.intrinsicHeight = height
}

// IntrinsicSize returns the last measured content size.
func (n *Node) IntrinsicSize() (width, height int) {
	return n.intrinsicWidth, n.intrinsicHeight
}

type selector struct {
	kind  byte // '.', '#' or 't' for tag
	value string
}

func parseSelector(s string) selector {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "."):
		return selector{kind: '.', value: s[1:]}
	case strings.HasPrefix(s, "#"):
		return selector{kind: '#', value: s[1:]}
	default:
		return selector{kind: 't', value: strings.ToLower(s)}
	}
}

func (s selector) match(n *Node) bool {
	if n == nil || n.kind != ElementNode || s.value == "" {
		return false
	}
	switch s.kind {
	case '.':
		return n.HasClass(s.value)
	case '#':
		return n.id == s.value
	default:
		return n.tag == s.value
	}
}
