// Package entity defines the domain entities shared by the desk layers.
package entity

// WindowID identifies a managed window. It doubles as the persistence key.
type WindowID = string

// Position is a window's top-left offset relative to the viewport.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size holds optional window dimensions; a nil axis means intrinsic size.
type Size struct {
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`
}

// NewSize returns a size with both axes set.
func NewSize(width, height int) Size {
	return Size{Width: &width, Height: &height}
}

// IsZero reports whether neither axis is set.
func (s Size) IsZero() bool {
	return s.Width == nil && s.Height == nil
}

// WidthOr returns the width, or def when unset.
func (s Size) WidthOr(def int) int {
	if s.Width == nil {
		return def
	}
	return *s.Width
}

// HeightOr returns the height, or def when unset.
func (s Size) HeightOr(def int) int {
	if s.Height == nil {
		return def
	}
	return *s.Height
}

// Clone returns a deep copy so callers cannot alias the axis pointers.
func (s Size) Clone() Size {
	var out Size
	if s.Width != nil {
		w := *s.Width
		out.Width = &w
	}
	if s.Height != nil {
		h := *s.Height
		out.Height = &h
	}
	return out
}

// Merge returns s with every axis set in other overriding the same axis of s.
func (s Size) Merge(other Size) Size {
	out := s.Clone()
	if other.Width != nil {
		w := *other.Width
		out.Width = &w
	}
	if other.Height != nil {
		h := *other.Height
		out.Height = &h
	}
	return out
}

// WindowLayout is the persisted geometry of one window.
type WindowLayout struct {
	ID       WindowID
	Position *Position
	Size     *Size
}
