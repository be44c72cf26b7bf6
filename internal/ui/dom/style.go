package dom

// Positioning schemes understood by the host renderer.
const (
	PositionStatic = ""
	PositionFixed  = "fixed"
)

// Style is the subset of presentational state the window core projects onto nodes.
// Nil lengths mean "auto".
type Style struct {
	Position  string
	Cursor    string
	Left      int
	Top       int
	Width     *int
	Height    *int
	MaxWidth  *int
	MaxHeight *int
	// ZIndex is the stacking order; zero means auto.
	ZIndex int
}

// Px returns a pointer to a pixel length.
func Px(v int) *int { return &v }

// Rect is an axis-aligned box in viewport coordinates.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Top + r.Height }

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// BoundingRect returns the node's box: offset from the style, size from the
// explicit style lengths or, per axis, from the intrinsic size the host measured.
func (n *Node) BoundingRect() Rect {
	r := Rect{Left: n.Style.Left, Top: n.Style.Top}
	r.Width = n.intrinsicWidth
	if n.Style.Width != nil {
		r.Width = *n.Style.Width
	}
	r.Height = n.intrinsicHeight
	if n.Style.Height != nil {
		r.Height = *n.Style.Height
	}
	return r
}
