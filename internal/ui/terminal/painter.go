package terminal

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/startdash/internal/cli/styles"
	"github.com/bnema/startdash/internal/ui/component"
	"github.com/bnema/startdash/internal/ui/dom"
)

// resizeGrip marks the resize handle in a window's bottom-right corner.
const resizeGrip = "◢"

// painter draws the document's windows back to front and measures the
// intrinsic size of windows without explicit lengths.
type painter struct {
	theme  *styles.Theme
	styles [styleCount]lipgloss.Style
}

func newPainter(theme *styles.Theme) *painter {
	p := &painter{theme: theme}
	p.styles[styleNormal] = theme.Normal
	p.styles[styleSubtle] = theme.Subtle
	p.styles[styleHeading] = theme.Heading
	p.styles[styleHandle] = theme.Handle
	p.styles[styleLink] = theme.Link
	p.styles[styleButton] = theme.Button
	p.styles[styleError] = theme.ErrorStyle
	p.styles[styleFrameIdle] = theme.FrameIdle
	p.styles[styleFrameFocused] = theme.FrameFocused
	p.styles[styleFrameGesture] = theme.FrameGesture
	return p
}

// windows returns the body's managed windows in paint order: ascending z,
// then document order.
func windows(doc *dom.Document) []*dom.Node {
	var out []*dom.Node
	for _, n := range doc.Body().Children() {
		if n.IsElement() && n.HasClass(component.ClassWindow) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Style.ZIndex < out[j].Style.ZIndex
	})
	return out
}

// paint renders doc into a fresh canvas of the document's viewport size.
func (p *painter) paint(doc *dom.Document) *canvas {
	vw, vh := doc.Viewport()
	cv := newCanvas(vw, vh)
	wins := windows(doc)
	for i, n := range wins {
		p.paintWindow(cv, n, i == len(wins)-1)
	}
	return cv
}

func (p *painter) paintWindow(cv *canvas, n *dom.Node, top bool) {
	limit := cv.width - 2
	switch {
	case n.Style.Width != nil:
		limit = *n.Style.Width - 2
	case n.Style.MaxWidth != nil:
		limit = min(limit, *n.Style.MaxWidth-2)
	}
	rows := shape(layoutText(n), limit)
	n.SetIntrinsicSize(widest(rows)+2, len(rows)+2)

	r := n.BoundingRect()
	r.Width, r.Height = max(2, r.Width), max(2, r.Height)

	frame, border := styleFrameIdle, p.theme.FrameBorder
	switch {
	case n.HasClass(component.ClassDragging), n.HasClass(component.ClassResizing):
		frame, border = styleFrameGesture, p.theme.GestureBorder
	case top:
		frame = styleFrameFocused
	}

	cv.fill(r, styleNormal, n)
	p.paintFrame(cv, n, r, frame, border)

	inner := r.Width - 2
	for i, row := range rows {
		if i >= r.Height-2 {
			break
		}
		x := r.Left + 1
		for _, g := range row {
			if x+g.width > r.Left+1+inner {
				break
			}
			cv.put(x, r.Top+1+i, g)
			x += g.width
		}
	}
}

func (p *painter) paintFrame(cv *canvas, n *dom.Node, r dom.Rect, frame styleID, b lipgloss.Border) {
	// The top edge belongs to the drag handle so the frame can be grabbed.
	topOwner := n
	if !n.HasClass(component.ClassDragHandle) {
		if h := n.QuerySelector("." + component.ClassDragHandle); h != nil {
			topOwner = h
		}
	}
	edge := func(x, y int, s string, owner *dom.Node) {
		cv.put(x, y, glyph{text: s, width: 1, style: frame, owner: owner})
	}

	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.Left + 1; x < right; x++ {
		edge(x, r.Top, b.Top, topOwner)
		edge(x, bottom, b.Bottom, n)
	}
	for y := r.Top + 1; y < bottom; y++ {
		edge(r.Left, y, b.Left, n)
		edge(right, y, b.Right, n)
	}
	edge(r.Left, r.Top, b.TopLeft, topOwner)
	edge(right, r.Top, b.TopRight, topOwner)
	edge(r.Left, bottom, b.BottomLeft, n)

	if grip := n.QuerySelector("." + component.ClassResizeHandle); grip != nil {
		edge(right, bottom, resizeGrip, grip)
	} else {
		edge(right, bottom, b.BottomRight, n)
	}
}
