package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/startdash/internal/ui/dom"
)

type styleID int

const (
	styleNormal styleID = iota
	styleSubtle
	styleHeading
	styleHandle
	styleLink
	styleButton
	styleError
	styleFrameIdle
	styleFrameFocused
	styleFrameGesture
	styleCount
)

// cell is one terminal column. A wide glyph occupies its cell and leaves the
// next one with empty text.
type cell struct {
	text  string
	style styleID
	owner *dom.Node
}

// canvas is a frame buffer that also remembers which node painted each cell,
// so the last frame doubles as the hit-test map.
type canvas struct {
	width  int
	height int
	cells  []cell
}

func newCanvas(width, height int) *canvas {
	width, height = max(0, width), max(0, height)
	c := &canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i].text = " "
	}
	return c
}

func (c *canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return &c.cells[y*c.width+x]
}

// ownerAt returns the node painted at (x, y), or nil for empty desk.
func (c *canvas) ownerAt(x, y int) *dom.Node {
	if cl := c.at(x, y); cl != nil {
		return cl.owner
	}
	return nil
}

// put writes a glyph of the given column width at (x, y). Glyphs that would
// straddle the right edge are dropped.
func (c *canvas) put(x, y int, g glyph) {
	if x < 0 || y < 0 || y >= c.height || x+g.width > c.width {
		return
	}
	c.splitWide(x, y)
	cl := c.at(x, y)
	cl.text, cl.style, cl.owner = g.text, g.style, g.owner
	if g.width == 2 {
		c.splitWide(x+1, y)
		next := c.at(x+1, y)
		next.text, next.style, next.owner = "", g.style, g.owner
	}
}

// fill paints blanks over a rect, clipped to the canvas.
func (c *canvas) fill(r dom.Rect, style styleID, owner *dom.Node) {
	for y := r.Top; y < r.Bottom(); y++ {
		for x := r.Left; x < r.Right(); x++ {
			c.put(x, y, glyph{text: " ", width: 1, style: style, owner: owner})
		}
	}
}

// splitWide blanks the other half of a wide glyph that (x, y) belongs to.
func (c *canvas) splitWide(x, y int) {
	cl := c.at(x, y)
	if cl == nil {
		return
	}
	if cl.text == "" {
		if prev := c.at(x-1, y); prev != nil {
			prev.text = " "
		}
		return
	}
	if next := c.at(x+1, y); next != nil && next.text == "" {
		next.text = " "
	}
}

// render turns the buffer into styled lines, one lipgloss render per run of
// equally styled cells.
func (c *canvas) render(styles *[styleCount]lipgloss.Style) string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		current := styleID(-1)
		for x := 0; x < c.width; x++ {
			cl := c.cells[y*c.width+x]
			if cl.style != current && run.Len() > 0 {
				out.WriteString(styles[current].Render(run.String()))
				run.Reset()
			}
			current = cl.style
			run.WriteString(cl.text)
		}
		if run.Len() > 0 {
			out.WriteString(styles[current].Render(run.String()))
			run.Reset()
		}
	}
	return out.String()
}

// plain returns the buffer without styling, for tests and logs.
func (c *canvas) plain() string {
	var out strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		for x := 0; x < c.width; x++ {
			out.WriteString(c.cells[y*c.width+x].text)
		}
	}
	return out.String()
}
