package terminal

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/bnema/startdash/internal/ui/component"
	"github.com/bnema/startdash/internal/ui/dom"
)

var blockTags = map[string]bool{
	"div": true, "p": true, "section": true, "header": true, "footer": true,
	"ul": true, "ol": true, "li": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "br": true, "main": true, "article": true,
}

var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "strong": true, "b": true,
}

// span is a run of text with one style and one owning element.
type span struct {
	text  string
	style styleID
	owner *dom.Node
}

// glyph is one grapheme ready for the canvas.
type glyph struct {
	text  string
	width int
	style styleID
	owner *dom.Node
}

type flow struct {
	lines [][]span
	cur   []span
}

// layoutText flattens a window's subtree into logical lines. Block elements
// start a new line; inline elements and text continue the current one.
func layoutText(root *dom.Node) [][]span {
	f := &flow{}
	style := styleFor(root, styleNormal)
	for _, child := range root.Children() {
		f.walk(child, style, root)
	}
	f.breakLine()
	return f.lines
}

func (f *flow) breakLine() {
	if len(f.cur) > 0 {
		f.lines = append(f.lines, f.cur)
		f.cur = nil
	}
}

func (f *flow) text(s string, style styleID, owner *dom.Node) {
	if len(f.cur) == 0 {
		s = strings.TrimLeft(s, " ")
	}
	if s == "" {
		return
	}
	f.cur = append(f.cur, span{text: s, style: style, owner: owner})
}

func (f *flow) walk(n *dom.Node, style styleID, owner *dom.Node) {
	if !n.IsElement() {
		f.text(n.Text(), style, owner)
		return
	}
	// The resize handle is drawn on the frame.
	if n.HasClass(component.ClassResizeHandle) {
		return
	}

	style = styleFor(n, style)
	block := blockTags[n.Tag()]
	if block {
		f.breakLine()
	}
	switch n.Tag() {
	case "li":
		f.text("• ", style, n)
	case "button":
		f.text("[ ", style, n)
	}
	for _, child := range n.Children() {
		f.walk(child, style, n)
	}
	if n.Tag() == "button" {
		f.text(" ]", style, n)
	}
	if block {
		f.breakLine()
	}
}

func styleFor(n *dom.Node, inherited styleID) styleID {
	switch {
	case n.Tag() == "a":
		return styleLink
	case n.Tag() == "button":
		return styleButton
	case n.HasClass("script-error"):
		return styleError
	case n.HasClass(component.ClassDragHandle):
		return styleHandle
	case headingTags[n.Tag()], n.HasClass("categorytitle"):
		return styleHeading
	case n.HasClass("subtitle"):
		return styleSubtle
	}
	return inherited
}

// shape breaks logical lines into rows no wider than width, wrapping at the
// last space when possible.
func shape(lines [][]span, width int) [][]glyph {
	width = max(1, width)
	var rows [][]glyph
	for _, line := range lines {
		var row []glyph
		rowWidth := 0
		lastSpace := -1
		for _, s := range line {
			for _, g := range graphemes(s) {
				if g.width > width {
					continue
				}
				if rowWidth+g.width > width {
					if g.text == " " {
						rows = append(rows, trimRight(row))
						row, rowWidth, lastSpace = nil, 0, -1
						continue
					}
					var carry []glyph
					if lastSpace >= 0 {
						carry = append(carry, row[lastSpace+1:]...)
						row = row[:lastSpace]
					}
					rows = append(rows, trimRight(row))
					row, rowWidth, lastSpace = carry, glyphsWidth(carry), -1
				}
				if g.text == " " {
					if len(row) == 0 {
						continue
					}
					lastSpace = len(row)
				}
				row = append(row, g)
				rowWidth += g.width
			}
		}
		rows = append(rows, trimRight(row))
	}
	return rows
}

// graphemes splits a span into glyphs, folding zero-width runes such as
// variation selectors into the preceding glyph.
func graphemes(s span) []glyph {
	out := make([]glyph, 0, len(s.text))
	for _, r := range s.text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			if len(out) > 0 {
				out[len(out)-1].text += string(r)
			}
			continue
		}
		out = append(out, glyph{text: string(r), width: w, style: s.style, owner: s.owner})
	}
	return out
}

func glyphsWidth(row []glyph) int {
	w := 0
	for _, g := range row {
		w += g.width
	}
	return w
}

func trimRight(row []glyph) []glyph {
	for len(row) > 0 && row[len(row)-1].text == " " {
		row = row[:len(row)-1]
	}
	return row
}

func widest(rows [][]glyph) int {
	w := 0
	for _, row := range rows {
		w = max(w, glyphsWidth(row))
	}
	return w
}
