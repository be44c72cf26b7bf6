package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses an HTML fragment into detached nodes. Comments and
// doctype nodes are dropped; whitespace-only text between elements is kept
// out so FirstElementChild and child counts match the authored markup.
// Inline style attributes are ignored: layout is driven by Node.Style.
func ParseFragment(markup string) ([]*Node, error) {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	parsed, err := html.ParseFragment(strings.NewReader(markup), root)
	if err != nil {
		return nil, fmt.Errorf("parse markup fragment: %w", err)
	}

	nodes := make([]*Node, 0, len(parsed))
	for _, p := range parsed {
		if n := convert(p); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// ParseFirstElement returns the first element of a fragment, or nil when the
// fragment holds no element.
func ParseFirstElement(markup string) (*Node, error) {
	nodes, err := ParseFragment(markup)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if n.IsElement() {
			return n, nil
		}
	}
	return nil, nil
}

func convert(p *html.Node) *Node {
	switch p.Type {
	case html.TextNode:
		if strings.TrimSpace(p.Data) == "" {
			return nil
		}
		return NewText(collapseSpace(p.Data))
	case html.ElementNode:
		n := NewElement(p.Data)
		for _, a := range p.Attr {
			if a.Namespace != "" || a.Key == "style" {
				continue
			}
			n.SetAttr(a.Key, a.Val)
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				n.AppendChild(child)
			}
		}
		return n
	default:
		return nil
	}
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	out := strings.Join(fields, " ")
	if s != "" && isSpace(s[0]) {
		out = " " + out
	}
	if len(s) > 1 && isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
