package ui

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tree is the output of a component render: a markup tree plus the click
// handlers bound to its elements. Handlers never end up in the serialised
// markup.
type Tree struct {
	Root     *html.Node
	handlers map[*html.Node]func()
}

func newTree() *Tree {
	return &Tree{handlers: make(map[*html.Node]func())}
}

// Handler returns the click handler bound to n, if any.
func (t *Tree) Handler(n *html.Node) (func(), bool) {
	if t == nil || n == nil {
		return nil, false
	}
	h, ok := t.handlers[n]
	return h, ok
}

// Contains reports whether n belongs to this tree.
func (t *Tree) Contains(n *html.Node) bool {
	if t == nil || t.Root == nil || n == nil {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if p == t.Root {
			return true
		}
	}
	return false
}

// onClick binds fn to n.
func (t *Tree) onClick(n *html.Node, fn func()) *html.Node {
	t.handlers[n] = fn
	return n
}

// attrs is a flat key/value list: attrs("class", "App", "id", "root").
type attrs []string

// element creates an element node with the given attributes and children.
func element(tag string, a attrs, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(a); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: a[i], Val: a[i+1]})
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// text creates a text node.
func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
