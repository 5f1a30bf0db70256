package ui

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// DocumentOptions controls the page shell produced by RenderDocument.
type DocumentOptions struct {
	Lang        string
	Stylesheets []string
	Scripts     []string
}

// Render writes the markup of t to w.
func Render(w io.Writer, t *Tree) error {
	if t == nil || t.Root == nil {
		return errors.New("nothing to render")
	}
	return html.Render(w, t.Root)
}

// RenderDocument writes a complete HTML document with t mounted under
// <div id="root">. The tree itself is copied, not reparented.
func RenderDocument(w io.Writer, t *Tree, opts DocumentOptions) error {
	if t == nil || t.Root == nil {
		return errors.New("nothing to render")
	}
	lang := opts.Lang
	if lang == "" {
		lang = "ko"
	}

	head := element("head", nil,
		element("meta", attrs{"charset", "utf-8"}),
		element("meta", attrs{"name", "viewport", "content", "width=device-width, initial-scale=1"}),
		element("title", nil, text(Title)),
	)
	for _, href := range opts.Stylesheets {
		head.AppendChild(element("link", attrs{"rel", "stylesheet", "href", href}))
	}

	body := element("body", nil, element("div", attrs{"id", "root"}, cloneNode(t.Root)))
	for _, src := range opts.Scripts {
		body.AppendChild(element("script", attrs{"src", src, "defer", ""}))
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(element("html", attrs{"lang", lang}, head, body))

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return nil
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}
