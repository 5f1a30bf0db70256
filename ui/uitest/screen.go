// Package uitest renders ui components in memory and queries the result the
// way a user perceives it: by text, by role and by test id.
package uitest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Screen queries the elements under a root node.
type Screen struct {
	root func() *html.Node
}

// NewScreen returns a Screen over a fixed node, for example a parsed document.
func NewScreen(root *html.Node) *Screen {
	return &Screen{root: func() *html.Node { return root }}
}

// Root returns the node queries start from, or nil once unmounted.
func (s *Screen) Root() *html.Node {
	return s.root()
}

// GetByText returns the single element whose own text equals text after
// whitespace normalisation.
func (s *Screen) GetByText(text string) (*html.Node, error) {
	matches := s.collect(func(n *html.Node) bool {
		return normalize(ownText(n)) == text
	})
	return single(matches, fmt.Sprintf("text %q", text))
}

// QueryByText is GetByText without the error: it returns the first match or nil.
func (s *Screen) QueryByText(text string) *html.Node {
	matches := s.collect(func(n *html.Node) bool {
		return normalize(ownText(n)) == text
	})
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// GetAllByText returns every element whose own text matches re.
func (s *Screen) GetAllByText(re *regexp.Regexp) ([]*html.Node, error) {
	matches := s.QueryAllByText(re)
	if len(matches) == 0 {
		return nil, fmt.Errorf("unable to find an element with text matching %s", re)
	}
	return matches, nil
}

// QueryAllByText returns every element whose own text matches re, possibly none.
func (s *Screen) QueryAllByText(re *regexp.Regexp) []*html.Node {
	return s.collect(func(n *html.Node) bool {
		own := normalize(ownText(n))
		return own != "" && re.MatchString(own)
	})
}

// GetByTestID returns the single element with the given data-testid.
func (s *Screen) GetByTestID(id string) (*html.Node, error) {
	matches := s.collect(func(n *html.Node) bool {
		return Attr(n, "data-testid") == id
	})
	return single(matches, fmt.Sprintf("data-testid %q", id))
}

// GetByRole returns the single element with the given ARIA role. A non-empty
// name must also equal the element's accessible name.
func (s *Screen) GetByRole(role, name string) (*html.Node, error) {
	matches := s.collect(func(n *html.Node) bool {
		if Role(n) != role {
			return false
		}
		return name == "" || AccessibleName(n) == name
	})
	desc := fmt.Sprintf("role %q", role)
	if name != "" {
		desc += fmt.Sprintf(" and name %q", name)
	}
	return single(matches, desc)
}

// GetAllByRole returns every element with the given ARIA role.
func (s *Screen) GetAllByRole(role string) ([]*html.Node, error) {
	matches := s.collect(func(n *html.Node) bool { return Role(n) == role })
	if len(matches) == 0 {
		return nil, fmt.Errorf("unable to find an element with role %q", role)
	}
	return matches, nil
}

func (s *Screen) collect(match func(*html.Node) bool) []*html.Node {
	root := s.root()
	if root == nil {
		return nil
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
			if match(n) {
				out = append(out, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func single(matches []*html.Node, desc string) (*html.Node, error) {
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("unable to find an element with %s", desc)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("found %d elements with %s", len(matches), desc)
	}
}

// Role returns the explicit or implicit ARIA role of n, or "".
func Role(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	if r := Attr(n, "role"); r != "" {
		return r
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return "heading"
	case atom.Ul, atom.Ol:
		return "list"
	case atom.Li:
		return "listitem"
	case atom.Button:
		return "button"
	case atom.Header:
		return "banner"
	case atom.P:
		return "paragraph"
	}
	return ""
}

// HeadingLevel returns 1-6 for h1-h6 and 0 for anything else.
func HeadingLevel(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
		return 0
	}
	level, err := strconv.Atoi(n.Data[1:])
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}

// AccessibleName is aria-label when present, otherwise the text content.
func AccessibleName(n *html.Node) string {
	if label := Attr(n, "aria-label"); label != "" {
		return label
	}
	return TextContent(n)
}

// TextContent returns the whitespace-normalised text of n and its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return normalize(b.String())
}

// Attr returns the value of attribute key on n, or "".
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether n carries class in its class list.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Closest returns n or its nearest ancestor with the given class.
func Closest(n *html.Node, class string) *html.Node {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && HasClass(p, class) {
			return p
		}
	}
	return nil
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func ownText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
