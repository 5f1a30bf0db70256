package uitest

import (
	"context"
	"errors"
	"fmt"

	"github.com/stretchr/testify/mock"
	"golang.org/x/net/html"

	"github.com/84adam/jenkins-test-app/ui"
)

var (
	// ErrUnmounted is returned for interactions after Unmount.
	ErrUnmounted = errors.New("component is not mounted")
	// ErrNoHandler is returned when a clicked element has nothing listening.
	ErrNoHandler = errors.New("element has no click handler")
)

// Component is anything that renders a ui.Tree.
type Component interface {
	Render() *ui.Tree
}

// Result is a mounted component.
type Result struct {
	Screen *Screen
	User   *User

	component Component
	tree      *ui.Tree
}

// Render mounts c and returns its screen together with a user controller.
func Render(c Component) *Result {
	r := &Result{component: c}
	r.Screen = &Screen{root: r.Container}
	r.User = &User{result: r}
	r.tree = c.Render()
	return r
}

// Container returns the mounted markup, or nil after Unmount.
func (r *Result) Container() *html.Node {
	if r.tree == nil {
		return nil
	}
	return r.tree.Root
}

// Rerender renders the component again, replacing the mounted tree.
func (r *Result) Rerender() {
	r.tree = r.component.Render()
}

// Unmount removes the mounted tree. Queries return nothing afterwards.
func (r *Result) Unmount() {
	r.tree = nil
}

// User simulates user input against a mounted component. Each interaction
// completes, handlers included, before the call returns.
type User struct {
	result *Result
}

// Click dispatches a click on n. The event bubbles to the nearest ancestor
// with a handler; a disabled button swallows it.
func (u *User) Click(ctx context.Context, n *html.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tree := u.result.tree
	if tree == nil {
		return ErrUnmounted
	}
	if n == nil || !tree.Contains(n) {
		return errors.New("element is not part of the mounted tree")
	}
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && isDisabled(p) {
			return nil
		}
		if h, ok := tree.Handler(p); ok {
			h()
			return nil
		}
	}
	return fmt.Errorf("click on <%s>: %w", n.Data, ErrNoHandler)
}

func isDisabled(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "disabled" {
			return true
		}
	}
	return false
}

// MockNotifier records alerts.
type MockNotifier struct {
	mock.Mock
}

// NewMockNotifier returns a notifier that accepts any message.
func NewMockNotifier() *MockNotifier {
	m := &MockNotifier{}
	m.On("Alert", mock.Anything).Return()
	return m
}

// Alert records message.
func (m *MockNotifier) Alert(message string) {
	m.Called(message)
}

// Messages returns the recorded alert messages in call order.
func (m *MockNotifier) Messages() []string {
	var out []string
	for _, call := range m.Calls {
		if call.Method == "Alert" {
			out = append(out, call.Arguments.String(0))
		}
	}
	return out
}
