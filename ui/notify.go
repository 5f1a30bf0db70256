package ui

// Notifier is the blocking, user-visible notification primitive provided by
// the host. In a browser this is window.alert; Alert returns once the user
// has dismissed the message.
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(message string)

// Alert calls f(message).
func (f NotifierFunc) Alert(message string) {
	f(message)
}

// Discard is a Notifier that drops every message. The server uses it when
// rendering, since clicks are handled by the browser.
var Discard Notifier = NotifierFunc(func(string) {})
