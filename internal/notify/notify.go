// Package notify defines the transient user notification surface
// consumed by the workflow services. The TUI backs it with a notice
// bar, the CLI with stdout lines, tests with a recorder.
package notify

// Notifier delivers a short, user-visible, fire-and-forget message.
type Notifier interface {
	Notify(message string)
}

// Func adapts a plain function to the Notifier interface.
type Func func(string)

func (f Func) Notify(message string) { f(message) }

// Discard drops every message. Useful for background probes that
// should log rather than notify.
var Discard Notifier = Func(func(string) {})
