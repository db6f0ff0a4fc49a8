package launch

import "context"

// EventKind names a shell notification.
type EventKind string

const (
	EventHostsUpdated  EventKind = "hosts-updated"
	EventHostConnected EventKind = "host-connected"
)

// Event is delivered to the shell after state it displays has changed.
// Hostname is set for EventHostConnected.
type Event struct {
	Kind     EventKind
	Hostname string
}

// Notifier is implemented by the shell. Notify must not block for long.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ev Event)

func (f NotifierFunc) Notify(ctx context.Context, ev Event) { f(ctx, ev) }

// Discard drops every event.
var Discard Notifier = NotifierFunc(func(context.Context, Event) {})
