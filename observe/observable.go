// Package observe provides observable property containers: named fields
// whose mutations raise synchronous change notifications to registered
// handlers.
package observe

// Change is the payload delivered to handlers when a property changes. The
// sender travels alongside the payload, not inside it: NotifyChange takes it
// as a separate argument.
type Change struct {
	// Property is the name of the changed property, never empty.
	Property string
}

// Handler receives change notifications. Handlers run synchronously on the
// mutating caller's stack; a panicking handler propagates to that caller.
type Handler func(sender any, property string)

// Observable is the capability of exposing observable properties. Any entity
// that needs change notifications can implement it; Object is the standard
// implementation.
type Observable interface {
	// Subscribe registers a handler for all future change notifications
	// and returns a subscription ID for Unsubscribe.
	Subscribe(h Handler) string

	// Unsubscribe removes a subscription. Unknown IDs are a no-op.
	Unsubscribe(id string)

	// Notify raises a change notification for the named property without
	// mutating anything. The name must be non-empty.
	Notify(property string) error
}
