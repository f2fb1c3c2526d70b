package observe

import (
	"fmt"

	"github.com/google/uuid"
)

type subscription struct {
	id      string
	handler Handler
}

// Object is an observable property container. Properties start out unset
// (Get returns nil) and are mutated exclusively through Set; a mutation that
// actually changes a value notifies every subscriber, in registration order,
// before Set returns.
//
// Object is not safe for concurrent use. Mutation and notification happen
// fully on the calling goroutine's stack; callers that share an Object across
// goroutines must synchronize externally.
type Object struct {
	properties map[string]any
	subs       []subscription
}

var _ Observable = (*Object)(nil)

func New() *Object {
	return &Object{
		properties: make(map[string]any),
	}
}

// Get returns the current value of the named property, or nil if it was
// never set. Mutation is synchronous, so a Get after Set always observes the
// most recently accepted value.
func (o *Object) Get(name string) any {
	return o.properties[name]
}

// Set updates the named property and reports whether a mutation occurred.
// Setting a property to a value equal to its current one is a no-op: no
// write, no notification. Equality is reference equality for reference-like
// values and value equality otherwise.
func (o *Object) Set(name string, value any) (bool, error) {
	return o.SetFunc(name, value, valuesEqual)
}

// SetFunc is Set with a caller-supplied equality comparer.
func (o *Object) SetFunc(name string, value any, equal func(a, b any) bool) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("%w: property name is empty", ErrInvalidArgument)
	}

	// An unset property reads as nil, so setting nil onto it is a no-op.
	if equal(o.properties[name], value) {
		return false, nil
	}

	o.properties[name] = value
	o.notify(o, name)
	return true, nil
}

// Subscribe registers a handler and returns its subscription ID.
func (o *Object) Subscribe(h Handler) string {
	id := "sub_" + uuid.Must(uuid.NewV7()).String()
	o.subs = append(o.subs, subscription{id: id, handler: h})
	return id
}

// Unsubscribe removes the subscription with the given ID. Removing an ID
// that is not registered is a no-op.
func (o *Object) Unsubscribe(id string) {
	for i, sub := range o.subs {
		if sub.id == id {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			return
		}
	}
}

// Notify raises a change notification for the named property without
// touching any stored value. Intended for computed properties that derive
// from others.
func (o *Object) Notify(property string) error {
	if property == "" {
		return fmt.Errorf("%w: property name is empty", ErrInvalidArgument)
	}
	o.notify(o, property)
	return nil
}

// NotifyChange raises a notification from a pre-built payload with an
// explicit sender, decoupling the emitting object from the event's reported
// origin.
func (o *Object) NotifyChange(sender any, change *Change) error {
	if change == nil {
		return fmt.Errorf("%w: change payload is nil", ErrInvalidArgument)
	}
	o.notify(sender, change.Property)
	return nil
}

// notify invokes every handler in registration order. Handlers run
// unguarded: a panic propagates to the mutating caller. The snapshot lets a
// handler unsubscribe itself mid-dispatch.
func (o *Object) notify(sender any, property string) {
	subs := make([]subscription, len(o.subs))
	copy(subs, o.subs)
	for _, sub := range subs {
		sub.handler(sender, property)
	}
}
