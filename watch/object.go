package watch

import (
	"log/slog"
	"sync"

	"github.com/fieldwatch/fieldwatch/observe"
)

// ObjectWatcher fans property-change notifications from an observe.Object
// out to subscribers. The object's handlers run synchronously on the
// mutating goroutine, so the watcher only enqueues there; fan-out happens on
// its own event loop to keep subscriber delivery off the mutation path.
//
// NewObjectWatcher and Stop touch the object's subscriber list and must run
// on the goroutine that mutates the object.
type ObjectWatcher struct {
	*BaseWatcher
	object  *observe.Object
	subID   string
	eventCh chan propertyEvent

	onChangeMu sync.RWMutex
	onChange   func(property string, value any)
}

type propertyEvent struct {
	Property string
	Value    any
}

func NewObjectWatcher(object *observe.Object) *ObjectWatcher {
	w := &ObjectWatcher{
		BaseWatcher: NewBaseWatcher("ob"),
		object:      object,
		eventCh:     make(chan propertyEvent, 16),
	}
	w.subID = object.Subscribe(w.onPropertyChange)
	return w
}

func (w *ObjectWatcher) Start() error {
	go w.eventLoop()
	slog.Info("ObjectWatcher started")
	return nil
}

func (w *ObjectWatcher) Stop() {
	w.Cancel()
	w.object.Unsubscribe(w.subID)
	slog.Info("ObjectWatcher stopped")
}

func (w *ObjectWatcher) eventLoop() {
	for {
		select {
		case <-w.Context().Done():
			return
		case ev := <-w.eventCh:
			w.notifyChange(ev)
		}
	}
}

// SetOnChange sets a callback invoked on the event loop for every property
// change, independent of subscriptions.
func (w *ObjectWatcher) SetOnChange(fn func(property string, value any)) {
	w.onChangeMu.Lock()
	defer w.onChangeMu.Unlock()
	w.onChange = fn
}

func (w *ObjectWatcher) notifyChange(ev propertyEvent) {
	w.onChangeMu.RLock()
	onChange := w.onChange
	w.onChangeMu.RUnlock()
	if onChange != nil {
		onChange(ev.Property, ev.Value)
	}

	if !w.HasSubscriptions() {
		return
	}

	w.NotifyAll("property.changed", func(sub *Subscription) any {
		return propertyChangedParams{
			ID:       sub.ID,
			Property: ev.Property,
			Value:    ev.Value,
		}
	})

	slog.Debug("notified property change", "property", ev.Property)
}

// Subscribe registers a subscriber and returns the subscription ID.
func (w *ObjectWatcher) Subscribe(notifier Notifier) string {
	id := w.GenerateID()
	w.AddSubscription(&Subscription{
		ID:       id,
		Notifier: notifier,
	})
	return id
}

type propertyChangedParams struct {
	ID       string `json:"id"`
	Property string `json:"property"`
	Value    any    `json:"value"`
}

// onPropertyChange implements observe.Handler. It is called from the
// mutating goroutine, so it must not block.
func (w *ObjectWatcher) onPropertyChange(sender any, property string) {
	if w.Context().Err() != nil {
		return
	}

	// The value is read here, synchronously with the mutation, because the
	// object must not be touched from the event loop.
	ev := propertyEvent{Property: property, Value: w.object.Get(property)}

	select {
	case w.eventCh <- ev:
	default:
		slog.Warn("property change event dropped (buffer full)", "property", property)
	}
}
