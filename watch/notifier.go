package watch

import "context"

// Notification represents a message to be sent to a subscriber.
type Notification struct {
	Method string
	Params any
}

// Notifier abstracts the mechanism for delivering notifications to a
// subscriber. Delivery is in-process; ChannelNotifier is the standard
// implementation and callers can provide their own.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// ChannelNotifier delivers notifications to a buffered channel. When the
// buffer is full the notification is dropped and Notify reports an error, so
// a stalled consumer cannot block a watcher's event loop.
type ChannelNotifier struct {
	ch chan Notification
}

func NewChannelNotifier(buffer int) *ChannelNotifier {
	return &ChannelNotifier{
		ch: make(chan Notification, buffer),
	}
}

func (c *ChannelNotifier) Notify(ctx context.Context, n Notification) error {
	select {
	case c.ch <- n:
		return nil
	default:
		return ErrBufferFull
	}
}

// C returns the receive side of the notification channel.
func (c *ChannelNotifier) C() <-chan Notification {
	return c.ch
}
