package watch

import (
	"context"
	"strings"
	"testing"
)

func TestBaseWatcher_AddRemoveSubscription(t *testing.T) {
	b := NewBaseWatcher("test")

	sub := &Subscription{ID: "test_1"}
	b.AddSubscription(sub)

	if !b.HasSubscriptions() {
		t.Error("expected HasSubscriptions to be true")
	}

	removed := b.RemoveSubscription("test_1")
	if removed == nil {
		t.Fatal("expected removed subscription")
	}
	if removed.ID != "test_1" {
		t.Errorf("expected ID test_1, got %s", removed.ID)
	}

	if b.HasSubscriptions() {
		t.Error("expected HasSubscriptions to be false")
	}

	removed = b.RemoveSubscription("nonexistent")
	if removed != nil {
		t.Error("expected nil for non-existent subscription")
	}
}

func TestBaseWatcher_GenerateID(t *testing.T) {
	b := NewBaseWatcher("ob")

	id1 := b.GenerateID()
	id2 := b.GenerateID()

	if !strings.HasPrefix(id1, "ob_") {
		t.Errorf("expected prefix ob_, got %s", id1)
	}
	if id1 == id2 {
		t.Error("expected IDs to be unique")
	}
}

func TestBaseWatcher_NotifyAll(t *testing.T) {
	b := NewBaseWatcher("test")

	n1 := NewChannelNotifier(1)
	n2 := NewChannelNotifier(1)
	b.AddSubscription(&Subscription{ID: "test_1", Notifier: n1})
	b.AddSubscription(&Subscription{ID: "test_2", Notifier: n2})

	count := b.NotifyAll("property.changed", func(sub *Subscription) any {
		return map[string]string{"id": sub.ID}
	})
	if count != 2 {
		t.Errorf("expected 2 subscribers notified, got %d", count)
	}

	for _, n := range []*ChannelNotifier{n1, n2} {
		select {
		case got := <-n.C():
			if got.Method != "property.changed" {
				t.Errorf("expected method property.changed, got %s", got.Method)
			}
		default:
			t.Error("expected a buffered notification")
		}
	}
}

func TestChannelNotifier_ReportsFullBuffer(t *testing.T) {
	n := NewChannelNotifier(1)

	if err := n.Notify(context.Background(), Notification{Method: "a"}); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if err := n.Notify(context.Background(), Notification{Method: "b"}); err != ErrBufferFull {
		t.Errorf("expected ErrBufferFull, got %v", err)
	}

	got := <-n.C()
	if got.Method != "a" {
		t.Errorf("expected first notification to survive, got %s", got.Method)
	}
}
