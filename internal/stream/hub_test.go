package stream

import "testing"

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	h := NewHub[int]()
	a := h.Subscribe(1)
	b := h.Subscribe(1)

	h.Broadcast(42)

	for name, sub := range map[string]*Subscription[int]{"a": a, "b": b} {
		select {
		case v := <-sub.C():
			if v != 42 {
				t.Errorf("subscriber %s: expected 42, got %d", name, v)
			}
		default:
			t.Errorf("subscriber %s: expected a value", name)
		}
	}
}

func TestHub_FullBufferDropsValue(t *testing.T) {
	h := NewHub[int]()
	sub := h.Subscribe(1)

	h.Broadcast(1)
	h.Broadcast(2) // buffer full, dropped

	if v := <-sub.C(); v != 1 {
		t.Errorf("expected 1, got %d", v)
	}
	select {
	case v := <-sub.C():
		t.Errorf("expected second value dropped, got %d", v)
	default:
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := NewHub[int]()
	sub := h.Subscribe(1)

	h.Unsubscribe(sub)

	if _, ok := <-sub.C(); ok {
		t.Error("expected channel closed after unsubscribe")
	}

	// A second unsubscribe is a no-op, not a double close.
	h.Unsubscribe(sub)

	// Broadcasting after unsubscribe must not panic.
	h.Broadcast(7)
}
