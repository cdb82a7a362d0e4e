// Package stream provides a small fan-out hub for pushing values to an
// arbitrary number of subscribers without blocking the producer.
package stream

import "sync"

// Subscription is one receiver attached to a Hub.
type Subscription[T any] struct {
	ch chan T
}

// C returns the channel values are delivered on. It is closed when the
// subscription is removed from the hub.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Hub broadcasts values to all current subscribers. Delivery is best
// effort: a subscriber whose buffer is full misses the value rather than
// stalling the producer.
type Hub[T any] struct {
	mu   sync.RWMutex
	subs map[*Subscription[T]]struct{}
}

// NewHub creates an empty Hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[*Subscription[T]]struct{})}
}

// Subscribe attaches a new subscriber with the given channel buffer.
func (h *Hub[T]) Subscribe(buffer int) *Subscription[T] {
	sub := &Subscription[T]{ch: make(chan T, buffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe detaches a subscriber and closes its channel.
func (h *Hub[T]) Unsubscribe(sub *Subscription[T]) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.mu.Unlock()
}

// Broadcast delivers a value to every subscriber with buffer room.
func (h *Hub[T]) Broadcast(value T) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- value:
		default:
		}
	}
}
