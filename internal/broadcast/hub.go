// Package broadcast fans memory snapshots out to subscribers without
// letting any consumer block the producer.
package broadcast

import (
	"sync"

	"github.com/adya/memwatch/internal/memstat"
)

// Stable identifiers for the published snapshot event. External
// consumers (HTTP clients, log processors) match on these strings, so
// they must not change between releases.
const (
	// EventName labels every published snapshot event.
	EventName = "memory_snapshot"
	// PayloadKey names the snapshot field inside a serialized event.
	PayloadKey = "snapshot"
)

// DefaultBuffer is the per-subscriber channel capacity used by Subscribe.
const DefaultBuffer = 16

// Subscription is one registered consumer of snapshot events.
// Subscriptions are created by a Hub; the zero value is not usable.
type Subscription struct {
	id uint64
	ch chan memstat.Snapshot
}

// C returns the channel snapshots arrive on. The channel is closed
// when the subscription is cancelled.
func (s *Subscription) C() <-chan memstat.Snapshot {
	return s.ch
}

// Hub is a many-subscriber broadcast channel for memory snapshots.
// Publishing never blocks: when a subscriber's buffer is full, its
// oldest pending snapshot is dropped so the newest data keeps flowing.
// Each subscriber sees publishes in FIFO order.
//
// Hub is safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]*Subscription
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]*Subscription)}
}

// Subscribe registers a consumer with the default buffer capacity.
//
// Returns:
//   - *Subscription: The new subscription; receive from C().
func (h *Hub) Subscribe() *Subscription {
	return h.SubscribeBuffer(DefaultBuffer)
}

// SubscribeBuffer registers a consumer whose channel holds up to size
// pending snapshots. Sizes below 1 are raised to 1 so every subscriber
// can hold at least the most recent publish.
//
// Parameters:
//   - size: The per-subscriber buffer capacity.
//
// Returns:
//   - *Subscription: The new subscription; receive from C().
func (h *Hub) SubscribeBuffer(size int) *Subscription {
	if size < 1 {
		size = 1
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	sub := &Subscription{id: h.nextID, ch: make(chan memstat.Snapshot, size)}
	h.subs[sub.id] = sub
	return sub
}

// SubscribeFunc registers fn to be called for every published snapshot
// on a dedicated goroutine, so callbacks never run on the publisher's
// goroutine. The returned cancel function unregisters the subscriber
// and waits for the callback goroutine to drain and exit.
//
// Parameters:
//   - fn: The callback invoked once per received snapshot.
//
// Returns:
//   - cancel: Unregisters the subscriber; safe to call once.
func (h *Hub) SubscribeFunc(fn func(memstat.Snapshot)) (cancel func()) {
	sub := h.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for snap := range sub.ch {
			fn(snap)
		}
	}()
	return func() {
		h.Unsubscribe(sub)
		<-done
	}
}

// Unsubscribe removes the subscription and closes its channel. It is
// safe to call with an already-removed subscription or nil.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.id]; !ok {
		return
	}
	delete(h.subs, sub.id)
	close(sub.ch)
}

// Publish delivers snap to every current subscriber and returns
// without waiting for any of them. A subscriber whose buffer is full
// loses its oldest pending snapshot, which keeps per-subscriber
// delivery in publish order.
//
// Parameters:
//   - snap: The snapshot to deliver.
func (h *Hub) Publish(snap memstat.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		select {
		case sub.ch <- snap:
		default:
			// Buffer full: discard the oldest entry to make room.
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- snap:
			default:
			}
		}
	}
}

// Len reports the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
