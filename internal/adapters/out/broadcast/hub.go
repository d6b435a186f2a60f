// Package broadcast fans floor events out to live subscribers in process.
//
// Every subscriber owns a bounded buffer. Publish never blocks: when a
// subscriber's buffer is full the event is dropped for that subscriber only.
// A subscriber listening on several topics receives an event once even when
// it was published to more than one of them.
package broadcast

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"printfloor/internal/core/ports"
)

// DefaultBufferSize is the per-subscriber buffer used when none is given.
const DefaultBufferSize = 64

// Subscription receives events on C until Close is called.
type Subscription struct {
	C <-chan ports.Event

	id     uint64
	topics []string
	ch     chan ports.Event
	hub    *Hub
	once   sync.Once
}

// Close unsubscribes and closes C. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Topics returns the topics the subscription listens on.
func (s *Subscription) Topics() []string {
	return append([]string(nil), s.topics...)
}

type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[uint64]*Subscription

	bufferSize int
	nextID     atomic.Uint64
	dropped    atomic.Uint64
	logger     *slog.Logger
}

var _ ports.EventPublisher = (*Hub)(nil)

func NewHub(bufferSize int, logger *slog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		topics:     make(map[string]map[uint64]*Subscription),
		bufferSize: bufferSize,
		logger:     logger.With("component", "broadcast"),
	}
}

// Subscribe registers for events on any of topics. Duplicate and empty topics
// are ignored.
func (h *Hub) Subscribe(topics ...string) *Subscription {
	ch := make(chan ports.Event, h.bufferSize)
	sub := &Subscription{
		C:   ch,
		id:  h.nextID.Add(1),
		ch:  ch,
		hub: h,
	}

	seen := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		sub.topics = append(sub.topics, t)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range sub.topics {
		if h.topics[t] == nil {
			h.topics[t] = make(map[uint64]*Subscription)
		}
		h.topics[t][sub.id] = sub
	}
	return sub
}

// Publish delivers event to every subscriber of any of topics.
func (h *Hub) Publish(event ports.Event, topics ...string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := make(map[uint64]struct{})
	for _, t := range topics {
		for id, sub := range h.topics[t] {
			if _, done := delivered[id]; done {
				continue
			}
			delivered[id] = struct{}{}

			select {
			case sub.ch <- event:
			default:
				h.dropped.Add(1)
				h.logger.Debug("subscriber buffer full, event dropped",
					"event", event.Type, "subscription", id)
			}
		}
	}
}

// Dropped is the number of deliveries skipped because a buffer was full.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// SubscriberCount returns the number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make(map[uint64]struct{})
	for _, subs := range h.topics {
		for id := range subs {
			ids[id] = struct{}{}
		}
	}
	return len(ids)
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, t := range sub.topics {
		delete(h.topics[t], sub.id)
		if len(h.topics[t]) == 0 {
			delete(h.topics, t)
		}
	}
	close(sub.ch)
}
