// Package live fans newly planted flowers out to every connected
// client. The hub is the change feed of the garden: one JSON event per
// insert, delivered over WebSocket.
package live

import (
	"encoding/json"
	"sync"

	"golang.org/x/exp/slog"

	"cosmicgarden/internal/domain/flower"
)

// sendBuffer bounds how far a subscriber may fall behind before it is
// dropped.
const sendBuffer = 16

// Subscriber receives insert events until Close or until the hub drops
// it for being too slow.
type Subscriber struct {
	events chan []byte
	hub    *Hub
	once   sync.Once
}

// Events is the stream of marshaled flower events.
func (s *Subscriber) Events() <-chan []byte {
	return s.events
}

// Close detaches the subscriber from the hub.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub implements flower.Broadcaster. Broadcast never blocks the
// planting pipeline: subscribers whose buffers are full miss the
// event.
type Hub struct {
	log *slog.Logger

	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:         log.With("component", "live_hub"),
		subscribers: make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers a new live-feed consumer.
func (h *Hub) Subscribe() *Subscriber {
	s := &Subscriber{
		events: make(chan []byte, sendBuffer),
		hub:    h,
	}

	h.mu.Lock()
	h.subscribers[s] = struct{}{}
	count := len(h.subscribers)
	h.mu.Unlock()

	h.log.Debug("subscriber added", "subscribers", count)
	return s
}

func (h *Hub) remove(s *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subscribers[s]; ok {
		delete(h.subscribers, s)
		close(s.events)
	}
	count := len(h.subscribers)
	h.mu.Unlock()

	h.log.Debug("subscriber removed", "subscribers", count)
}

// Broadcast sends f to every subscriber.
func (h *Hub) Broadcast(f flower.Flower) {
	payload, err := json.Marshal(f)
	if err != nil {
		h.log.Error("failed to marshal flower event", "flower_id", f.ID, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subscribers {
		select {
		case s.events <- payload:
		default:
			h.log.Warn("dropping event for slow subscriber", "flower_id", f.ID)
		}
	}
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
