package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	Recipient string
	Event     string
	Data      interface{}
}

// Hub fans events out to the open streams of each recipient.
// A recipient may hold several streams, one per browser tab.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	closed      bool
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for recipient and returns its channel and cleanup function
func (h *Hub) Subscribe(recipient string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	if h.subscribers[recipient] == nil {
		h.subscribers[recipient] = make(map[chan Event]struct{})
	}
	h.subscribers[recipient][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subscribers[recipient][ch]; !ok {
				return // already closed by Close
			}
			delete(h.subscribers[recipient], ch)
			close(ch)
			if len(h.subscribers[recipient]) == 0 {
				delete(h.subscribers, recipient)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to every stream of recipient. Full streams skip the event.
func (h *Hub) Publish(recipient string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[recipient] {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishToMany sends an event to multiple recipients
func (h *Hub) PublishToMany(recipients []string, event Event) {
	for _, recipient := range recipients {
		eventCopy := event
		eventCopy.Recipient = recipient
		h.Publish(recipient, eventCopy)
	}
}

// SubscriberCount returns the number of open streams for a recipient
func (h *Hub) SubscriberCount(recipient string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[recipient])
}

// TotalSubscribers returns the number of open streams across all recipients
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}

// Close ends every open stream. Later subscriptions receive a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for recipient, subs := range h.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(h.subscribers, recipient)
	}
}
