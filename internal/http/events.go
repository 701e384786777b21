package http

import (
	"sync"

	"github.com/gin-gonic/gin"
)

// SavedEventsHub fans saved-set change notifications out to SSE subscribers.
// Publish is registered as a store observer and runs under the store lock,
// so it never blocks: a slow subscriber only ever sees the latest snapshot.
type SavedEventsHub struct {
	mu          sync.Mutex
	subscribers map[chan []string]struct{}
}

func NewSavedEventsHub() *SavedEventsHub {
	return &SavedEventsHub{subscribers: make(map[chan []string]struct{})}
}

// Publish sends ids to every subscriber, replacing any snapshot not yet consumed.
func (h *SavedEventsHub) Publish(ids []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- ids:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ids:
			default:
			}
		}
	}
}

// Subscribe returns a channel of snapshots and a function that releases it.
func (h *SavedEventsHub) Subscribe() (<-chan []string, func()) {
	ch := make(chan []string, 1)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subscribers, ch)
		h.mu.Unlock()
	}
}

// SubscriberCount returns the number of connected subscribers.
func (h *SavedEventsHub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

type savedEvent struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

// Stream handles GET /api/saved/events.
// The current set is sent on connect, then one "saved" event per change.
func (h *SavedEventsHub) Stream(saved SavedSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, unsubscribe := h.Subscribe()
		defer unsubscribe()

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		send := func(ids []string) {
			c.SSEvent("saved", savedEvent{IDs: ids, Count: len(ids)})
			c.Writer.Flush()
		}

		send(saved.List())

		ctx := c.Request.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case ids := <-events:
				send(ids)
			}
		}
	}
}
