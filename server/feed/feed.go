// Package feed fans out entity-change events to websocket subscribers so
// open dashboards see edits from other operators as they happen.
package feed

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/gorilla/websocket"
)

type Event struct {
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Action     string    `json:"action"` // created | updated | deleted
	At         time.Time `json:"at"`
}

// Hub holds the live subscriber set. Publishing never blocks the mutation
// path; a subscriber that cannot be written to is dropped.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*websocket.Conn]struct{}
	logger      *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[*websocket.Conn]struct{}),
		logger:      logger,
	}
}

func (h *Hub) Subscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[conn] = struct{}{}
}

func (h *Hub) Unsubscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, conn)
	conn.Close()
}

// Publish sends the event to every subscriber. It is fine for an event to
// be lost on a broken connection; the dashboards reload on reconnect.
func (h *Hub) Publish(ctx context.Context, collection string, id string, action string) {
	event := Event{
		Collection: collection,
		ID:         id,
		Action:     action,
		At:         time.Now().UTC(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.subscribers {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.WarnContext(ctx, "dropping feed subscriber", "err", err)
			delete(h.subscribers, conn)
			conn.Close()
		}
	}
}
