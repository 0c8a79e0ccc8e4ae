// Package feed pushes complaint lifecycle events to connected dashboards
// over WebSocket. Events flow in through Redis Pub/Sub so every server
// instance sees submissions, assignments and completions wherever they
// happened.
package feed

import (
	"encoding/json"
	"log"

	"cleanspot/backend/internal/models"
	"cleanspot/backend/internal/storage"
)

// Hub owns the set of connected dashboard clients.
type Hub struct {
	clients map[*Client]bool

	RegisterCh   chan *Client
	UnregisterCh chan *Client
	BroadcastCh  chan models.ComplaintEvent

	Storage *storage.Service
}

// NewHub creates a hub. Storage may be nil in tests; the Redis listener is
// only started when it is present.
func NewHub(s *storage.Service) *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		RegisterCh:   make(chan *Client),
		UnregisterCh: make(chan *Client),
		BroadcastCh:  make(chan models.ComplaintEvent),
		Storage:      s,
	}
}

// Run is the hub's dispatcher loop; start it in its own goroutine.
func (h *Hub) Run() {
	if h.Storage != nil {
		h.startPubSubListener()
	}

	for {
		select {
		case client := <-h.RegisterCh:
			h.clients[client] = true
			log.Printf("INFO: dashboard client %s connected (%d online)", client.UserID, len(h.clients))

		case client := <-h.UnregisterCh:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}

		case event := <-h.BroadcastCh:
			for client := range h.clients {
				select {
				case client.Send <- event:
				default:
					// Slow consumer, drop it rather than block the hub.
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// startPubSubListener forwards events from the Redis channel into the hub.
func (h *Hub) startPubSubListener() {
	go func() {
		pubsub := h.Storage.SubscribeComplaintEvents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var event models.ComplaintEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("ERROR: Failed to unmarshal complaint event: %v", err)
				continue
			}
			h.BroadcastCh <- event
		}
	}()
}
