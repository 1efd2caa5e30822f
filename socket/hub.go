package socket

import (
	"encoding/json"
	"sync"

	"notedeck/pkg/logger"
)

// Event types pushed to connected owners when one of their records changes.
const (
	DocumentCreated = "DOCUMENT_CREATED"
	DocumentUpdated = "DOCUMENT_UPDATED"
	DocumentDeleted = "DOCUMENT_DELETED"
	SummaryCreated  = "SUMMARY_CREATED"
	JobCreated      = "JOB_CREATED"
	JobUpdated      = "JOB_UPDATED"
)

type Event struct {
	Type    string          `json:"type"`
	OwnerID string          `json:"owner_id"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans change events out to the owner's open connections. Rooms are
// keyed by user id, so a user with several tabs open gets every event once
// per connection and never sees another user's records.
type Hub struct {
	Rooms      map[string]map[*Client]bool
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Broadcast:  make(chan Event, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Publish marshals payload and hands the event to the hub. Safe to call on a
// nil hub (tests wire services without one); events are best-effort and are
// dropped if the hub's queue is full.
func (h *Hub) Publish(eventType, ownerID string, payload interface{}) {
	if h == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling %s event payload: %v", eventType, err)
		return
	}
	select {
	case h.Broadcast <- Event{Type: eventType, OwnerID: ownerID, Payload: data}:
	default:
		logger.Sugar.Warnf("Event queue full, dropping %s event for user %s", eventType, ownerID)
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.UserID] == nil {
				h.Rooms[client.UserID] = make(map[*Client]bool)
			}
			h.Rooms[client.UserID][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Rooms[client.UserID][client]; ok {
				delete(h.Rooms[client.UserID], client)
				close(client.Send)
				if len(h.Rooms[client.UserID]) == 0 {
					delete(h.Rooms, client.UserID)
				}
			}
			h.mu.Unlock()

		case ev := <-h.Broadcast:
			payload, err := json.Marshal(ev)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast event: %v", err)
				continue
			}

			// Collect recipients under the lock, write outside it.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Rooms[ev.OwnerID]))
			for client := range h.Rooms[ev.OwnerID] {
				clientsToSend = append(clientsToSend, client)
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					// The client is lagging; drop the event rather than
					// blocking the hub. The pumps reap dead connections.
					logger.Sugar.Warnf("Client %s's send buffer is full, dropping event.", client.UserID)
				}
			}
		}
	}
}
