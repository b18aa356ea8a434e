package services

import (
	"sync"

	"github.com/studentcollab/backend/internal/models"
)

// BoardEvent tells connected board views that a project's task list changed
// and should be re-fetched.
type BoardEvent struct {
	ProjectID uint              `json:"project_id"`
	TaskID    uint              `json:"task_id,omitempty"`
	Status    models.TaskStatus `json:"status,omitempty"`
	Action    string            `json:"action"` // created, updated, generated
	Count     int               `json:"count,omitempty"`
}

// BoardHub manages SSE client connections and board event broadcasting.
type BoardHub struct {
	clients map[string]chan BoardEvent
	mu      sync.RWMutex
}

// NewBoardHub creates a new board hub instance.
func NewBoardHub() *BoardHub {
	return &BoardHub{
		clients: make(map[string]chan BoardEvent),
	}
}

// Subscribe registers a new client and returns a channel for receiving events.
func (h *BoardHub) Subscribe(clientID string) <-chan BoardEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Buffered channel so a slow client never blocks the publisher
	ch := make(chan BoardEvent, 64)
	h.clients[clientID] = ch
	return ch
}

// Unsubscribe removes a client from the hub.
func (h *BoardHub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[clientID]; ok {
		close(ch)
		delete(h.clients, clientID)
	}
}

// Publish broadcasts an event to all connected clients.
func (h *BoardHub) Publish(event BoardEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients {
		select {
		case ch <- event:
		default:
			// Client buffer full, drop the event
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *BoardHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var globalBoardHub *BoardHub
var boardHubOnce sync.Once

// GetBoardHub returns the global board hub singleton.
func GetBoardHub() *BoardHub {
	boardHubOnce.Do(func() {
		globalBoardHub = NewBoardHub()
	})
	return globalBoardHub
}
