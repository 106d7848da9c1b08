// Package notify delivers realtime events to connected staff over WebSockets.
// Delivery is best-effort: a user with no open connection is skipped, and a
// full client buffer drops the event rather than blocking the sender.
package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event is a realtime message pushed to a staff member's open connections.
type Event struct {
	Type       string          `json:"type"`
	EntityKind string          `json:"entityKind,omitempty"`
	EntityID   string          `json:"entityId,omitempty"`
	Message    string          `json:"message,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// Client is one live connection belonging to a user. A user may hold several
// clients at once (multiple tabs or devices).
type Client struct {
	UserID string
	Send   chan []byte
	conn   Conn
}

// Conn abstracts the underlying WebSocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub tracks live connections keyed by user id.
type Hub struct {
	mu      sync.RWMutex
	byUser  map[string]map[*Client]struct{}
	logger  zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		byUser: make(map[string]map[*Client]struct{}),
		logger: logger,
	}
}

// Register adds a client to its user's connection set.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.byUser[client.UserID] == nil {
		h.byUser[client.UserID] = make(map[*Client]struct{})
	}
	h.byUser[client.UserID][client] = struct{}{}
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.byUser[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.byUser, client.UserID)
	}
	close(client.Send)
}

// Push sends an event to every live connection of the given user. Users with
// no connection are silently skipped.
func (h *Hub) Push(userID string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Msg("marshal realtime event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.byUser[userID] {
		select {
		case client.Send <- data:
		default:
			// Client buffer full; drop rather than block.
		}
	}
}

// ConnectionCount reports how many connections a user holds. Used in tests.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}
