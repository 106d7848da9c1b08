package notify

import (
	"context"
	"time"
)

// Notifier is the fire-and-forget delivery collaborator consumed by domain
// services. Implementations must never return delivery failures to callers.
type Notifier interface {
	Notify(ctx context.Context, userID string, event Event)
}

// HubNotifier delivers through the in-process hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) Notify(_ context.Context, userID string, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	n.hub.Push(userID, event)
}

// NopNotifier discards everything. Used where realtime delivery is disabled.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, Event) {}
