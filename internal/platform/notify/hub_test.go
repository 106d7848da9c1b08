package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient(userID string) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 8)}
}

func TestHubPushReachesAllUserConnections(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	a1 := newTestClient("u1")
	a2 := newTestClient("u1")
	b := newTestClient("u2")
	hub.Register(a1)
	hub.Register(a2)
	hub.Register(b)

	hub.Push("u1", Event{Type: "result_issued", Message: "ready"})

	for _, c := range []*Client{a1, a2} {
		select {
		case raw := <-c.Send:
			var ev Event
			if err := json.Unmarshal(raw, &ev); err != nil {
				t.Fatalf("unmarshal event: %v", err)
			}
			if ev.Type != "result_issued" {
				t.Errorf("unexpected event type %s", ev.Type)
			}
		default:
			t.Error("expected event on u1 connection")
		}
	}
	select {
	case <-b.Send:
		t.Error("u2 should not receive u1's event")
	default:
	}
}

func TestHubPushToAbsentUserIsNoop(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	hub.Push("ghost", Event{Type: "x"}) // must not panic
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := newTestClient("u1")
	hub.Register(c)
	hub.Unregister(c)

	if _, open := <-c.Send; open {
		t.Error("expected Send channel closed")
	}
	if hub.ConnectionCount("u1") != 0 {
		t.Error("expected no remaining connections")
	}
	// Double unregister must be safe.
	hub.Unregister(c)
}

func TestHubFullBufferDropsEvent(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := &Client{UserID: "u1", Send: make(chan []byte)} // unbuffered, no reader
	hub.Register(c)
	hub.Push("u1", Event{Type: "x"}) // must not block
}

func TestHubNotifierStampsTimestamp(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := newTestClient("u1")
	hub.Register(c)

	NewHubNotifier(hub).Notify(context.Background(), "u1", Event{Type: "chat_message"})

	raw := <-c.Send
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Timestamp.IsZero() {
		t.Error("expected timestamp to be stamped")
	}
}
