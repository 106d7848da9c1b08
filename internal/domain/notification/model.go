package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one persisted per-user notice. Realtime delivery through
// the hub is best-effort; the row is the durable record.
type Notification struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"userId"`
	Message    string    `db:"message" json:"message"`
	EntityKind string    `db:"entity_kind" json:"entityKind,omitempty"`
	EntityID   string    `db:"entity_id" json:"entityId,omitempty"`
	Read       bool      `db:"read" json:"read"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
