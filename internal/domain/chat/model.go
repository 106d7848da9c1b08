package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is one staff-to-staff chat message.
type Message struct {
	ID          uuid.UUID `db:"id" json:"id"`
	SenderID    string    `db:"sender_id" json:"senderId"`
	RecipientID string    `db:"recipient_id" json:"recipientId"`
	Body        string    `db:"body" json:"body"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
