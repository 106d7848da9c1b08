package calendar

import (
	"time"

	"github.com/google/uuid"
)

// Event is one department calendar entry.
type Event struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	StartsAt  time.Time `db:"starts_at" json:"startsAt"`
	EndsAt    time.Time `db:"ends_at" json:"endsAt"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedBy string    `db:"created_by" json:"createdBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
