package query

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

var ValidStatuses = map[string]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusClosed:     true,
}

// Query is a staff-raised issue or question tracked by the department.
type Query struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	RaisedBy   string     `db:"raised_by" json:"raisedBy"`
	Subject    string     `db:"subject" json:"subject"`
	Body       string     `db:"body" json:"body,omitempty"`
	Status     string     `db:"status" json:"status"`
	ResolvedBy *string    `db:"resolved_by" json:"resolvedBy,omitempty"`
	ResolvedAt *time.Time `db:"resolved_at" json:"resolvedAt,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}
