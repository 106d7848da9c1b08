package notification

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Notification, int, error)

	// MarkRead flips the read flag for a notification owned by userID.
	MarkRead(ctx context.Context, id uuid.UUID, userID string) error
}
