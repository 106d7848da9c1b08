package query

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, q *Query) error
	GetByID(ctx context.Context, id uuid.UUID) (*Query, error)
	List(ctx context.Context, status string, limit, offset int) ([]*Query, int, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error

	// Resolve stamps status, resolver and timestamp in one statement.
	Resolve(ctx context.Context, id uuid.UUID, resolvedBy string) error
}
