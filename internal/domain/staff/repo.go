package staff

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, u *User) error

	// ListAdminIDs feeds the issuance notification fan-out.
	ListAdminIDs(ctx context.Context) ([]string, error)
}
