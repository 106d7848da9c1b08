package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/g2g/mri/internal/platform/auth"
	"github.com/g2g/mri/internal/platform/errs"
)

// UpdateInput changes account flags. Nil fields are left untouched.
type UpdateInput struct {
	Role        *string `json:"role"`
	Verified    *bool   `json:"verified"`
	CanDownload *bool   `json:"canDownload"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies role and capability changes. An admin demoting themself is
// allowed; the policy layer decides who may call this at all.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*User, error) {
	if in.Role != nil && !auth.ValidRole(*in.Role) {
		return nil, errs.Validation("invalid role %q", *in.Role)
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Verified != nil {
		u.Verified = *in.Verified
	}
	if in.CanDownload != nil {
		u.CanDownload = *in.CanDownload
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
