package query

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/g2g/mri/internal/platform/errs"
)

type CreateInput struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, raisedBy string, in CreateInput) (*Query, error) {
	if strings.TrimSpace(in.Subject) == "" {
		return nil, errs.Validation("subject is required")
	}
	q := &Query{
		RaisedBy: raisedBy,
		Subject:  strings.TrimSpace(in.Subject),
		Body:     in.Body,
		Status:   StatusOpen,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*Query, int, error) {
	if status != "" && !ValidStatuses[status] {
		return nil, 0, errs.Validation("invalid query status %q", status)
	}
	return s.repo.List(ctx, status, limit, offset)
}

// SetStatus moves a query between non-resolved states. Resolution goes
// through Resolve so the resolver stamp is never skipped.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Query, error) {
	if !ValidStatuses[status] {
		return nil, errs.Validation("invalid query status %q", status)
	}
	if status == StatusResolved {
		return nil, errs.Validation("use the resolve operation to mark a query resolved")
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Resolve stamps status, resolver and timestamp atomically.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID, resolvedBy string) (*Query, error) {
	if err := s.repo.Resolve(ctx, id, resolvedBy); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
