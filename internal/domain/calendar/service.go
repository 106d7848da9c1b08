package calendar

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/g2g/mri/internal/platform/errs"
)

type EventInput struct {
	Title    string    `json:"title"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Notes    string    `json:"notes"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateInput(in EventInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errs.Validation("title is required")
	}
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		return errs.Validation("startsAt and endsAt are required")
	}
	if in.EndsAt.Before(in.StartsAt) {
		return errs.Validation("endsAt must not precede startsAt")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, createdBy string, in EventInput) (*Event, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	e := &Event{
		Title:     strings.TrimSpace(in.Title),
		StartsAt:  in.StartsAt,
		EndsAt:    in.EndsAt,
		Notes:     in.Notes,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListRange defaults to the surrounding month when no bounds are given.
func (s *Service) ListRange(ctx context.Context, from, to *time.Time) ([]*Event, error) {
	now := time.Now()
	lo := now.AddDate(0, -1, 0)
	hi := now.AddDate(0, 1, 0)
	if from != nil {
		lo = *from
	}
	if to != nil {
		hi = *to
	}
	if hi.Before(lo) {
		return nil, errs.Validation("range end precedes range start")
	}
	return s.repo.ListRange(ctx, lo, hi)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in EventInput) (*Event, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Title = strings.TrimSpace(in.Title)
	e.StartsAt = in.StartsAt
	e.EndsAt = in.EndsAt
	e.Notes = in.Notes
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
