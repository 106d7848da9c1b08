package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/g2g/mri/internal/platform/errs"
)

type mockRepo struct {
	events map[uuid.UUID]*Event
}

func newMockRepo() *mockRepo {
	return &mockRepo{events: make(map[uuid.UUID]*Event)}
}

func (m *mockRepo) Create(ctx context.Context, e *Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, errs.NotFound("calendar event %s not found", id)
	}
	cp := *e
	return &cp, nil
}

func (m *mockRepo) ListRange(ctx context.Context, from, to time.Time) ([]*Event, error) {
	var out []*Event
	for _, e := range m.events {
		if !e.StartsAt.After(to) && !e.EndsAt.Before(from) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) Update(ctx context.Context, e *Event) error {
	if _, ok := m.events[e.ID]; !ok {
		return errs.NotFound("calendar event %s not found", e.ID)
	}
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.events[id]; !ok {
		return errs.NotFound("calendar event %s not found", id)
	}
	delete(m.events, id)
	return nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	now := time.Now()

	if _, err := svc.Create(ctx, "u", EventInput{StartsAt: now, EndsAt: now}); !errs.Is(err, errs.KindValidation) {
		t.Errorf("expected validation error for missing title, got %v", err)
	}
	if _, err := svc.Create(ctx, "u", EventInput{Title: "Maintenance"}); !errs.Is(err, errs.KindValidation) {
		t.Errorf("expected validation error for missing times, got %v", err)
	}
	if _, err := svc.Create(ctx, "u", EventInput{Title: "M", StartsAt: now, EndsAt: now.Add(-time.Hour)}); !errs.Is(err, errs.KindValidation) {
		t.Errorf("expected validation error for inverted range, got %v", err)
	}
}

func TestCreateAndListRange(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()
	now := time.Now()

	e, err := svc.Create(ctx, "u1", EventInput{
		Title:    "Scanner maintenance",
		StartsAt: now,
		EndsAt:   now.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.CreatedBy != "u1" {
		t.Errorf("expected created_by u1, got %s", e.CreatedBy)
	}

	events, err := svc.ListRange(ctx, nil, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event in default range, got %d", len(events))
	}
}

func TestUpdateMissingEvent(t *testing.T) {
	svc := NewService(newMockRepo())
	now := time.Now()
	_, err := svc.Update(context.Background(), uuid.New(), EventInput{
		Title: "X", StartsAt: now, EndsAt: now.Add(time.Hour),
	})
	if !errs.Is(err, errs.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
