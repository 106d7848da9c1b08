package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/g2g/mri/internal/platform/notify"
)

type Service struct {
	repo     Repository
	notifier notify.Notifier
	logger   zerolog.Logger
}

func NewService(repo Repository, notifier notify.Notifier, logger zerolog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Announce persists a notification and pushes it over the realtime hub.
// Both legs are best-effort from the caller's point of view; failures are
// logged and never returned.
func (s *Service) Announce(ctx context.Context, userID, message, entityKind, entityID string) {
	n := &Notification{
		UserID:     userID,
		Message:    message,
		EntityKind: entityKind,
		EntityID:   entityID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("persist notification")
	}
	s.notifier.Notify(ctx, userID, notify.Event{
		Type:       "notification",
		EntityKind: entityKind,
		EntityID:   entityID,
		Message:    message,
	})
}

func (s *Service) ListForUser(ctx context.Context, userID string, limit, offset int) ([]*Notification, int, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}
