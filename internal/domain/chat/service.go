package chat

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/g2g/mri/internal/platform/errs"
	"github.com/g2g/mri/internal/platform/notify"
)

type SendInput struct {
	RecipientID string `json:"recipientId"`
	Body        string `json:"body"`
}

type Service struct {
	repo     Repository
	notifier notify.Notifier
	logger   zerolog.Logger
}

func NewService(repo Repository, notifier notify.Notifier, logger zerolog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Send persists the message, then relays it to the recipient's live
// connections best-effort.
func (s *Service) Send(ctx context.Context, senderID string, in SendInput) (*Message, error) {
	if in.RecipientID == "" {
		return nil, errs.Validation("recipient is required")
	}
	if in.RecipientID == senderID {
		return nil, errs.Validation("cannot message yourself")
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, errs.Validation("message body is required")
	}

	m := &Message{
		SenderID:    senderID,
		RecipientID: in.RecipientID,
		Body:        in.Body,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(m)
	if err != nil {
		s.logger.Error().Err(err).Msg("marshal chat message for relay")
		return m, nil
	}
	s.notifier.Notify(ctx, m.RecipientID, notify.Event{
		Type:     "chat_message",
		EntityID: m.ID.String(),
		Data:     payload,
	})
	return m, nil
}

// Conversation lists messages between the caller and another user, oldest
// first.
func (s *Service) Conversation(ctx context.Context, callerID, otherID string, limit, offset int) ([]*Message, int, error) {
	if otherID == "" {
		return nil, 0, errs.Validation("conversation partner is required")
	}
	return s.repo.ListConversation(ctx, callerID, otherID, limit, offset)
}
