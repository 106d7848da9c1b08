package chat

import "context"

type Repository interface {
	Create(ctx context.Context, m *Message) error
	// ListConversation returns messages between two users, oldest first.
	ListConversation(ctx context.Context, userA, userB string, limit, offset int) ([]*Message, int, error)
}
