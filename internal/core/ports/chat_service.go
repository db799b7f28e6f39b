package ports

import (
	"context"

	"github.com/hirelane/ats/internal/core/domain"
)

// InboxEntry summarises the conversation with one peer.
type InboxEntry struct {
	PeerID   string
	PeerName string
	// Received counts messages sent by the peer to the actor.
	Received int
	Last     *domain.ChatMessage
}

type ChatService interface {
	Send(ctx context.Context, actor domain.Actor, receiverID, message string) (*domain.ChatMessage, error)
	Conversation(ctx context.Context, actor domain.Actor, peerID string) ([]domain.ChatMessage, error)
	Inbox(ctx context.Context, actor domain.Actor) ([]InboxEntry, error)
}
