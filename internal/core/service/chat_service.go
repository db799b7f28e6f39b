package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/policy"
	"github.com/hirelane/ats/internal/core/ports"
)

type chatService struct {
	store ports.EntityStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewChatService returns a ChatService implementation. Staff talk to
// clients and clients talk to staff; the log is append-only.
func NewChatService(store ports.EntityStore, log zerolog.Logger) ports.ChatService {
	return &chatService{store: store, log: log, now: utcNow}
}

func (s *chatService) Send(_ context.Context, actor domain.Actor, receiverID, message string) (*domain.ChatMessage, error) {
	if !policy.Can(actor, policy.OpChat) {
		return nil, forbidden("send message")
	}
	message = strings.TrimSpace(message)
	if message == "" || receiverID == "" {
		return nil, fmt.Errorf("send message: %w", domain.ErrMissingFields)
	}

	msg := domain.ChatMessage{
		ID:         newID(),
		SenderID:   actor.ID,
		ReceiverID: receiverID,
		Message:    message,
		Timestamp:  s.now(),
	}

	err := s.store.Write(func(tx ports.StoreTx) error {
		if _, ok := peerName(actor, txDataset(tx), receiverID); !ok {
			return domain.ErrInvalidReference
		}
		tx.ReplaceChatMessages(append(tx.ChatMessages(), msg))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.log.Debug().Str("actor_id", actor.ID).Str("receiver_id", receiverID).Msg("chat message sent")
	return &msg, nil
}

// Conversation returns the messages exchanged with peerID, oldest first.
func (s *chatService) Conversation(_ context.Context, actor domain.Actor, peerID string) ([]domain.ChatMessage, error) {
	if !policy.Can(actor, policy.OpChat) {
		return nil, forbidden("read conversation")
	}
	var out []domain.ChatMessage
	for _, m := range policy.Scope(actor, s.store.Snapshot()).ChatMessages {
		if m.Between(actor.ID, peerID) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// Inbox lists every peer the actor may talk to, with the number of
// messages received from them and the latest message exchanged. Peers
// with recent activity come first.
func (s *chatService) Inbox(_ context.Context, actor domain.Actor) ([]ports.InboxEntry, error) {
	if !policy.Can(actor, policy.OpChat) {
		return nil, forbidden("read inbox")
	}
	snap := s.store.Snapshot()

	entries := make(map[string]*ports.InboxEntry)
	var order []string
	add := func(id, name string) *ports.InboxEntry {
		if e, ok := entries[id]; ok {
			return e
		}
		e := &ports.InboxEntry{PeerID: id, PeerName: name}
		entries[id] = e
		order = append(order, id)
		return e
	}

	for _, id := range defaultPeers(actor, snap) {
		name, _ := peerName(actor, snap, id)
		add(id, name)
	}
	for _, m := range policy.Scope(actor, snap).ChatMessages {
		peer := m.ReceiverID
		if peer == actor.ID {
			peer = m.SenderID
		}
		name, ok := peerName(actor, snap, peer)
		if !ok {
			continue
		}
		e := add(peer, name)
		if m.SenderID == peer {
			e.Received++
		}
		if e.Last == nil || !m.Timestamp.Before(e.Last.Timestamp) {
			last := m
			e.Last = &last
		}
	}

	out := make([]ports.InboxEntry, 0, len(order))
	for _, id := range order {
		out = append(out, *entries[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Last, out[j].Last
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Timestamp.After(b.Timestamp)
		}
	})
	return out, nil
}

// peerName resolves a chat counterpart. Staff address clients they can
// see; clients address active staff users.
func peerName(actor domain.Actor, d domain.Dataset, id string) (string, bool) {
	if id == "" || id == actor.ID {
		return "", false
	}
	if actor.IsClient() {
		u, ok := d.FindUser(id)
		if !ok || !u.Active {
			return "", false
		}
		return u.Name, true
	}
	c, ok := policy.VisibleClient(actor, d, id)
	if !ok {
		return "", false
	}
	return c.Name, true
}

// defaultPeers lists the counterparts shown before any message exists:
// every visible client for staff, every active user admin for clients.
func defaultPeers(actor domain.Actor, d domain.Dataset) []string {
	var ids []string
	if actor.IsClient() {
		for _, u := range d.Users {
			if u.Role == domain.RoleUserAdmin && u.Active {
				ids = append(ids, u.ID)
			}
		}
		return ids
	}
	for _, c := range policy.Scope(actor, d).Clients {
		ids = append(ids, c.ID)
	}
	return ids
}
