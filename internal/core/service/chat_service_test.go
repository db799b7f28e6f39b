package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

func newChatSvc(store ports.EntityStore) *chatService {
	svc := NewChatService(store, zerolog.Nop()).(*chatService)
	svc.now = fixedClock
	return svc
}

func TestChatService_SendAndConversation(t *testing.T) {
	store := demoStore()
	svc := newChatSvc(store)

	msg, err := svc.Send(ctx, userAdmin, "c1", "  Interview on Monday?  ")
	mustNoErr(t, err)
	if msg.Message != "Interview on Monday?" || msg.SenderID != "2" || msg.ReceiverID != "c1" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	conv, err := svc.Conversation(ctx, techCorp, "2")
	mustNoErr(t, err)
	if len(conv) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conv))
	}
	if conv[len(conv)-1].ID != msg.ID {
		t.Error("conversation must be ordered oldest first")
	}
}

func TestChatService_Send_Rejections(t *testing.T) {
	store := demoStore()
	svc := newChatSvc(store)

	if _, err := svc.Send(ctx, userAdmin, "c1", "   "); !errors.Is(err, domain.ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Send(ctx, userAdmin, "2", "hi me"); !errors.Is(err, domain.ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference for self, got %v", err)
	}
	if _, err := svc.Send(ctx, techCorp, "c2", "hello neighbour"); !errors.Is(err, domain.ErrInvalidReference) {
		t.Errorf("clients may not message other clients, got %v", err)
	}
	if store.Version() != 0 {
		t.Fatal("rejected sends must not write")
	}
}

func TestChatService_ConversationsAreIsolated(t *testing.T) {
	svc := newChatSvc(demoStore())

	conv, err := svc.Conversation(ctx, digitalSol, "2")
	mustNoErr(t, err)
	if len(conv) != 0 {
		t.Fatalf("Digital Solutions must not see Tech Corp's messages, got %+v", conv)
	}
}

func TestChatService_Inbox(t *testing.T) {
	store := demoStore()
	svc := newChatSvc(store)

	inbox, err := svc.Inbox(ctx, userAdmin)
	mustNoErr(t, err)
	if len(inbox) != 2 {
		t.Fatalf("expected every client in the inbox, got %d", len(inbox))
	}
	if inbox[0].PeerID != "c1" || inbox[0].Received != 1 || inbox[0].Last == nil {
		t.Fatalf("expected Tech Corp first with one received message, got %+v", inbox[0])
	}
	if inbox[1].PeerID != "c2" || inbox[1].Last != nil {
		t.Errorf("expected empty Digital Solutions entry, got %+v", inbox[1])
	}

	svc.now = func() time.Time { return fixedNow.Add(time.Minute) }
	_, err = svc.Send(ctx, digitalSol, "2", "Any update?")
	mustNoErr(t, err)

	inbox, err = svc.Inbox(ctx, userAdmin)
	mustNoErr(t, err)
	if inbox[0].PeerID != "c2" || inbox[0].PeerName != "Digital Solutions Ltd" {
		t.Fatalf("most recent conversation should come first, got %+v", inbox[0])
	}

	clientInbox, err := svc.Inbox(ctx, techCorp)
	mustNoErr(t, err)
	if len(clientInbox) != 1 || clientInbox[0].PeerID != "2" || clientInbox[0].Received != 1 {
		t.Fatalf("unexpected client inbox: %+v", clientInbox)
	}
}
