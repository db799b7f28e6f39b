package handler

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

const subscriberBuffer = 32

type chatSub struct {
	actorID string
	ch      chan domain.ChatMessage
}

// ChatHub fans newly appended chat messages out to websocket subscribers.
// It is fed by the entity store's change feed; the chat log is append-only,
// so new messages are the tail beyond the last length seen.
type ChatHub struct {
	mu          sync.Mutex
	seen        int
	lastVersion uint64
	subs        map[*chatSub]struct{}
	closed      bool
	log         zerolog.Logger
}

// NewChatHub returns a hub that treats the first seen messages as history.
func NewChatHub(seen int, log zerolog.Logger) *ChatHub {
	return &ChatHub{
		seen: seen,
		subs: make(map[*chatSub]struct{}),
		log:  log,
	}
}

// Observe is an entity store ChangeFunc.
func (h *ChatHub) Observe(c ports.Change) {
	if !c.Has(ports.CollectionChatMessages) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Subscribers may run concurrently; a later snapshot already contains
	// everything an older one would add.
	if c.Version <= h.lastVersion {
		return
	}
	h.lastVersion = c.Version

	msgs := c.Snapshot.ChatMessages
	if len(msgs) < h.seen {
		h.seen = len(msgs)
		return
	}
	fresh := msgs[h.seen:]
	h.seen = len(msgs)

	for _, m := range fresh {
		for sub := range h.subs {
			if !m.Involves(sub.actorID) {
				continue
			}
			select {
			case sub.ch <- m:
			default:
				h.log.Warn().Str("actor_id", sub.actorID).Str("message_id", m.ID).Msg("chat subscriber lagging, message dropped")
			}
		}
	}
}

// subscribe registers a listener for messages sent by or to actorID. The
// returned channel is closed by cancel or Close.
func (h *ChatHub) subscribe(actorID string) (<-chan domain.ChatMessage, func()) {
	sub := &chatSub{actorID: actorID, ch: make(chan domain.ChatMessage, subscriberBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}
	h.subs[sub] = struct{}{}

	return sub.ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[sub]; ok {
			delete(h.subs, sub)
			close(sub.ch)
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (h *ChatHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close ends every subscription. Later subscribers get a closed channel.
func (h *ChatHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.ch)
	}
}
