package ports

import "github.com/hirelane/ats/internal/core/domain"

// Collection names one of the six collections held by the entity store.
type Collection string

const (
	CollectionUsers        Collection = "users"
	CollectionClients      Collection = "clients"
	CollectionPositions    Collection = "positions"
	CollectionCandidates   Collection = "candidates"
	CollectionInvoices     Collection = "invoices"
	CollectionChatMessages Collection = "chat_messages"
)

// AllCollections lists every collection in a stable order.
var AllCollections = []Collection{
	CollectionUsers,
	CollectionClients,
	CollectionPositions,
	CollectionCandidates,
	CollectionInvoices,
	CollectionChatMessages,
}

// Change describes one committed write.
type Change struct {
	Version  uint64
	Changed  []Collection
	Snapshot domain.Dataset
}

// Has reports whether the change replaced the given collection.
func (c Change) Has(col Collection) bool {
	for _, ch := range c.Changed {
		if ch == col {
			return true
		}
	}
	return false
}

// ChangeFunc is called after every committed write.
type ChangeFunc func(Change)

// StoreTx is the view a writer gets inside EntityStore.Write. Reads observe
// replacements staged earlier in the same transaction.
type StoreTx interface {
	Users() []domain.User
	Clients() []domain.Client
	Positions() []domain.Position
	Candidates() []domain.Candidate
	Invoices() []domain.Invoice
	ChatMessages() []domain.ChatMessage

	ReplaceUsers([]domain.User)
	ReplaceClients([]domain.Client)
	ReplacePositions([]domain.Position)
	ReplaceCandidates([]domain.Candidate)
	ReplaceInvoices([]domain.Invoice)
	ReplaceChatMessages([]domain.ChatMessage)
}

// EntityStore owns all six collections. It performs no validation: callers
// uphold referential invariants before replacing a collection.
type EntityStore interface {
	// Snapshot returns a copy of every collection.
	Snapshot() domain.Dataset
	// Write runs fn with exclusive write access. Replacements staged by fn
	// are committed together when fn returns nil and dropped otherwise.
	Write(fn func(tx StoreTx) error) error
	// Subscribe registers fn to be called after each commit.
	Subscribe(fn ChangeFunc)
	// Version is incremented by every commit that changed something.
	Version() uint64
}
