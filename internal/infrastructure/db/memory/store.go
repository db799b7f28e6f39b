// Package memory holds the authoritative in-memory entity store.
package memory

import (
	"slices"
	"sync"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

// Store implements ports.EntityStore. Collections are only ever swapped as
// a whole; writers are serialised and readers receive copies.
type Store struct {
	mu      sync.RWMutex
	data    domain.Dataset
	version uint64

	subMu sync.RWMutex
	subs  []ports.ChangeFunc
}

var _ ports.EntityStore = (*Store)(nil)

// NewStore returns a store initialised with a copy of seed.
func NewStore(seed domain.Dataset) *Store {
	return &Store{data: seed.Clone()}
}

func (s *Store) Snapshot() domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) Subscribe(fn ports.ChangeFunc) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

// Write runs fn with exclusive access. Subscribers are called after the
// lock is released, in registration order.
func (s *Store) Write(fn func(tx ports.StoreTx) error) error {
	change, committed, err := s.commit(fn)
	if err != nil || !committed {
		return err
	}

	s.subMu.RLock()
	subs := slices.Clone(s.subs)
	s.subMu.RUnlock()
	for _, sub := range subs {
		sub(change)
	}
	return nil
}

// commit applies fn under the write lock. The lock is released even when fn
// panics, and a panicking or failing fn leaves the data untouched.
func (s *Store) commit(fn func(tx ports.StoreTx) error) (ports.Change, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := &tx{base: &s.data}
	if err := fn(w); err != nil {
		return ports.Change{}, false, err
	}
	if len(w.changed) == 0 {
		return ports.Change{}, false, nil
	}
	w.apply(&s.data)
	s.version++
	return ports.Change{
		Version:  s.version,
		Changed:  w.changedList(),
		Snapshot: s.data.Clone(),
	}, true, nil
}

// tx stages whole-collection replacements on top of base.
type tx struct {
	base    *domain.Dataset
	staged  domain.Dataset
	changed map[ports.Collection]bool
}

func (t *tx) mark(c ports.Collection) {
	if t.changed == nil {
		t.changed = make(map[ports.Collection]bool)
	}
	t.changed[c] = true
}

func (t *tx) changedList() []ports.Collection {
	out := make([]ports.Collection, 0, len(t.changed))
	for _, c := range ports.AllCollections {
		if t.changed[c] {
			out = append(out, c)
		}
	}
	return out
}

func (t *tx) apply(d *domain.Dataset) {
	if t.changed[ports.CollectionUsers] {
		d.Users = t.staged.Users
	}
	if t.changed[ports.CollectionClients] {
		d.Clients = t.staged.Clients
	}
	if t.changed[ports.CollectionPositions] {
		d.Positions = t.staged.Positions
	}
	if t.changed[ports.CollectionCandidates] {
		d.Candidates = t.staged.Candidates
	}
	if t.changed[ports.CollectionInvoices] {
		d.Invoices = t.staged.Invoices
	}
	if t.changed[ports.CollectionChatMessages] {
		d.ChatMessages = t.staged.ChatMessages
	}
}

func (t *tx) Users() []domain.User {
	if t.changed[ports.CollectionUsers] {
		return domain.CloneUsers(t.staged.Users)
	}
	return domain.CloneUsers(t.base.Users)
}

func (t *tx) Clients() []domain.Client {
	if t.changed[ports.CollectionClients] {
		return slices.Clone(t.staged.Clients)
	}
	return slices.Clone(t.base.Clients)
}

func (t *tx) Positions() []domain.Position {
	if t.changed[ports.CollectionPositions] {
		return slices.Clone(t.staged.Positions)
	}
	return slices.Clone(t.base.Positions)
}

func (t *tx) Candidates() []domain.Candidate {
	if t.changed[ports.CollectionCandidates] {
		return slices.Clone(t.staged.Candidates)
	}
	return slices.Clone(t.base.Candidates)
}

func (t *tx) Invoices() []domain.Invoice {
	if t.changed[ports.CollectionInvoices] {
		return slices.Clone(t.staged.Invoices)
	}
	return slices.Clone(t.base.Invoices)
}

func (t *tx) ChatMessages() []domain.ChatMessage {
	if t.changed[ports.CollectionChatMessages] {
		return slices.Clone(t.staged.ChatMessages)
	}
	return slices.Clone(t.base.ChatMessages)
}

func (t *tx) ReplaceUsers(v []domain.User) {
	t.staged.Users = domain.CloneUsers(v)
	t.mark(ports.CollectionUsers)
}

func (t *tx) ReplaceClients(v []domain.Client) {
	t.staged.Clients = slices.Clone(v)
	t.mark(ports.CollectionClients)
}

func (t *tx) ReplacePositions(v []domain.Position) {
	t.staged.Positions = slices.Clone(v)
	t.mark(ports.CollectionPositions)
}

func (t *tx) ReplaceCandidates(v []domain.Candidate) {
	t.staged.Candidates = slices.Clone(v)
	t.mark(ports.CollectionCandidates)
}

func (t *tx) ReplaceInvoices(v []domain.Invoice) {
	t.staged.Invoices = slices.Clone(v)
	t.mark(ports.CollectionInvoices)
}

func (t *tx) ReplaceChatMessages(v []domain.ChatMessage) {
	t.staged.ChatMessages = slices.Clone(v)
	t.mark(ports.CollectionChatMessages)
}
