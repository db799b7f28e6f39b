package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *stubNotifier) Notify(_ context.Context, msg domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *stubNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type stubSink struct {
	items []domain.Notification
	limit int
	err   error
}

func (s *stubSink) Deliver(_ context.Context, n domain.Notification) error {
	s.items = append(s.items, n)
	return nil
}

func (s *stubSink) Recent(_ context.Context, limit int) ([]domain.Notification, error) {
	s.limit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func demoStore() *memory.Store {
	return memory.NewStore(memory.DemoDataset(fixedNow))
}

var (
	superAdmin = domain.SuperAdmin("1")
	userAdmin  = domain.UserAdmin("2")
	techCorp   = domain.ClientActor("c1")
	digitalSol = domain.ClientActor("c2")
	ctx        = context.Background()
)

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}
