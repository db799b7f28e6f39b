package mongo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

type recordedWrite struct {
	col  ports.Collection
	docs []interface{}
}

type fakeWriter struct {
	mu     sync.Mutex
	writes []recordedWrite
	fail   ports.Collection
}

func (f *fakeWriter) write(_ context.Context, col ports.Collection, docs []interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if col == f.fail {
		return errors.New("mongo unavailable")
	}
	f.writes = append(f.writes, recordedWrite{col: col, docs: docs})
	return nil
}

func newTestMirror(f *fakeWriter) *Mirror {
	m := newMirror(zerolog.Nop())
	m.write = f.write
	return m
}

func TestMirror_SyncWritesOnlyDirtyCollections(t *testing.T) {
	f := &fakeWriter{}
	m := newTestMirror(f)

	m.Observe(ports.Change{
		Version:  1,
		Changed:  []ports.Collection{ports.CollectionInvoices},
		Snapshot: domain.Dataset{Invoices: []domain.Invoice{{ID: "1"}, {ID: "2"}}},
	})
	m.sync(context.Background())

	if len(f.writes) != 1 || f.writes[0].col != ports.CollectionInvoices || len(f.writes[0].docs) != 2 {
		t.Fatalf("unexpected writes: %+v", f.writes)
	}
}

func TestMirror_CoalescesToNewestSnapshot(t *testing.T) {
	f := &fakeWriter{}
	m := newTestMirror(f)

	m.Observe(ports.Change{Version: 1, Changed: []ports.Collection{ports.CollectionPositions}, Snapshot: domain.Dataset{Positions: []domain.Position{{ID: "1"}}}})
	m.Observe(ports.Change{Version: 2, Changed: []ports.Collection{ports.CollectionPositions}, Snapshot: domain.Dataset{Positions: []domain.Position{{ID: "1"}, {ID: "2"}}}})
	m.sync(context.Background())

	if len(f.writes) != 1 || len(f.writes[0].docs) != 2 {
		t.Fatalf("expected one write of the newest snapshot, got %+v", f.writes)
	}
}

func TestMirror_FailedCollectionStaysDirty(t *testing.T) {
	f := &fakeWriter{fail: ports.CollectionUsers}
	m := newTestMirror(f)

	m.Seed(domain.Dataset{})
	m.sync(context.Background())
	if len(f.writes) != len(ports.AllCollections)-1 {
		t.Fatalf("expected every collection but users written, got %d", len(f.writes))
	}

	f.fail = ""
	m.sync(context.Background())
	last := f.writes[len(f.writes)-1]
	if last.col != ports.CollectionUsers {
		t.Fatalf("expected users retried on next sync, got %s", last.col)
	}
}

func TestMirror_RunStopsOnCancel(t *testing.T) {
	f := &fakeWriter{}
	m := newTestMirror(f)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()
	m.Observe(ports.Change{Version: 1, Changed: []ports.Collection{ports.CollectionClients}})
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestDocuments_StripPasswords(t *testing.T) {
	d := domain.Dataset{
		Users:   []domain.User{{ID: "1", Password: "admin123"}},
		Clients: []domain.Client{{ID: "c1", Password: "client123"}},
	}

	users := documents(ports.CollectionUsers, d)
	if u := users[0].(domain.User); u.Password != "" {
		t.Errorf("user password leaked: %q", u.Password)
	}
	clients := documents(ports.CollectionClients, d)
	if c := clients[0].(domain.Client); c.Password != "" {
		t.Errorf("client password leaked: %q", c.Password)
	}
	if d.Users[0].Password != "admin123" {
		t.Error("source dataset must not be modified")
	}
}
