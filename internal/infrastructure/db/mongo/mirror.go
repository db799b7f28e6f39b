package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

// writeFunc replaces the full contents of one reporting collection.
type writeFunc func(ctx context.Context, col ports.Collection, docs []interface{}) error

// Mirror copies every committed store change into MongoDB so that BI
// tooling can query the data. The in-memory store stays authoritative;
// the mirror is write-only and eventually consistent.
//
// Changes are coalesced: while a sync is running, later changes only
// mark collections dirty and the next sync writes the newest snapshot.
type Mirror struct {
	write writeFunc
	log   zerolog.Logger

	mu       sync.Mutex
	dirty    map[ports.Collection]bool
	snapshot domain.Dataset
	version  uint64
	signal   chan struct{}
}

// NewMirror returns a Mirror writing to db.
func NewMirror(db *mongo.Database, log zerolog.Logger) *Mirror {
	m := newMirror(log)
	m.write = func(ctx context.Context, col ports.Collection, docs []interface{}) error {
		return replaceCollection(ctx, db.Collection(string(col)), docs)
	}
	return m
}

func newMirror(log zerolog.Logger) *Mirror {
	return &Mirror{
		log:    log,
		dirty:  make(map[ports.Collection]bool),
		signal: make(chan struct{}, 1),
	}
}

// Observe is a ports.ChangeFunc. It never blocks the writer.
func (m *Mirror) Observe(c ports.Change) {
	m.mu.Lock()
	for _, col := range c.Changed {
		m.dirty[col] = true
	}
	if c.Version >= m.version {
		m.snapshot = c.Snapshot
		m.version = c.Version
	}
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

// Seed marks every collection dirty so the first sync writes the initial
// dataset.
func (m *Mirror) Seed(d domain.Dataset) {
	m.Observe(ports.Change{Changed: ports.AllCollections, Snapshot: d})
}

// Run syncs pending changes until ctx is cancelled.
func (m *Mirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.signal:
			m.sync(ctx)
		}
	}
}

func (m *Mirror) sync(ctx context.Context) {
	m.mu.Lock()
	cols := make([]ports.Collection, 0, len(m.dirty))
	for _, col := range ports.AllCollections {
		if m.dirty[col] {
			cols = append(cols, col)
		}
	}
	snap := m.snapshot
	version := m.version
	m.dirty = make(map[ports.Collection]bool)
	m.mu.Unlock()

	for _, col := range cols {
		if err := m.write(ctx, col, documents(col, snap)); err != nil {
			m.log.Error().Err(err).Str("collection", string(col)).Uint64("version", version).Msg("mirror sync failed")
			m.mu.Lock()
			m.dirty[col] = true
			m.mu.Unlock()
			continue
		}
		m.log.Debug().Str("collection", string(col)).Uint64("version", version).Msg("mirror synced")
	}
}

// documents converts one collection of d into insertable documents.
// Stored passwords never leave the process.
func documents(col ports.Collection, d domain.Dataset) []interface{} {
	var docs []interface{}
	switch col {
	case ports.CollectionUsers:
		for _, u := range d.Users {
			u.Password = ""
			docs = append(docs, u)
		}
	case ports.CollectionClients:
		for _, c := range d.Clients {
			c.Password = ""
			docs = append(docs, c)
		}
	case ports.CollectionPositions:
		for _, p := range d.Positions {
			docs = append(docs, p)
		}
	case ports.CollectionCandidates:
		for _, c := range d.Candidates {
			docs = append(docs, c)
		}
	case ports.CollectionInvoices:
		for _, i := range d.Invoices {
			docs = append(docs, i)
		}
	case ports.CollectionChatMessages:
		for _, msg := range d.ChatMessages {
			docs = append(docs, msg)
		}
	}
	return docs
}

func replaceCollection(ctx context.Context, col *mongo.Collection, docs []interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear %s: %w", col.Name(), err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", col.Name(), err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes used by reporting queries.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[ports.Collection][]mongo.IndexModel{
		ports.CollectionPositions: {
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		ports.CollectionCandidates: {
			{Keys: bson.D{{Key: "position_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		ports.CollectionInvoices: {
			{Keys: bson.D{{Key: "client_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}}},
		},
		ports.CollectionChatMessages: {
			{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "timestamp", Value: 1}}},
		},
	}
	for col, models := range indexes {
		if _, err := db.Collection(string(col)).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", col, err)
		}
	}
	return nil
}
