// Package notify holds the in-process notification sink used when no
// Redis is configured.
package notify

import (
	"context"
	"sync"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

const defaultCapacity = 1000

// Outbox keeps the most recent notifications in memory. Once capacity is
// reached the oldest entries are discarded.
type Outbox struct {
	mu       sync.RWMutex
	items    []domain.Notification
	capacity int
}

var _ ports.NotificationSink = (*Outbox)(nil)

func NewOutbox(capacity int) *Outbox {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Outbox{capacity: capacity}
}

func (o *Outbox) Deliver(_ context.Context, n domain.Notification) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items = append(o.items, n)
	if over := len(o.items) - o.capacity; over > 0 {
		o.items = append([]domain.Notification(nil), o.items[over:]...)
	}
	return nil
}

// Recent returns up to limit notifications, newest first.
func (o *Outbox) Recent(_ context.Context, limit int) ([]domain.Notification, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if limit <= 0 || limit > len(o.items) {
		limit = len(o.items)
	}
	out := make([]domain.Notification, 0, limit)
	for i := len(o.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, o.items[i])
	}
	return out, nil
}
