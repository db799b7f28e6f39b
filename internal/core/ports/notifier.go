package ports

import (
	"context"

	"github.com/hirelane/ats/internal/core/domain"
)

// Notifier accepts outbound notifications. Delivery is best-effort: there
// is no acknowledgement and no retry.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// NotificationSink is where notifications end up once delivered.
type NotificationSink interface {
	Deliver(ctx context.Context, n domain.Notification) error
	Recent(ctx context.Context, limit int) ([]domain.Notification, error)
}
