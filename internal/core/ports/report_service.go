package ports

import (
	"context"

	"github.com/hirelane/ats/internal/core/aggregate"
	"github.com/hirelane/ats/internal/core/domain"
)

type ReportService interface {
	Summary(ctx context.Context, actor domain.Actor) (*aggregate.Summary, error)
}

type NotificationService interface {
	RecentNotifications(ctx context.Context, actor domain.Actor, limit int) ([]domain.Notification, error)
}
