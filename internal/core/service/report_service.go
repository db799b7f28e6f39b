package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/aggregate"
	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/policy"
	"github.com/hirelane/ats/internal/core/ports"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 500
)

type reportService struct {
	store ports.EntityStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewReportService returns a ReportService implementation. Reports are
// recomputed from the actor's scope on every call.
func NewReportService(store ports.EntityStore, log zerolog.Logger) ports.ReportService {
	return &reportService{store: store, log: log, now: utcNow}
}

func (s *reportService) Summary(_ context.Context, actor domain.Actor) (*aggregate.Summary, error) {
	if !policy.Can(actor, policy.OpViewReports) {
		return nil, forbidden("summary")
	}
	sum := aggregate.Summarize(policy.Scope(actor, s.store.Snapshot()), s.now())
	return &sum, nil
}

type notificationService struct {
	sink ports.NotificationSink
	log  zerolog.Logger
}

// NewNotificationService exposes the delivered notifications held by sink.
func NewNotificationService(sink ports.NotificationSink, log zerolog.Logger) ports.NotificationService {
	return &notificationService{sink: sink, log: log}
}

// RecentNotifications returns up to limit notifications, newest first. A
// non-positive limit selects the default.
func (s *notificationService) RecentNotifications(ctx context.Context, actor domain.Actor, limit int) ([]domain.Notification, error) {
	if !policy.Can(actor, policy.OpListNotifications) {
		return nil, forbidden("list notifications")
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	out, err := s.sink.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}
