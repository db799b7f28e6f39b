package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

const (
	DefaultNotificationKey = "ats:notifications"
	defaultSinkCapacity    = 1000
)

// NotificationSink stores delivered notifications in a capped Redis list,
// newest at the head.
// Key format: <key> (LIST of JSON-encoded domain.Notification)
type NotificationSink struct {
	client   *redis.Client
	key      string
	capacity int64
}

var _ ports.NotificationSink = (*NotificationSink)(nil)

// NewNotificationSink creates a sink writing to key. An empty key selects
// DefaultNotificationKey.
func NewNotificationSink(client *redis.Client, key string) *NotificationSink {
	if key == "" {
		key = DefaultNotificationKey
	}
	return &NotificationSink{client: client, key: key, capacity: defaultSinkCapacity}
}

// Deliver pushes n and trims the list in a single round trip.
func (s *NotificationSink) Deliver(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, payload)
	pipe.LTrim(ctx, s.key, 0, s.capacity-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push notification: %w", err)
	}
	return nil
}

// Recent returns up to limit notifications, newest first.
func (s *NotificationSink) Recent(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = int(s.capacity)
	}
	raw, err := s.client.LRange(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read notifications: %w", err)
	}
	out := make([]domain.Notification, 0, len(raw))
	for _, r := range raw {
		var n domain.Notification
		if err := json.Unmarshal([]byte(r), &n); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}
