package api

import (
	"context"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

// notifierFunc delivers straight into a sink, skipping the worker pool so
// router tests stay synchronous.
func notifierFunc(sink ports.NotificationSink) ports.Notifier {
	return syncNotifier{sink: sink}
}

type syncNotifier struct{ sink ports.NotificationSink }

func (n syncNotifier) Notify(ctx context.Context, msg domain.Notification) {
	_ = n.sink.Deliver(ctx, msg)
}
