package ports

import (
	"context"
	"time"

	"multicleaner/internal/core/domain/model/notice"
)

// NotificationGateway delivers a composed message on the message's channels.
// Command handlers call it only after their transaction committed.
type NotificationGateway interface {
	Notify(ctx context.Context, msg notice.Message) error
}

// MetricsCollector records engine activity.
type MetricsCollector interface {
	RecordSweep(name string, processed, errors int, duration time.Duration)
	IncSlotFilled()
	IncSlotReleased()
	IncNotificationFailure(kind string)
}
