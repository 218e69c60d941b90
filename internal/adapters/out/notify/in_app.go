package notify

import (
	"context"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/pkg/clock"
)

// InboxStore persists in-app notifications.
type InboxStore interface {
	Add(ctx context.Context, msg notice.Message, now time.Time) (kernel.UUID, error)
}

// InAppChannel writes the message to the recipient's inbox.
type InAppChannel struct {
	store InboxStore
	clock clock.Clock
}

func NewInAppChannel(store InboxStore, clk clock.Clock) *InAppChannel {
	return &InAppChannel{store: store, clock: clk}
}

func (c *InAppChannel) Send(ctx context.Context, msg notice.Message) error {
	_, err := c.store.Add(ctx, msg, c.clock.Now())
	return err
}
