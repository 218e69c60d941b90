// Package notify delivers composed notices. The Gateway fans a message out to the
// channels the message asks for; each channel is independent of the others.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/ports"
	"multicleaner/internal/pkg/errs"
)

// Sender is one delivery channel.
type Sender interface {
	Send(ctx context.Context, msg notice.Message) error
}

type Gateway struct {
	senders map[notice.Channel]Sender
	logger  *slog.Logger
}

var _ ports.NotificationGateway = (*Gateway)(nil)

// NewGateway wires the senders by channel. Channels without a sender are skipped,
// so a deployment without SMTP simply sends no email.
func NewGateway(senders map[notice.Channel]Sender, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	wired := make(map[notice.Channel]Sender, len(senders))
	for ch, s := range senders {
		if s != nil {
			wired[ch] = s
		}
	}
	return &Gateway{senders: wired, logger: logger.With("component", "notify")}, nil
}

// Notify tries every requested channel even when an earlier one failed and
// reports all failures together.
func (g *Gateway) Notify(ctx context.Context, msg notice.Message) error {
	var failed []error
	for _, ch := range msg.Channels {
		s, ok := g.senders[ch]
		if !ok {
			g.logger.DebugContext(ctx, "channel not configured", "channel", string(ch), "kind", msg.Kind.String())
			continue
		}
		if err := s.Send(ctx, msg); err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", ch, err))
		}
	}
	if len(failed) > 0 {
		return errs.NewUpstreamError("notification", errors.Join(failed...))
	}
	return nil
}
