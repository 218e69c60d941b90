package commands

import (
	"context"
)

type DeclineOfferCommandHandler struct {
	engine *Engine
}

func NewDeclineOfferCommandHandler(engine *Engine) DeclineOfferCommandHandler {
	return DeclineOfferCommandHandler{
		engine: engine,
	}
}

// Handle records the decline. Only the invited cleaner may decline, and only a pending offer.
func (h DeclineOfferCommandHandler) Handle(ctx context.Context, cmd DeclineOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		o, err := t.OfferRepository().Get(ctx, cmd.OfferID())
		if err != nil {
			return err
		}
		if err = o.Decline(cmd.CleanerID(), cmd.Reason(), t.now); err != nil {
			return err
		}
		return t.OfferRepository().Update(ctx, o)
	})
}
