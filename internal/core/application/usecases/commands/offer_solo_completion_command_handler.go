package commands

import (
	"context"
)

type OfferSoloCompletionCommandHandler struct {
	engine *Engine
}

func NewOfferSoloCompletionCommandHandler(engine *Engine) OfferSoloCompletionCommandHandler {
	return OfferSoloCompletionCommandHandler{
		engine: engine,
	}
}

func (h OfferSoloCompletionCommandHandler) Handle(ctx context.Context, cmd OfferSoloCompletionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		s, err := h.engine.syncJob(ctx, t, j)
		if err != nil {
			return err
		}
		return h.engine.offerSolo(ctx, t, j, s)
	})
}
