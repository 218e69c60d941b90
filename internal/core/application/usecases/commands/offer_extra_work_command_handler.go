package commands

import (
	"context"
)

type OfferExtraWorkCommandHandler struct {
	engine *Engine
}

func NewOfferExtraWorkCommandHandler(engine *Engine) OfferExtraWorkCommandHandler {
	return OfferExtraWorkCommandHandler{
		engine: engine,
	}
}

func (h OfferExtraWorkCommandHandler) Handle(ctx context.Context, cmd OfferExtraWorkCommand) error {
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
		return h.engine.offerExtraWork(ctx, t, j, s)
	})
}
