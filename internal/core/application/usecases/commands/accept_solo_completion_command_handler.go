package commands

import (
	"context"
)

type AcceptSoloCompletionCommandHandler struct {
	engine *Engine
}

func NewAcceptSoloCompletionCommandHandler(engine *Engine) AcceptSoloCompletionCommandHandler {
	return AcceptSoloCompletionCommandHandler{
		engine: engine,
	}
}

// Handle makes the sole remaining cleaner the whole team. The job shrinks to one
// required cleaner, becomes filled and stops taking offers and requests.
func (h AcceptSoloCompletionCommandHandler) Handle(ctx context.Context, cmd AcceptSoloCompletionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		actives, err := t.CompletionRepository().ListActiveByJob(ctx, j.ID())
		if err != nil {
			return err
		}
		c, err := activeCompletion(actives, cmd.CleanerID())
		if err != nil {
			return err
		}

		if err = j.AcceptSolo(t.now); err != nil {
			return err
		}
		if err = c.AcceptSolo(t.now); err != nil {
			return err
		}
		if err = t.CompletionRepository().Update(ctx, c); err != nil {
			return err
		}

		s, err := h.engine.syncJob(ctx, t, j)
		if err != nil {
			return err
		}
		if j.IsFilled() {
			return h.engine.onFilled(ctx, t, j, s.appointment)
		}
		return nil
	})
}
