package commands

import (
	"context"
)

type DeclineSoloCompletionCommandHandler struct {
	engine *Engine
}

func NewDeclineSoloCompletionCommandHandler(engine *Engine) DeclineSoloCompletionCommandHandler {
	return DeclineSoloCompletionCommandHandler{
		engine: engine,
	}
}

// Handle records the refusal, releases the cleaner and tells the homeowner that
// nobody is left.
func (h DeclineSoloCompletionCommandHandler) Handle(ctx context.Context, cmd DeclineSoloCompletionCommand) error {
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

		if err = j.DeclineSolo(); err != nil {
			return err
		}
		c.DeclineSolo(t.now)
		if err = t.CompletionRepository().Update(ctx, c); err != nil {
			return err
		}

		s, err := h.engine.releaseSlot(ctx, t, j, cmd.CleanerID(), "declined solo completion")
		if err != nil {
			return err
		}
		h.engine.adviseHomeowner(t, j, s, outcomeOf(j, s))
		return nil
	})
}
