package commands

import (
	"context"
)

type DeclineExtraWorkCommandHandler struct {
	engine *Engine
}

func NewDeclineExtraWorkCommandHandler(engine *Engine) DeclineExtraWorkCommandHandler {
	return DeclineExtraWorkCommandHandler{
		engine: engine,
	}
}

// Handle releases the declining cleaner, tells the homeowner the smaller count and
// settles the window if everyone else has already answered.
func (h DeclineExtraWorkCommandHandler) Handle(ctx context.Context, cmd DeclineExtraWorkCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		if err = j.EnsureExtraWorkOpen(t.now); err != nil {
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
		if err = c.DeclineExtraWork(t.now); err != nil {
			return err
		}
		if err = t.CompletionRepository().Update(ctx, c); err != nil {
			return err
		}

		s, err := h.engine.releaseSlot(ctx, t, j, cmd.CleanerID(), "declined extra work")
		if err != nil {
			return err
		}
		h.engine.adviseHomeowner(t, j, s, outcomeOf(j, s))
		return h.engine.settleExtraWork(ctx, t, j, s)
	})
}
