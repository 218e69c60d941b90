package commands

import (
	"context"
)

type AcceptExtraWorkCommandHandler struct {
	engine *Engine
}

func NewAcceptExtraWorkCommandHandler(engine *Engine) AcceptExtraWorkCommandHandler {
	return AcceptExtraWorkCommandHandler{
		engine: engine,
	}
}

// Handle records the acceptance. The last answer closes the window.
func (h AcceptExtraWorkCommandHandler) Handle(ctx context.Context, cmd AcceptExtraWorkCommand) error {
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
		if err = c.AcceptExtraWork(t.now); err != nil {
			return err
		}
		if err = t.CompletionRepository().Update(ctx, c); err != nil {
			return err
		}

		s, err := h.engine.syncJob(ctx, t, j)
		if err != nil {
			return err
		}
		return h.engine.settleExtraWork(ctx, t, j, s)
	})
}
