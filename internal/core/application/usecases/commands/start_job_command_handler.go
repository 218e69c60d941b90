package commands

import (
	"context"
)

type StartJobCommandHandler struct {
	engine *Engine
}

func NewStartJobCommandHandler(engine *Engine) StartJobCommandHandler {
	return StartJobCommandHandler{
		engine: engine,
	}
}

// Handle moves the cleaner's completion to started and their pending rooms into progress.
// Starting twice is harmless.
func (h StartJobCommandHandler) Handle(ctx context.Context, cmd StartJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		if err = j.EnsureActive(); err != nil {
			return err
		}

		c, err := t.CompletionRepository().GetByJobAndCleaner(ctx, j.ID(), cmd.CleanerID())
		if err != nil {
			return err
		}
		if err = c.Start(t.now); err != nil {
			return err
		}
		if err = t.CompletionRepository().Update(ctx, c); err != nil {
			return err
		}

		rooms, err := t.RoomRepository().ListByJob(ctx, j.ID())
		if err != nil {
			return err
		}
		for _, r := range rooms {
			if !r.IsAssignedTo(cmd.CleanerID()) || r.IsCompleted() {
				continue
			}
			if err = r.Start(cmd.CleanerID()); err != nil {
				return err
			}
			if err = t.RoomRepository().Update(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
}
