package commands

import (
	"context"
)

type ReleaseSlotCommandHandler struct {
	engine *Engine
}

func NewReleaseSlotCommandHandler(engine *Engine) ReleaseSlotCommandHandler {
	return ReleaseSlotCommandHandler{
		engine: engine,
	}
}

// Handle marks the completion dropped out, returns the cleaner's unfinished rooms
// to the pool and recomputes the job's confirmed count and status.
func (h ReleaseSlotCommandHandler) Handle(ctx context.Context, cmd ReleaseSlotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		_, err = h.engine.releaseSlot(ctx, t, j, cmd.CleanerID(), cmd.Reason())
		return err
	})
}
