package commands

import (
	"context"
)

type CancelJobCommandHandler struct {
	engine *Engine
}

func NewCancelJobCommandHandler(engine *Engine) CancelJobCommandHandler {
	return CancelJobCommandHandler{
		engine: engine,
	}
}

// Handle cancels the job and its appointment, drops every unfinished cleaner,
// withdraws open offers and cancels pending join requests.
// Only the appointment's homeowner may cancel.
func (h CancelJobCommandHandler) Handle(ctx context.Context, cmd CancelJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		if _, err = ownedAppointment(ctx, t, j, cmd.HomeownerID()); err != nil {
			return err
		}
		return h.engine.cancelJob(ctx, t, j, cmd.Reason(), j.Cancel)
	})
}
