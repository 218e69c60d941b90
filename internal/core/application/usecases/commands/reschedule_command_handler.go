package commands

import (
	"context"
)

type RescheduleCommandHandler struct {
	engine *Engine
}

func NewRescheduleCommandHandler(engine *Engine) RescheduleCommandHandler {
	return RescheduleCommandHandler{
		engine: engine,
	}
}

// Handle moves the appointment, re-arms the urgent-fill and final-warning sweeps
// and tells the confirmed cleaners.
func (h RescheduleCommandHandler) Handle(ctx context.Context, cmd RescheduleCommand) error {
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
		return h.engine.reschedule(ctx, t, j, cmd.Date())
	})
}
