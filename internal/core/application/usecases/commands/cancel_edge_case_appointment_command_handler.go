package commands

import (
	"context"
)

type CancelEdgeCaseAppointmentCommandHandler struct {
	engine *Engine
}

func NewCancelEdgeCaseAppointmentCommandHandler(engine *Engine) CancelEdgeCaseAppointmentCommandHandler {
	return CancelEdgeCaseAppointmentCommandHandler{
		engine: engine,
	}
}

// Handle cancels the job with decision "cancel", cancels the appointment's payment,
// drops every cleaner and tells the homeowner and the confirmed cleaner.
func (h CancelEdgeCaseAppointmentCommandHandler) Handle(ctx context.Context, cmd CancelEdgeCaseAppointmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		return h.engine.cancelJob(ctx, t, j, cmd.Reason(), j.CancelEdgeCase)
	})
}
