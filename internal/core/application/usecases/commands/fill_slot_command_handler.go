package commands

import (
	"context"
)

// FillSlotCommandHandler claims rooms for a cleaner with a conditional update, so
// two callers racing for the same rooms never both win.
//
// Example:
//
//	handler := NewFillSlotCommandHandler(engine)
//	cmd, _ := NewFillSlotCommand(jobID, cleanerID, roomIDs)
//
//	err := handler.Handle(ctx, cmd)
//	switch msg, _ := errs.ConflictMessage(err); {
//	case msg == job.MsgJobFilled:
//	    log.Println("Job is already filled")
//	case msg == MsgRoomsUnavailable:
//	    log.Println("Someone else took those rooms")
//	case err != nil:
//	    log.Printf("Fill failed: %v", err)
//	}
type FillSlotCommandHandler struct {
	engine *Engine
}

func NewFillSlotCommandHandler(engine *Engine) FillSlotCommandHandler {
	return FillSlotCommandHandler{
		engine: engine,
	}
}

// Handle is idempotent for a cleaner who already holds a slot on the job.
func (h FillSlotCommandHandler) Handle(ctx context.Context, cmd FillSlotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		_, err = h.engine.fillSlot(ctx, t, j, cmd.CleanerID(), cmd.RoomIDs())
		return err
	})
}
