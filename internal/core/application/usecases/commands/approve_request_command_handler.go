package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/joinrequest"
	"multicleaner/internal/core/domain/model/notice"
)

type ApproveRequestCommandHandler struct {
	engine *Engine
}

func NewApproveRequestCommandHandler(engine *Engine) ApproveRequestCommandHandler {
	return ApproveRequestCommandHandler{
		engine: engine,
	}
}

// Handle approves a pending request and fills a slot for the cleaner. The rooms
// named in the request are used when still free; otherwise rooms are picked.
// Sibling requests are cancelled once the job is filled.
func (h ApproveRequestCommandHandler) Handle(ctx context.Context, cmd ApproveRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		r, err := t.JoinRequestRepository().Get(ctx, cmd.RequestID())
		if err != nil {
			return err
		}
		if err = r.Approve(cmd.HomeownerID(), t.now); err != nil {
			return err
		}
		if err = t.JoinRequestRepository().Update(ctx, r); err != nil {
			return err
		}

		j, err := t.JobRepository().Get(ctx, r.JobID())
		if err != nil {
			return err
		}
		return h.engine.admit(ctx, t, j, r)
	})
}

// admit fills the slot of an approved request and tells the cleaner.
func (e *Engine) admit(ctx context.Context, t *tx, j *job.Job, r *joinrequest.Request) error {
	rooms, err := stillUnassigned(ctx, t, j.ID(), r.RoomAssignmentIDs())
	if err != nil {
		return err
	}
	if _, err = e.fillSlot(ctx, t, j, r.CleanerID(), rooms); err != nil {
		return err
	}
	t.out.Add(r.CleanerID(), notice.JoinRequestApproved, notice.Params{
		JobID:         j.ID(),
		AppointmentID: j.AppointmentID(),
		RequestID:     r.ID(),
	})
	return nil
}
