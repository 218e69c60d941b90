package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/pkg/errs"
)

// MsgPhotosRequired is returned when a room is checked off without its photos.
const MsgPhotosRequired = "Before and after photos are required"

// CompleteRoomResult tells the caller how far the room moved the job along.
type CompleteRoomResult struct {
	CleanerCompleted bool
	JobCompleted     bool
}

type CompleteRoomCommandHandler struct {
	engine *Engine
}

func NewCompleteRoomCommandHandler(engine *Engine) CompleteRoomCommandHandler {
	return CompleteRoomCommandHandler{
		engine: engine,
	}
}

// Handle completes the room. The cleaner's last room completes the cleaner and
// the job's last room completes the job.
func (h CompleteRoomCommandHandler) Handle(ctx context.Context, cmd CompleteRoomCommand) (CompleteRoomResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteRoomResult{}, err
	}
	if !cmd.HasRequiredPhotos() {
		return CompleteRoomResult{}, errs.NewValueIsRequiredError(MsgPhotosRequired)
	}

	var res CompleteRoomResult
	err := h.engine.inTx(ctx, func(t *tx) error {
		res = CompleteRoomResult{}

		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		if err = j.EnsureActive(); err != nil {
			return err
		}

		r, err := t.RoomRepository().Get(ctx, cmd.RoomID())
		if err != nil {
			return err
		}
		if !r.JobID().IsEqual(j.ID()) {
			return errs.NewObjectNotFoundError("room assignment", cmd.RoomID().String())
		}
		if err = r.Complete(cmd.CleanerID(), t.now); err != nil {
			return err
		}
		if err = t.RoomRepository().Update(ctx, r); err != nil {
			return err
		}

		rooms, err := t.RoomRepository().ListByJob(ctx, j.ID())
		if err != nil {
			return err
		}

		cleanerDone := true
		for _, other := range rooms {
			if other.IsAssignedTo(cmd.CleanerID()) && !other.IsCompleted() {
				cleanerDone = false
				break
			}
		}
		if cleanerDone {
			c, err := t.CompletionRepository().GetByJobAndCleaner(ctx, j.ID(), cmd.CleanerID())
			if err != nil {
				return err
			}
			if c.IsActive() && c.Status() != completion.Completed {
				if err = c.Complete(t.now); err != nil {
					return err
				}
				if err = t.CompletionRepository().Update(ctx, c); err != nil {
					return err
				}
			}
			res.CleanerCompleted = true
		}

		if err = h.engine.completeJobIfDone(ctx, t, j, rooms); err != nil {
			return err
		}
		res.JobCompleted = j.Status() == job.Completed
		return nil
	})
	if err != nil {
		return CompleteRoomResult{}, err
	}
	return res, nil
}
