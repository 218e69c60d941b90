package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/room"
)

type MarkCleanerCompleteCommandHandler struct {
	engine *Engine
}

func NewMarkCleanerCompleteCommandHandler(engine *Engine) MarkCleanerCompleteCommandHandler {
	return MarkCleanerCompleteCommandHandler{
		engine: engine,
	}
}

// Handle completes the cleaner's rooms and completion record. When no room of the
// job is left unfinished the job itself completes.
func (h MarkCleanerCompleteCommandHandler) Handle(ctx context.Context, cmd MarkCleanerCompleteCommand) error {
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
		if err = c.Complete(t.now); err != nil {
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
			if err = r.Complete(cmd.CleanerID(), t.now); err != nil {
				return err
			}
			if err = t.RoomRepository().Update(ctx, r); err != nil {
				return err
			}
		}

		return h.engine.completeJobIfDone(ctx, t, j, rooms)
	})
}

// completeJobIfDone completes the job once every room is cleaned and tells the homeowner.
func (e *Engine) completeJobIfDone(ctx context.Context, t *tx, j *job.Job, rooms []*room.Assignment) error {
	for _, r := range rooms {
		if !r.IsCompleted() {
			return nil
		}
	}
	if err := j.Complete(); err != nil {
		return err
	}

	actives, err := t.CompletionRepository().ListActiveByJob(ctx, j.ID())
	if err != nil {
		return err
	}
	for _, c := range actives {
		if c.Status() == completion.Completed {
			continue
		}
		if err = c.Complete(t.now); err != nil {
			return err
		}
		if err = t.CompletionRepository().Update(ctx, c); err != nil {
			return err
		}
	}

	s, err := e.syncJob(ctx, t, j)
	if err != nil {
		return err
	}
	t.out.Add(s.appointment.HomeownerID(), notice.JobCompleted, notice.Params{JobID: j.ID(), AppointmentID: j.AppointmentID()})
	return nil
}
