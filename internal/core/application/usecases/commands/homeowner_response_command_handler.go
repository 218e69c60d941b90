package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/pkg/errs"
)

// HomeownerResponseResult carries the job's edge-case decision after the call,
// or the unchanged decision when the call failed.
type HomeownerResponseResult struct {
	Decision job.Decision
}

type HomeownerResponseCommandHandler struct {
	engine *Engine
}

func NewHomeownerResponseCommandHandler(engine *Engine) HomeownerResponseCommandHandler {
	return HomeownerResponseCommandHandler{
		engine: engine,
	}
}

// Handle applies the homeowner's answer to a staffing prompt:
//
//   - proceed_with_one acknowledges a short team without changing anything
//   - proceed_edge_case and cancel_edge_case answer a pending edge-case decision
//   - cancel calls the appointment off
//   - reschedule moves it to the given date
//
// The result always reports the decision as stored, so a client that lost the race
// to the timeout sees "auto_proceeded" next to the "Decision has already been made" error.
func (h HomeownerResponseCommandHandler) Handle(
	ctx context.Context,
	cmd HomeownerResponseCommand,
) (HomeownerResponseResult, error) {
	if err := cmd.Validate(); err != nil {
		return HomeownerResponseResult{}, err
	}

	var res HomeownerResponseResult
	err := h.engine.inTx(ctx, func(t *tx) error {
		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		res.Decision = j.HomeownerDecision()
		if _, err = ownedAppointment(ctx, t, j, cmd.HomeownerID()); err != nil {
			return err
		}

		if err = h.apply(ctx, t, j, cmd); err != nil {
			return err
		}
		res.Decision = j.HomeownerDecision()
		return nil
	})
	return res, err
}

func (h HomeownerResponseCommandHandler) apply(ctx context.Context, t *tx, j *job.Job, cmd HomeownerResponseCommand) error {
	e := h.engine
	switch cmd.Response() {
	case ProceedWithOne:
		return j.EnsureActive()
	case ProceedEdgeCase:
		if err := j.Proceed(); err != nil {
			return err
		}
		s, err := e.syncJob(ctx, t, j)
		if err != nil {
			return err
		}
		if len(s.actives) != 1 {
			return errs.NewConflictError(job.MsgDecisionNotRequired)
		}
		t.out.Add(s.actives[0].CleanerID(), notice.EdgeCaseSoleCleaner, notice.Params{
			JobID:         j.ID(),
			AppointmentID: j.AppointmentID(),
		})
		return nil
	case CancelEdgeCase:
		if err := j.EnsureDecisionPending(); err != nil {
			return err
		}
		return e.cancelJob(ctx, t, j, cmd.Reason(), j.CancelEdgeCase)
	case CancelBooking:
		return e.cancelJob(ctx, t, j, cmd.Reason(), j.Cancel)
	case RescheduleVisit:
		return e.reschedule(ctx, t, j, *cmd.Date())
	default:
		return cmd.Response().Validate()
	}
}
