package commands

import (
	"context"
	"errors"

	"multicleaner/internal/core/domain/model/joinrequest"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/pkg/errs"
)

// MsgRequestAlreadyPending matches the store's uniqueness rule on pending requests.
const MsgRequestAlreadyPending = "A join request for this job is already pending"

// JoinOutcome says whether the cleaner is on the job or waiting for the homeowner.
type JoinOutcome string

const (
	JoinAutoApproved JoinOutcome = "auto_approved"
	JoinPending      JoinOutcome = "pending"
)

type RequestToJoinResult struct {
	Outcome JoinOutcome
	// RequestID is set when Outcome is JoinPending.
	RequestID *kernel.UUID
}

type RequestToJoinCommandHandler struct {
	engine *Engine
}

func NewRequestToJoinCommandHandler(engine *Engine) RequestToJoinCommandHandler {
	return RequestToJoinCommandHandler{
		engine: engine,
	}
}

// Handle fills a slot straight away for a preferred cleaner. Anyone else gets a
// pending request that expires after the join-request window, and the homeowner is asked.
func (h RequestToJoinCommandHandler) Handle(ctx context.Context, cmd RequestToJoinCommand) (RequestToJoinResult, error) {
	if err := cmd.Validate(); err != nil {
		return RequestToJoinResult{}, err
	}

	e := h.engine
	var res RequestToJoinResult
	err := e.inTx(ctx, func(t *tx) error {
		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		if err = j.EnsureFillable(); err != nil {
			return err
		}

		c, err := t.CompletionRepository().GetByJobAndCleaner(ctx, j.ID(), cmd.CleanerID())
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
		case err != nil:
			return err
		case c.IsActive():
			return errs.NewConflictError(MsgAlreadyAssigned)
		}

		appt, err := t.AppointmentRepository().Get(ctx, j.AppointmentID())
		if err != nil {
			return err
		}
		home, err := t.HomeRepository().Get(ctx, appt.HomeID())
		if err != nil {
			return err
		}

		if home.IsPreferred(cmd.CleanerID()) {
			if _, err = e.fillSlot(ctx, t, j, cmd.CleanerID(), cmd.RoomIDs()); err != nil {
				return err
			}
			res = RequestToJoinResult{Outcome: JoinAutoApproved}
			return nil
		}

		pending, err := t.JoinRequestRepository().HasPending(ctx, j.ID(), cmd.CleanerID())
		if err != nil {
			return err
		}
		if pending {
			return errs.NewConflictError(MsgRequestAlreadyPending)
		}

		rooms, err := e.roomsForSlot(ctx, t, j, cmd.RoomIDs())
		if err != nil {
			return err
		}

		expiresAt := t.now.Add(e.settings.JoinRequestExpiration)
		r, err := joinrequest.NewRequest(cmd.RequestID(), j.ID(), cmd.CleanerID(), appt.HomeownerID(), rooms, t.now, expiresAt)
		if err != nil {
			return err
		}
		if err = t.JoinRequestRepository().Add(ctx, r); err != nil {
			return err
		}

		t.out.Add(appt.HomeownerID(), notice.JoinRequestReceived, notice.Params{
			JobID:         j.ID(),
			AppointmentID: appt.ID(),
			RequestID:     r.ID(),
			CleanerName:   e.contactName(ctx, t, cmd.CleanerID()),
			ExpiresAt:     &expiresAt,
		})
		id := r.ID()
		res = RequestToJoinResult{Outcome: JoinPending, RequestID: &id}
		return nil
	})
	if err != nil {
		return RequestToJoinResult{}, err
	}
	return res, nil
}
