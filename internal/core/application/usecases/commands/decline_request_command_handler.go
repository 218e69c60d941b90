package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/notice"
)

type DeclineRequestCommandHandler struct {
	engine *Engine
}

func NewDeclineRequestCommandHandler(engine *Engine) DeclineRequestCommandHandler {
	return DeclineRequestCommandHandler{
		engine: engine,
	}
}

func (h DeclineRequestCommandHandler) Handle(ctx context.Context, cmd DeclineRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		r, err := t.JoinRequestRepository().Get(ctx, cmd.RequestID())
		if err != nil {
			return err
		}
		if err = r.Decline(cmd.HomeownerID(), cmd.Reason(), t.now); err != nil {
			return err
		}
		if err = t.JoinRequestRepository().Update(ctx, r); err != nil {
			return err
		}

		t.out.Add(r.CleanerID(), notice.JoinRequestDeclined, notice.Params{
			JobID:     r.JobID(),
			RequestID: r.ID(),
			Reason:    cmd.Reason(),
		})
		return nil
	})
}
