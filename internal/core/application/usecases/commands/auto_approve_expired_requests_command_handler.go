package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/joinrequest"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
)

type AutoApproveExpiredRequestsCommandHandler struct {
	engine *Engine
}

func NewAutoApproveExpiredRequestsCommandHandler(engine *Engine) AutoApproveExpiredRequestsCommandHandler {
	return AutoApproveExpiredRequestsCommandHandler{
		engine: engine,
	}
}

// Handle treats the homeowner's silence as approval. A request whose job filled
// or closed in the meantime is cancelled instead. Each request is its own
// transaction, so one failure does not stop the rest.
func (h AutoApproveExpiredRequestsCommandHandler) Handle(
	ctx context.Context,
	cmd AutoApproveExpiredRequestsCommand,
) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	e := h.engine
	candidates, err := e.read().JoinRequestRepository().FindExpiredPending(ctx, e.clock.Now())
	if err != nil {
		return SweepResult{}, err
	}

	return e.sweep(ctx, "auto_approve_requests", requestIDs(candidates), func(ctx context.Context, t *tx, id kernel.UUID) (bool, error) {
		r, err := t.JoinRequestRepository().Get(ctx, id)
		if err != nil {
			return false, err
		}
		if !r.IsExpiredAt(t.now) {
			return false, nil
		}
		j, err := t.JobRepository().Get(ctx, r.JobID())
		if err != nil {
			return false, err
		}

		if j.EnsureFillable() != nil {
			if err = r.Cancel(t.now); err != nil {
				return false, err
			}
			if err = t.JoinRequestRepository().Update(ctx, r); err != nil {
				return false, err
			}
			t.out.Add(r.CleanerID(), notice.JoinRequestCancelled, notice.Params{JobID: j.ID(), RequestID: r.ID()})
			return true, nil
		}

		if err = r.AutoApprove(t.now); err != nil {
			return false, err
		}
		if err = t.JoinRequestRepository().Update(ctx, r); err != nil {
			return false, err
		}
		if err = e.admit(ctx, t, j, r); err != nil {
			return false, err
		}
		return true, nil
	}), nil
}

func requestIDs(requests []*joinrequest.Request) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(requests))
	for _, r := range requests {
		out = append(out, r.ID())
	}
	return out
}
