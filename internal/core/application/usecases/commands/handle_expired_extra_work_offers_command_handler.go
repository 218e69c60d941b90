package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/kernel"
)

type HandleExpiredExtraWorkOffersCommandHandler struct {
	engine *Engine
}

func NewHandleExpiredExtraWorkOffersCommandHandler(engine *Engine) HandleExpiredExtraWorkOffersCommandHandler {
	return HandleExpiredExtraWorkOffersCommandHandler{
		engine: engine,
	}
}

// Handle treats every cleaner who did not answer an expired extra-work offer as
// having declined. The homeowner hears the final count and a lone survivor is
// offered solo completion.
func (h HandleExpiredExtraWorkOffersCommandHandler) Handle(
	ctx context.Context,
	cmd HandleExpiredExtraWorkOffersCommand,
) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	e := h.engine
	candidates, err := e.read().JobRepository().FindExpiredExtraWorkWindows(ctx, e.clock.Now())
	if err != nil {
		return SweepResult{}, err
	}

	return e.sweep(ctx, "expired_extra_work", jobIDs(candidates), func(ctx context.Context, t *tx, id kernel.UUID) (bool, error) {
		j, err := t.JobRepository().Get(ctx, id)
		if err != nil {
			return false, err
		}
		if !j.ExtraWorkPending() || j.EnsureExtraWorkOpen(t.now) == nil {
			return false, nil
		}
		if j.IsTerminal() {
			if err = j.CloseExtraWork(); err != nil {
				return false, err
			}
			return true, t.JobRepository().Update(ctx, j)
		}

		actives, err := t.CompletionRepository().ListActiveByJob(ctx, j.ID())
		if err != nil {
			return false, err
		}
		released := 0
		for _, c := range actives {
			if c.HasAnsweredExtraWork() {
				continue
			}
			if err = c.DeclineExtraWork(t.now); err != nil {
				return false, err
			}
			if err = t.CompletionRepository().Update(ctx, c); err != nil {
				return false, err
			}
			if _, err = e.releaseSlot(ctx, t, j, c.CleanerID(), "extra work offer expired"); err != nil {
				return false, err
			}
			released++
		}

		s, err := e.syncJob(ctx, t, j)
		if err != nil {
			return false, err
		}
		if released > 0 {
			e.adviseHomeowner(t, j, s, outcomeOf(j, s))
		}
		return true, e.settleExtraWork(ctx, t, j, s)
	}), nil
}
