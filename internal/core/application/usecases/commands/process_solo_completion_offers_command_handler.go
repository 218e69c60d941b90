package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/kernel"
)

type ProcessSoloCompletionOffersCommandHandler struct {
	engine *Engine
}

func NewProcessSoloCompletionOffersCommandHandler(engine *Engine) ProcessSoloCompletionOffersCommandHandler {
	return ProcessSoloCompletionOffersCommandHandler{
		engine: engine,
	}
}

// Handle closes solo offers nobody answered. The cleaner is released as if they
// had declined and the homeowner is told to reschedule or cancel.
func (h ProcessSoloCompletionOffersCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessSoloCompletionOffersCommand,
) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	e := h.engine
	candidates, err := e.read().JobRepository().FindExpiredSoloOffers(ctx, e.clock.Now())
	if err != nil {
		return SweepResult{}, err
	}

	return e.sweep(ctx, "expired_solo_offers", jobIDs(candidates), func(ctx context.Context, t *tx, id kernel.UUID) (bool, error) {
		j, err := t.JobRepository().Get(ctx, id)
		if err != nil {
			return false, err
		}
		if !j.SoloOfferPending() {
			return false, nil
		}
		if err = j.ExpireSolo(t.now); err != nil {
			return false, err
		}
		if j.IsTerminal() {
			return true, t.JobRepository().Update(ctx, j)
		}

		actives, err := t.CompletionRepository().ListActiveByJob(ctx, j.ID())
		if err != nil {
			return false, err
		}
		for _, c := range actives {
			c.DeclineSolo(t.now)
			if err = t.CompletionRepository().Update(ctx, c); err != nil {
				return false, err
			}
			if _, err = e.releaseSlot(ctx, t, j, c.CleanerID(), "solo offer expired"); err != nil {
				return false, err
			}
		}

		s, err := e.syncJob(ctx, t, j)
		if err != nil {
			return false, err
		}
		e.adviseHomeowner(t, j, s, outcomeOf(j, s))
		return true, nil
	}), nil
}
