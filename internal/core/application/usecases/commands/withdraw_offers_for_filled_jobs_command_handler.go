package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/offer"
)

type WithdrawOffersForFilledJobsCommandHandler struct {
	engine *Engine
}

func NewWithdrawOffersForFilledJobsCommandHandler(engine *Engine) WithdrawOffersForFilledJobsCommandHandler {
	return WithdrawOffersForFilledJobsCommandHandler{
		engine: engine,
	}
}

func (h WithdrawOffersForFilledJobsCommandHandler) Handle(
	ctx context.Context,
	cmd WithdrawOffersForFilledJobsCommand,
) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	e := h.engine
	candidates, err := e.read().OfferRepository().FindPendingForFilledJobs(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	return e.sweep(ctx, "withdraw_filled", offerIDs(candidates), func(ctx context.Context, t *tx, id kernel.UUID) (bool, error) {
		o, err := t.OfferRepository().Get(ctx, id)
		if err != nil {
			return false, err
		}
		if o.Status() != offer.Pending {
			return false, nil
		}
		j, err := t.JobRepository().Get(ctx, o.JobID())
		if err != nil {
			return false, err
		}
		if !j.IsFilled() {
			return false, nil
		}

		if err = o.Withdraw(t.now); err != nil {
			return false, err
		}
		if err = t.OfferRepository().Update(ctx, o); err != nil {
			return false, err
		}
		t.out.Add(o.CleanerID(), notice.OfferWithdrawn, notice.Params{JobID: j.ID(), OfferID: o.ID()})
		return true, nil
	}), nil
}
