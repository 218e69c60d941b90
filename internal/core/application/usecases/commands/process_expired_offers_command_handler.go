package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/offer"
)

type ProcessExpiredOffersCommandHandler struct {
	engine *Engine
}

func NewProcessExpiredOffersCommandHandler(engine *Engine) ProcessExpiredOffersCommandHandler {
	return ProcessExpiredOffersCommandHandler{
		engine: engine,
	}
}

// Handle expires every pending offer past its deadline. Offers answered since the
// scan are skipped, so running the sweep again right away processes nothing.
func (h ProcessExpiredOffersCommandHandler) Handle(ctx context.Context, cmd ProcessExpiredOffersCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	e := h.engine
	candidates, err := e.read().OfferRepository().FindExpiredPending(ctx, e.clock.Now())
	if err != nil {
		return SweepResult{}, err
	}

	return e.sweep(ctx, "expired_offers", offerIDs(candidates), func(ctx context.Context, t *tx, id kernel.UUID) (bool, error) {
		o, err := t.OfferRepository().Get(ctx, id)
		if err != nil {
			return false, err
		}
		if !o.IsExpiredAt(t.now) {
			return false, nil
		}
		if err = o.Expire(t.now); err != nil {
			return false, err
		}
		if err = t.OfferRepository().Update(ctx, o); err != nil {
			return false, err
		}
		t.out.Add(o.CleanerID(), notice.OfferExpired, notice.Params{JobID: o.JobID(), OfferID: o.ID()})
		return true, nil
	}), nil
}

func offerIDs(offers []*offer.Offer) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.ID())
	}
	return out
}
