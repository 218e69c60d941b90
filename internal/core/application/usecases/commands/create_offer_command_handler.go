package commands

import (
	"context"
	"errors"

	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/pkg/errs"
)

// MsgOfferAlreadyLive matches the store's uniqueness rule on live offers.
const MsgOfferAlreadyLive = "Cleaner already has an active offer for this job"

type CreateOfferCommandHandler struct {
	engine *Engine
}

func NewCreateOfferCommandHandler(engine *Engine) CreateOfferCommandHandler {
	return CreateOfferCommandHandler{
		engine: engine,
	}
}

// Handle fails with a ConflictError when the job takes no more cleaners, the
// cleaner is already on it, or the cleaner holds a pending or accepted offer for it.
func (h CreateOfferCommandHandler) Handle(ctx context.Context, cmd CreateOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	e := h.engine
	return e.inTx(ctx, func(t *tx) error {
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

		live, err := t.OfferRepository().HasLive(ctx, j.ID(), cmd.CleanerID())
		if err != nil {
			return err
		}
		if live {
			return errs.NewConflictError(MsgOfferAlreadyLive)
		}

		expiresAt := t.now.Add(e.settings.OfferExpiration)
		o, err := offer.NewOffer(cmd.OfferID(), j.ID(), cmd.CleanerID(), cmd.OfferType(),
			cmd.EarningsOffered(), cmd.RoomsOffered(), t.now, expiresAt)
		if err != nil {
			return err
		}
		if err = t.OfferRepository().Add(ctx, o); err != nil {
			return err
		}

		t.out.Add(o.CleanerID(), notice.OfferReceived, notice.Params{
			JobID:         j.ID(),
			AppointmentID: j.AppointmentID(),
			OfferID:       o.ID(),
			EarningsCents: o.EarningsOffered(),
			ExpiresAt:     &expiresAt,
		})
		return nil
	})
}
