package commands

import (
	"context"
)

// AcceptOfferCommandHandler accepts an offer and fills a slot with the offered rooms
// in the same transaction. The team is told about the new cleaner after commit; a
// failed delivery is logged and does not turn the accept into a failure.
//
// Example:
//
//	err := NewAcceptOfferCommandHandler(engine).Handle(ctx, cmd)
//	switch msg, _ := errs.ConflictMessage(err); msg {
//	case offer.MsgOfferExpired:
//	    log.Println("Too late")
//	case offer.MsgOfferUnavailable:
//	    log.Println("Offer was already answered or withdrawn")
//	case job.MsgJobFilled:
//	    log.Println("Someone else took the last slot")
//	}
type AcceptOfferCommandHandler struct {
	engine *Engine
}

func NewAcceptOfferCommandHandler(engine *Engine) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		engine: engine,
	}
}

func (h AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		o, err := t.OfferRepository().Get(ctx, cmd.OfferID())
		if err != nil {
			return err
		}
		if err = o.Accept(cmd.CleanerID(), t.now); err != nil {
			return err
		}
		if err = t.OfferRepository().Update(ctx, o); err != nil {
			return err
		}

		j, err := t.JobRepository().Get(ctx, o.JobID())
		if err != nil {
			return err
		}
		_, err = h.engine.fillSlot(ctx, t, j, o.CleanerID(), o.RoomsOffered())
		return err
	})
}
