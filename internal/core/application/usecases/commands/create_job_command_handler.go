package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/pkg/errs"
)

// CreateJobCommandHandler materializes the job, its rooms and their earnings shares.
// When a primary cleaner is named, they get a primary invite straight away.
type CreateJobCommandHandler struct {
	engine *Engine
}

func NewCreateJobCommandHandler(engine *Engine) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		engine: engine,
	}
}

// Handle fails with an ObjectNotFoundError when the appointment or its home is
// missing, and with a ConflictError when the appointment already has a job.
func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	e := h.engine
	return e.inTx(ctx, func(t *tx) error {
		appt, err := t.AppointmentRepository().Get(ctx, cmd.AppointmentID())
		if err != nil {
			return err
		}
		home, err := t.HomeRepository().Get(ctx, appt.HomeID())
		if err != nil {
			return err
		}

		units := e.splitter.GenerateRoomList(home)
		minutes := room.TotalMinutes(units)

		cleanerCount := cmd.CleanerCount()
		if cleanerCount == 0 {
			cleanerCount = e.classifier.RecommendedCleaners(e.classifier.ClassifyHome(home), minutes, e.settings.MaxSoloMinutes)
		}

		j, err := job.NewJob(cmd.JobID(), appt.ID(), cleanerCount, cmd.PrimaryCleanerID(),
			cmd.IsAutoGenerated(), minutes, t.now)
		if err != nil {
			return err
		}
		if err = t.JobRepository().Add(ctx, j); err != nil {
			return err
		}

		rooms := make([]*room.Assignment, 0, len(units))
		for _, u := range units {
			r, err := room.NewAssignment(kernel.NewUUID(), j.ID(), appt.ID(), u)
			if err != nil {
				return err
			}
			rooms = append(rooms, r)
		}

		total, err := e.pricing.CalculateTotalJobPrice(ctx, home, appt, cleanerCount)
		if err != nil {
			return errs.NewUpstreamError("pricing", err)
		}
		if err = e.pricing.UpdateRoomEarningsShares(ctx, rooms, total); err != nil {
			return errs.NewUpstreamError("pricing", err)
		}
		if err = t.RoomRepository().AddAll(ctx, rooms); err != nil {
			return err
		}

		primary := cmd.PrimaryCleanerID()
		if primary == nil {
			return nil
		}
		shares, err := e.pricing.CalculatePerCleanerEarnings(ctx, total, cleanerCount)
		if err != nil {
			return errs.NewUpstreamError("pricing", err)
		}
		var earnings int64
		if len(shares) > 0 {
			earnings = shares[0]
		}

		expiresAt := t.now.Add(e.settings.OfferExpiration)
		o, err := offer.NewOffer(kernel.NewUUID(), j.ID(), *primary, offer.PrimaryInvite, earnings, nil, t.now, expiresAt)
		if err != nil {
			return err
		}
		if err = t.OfferRepository().Add(ctx, o); err != nil {
			return err
		}
		t.out.Add(*primary, notice.OfferReceived, notice.Params{
			JobID:         j.ID(),
			AppointmentID: appt.ID(),
			OfferID:       o.ID(),
			EarningsCents: earnings,
			ExpiresAt:     &expiresAt,
		})
		return nil
	})
}
