package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/pkg/errs"
)

type ProcessUrgentFillNotificationsCommandHandler struct {
	engine *Engine
}

func NewProcessUrgentFillNotificationsCommandHandler(engine *Engine) ProcessUrgentFillNotificationsCommandHandler {
	return ProcessUrgentFillNotificationsCommandHandler{
		engine: engine,
	}
}

// Handle escalates unfilled jobs whose appointment is close. Each job is escalated
// once per schedule: the home's preferred cleaners get an urgent_fill offer and the
// homeowner is told how many cleaners are still missing.
func (h ProcessUrgentFillNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessUrgentFillNotificationsCommand,
) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	e := h.engine
	now := e.clock.Now()
	candidates, err := e.read().JobRepository().FindUrgentFillCandidates(ctx, now, now.Add(e.settings.UrgentFillHorizon))
	if err != nil {
		return SweepResult{}, err
	}

	return e.sweep(ctx, "urgent_fill", jobIDs(candidates), func(ctx context.Context, t *tx, id kernel.UUID) (bool, error) {
		j, err := t.JobRepository().Get(ctx, id)
		if err != nil {
			return false, err
		}
		if j.EnsureFillable() != nil || j.UrgentNotificationSentAt() != nil {
			return false, nil
		}
		appt, err := t.AppointmentRepository().Get(ctx, j.AppointmentID())
		if err != nil {
			return false, err
		}
		if appt.Date().Before(t.now) || appt.Date().After(t.now.Add(e.settings.UrgentFillHorizon)) {
			return false, nil
		}

		if err = j.MarkUrgentFillSent(t.now); err != nil {
			return false, err
		}
		if err = t.JobRepository().Update(ctx, j); err != nil {
			return false, err
		}

		hm, err := t.HomeRepository().Get(ctx, appt.HomeID())
		if err != nil {
			return false, err
		}
		if err = e.inviteUrgently(ctx, t, j, hm); err != nil {
			return false, err
		}

		date := appt.Date()
		t.out.Add(appt.HomeownerID(), notice.UrgentFill, notice.Params{
			JobID:         j.ID(),
			AppointmentID: j.AppointmentID(),
			Shortfall:     j.OpenSlots(),
			Date:          &date,
		})
		return true, nil
	}), nil
}

// inviteUrgently offers one open slot to each preferred cleaner who is neither on
// the job nor holding a live offer for it.
func (e *Engine) inviteUrgently(ctx context.Context, t *tx, j *job.Job, hm *home.Home) error {
	invitees := hm.PreferredCleaners()
	if primary := hm.PrimaryPreferredCleaner(); primary != nil && !kernel.ContainsUUID(invitees, *primary) {
		invitees = append(invitees, *primary)
	}
	if len(invitees) == 0 {
		return nil
	}

	actives, err := t.CompletionRepository().ListActiveByJob(ctx, j.ID())
	if err != nil {
		return err
	}
	earnings, err := e.slotEarnings(ctx, t, j)
	if err != nil {
		return err
	}

	for _, cleanerID := range invitees {
		if hasActive(actives, cleanerID) {
			continue
		}
		live, err := t.OfferRepository().HasLive(ctx, j.ID(), cleanerID)
		if err != nil {
			return err
		}
		if live {
			continue
		}

		expiresAt := t.now.Add(e.settings.OfferExpiration)
		o, err := offer.NewOffer(kernel.NewUUID(), j.ID(), cleanerID, offer.UrgentFill, earnings, nil, t.now, expiresAt)
		if err != nil {
			return err
		}
		if err = t.OfferRepository().Add(ctx, o); err != nil {
			return err
		}
		t.out.Add(cleanerID, notice.OfferReceived, notice.Params{
			JobID:         j.ID(),
			AppointmentID: j.AppointmentID(),
			OfferID:       o.ID(),
			EarningsCents: earnings,
			ExpiresAt:     &expiresAt,
		})
	}
	return nil
}

// slotEarnings is one cleaner's share of the pool held by the job's rooms.
func (e *Engine) slotEarnings(ctx context.Context, t *tx, j *job.Job) (int64, error) {
	rooms, err := t.RoomRepository().ListByJob(ctx, j.ID())
	if err != nil {
		return 0, err
	}
	var total int64
	for _, r := range rooms {
		total += r.EarningsShare()
	}
	shares, err := e.pricing.CalculatePerCleanerEarnings(ctx, total, j.TotalCleanersRequired())
	if err != nil {
		return 0, errs.NewUpstreamError("pricing", err)
	}
	if len(shares) == 0 {
		return 0, nil
	}
	return shares[0], nil
}

func hasActive(actives []*completion.Completion, cleanerID kernel.UUID) bool {
	for _, c := range actives {
		if c.CleanerID().IsEqual(cleanerID) {
			return true
		}
	}
	return false
}
