package commands

import (
	"context"
	"errors"
	"time"

	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/core/domain/services"
	"multicleaner/internal/pkg/errs"
)

const (
	MsgRoomsUnavailable    = "Selected rooms are no longer available"
	MsgAlreadyAssigned     = "Cleaner is already assigned to this job"
	MsgNotAssigned         = "Cleaner is not assigned to this job"
	MsgSoloNeedsOneCleaner = "Solo completion requires exactly one remaining cleaner"
	MsgExtraWorkNeedsATeam = "Extra work requires at least two remaining cleaners"
	MsgNotHomeowner        = "Appointment belongs to another homeowner"
)

// synced is a job right after its confirmed count was recomputed and persisted.
type synced struct {
	actives     []*completion.Completion
	appointment *appointment.Appointment
}

// syncJob recomputes cleanersConfirmed from the active completions, mirrors the
// active cleaners onto the appointment and writes both. edits run on the
// appointment before it is written.
func (e *Engine) syncJob(
	ctx context.Context,
	t *tx,
	j *job.Job,
	edits ...func(*appointment.Appointment) error,
) (synced, error) {
	actives, err := t.CompletionRepository().ListActiveByJob(ctx, j.ID())
	if err != nil {
		return synced{}, err
	}
	if err = j.ApplyConfirmedCount(len(actives)); err != nil {
		return synced{}, err
	}

	appt, err := t.AppointmentRepository().Get(ctx, j.AppointmentID())
	if err != nil {
		return synced{}, err
	}
	appt.SetAssignedCleaners(cleanerIDs(actives))
	for _, edit := range edits {
		if err = edit(appt); err != nil {
			return synced{}, err
		}
	}

	if err = t.AppointmentRepository().Update(ctx, appt); err != nil {
		return synced{}, err
	}
	if err = t.JobRepository().Update(ctx, j); err != nil {
		return synced{}, err
	}
	return synced{actives: actives, appointment: appt}, nil
}

// fillSlot puts the cleaner on the job with the requested rooms, or with rooms
// picked for them when none are requested. It reports false, without error, when
// the cleaner already holds a slot.
func (e *Engine) fillSlot(
	ctx context.Context,
	t *tx,
	j *job.Job,
	cleanerID kernel.UUID,
	requested []kernel.UUID,
) (bool, error) {
	if err := j.EnsureActive(); err != nil {
		return false, err
	}

	existing, err := t.CompletionRepository().GetByJobAndCleaner(ctx, j.ID(), cleanerID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		existing = nil
	case err != nil:
		return false, err
	case existing.IsActive():
		return false, nil
	}

	if err = j.EnsureFillable(); err != nil {
		return false, err
	}

	claim, err := e.roomsForSlot(ctx, t, j, requested)
	if err != nil {
		return false, err
	}
	if len(claim) > 0 {
		n, err := t.RoomRepository().Claim(ctx, j.ID(), claim, cleanerID)
		if err != nil {
			return false, err
		}
		if n < len(claim) {
			return false, errs.NewConflictError(MsgRoomsUnavailable)
		}
	}

	if existing != nil {
		if err = existing.Reassign(t.now); err != nil {
			return false, err
		}
		if err = t.CompletionRepository().Update(ctx, existing); err != nil {
			return false, err
		}
	} else {
		c, err := completion.NewCompletion(kernel.NewUUID(), j.ID(), cleanerID, t.now)
		if err != nil {
			return false, err
		}
		if err = t.CompletionRepository().Add(ctx, c); err != nil {
			return false, err
		}
	}

	s, err := e.syncJob(ctx, t, j)
	if err != nil {
		return false, err
	}
	t.filled++

	if err = e.announceJoin(ctx, t, j, cleanerID, s); err != nil {
		return false, err
	}
	return true, nil
}

// roomsForSlot validates and de-duplicates requested rooms, or packs the unassigned
// rooms into the open slots and takes the heaviest group.
func (e *Engine) roomsForSlot(ctx context.Context, t *tx, j *job.Job, requested []kernel.UUID) ([]kernel.UUID, error) {
	rooms, err := t.RoomRepository().ListByJob(ctx, j.ID())
	if err != nil {
		return nil, err
	}

	if len(requested) > 0 {
		known := make(map[kernel.UUID]struct{}, len(rooms))
		for _, r := range rooms {
			known[r.ID()] = struct{}{}
		}
		seen := make(map[kernel.UUID]struct{}, len(requested))
		out := make([]kernel.UUID, 0, len(requested))
		for _, id := range requested {
			if _, ok := known[id]; !ok {
				return nil, errs.NewObjectNotFoundError("room assignment", id.String())
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		return out, nil
	}

	return roomIDs(e.splitter.PickRoomsForSlot(unassigned(rooms), j.OpenSlots())), nil
}

// stillUnassigned narrows tentative room ids to those nobody has claimed since.
func stillUnassigned(ctx context.Context, t *tx, jobID kernel.UUID, ids []kernel.UUID) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rooms, err := t.RoomRepository().ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	free := make(map[kernel.UUID]struct{}, len(rooms))
	for _, r := range rooms {
		if r.IsUnassigned() {
			free[r.ID()] = struct{}{}
		}
	}
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := free[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// announceJoin tells the team about the new cleaner, and closes the job's intake
// when it just became filled.
func (e *Engine) announceJoin(ctx context.Context, t *tx, j *job.Job, joined kernel.UUID, s synced) error {
	kind := notice.CoCleanerJoined
	if j.IsPaymentSplit() {
		kind = notice.PaymentSplit
	}
	params := notice.Params{
		JobID:         j.ID(),
		AppointmentID: j.AppointmentID(),
		CleanerName:   e.contactName(ctx, t, joined),
	}
	for _, c := range s.actives {
		if !c.CleanerID().IsEqual(joined) {
			t.out.Add(c.CleanerID(), kind, params)
		}
	}

	if j.IsFilled() {
		return e.onFilled(ctx, t, j, s.appointment)
	}
	return nil
}

func (e *Engine) onFilled(ctx context.Context, t *tx, j *job.Job, appt *appointment.Appointment) error {
	t.out.Add(appt.HomeownerID(), notice.JobFilled, notice.Params{JobID: j.ID(), AppointmentID: j.AppointmentID()})
	return e.closeIntake(ctx, t, j)
}

// closeIntake withdraws the pending offers and cancels the pending join requests
// of a job that takes no more cleaners.
func (e *Engine) closeIntake(ctx context.Context, t *tx, j *job.Job) error {
	offers, err := t.OfferRepository().ListPendingByJob(ctx, j.ID())
	if err != nil {
		return err
	}
	for _, o := range offers {
		if err = o.Withdraw(t.now); err != nil {
			continue
		}
		if err = t.OfferRepository().Update(ctx, o); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				continue
			}
			return err
		}
		t.out.Add(o.CleanerID(), notice.OfferWithdrawn, notice.Params{JobID: j.ID(), OfferID: o.ID()})
	}

	requests, err := t.JoinRequestRepository().ListPendingByJob(ctx, j.ID())
	if err != nil {
		return err
	}
	for _, r := range requests {
		if err = r.Cancel(t.now); err != nil {
			continue
		}
		if err = t.JoinRequestRepository().Update(ctx, r); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				continue
			}
			return err
		}
		t.out.Add(r.CleanerID(), notice.JoinRequestCancelled, notice.Params{JobID: j.ID(), RequestID: r.ID()})
	}
	return nil
}

// releaseSlot drops the cleaner out, frees their unfinished rooms and recomputes the job.
func (e *Engine) releaseSlot(ctx context.Context, t *tx, j *job.Job, cleanerID kernel.UUID, reason string) (synced, error) {
	if err := j.EnsureActive(); err != nil {
		return synced{}, err
	}

	c, err := t.CompletionRepository().GetByJobAndCleaner(ctx, j.ID(), cleanerID)
	if err != nil {
		return synced{}, err
	}
	if err = c.DropOut(t.now, reason); err != nil {
		return synced{}, err
	}
	if err = t.CompletionRepository().Update(ctx, c); err != nil {
		return synced{}, err
	}

	if _, err = t.RoomRepository().ReleaseCleaner(ctx, j.ID(), cleanerID); err != nil {
		return synced{}, err
	}

	s, err := e.syncJob(ctx, t, j)
	if err != nil {
		return synced{}, err
	}
	t.released++
	return s, nil
}

// DropoutOutcome describes what the remaining team can do after a cleaner left.
type DropoutOutcome struct {
	RemainingCleaners       int
	Shortfall               int
	CanProceedSolo          bool
	CanProceedWithRebalance bool
	RequiresReschedule      bool
}

func outcomeOf(j *job.Job, s synced) DropoutOutcome {
	remaining := len(s.actives)
	return DropoutOutcome{
		RemainingCleaners:       remaining,
		Shortfall:               max(j.TotalCleanersRequired()-remaining, 0),
		CanProceedSolo:          remaining == 1,
		CanProceedWithRebalance: remaining > 1,
		RequiresReschedule:      remaining == 0,
	}
}

func outcomeParams(j *job.Job, o DropoutOutcome) notice.Params {
	return notice.Params{
		JobID:             j.ID(),
		AppointmentID:     j.AppointmentID(),
		RemainingCleaners: o.RemainingCleaners,
		Shortfall:         o.Shortfall,
	}
}

func (e *Engine) adviseHomeowner(t *tx, j *job.Job, s synced, o DropoutOutcome) {
	homeowner := s.appointment.HomeownerID()
	params := outcomeParams(j, o)
	switch {
	case o.RequiresReschedule:
		t.out.Add(homeowner, notice.AllCleanersUnavailable, params)
	case o.CanProceedSolo:
		t.out.Add(homeowner, notice.HomeownerSoloOrCancel, params)
	default:
		t.out.Add(homeowner, notice.HomeownerRebalance, params)
	}
}

func (e *Engine) adviseSurvivors(t *tx, j *job.Job, s synced, o DropoutOutcome) {
	params := outcomeParams(j, o)
	switch {
	case o.CanProceedSolo:
		t.out.Add(s.actives[0].CleanerID(), notice.SoloOfferPossible, params)
	case o.CanProceedWithRebalance:
		t.out.AddAll(cleanerIDs(s.actives), notice.ExtraRoomsPossible, params)
	}
}

// offerSolo hands every unassigned room to the sole remaining cleaner and opens
// the solo completion window.
func (e *Engine) offerSolo(ctx context.Context, t *tx, j *job.Job, s synced) error {
	if len(s.actives) != 1 {
		return errs.NewConflictError(MsgSoloNeedsOneCleaner)
	}
	survivor := s.actives[0].CleanerID()

	if err := j.OfferSolo(t.now, e.settings.ExtraWorkOfferWindow); err != nil {
		return err
	}

	rooms, err := t.RoomRepository().ListByJob(ctx, j.ID())
	if err != nil {
		return err
	}
	if err = e.claimAll(ctx, t, j.ID(), roomIDs(unassigned(rooms)), survivor); err != nil {
		return err
	}

	earnings, err := e.pricing.CalculateSoloCompletionEarnings(ctx, s.appointment)
	if err != nil {
		return errs.NewUpstreamError("pricing", err)
	}

	if err = t.JobRepository().Update(ctx, j); err != nil {
		return err
	}

	t.out.Add(survivor, notice.SoloOffer, notice.Params{
		JobID:         j.ID(),
		AppointmentID: j.AppointmentID(),
		EarningsCents: earnings,
		ExpiresAt:     j.SoloOfferExpiresAt(),
	})
	return nil
}

// offerExtraWork rebalances the unassigned rooms across the remaining team and
// opens the extra-work window with each cleaner's raise.
func (e *Engine) offerExtraWork(ctx context.Context, t *tx, j *job.Job, s synced) error {
	if len(s.actives) < 2 {
		return errs.NewConflictError(MsgExtraWorkNeedsATeam)
	}
	if err := j.OfferExtraWork(t.now, e.settings.ExtraWorkOfferWindow); err != nil {
		return err
	}

	rooms, err := t.RoomRepository().ListByJob(ctx, j.ID())
	if err != nil {
		return err
	}
	for _, alloc := range e.splitter.DistributeAssignments(unassigned(rooms), loadsOf(rooms, s.actives)) {
		if err = e.claimAll(ctx, t, j.ID(), roomIDs(alloc.Rooms), alloc.CleanerID); err != nil {
			return err
		}
	}

	rebalanced, err := t.RoomRepository().ListByJob(ctx, j.ID())
	if err != nil {
		return err
	}
	earnings, err := e.pricing.RecalculateEarningsAfterDropout(ctx, rooms, rebalanced, cleanerIDs(s.actives))
	if err != nil {
		return errs.NewUpstreamError("pricing", err)
	}

	for _, c := range s.actives {
		c.ResetExtraWork()
		if err = t.CompletionRepository().Update(ctx, c); err != nil {
			return err
		}
	}
	if err = t.JobRepository().Update(ctx, j); err != nil {
		return err
	}

	for _, earned := range earnings {
		t.out.Add(earned.CleanerID, notice.ExtraWorkOffer, notice.Params{
			JobID:         j.ID(),
			AppointmentID: j.AppointmentID(),
			EarningsCents: earned.ExtraEarningsCents,
			ExpiresAt:     j.ExtraWorkOffersExpireAt(),
		})
	}
	return nil
}

// settleExtraWork closes the extra-work window once every remaining cleaner has
// answered. A team that accepted becomes the whole job, a lone survivor is offered
// solo completion, and an empty job is left for the homeowner to reschedule.
func (e *Engine) settleExtraWork(ctx context.Context, t *tx, j *job.Job, s synced) error {
	if !j.ExtraWorkPending() {
		return nil
	}
	for _, c := range s.actives {
		if !c.HasAnsweredExtraWork() {
			return nil
		}
	}

	if err := j.CloseExtraWork(); err != nil {
		return err
	}

	switch len(s.actives) {
	case 0:
		return t.JobRepository().Update(ctx, j)
	case 1:
		return e.offerSolo(ctx, t, j, s)
	default:
		if err := j.ShrinkToConfirmed(); err != nil {
			return err
		}
		if err := t.JobRepository().Update(ctx, j); err != nil {
			return err
		}
		return e.onFilled(ctx, t, j, s.appointment)
	}
}

// cancelJob stops the job through stop, drops every unfinished cleaner and cancels the appointment.
func (e *Engine) cancelJob(ctx context.Context, t *tx, j *job.Job, reason string, stop func() error) error {
	team, err := t.CompletionRepository().ListActiveByJob(ctx, j.ID())
	if err != nil {
		return err
	}
	if err = stop(); err != nil {
		return err
	}

	for _, c := range team {
		if c.Status() == completion.Completed {
			continue
		}
		if err = c.DropOut(t.now, reason); err != nil {
			return err
		}
		if err = t.CompletionRepository().Update(ctx, c); err != nil {
			return err
		}
	}

	s, err := e.syncJob(ctx, t, j, (*appointment.Appointment).Cancel)
	if err != nil {
		return err
	}
	if err = e.closeIntake(ctx, t, j); err != nil {
		return err
	}

	params := notice.Params{JobID: j.ID(), AppointmentID: j.AppointmentID(), Reason: reason}
	t.out.AddAll(cleanerIDs(team), notice.AppointmentCancelled, params)
	t.out.Add(s.appointment.HomeownerID(), notice.AppointmentCancelled, params)
	return nil
}

// reschedule moves the appointment, re-arms the urgency sweeps and tells the team.
func (e *Engine) reschedule(ctx context.Context, t *tx, j *job.Job, date time.Time) error {
	if err := j.EnsureActive(); err != nil {
		return err
	}
	j.ClearEscalations()

	s, err := e.syncJob(ctx, t, j, func(a *appointment.Appointment) error {
		return a.Reschedule(date)
	})
	if err != nil {
		return err
	}

	moved := s.appointment.Date()
	t.out.AddAll(cleanerIDs(s.actives), notice.Rescheduled, notice.Params{
		JobID:         j.ID(),
		AppointmentID: j.AppointmentID(),
		Date:          &moved,
	})
	return nil
}

// ownedAppointment loads the job's appointment and checks the actor is its homeowner.
func ownedAppointment(ctx context.Context, t *tx, j *job.Job, homeownerID kernel.UUID) (*appointment.Appointment, error) {
	appt, err := t.AppointmentRepository().Get(ctx, j.AppointmentID())
	if err != nil {
		return nil, err
	}
	if !appt.IsOwnedBy(homeownerID) {
		return nil, errs.NewForbiddenError(MsgNotHomeowner, homeownerID.String())
	}
	return appt, nil
}

func (e *Engine) claimAll(ctx context.Context, t *tx, jobID kernel.UUID, ids []kernel.UUID, cleanerID kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	n, err := t.RoomRepository().Claim(ctx, jobID, ids, cleanerID)
	if err != nil {
		return err
	}
	if n < len(ids) {
		return errs.NewConflictError(MsgRoomsUnavailable)
	}
	return nil
}

// contactName personalizes notices; an unknown user just gets the generic wording.
func (e *Engine) contactName(ctx context.Context, t *tx, id kernel.UUID) string {
	c, err := t.UserDirectory().Get(ctx, id)
	if err != nil {
		return ""
	}
	return c.Name
}

// activeCompletion returns the cleaner's completion when it holds a slot.
func activeCompletion(actives []*completion.Completion, cleanerID kernel.UUID) (*completion.Completion, error) {
	for _, c := range actives {
		if c.CleanerID().IsEqual(cleanerID) {
			return c, nil
		}
	}
	return nil, errs.NewForbiddenError(MsgNotAssigned, cleanerID.String())
}

func cleanerIDs(cs []*completion.Completion) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.CleanerID())
	}
	return out
}

func roomIDs(rooms []*room.Assignment) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.ID())
	}
	return out
}

func unassigned(rooms []*room.Assignment) []*room.Assignment {
	var out []*room.Assignment
	for _, r := range rooms {
		if r.IsUnassigned() {
			out = append(out, r)
		}
	}
	return out
}

func loadsOf(rooms []*room.Assignment, actives []*completion.Completion) []services.CleanerLoad {
	loads := make([]services.CleanerLoad, 0, len(actives))
	for _, c := range actives {
		minutes := 0
		for _, r := range rooms {
			if r.IsAssignedTo(c.CleanerID()) {
				minutes += r.EstimatedMinutes()
			}
		}
		loads = append(loads, services.CleanerLoad{CleanerID: c.CleanerID(), Minutes: minutes})
	}
	return loads
}
