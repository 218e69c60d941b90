package job

import (
	"errors"
	"fmt"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
)

var ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or Restore constructor")

// User-facing conflict messages. API clients match on these strings.
const (
	MsgJobFilled              = "Job is already filled"
	MsgJobInactive            = "Job is no longer active"
	MsgDecisionAlreadyMade    = "Decision has already been made"
	MsgDecisionNotRequired    = "Edge case decision is not required"
	MsgNoSoloOffer            = "No solo offer is pending"
	MsgSoloOfferExpired       = "Solo offer has expired"
	MsgNoExtraWorkOffer       = "No extra work offer is pending"
	MsgExtraWorkOfferExpired  = "Extra work offer has expired"
	MsgConcurrentModification = "Job was modified concurrently"
)

// Job is the MultiCleanerJob aggregate: one per appointment that needs more than one cleaner.
type Job struct {
	id                    kernel.UUID
	appointmentID         kernel.UUID
	totalRequired         int
	confirmed             int
	status                Status
	isAutoGenerated       bool
	primaryCleanerID      *kernel.UUID
	totalEstimatedMinutes int

	edgeCaseDecisionRequired  bool
	homeownerDecision         Decision
	edgeCaseDecisionSentAt    *time.Time
	edgeCaseDecisionExpiresAt *time.Time

	urgentNotificationSentAt *time.Time
	finalWarningAt           *time.Time

	soloOfferSentAt     *time.Time
	soloOfferExpiresAt  *time.Time
	soloOfferAcceptedAt *time.Time
	soloOfferDeclined   bool
	soloOfferExpired    bool

	extraWorkOffersSentAt   *time.Time
	extraWorkOffersExpireAt *time.Time
	extraWorkOffersExpired  bool

	version       int
	createdAt     time.Time
	isConstructed bool
}

// Snapshot is the full persisted state of a job. Repositories build one to call Restore.
type Snapshot struct {
	ID                        kernel.UUID
	AppointmentID             kernel.UUID
	TotalCleanersRequired     int
	CleanersConfirmed         int
	Status                    Status
	IsAutoGenerated           bool
	PrimaryCleanerID          *kernel.UUID
	TotalEstimatedMinutes     int
	EdgeCaseDecisionRequired  bool
	HomeownerDecision         Decision
	EdgeCaseDecisionSentAt    *time.Time
	EdgeCaseDecisionExpiresAt *time.Time
	UrgentNotificationSentAt  *time.Time
	FinalWarningAt            *time.Time
	SoloOfferSentAt           *time.Time
	SoloOfferExpiresAt        *time.Time
	SoloOfferAcceptedAt       *time.Time
	SoloOfferDeclined         bool
	SoloOfferExpired          bool
	ExtraWorkOffersSentAt     *time.Time
	ExtraWorkOffersExpireAt   *time.Time
	ExtraWorkOffersExpired    bool
	Version                   int
	CreatedAt                 time.Time
}

// NewJob creates an open job with no confirmed cleaners.
func NewJob(
	id, appointmentID kernel.UUID,
	totalRequired int,
	primaryCleanerID *kernel.UUID,
	isAutoGenerated bool,
	totalEstimatedMinutes int,
	now time.Time,
) (*Job, error) {
	if err := errors.Join(
		id.Validate(),
		appointmentID.Validate(),
		validateRequired(totalRequired),
		validatePrimary(primaryCleanerID),
	); err != nil {
		return nil, err
	}
	if totalEstimatedMinutes < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("total estimated minutes",
			fmt.Errorf("%d is negative", totalEstimatedMinutes))
	}

	return &Job{
		id:                    id,
		appointmentID:         appointmentID,
		totalRequired:         totalRequired,
		status:                Open,
		isAutoGenerated:       isAutoGenerated,
		primaryCleanerID:      copyID(primaryCleanerID),
		totalEstimatedMinutes: totalEstimatedMinutes,
		version:               1,
		createdAt:             now,
		isConstructed:         true,
	}, nil
}

// Restore rebuilds a job from persistence and re-checks the counter invariant.
func Restore(s Snapshot) (*Job, error) {
	j, err := NewJob(s.ID, s.AppointmentID, s.TotalCleanersRequired, s.PrimaryCleanerID,
		s.IsAutoGenerated, s.TotalEstimatedMinutes, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(s.Status.Validate(), s.HomeownerDecision.Validate()); err != nil {
		return nil, err
	}
	if s.CleanersConfirmed < 0 || s.CleanersConfirmed > s.TotalCleanersRequired {
		return nil, errs.NewValueIsOutOfRangeError("cleaners confirmed", s.CleanersConfirmed, 0, s.TotalCleanersRequired)
	}

	j.confirmed = s.CleanersConfirmed
	j.status = s.Status
	j.edgeCaseDecisionRequired = s.EdgeCaseDecisionRequired
	j.homeownerDecision = s.HomeownerDecision
	j.edgeCaseDecisionSentAt = s.EdgeCaseDecisionSentAt
	j.edgeCaseDecisionExpiresAt = s.EdgeCaseDecisionExpiresAt
	j.urgentNotificationSentAt = s.UrgentNotificationSentAt
	j.finalWarningAt = s.FinalWarningAt
	j.soloOfferSentAt = s.SoloOfferSentAt
	j.soloOfferExpiresAt = s.SoloOfferExpiresAt
	j.soloOfferAcceptedAt = s.SoloOfferAcceptedAt
	j.soloOfferDeclined = s.SoloOfferDeclined
	j.soloOfferExpired = s.SoloOfferExpired
	j.extraWorkOffersSentAt = s.ExtraWorkOffersSentAt
	j.extraWorkOffersExpireAt = s.ExtraWorkOffersExpireAt
	j.extraWorkOffersExpired = s.ExtraWorkOffersExpired
	if s.Version > 0 {
		j.version = s.Version
	}
	return j, nil
}

// Snapshot exports the current state for persistence.
func (j *Job) Snapshot() Snapshot {
	return Snapshot{
		ID:                        j.id,
		AppointmentID:             j.appointmentID,
		TotalCleanersRequired:     j.totalRequired,
		CleanersConfirmed:         j.confirmed,
		Status:                    j.status,
		IsAutoGenerated:           j.isAutoGenerated,
		PrimaryCleanerID:          copyID(j.primaryCleanerID),
		TotalEstimatedMinutes:     j.totalEstimatedMinutes,
		EdgeCaseDecisionRequired:  j.edgeCaseDecisionRequired,
		HomeownerDecision:         j.homeownerDecision,
		EdgeCaseDecisionSentAt:    j.edgeCaseDecisionSentAt,
		EdgeCaseDecisionExpiresAt: j.edgeCaseDecisionExpiresAt,
		UrgentNotificationSentAt:  j.urgentNotificationSentAt,
		FinalWarningAt:            j.finalWarningAt,
		SoloOfferSentAt:           j.soloOfferSentAt,
		SoloOfferExpiresAt:        j.soloOfferExpiresAt,
		SoloOfferAcceptedAt:       j.soloOfferAcceptedAt,
		SoloOfferDeclined:         j.soloOfferDeclined,
		SoloOfferExpired:          j.soloOfferExpired,
		ExtraWorkOffersSentAt:     j.extraWorkOffersSentAt,
		ExtraWorkOffersExpireAt:   j.extraWorkOffersExpireAt,
		ExtraWorkOffersExpired:    j.extraWorkOffersExpired,
		Version:                   j.version,
		CreatedAt:                 j.createdAt,
	}
}

func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

func (j *Job) ID() kernel.UUID                       { return j.id }
func (j *Job) AppointmentID() kernel.UUID            { return j.appointmentID }
func (j *Job) TotalCleanersRequired() int            { return j.totalRequired }
func (j *Job) CleanersConfirmed() int                { return j.confirmed }
func (j *Job) Status() Status                        { return j.status }
func (j *Job) IsAutoGenerated() bool                 { return j.isAutoGenerated }
func (j *Job) PrimaryCleanerID() *kernel.UUID        { return copyID(j.primaryCleanerID) }
func (j *Job) TotalEstimatedMinutes() int            { return j.totalEstimatedMinutes }
func (j *Job) EdgeCaseDecisionRequired() bool        { return j.edgeCaseDecisionRequired }
func (j *Job) HomeownerDecision() Decision           { return j.homeownerDecision }
func (j *Job) EdgeCaseDecisionExpiresAt() *time.Time { return j.edgeCaseDecisionExpiresAt }
func (j *Job) UrgentNotificationSentAt() *time.Time  { return j.urgentNotificationSentAt }
func (j *Job) FinalWarningAt() *time.Time            { return j.finalWarningAt }
func (j *Job) SoloOfferExpiresAt() *time.Time        { return j.soloOfferExpiresAt }
func (j *Job) ExtraWorkOffersExpireAt() *time.Time   { return j.extraWorkOffersExpireAt }
func (j *Job) Version() int                          { return j.version }

// OpenSlots is the number of cleaner positions still to fill.
func (j *Job) OpenSlots() int {
	return j.totalRequired - j.confirmed
}

func (j *Job) IsTerminal() bool { return j.status.IsTerminal() }
func (j *Job) IsFilled() bool   { return j.status == Filled }

// IsPaymentSplit reports whether a cleaner joining now splits pay that a sole
// cleaner was promised after an edge-case decision.
func (j *Job) IsPaymentSplit() bool {
	return j.homeownerDecision.IsProceed()
}

// EnsureFillable rejects fills on terminal or already filled jobs.
func (j *Job) EnsureFillable() error {
	if j.IsTerminal() {
		return errs.NewConflictError(MsgJobInactive)
	}
	if j.confirmed >= j.totalRequired {
		return errs.NewConflictError(MsgJobFilled)
	}
	return nil
}

// EnsureActive rejects mutations of completed or cancelled jobs.
func (j *Job) EnsureActive() error {
	if j.IsTerminal() {
		return errs.NewConflictError(MsgJobInactive)
	}
	return nil
}

// ApplyConfirmedCount stores the recomputed confirmed count and derives the status.
// Terminal jobs keep their status.
func (j *Job) ApplyConfirmedCount(confirmed int) error {
	if confirmed < 0 {
		confirmed = 0
	}
	if confirmed > j.totalRequired {
		return errs.NewConflictError(MsgJobFilled)
	}
	j.confirmed = confirmed
	if !j.IsTerminal() {
		j.status = DeriveStatus(j.confirmed, j.totalRequired)
	}
	if j.homeownerDecision == DecisionPending && j.confirmed != 1 {
		j.withdrawDecision()
	}
	return nil
}

// ShrinkToConfirmed lowers the required count to the confirmed cleaners, so the job becomes filled.
func (j *Job) ShrinkToConfirmed() error {
	if err := j.EnsureActive(); err != nil {
		return err
	}
	if j.confirmed < 1 {
		return errs.NewConflictError("No cleaners remain on this job")
	}
	j.totalRequired = j.confirmed
	j.status = DeriveStatus(j.confirmed, j.totalRequired)
	return nil
}

// Complete finishes the job once every room is cleaned.
func (j *Job) Complete() error {
	if j.IsTerminal() {
		return errs.NewConflictError(MsgJobInactive)
	}
	j.status = Completed
	return nil
}

// Cancel stops the job. Completed and cancelled jobs cannot be cancelled again.
func (j *Job) Cancel() error {
	if j.IsTerminal() {
		return errs.NewConflictError(MsgJobInactive)
	}
	j.status = Cancelled
	return nil
}

// QualifiesForEdgeCaseDecision is the job-side half of the edge-case predicate;
// the home-side half (edge-sized home) is checked by the caller.
func (j *Job) QualifiesForEdgeCaseDecision() bool {
	return j.status == PartiallyFilled &&
		j.confirmed == 1 &&
		j.totalRequired == 2 &&
		!j.edgeCaseDecisionRequired
}

// RequestEdgeCaseDecision opens the homeowner's decision window.
func (j *Job) RequestEdgeCaseDecision(now time.Time, window time.Duration) error {
	if !j.QualifiesForEdgeCaseDecision() {
		return errs.NewConflictError(MsgDecisionNotRequired)
	}
	sent := now
	expires := now.Add(window)
	j.edgeCaseDecisionRequired = true
	j.homeownerDecision = DecisionPending
	j.edgeCaseDecisionSentAt = &sent
	j.edgeCaseDecisionExpiresAt = &expires
	return nil
}

// EnsureDecisionPending fails with "not required" or "already made" as appropriate.
func (j *Job) EnsureDecisionPending() error {
	if !j.edgeCaseDecisionRequired {
		return errs.NewConflictError(MsgDecisionNotRequired)
	}
	if j.homeownerDecision != DecisionPending {
		return errs.NewConflictError(MsgDecisionAlreadyMade)
	}
	return nil
}

// withdrawDecision drops a pending prompt whose job no longer has exactly one
// confirmed cleaner. A later dropout back to one cleaner may prompt again.
func (j *Job) withdrawDecision() {
	j.edgeCaseDecisionRequired = false
	j.homeownerDecision = DecisionNone
	j.edgeCaseDecisionSentAt = nil
	j.edgeCaseDecisionExpiresAt = nil
}

// ensureSoleCleaner guards the proceed outcomes, which promise the one confirmed
// cleaner the whole job.
func (j *Job) ensureSoleCleaner() error {
	if j.confirmed != 1 {
		return errs.NewConflictError(MsgDecisionNotRequired)
	}
	return nil
}

// Proceed records the homeowner's choice to go ahead with the confirmed cleaner.
func (j *Job) Proceed() error {
	if err := j.EnsureDecisionPending(); err != nil {
		return err
	}
	if err := j.ensureSoleCleaner(); err != nil {
		return err
	}
	j.homeownerDecision = DecisionProceed
	return nil
}

// AutoProceed applies the default outcome once the decision window has passed.
func (j *Job) AutoProceed(now time.Time) error {
	if err := j.EnsureDecisionPending(); err != nil {
		return err
	}
	if j.edgeCaseDecisionExpiresAt == nil || !now.After(*j.edgeCaseDecisionExpiresAt) {
		return errs.NewConflictError("Decision window is still open")
	}
	if err := j.ensureSoleCleaner(); err != nil {
		return err
	}
	j.homeownerDecision = DecisionAutoProceeded
	return nil
}

// CancelEdgeCase cancels the job as the outcome of an edge-case decision.
func (j *Job) CancelEdgeCase() error {
	if err := j.Cancel(); err != nil {
		return err
	}
	j.homeownerDecision = DecisionCancel
	return nil
}

// MarkUrgentFillSent stamps the urgent-fill escalation; it runs at most once per schedule.
func (j *Job) MarkUrgentFillSent(now time.Time) error {
	if j.urgentNotificationSentAt != nil {
		return errs.NewConflictError("Urgent fill notification already sent")
	}
	at := now
	j.urgentNotificationSentAt = &at
	return nil
}

// MarkFinalWarningSent stamps the final-warning escalation.
func (j *Job) MarkFinalWarningSent(now time.Time) error {
	if j.finalWarningAt != nil {
		return errs.NewConflictError("Final warning already sent")
	}
	at := now
	j.finalWarningAt = &at
	return nil
}

// ClearEscalations re-arms the urgency sweeps after the appointment moves.
func (j *Job) ClearEscalations() {
	j.urgentNotificationSentAt = nil
	j.finalWarningAt = nil
}

// OfferSolo opens a time-boxed solo completion offer for the last remaining cleaner.
func (j *Job) OfferSolo(now time.Time, window time.Duration) error {
	if err := j.EnsureActive(); err != nil {
		return err
	}
	if j.SoloOfferPending() {
		return errs.NewConflictError("A solo offer is already pending")
	}
	sent := now
	expires := now.Add(window)
	j.soloOfferSentAt = &sent
	j.soloOfferExpiresAt = &expires
	j.soloOfferAcceptedAt = nil
	j.soloOfferDeclined = false
	j.soloOfferExpired = false
	return nil
}

// SoloOfferPending reports whether a solo offer has been sent and not yet resolved.
func (j *Job) SoloOfferPending() bool {
	return j.soloOfferSentAt != nil &&
		j.soloOfferAcceptedAt == nil &&
		!j.soloOfferDeclined &&
		!j.soloOfferExpired
}

// AcceptSolo records acceptance inside the window and shrinks the job to its sole cleaner.
func (j *Job) AcceptSolo(now time.Time) error {
	if !j.SoloOfferPending() {
		return errs.NewConflictError(MsgNoSoloOffer)
	}
	if now.After(*j.soloOfferExpiresAt) {
		return errs.NewConflictError(MsgSoloOfferExpired)
	}
	at := now
	j.soloOfferAcceptedAt = &at
	return j.ShrinkToConfirmed()
}

// DeclineSolo records the remaining cleaner's refusal.
func (j *Job) DeclineSolo() error {
	if !j.SoloOfferPending() {
		return errs.NewConflictError(MsgNoSoloOffer)
	}
	j.soloOfferDeclined = true
	return nil
}

// ExpireSolo closes a solo offer nobody answered.
func (j *Job) ExpireSolo(now time.Time) error {
	if !j.SoloOfferPending() {
		return errs.NewConflictError(MsgNoSoloOffer)
	}
	if !now.After(*j.soloOfferExpiresAt) {
		return errs.NewConflictError("Solo offer is still open")
	}
	j.soloOfferExpired = true
	return nil
}

// OfferExtraWork opens the extra-work window for the surviving cleaners.
func (j *Job) OfferExtraWork(now time.Time, window time.Duration) error {
	if err := j.EnsureActive(); err != nil {
		return err
	}
	if j.ExtraWorkPending() {
		return errs.NewConflictError("Extra work offers are already pending")
	}
	sent := now
	expires := now.Add(window)
	j.extraWorkOffersSentAt = &sent
	j.extraWorkOffersExpireAt = &expires
	j.extraWorkOffersExpired = false
	return nil
}

// ExtraWorkPending reports whether extra-work offers are out and the window has not been closed.
func (j *Job) ExtraWorkPending() bool {
	return j.extraWorkOffersSentAt != nil && !j.extraWorkOffersExpired
}

// EnsureExtraWorkOpen fails when no window is open or it has already run out.
func (j *Job) EnsureExtraWorkOpen(now time.Time) error {
	if !j.ExtraWorkPending() {
		return errs.NewConflictError(MsgNoExtraWorkOffer)
	}
	if now.After(*j.extraWorkOffersExpireAt) {
		return errs.NewConflictError(MsgExtraWorkOfferExpired)
	}
	return nil
}

// CloseExtraWork ends the extra-work window, either because it ran out or because every survivor answered.
func (j *Job) CloseExtraWork() error {
	if !j.ExtraWorkPending() {
		return errs.NewConflictError(MsgNoExtraWorkOffer)
	}
	j.extraWorkOffersExpired = true
	return nil
}

// AdvanceVersion is called by the repository after a successful optimistic update.
func (j *Job) AdvanceVersion() {
	j.version++
}

func validateRequired(n int) error {
	if n < 1 {
		return errs.NewValueIsOutOfRangeError("total cleaners required", n, 1, "unbounded")
	}
	return nil
}

func validatePrimary(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("primary cleaner", err)
	}
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
