// Package offer models invitations sent to specific cleaners to fill a slot on a job.
//
// At most one pending or accepted offer exists per (job, cleaner). Every
// transition is guarded by the status the offer had when it was loaded, so a
// sweep and a cleaner acting on the same offer cannot both succeed.
package offer

import (
	"errors"
	"fmt"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
)

var ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer or Restore constructor")

const (
	MsgOfferExpired     = "Offer has expired"
	MsgOfferUnavailable = "Offer is no longer available"
)

type Type string

const (
	PrimaryInvite Type = "primary_invite"
	MarketOpen    Type = "market_open"
	UrgentFill    Type = "urgent_fill"
)

func (t Type) Validate() error {
	switch t {
	case PrimaryInvite, MarketOpen, UrgentFill:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("offer type", fmt.Errorf("%q is not a valid offer type", string(t)))
	}
}

type Status string

const (
	Pending   Status = "pending"
	Accepted  Status = "accepted"
	Declined  Status = "declined"
	Expired   Status = "expired"
	Withdrawn Status = "withdrawn"
)

func (s Status) Validate() error {
	switch s {
	case Pending, Accepted, Declined, Expired, Withdrawn:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("offer status", fmt.Errorf("%q is not a valid offer status", string(s)))
	}
}

// IsLive reports whether the offer still blocks a new offer for the same cleaner and job.
func (s Status) IsLive() bool {
	return s == Pending || s == Accepted
}

type Offer struct {
	id              kernel.UUID
	jobID           kernel.UUID
	cleanerID       kernel.UUID
	offerType       Type
	status          Status
	persistedStatus Status
	earningsOffered int64
	roomsOffered    []kernel.UUID
	expiresAt       time.Time
	createdAt       time.Time
	respondedAt     *time.Time
	declineReason   string
	isConstructed   bool
}

type Snapshot struct {
	ID              kernel.UUID
	JobID           kernel.UUID
	CleanerID       kernel.UUID
	Type            Type
	Status          Status
	EarningsOffered int64
	RoomsOffered    []kernel.UUID
	ExpiresAt       time.Time
	CreatedAt       time.Time
	RespondedAt     *time.Time
	DeclineReason   string
}

func NewOffer(
	id, jobID, cleanerID kernel.UUID,
	offerType Type,
	earningsOffered int64,
	roomsOffered []kernel.UUID,
	now, expiresAt time.Time,
) (*Offer, error) {
	if err := errors.Join(id.Validate(), jobID.Validate(), cleanerID.Validate(), offerType.Validate()); err != nil {
		return nil, err
	}
	if earningsOffered < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("earnings offered", fmt.Errorf("%d is negative", earningsOffered))
	}
	if !expiresAt.After(now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("expires at", errors.New("must be in the future"))
	}
	for _, r := range roomsOffered {
		if err := r.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("rooms offered", err)
		}
	}
	return &Offer{
		id:              id,
		jobID:           jobID,
		cleanerID:       cleanerID,
		offerType:       offerType,
		status:          Pending,
		earningsOffered: earningsOffered,
		roomsOffered:    append([]kernel.UUID(nil), roomsOffered...),
		expiresAt:       expiresAt,
		createdAt:       now,
		isConstructed:   true,
	}, nil
}

func Restore(s Snapshot) (*Offer, error) {
	if err := errors.Join(s.ID.Validate(), s.JobID.Validate(), s.CleanerID.Validate(),
		s.Type.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return &Offer{
		id:              s.ID,
		jobID:           s.JobID,
		cleanerID:       s.CleanerID,
		offerType:       s.Type,
		status:          s.Status,
		persistedStatus: s.Status,
		earningsOffered: s.EarningsOffered,
		roomsOffered:    append([]kernel.UUID(nil), s.RoomsOffered...),
		expiresAt:       s.ExpiresAt,
		createdAt:       s.CreatedAt,
		respondedAt:     s.RespondedAt,
		declineReason:   s.DeclineReason,
		isConstructed:   true,
	}, nil
}

func (o *Offer) Snapshot() Snapshot {
	return Snapshot{
		ID:              o.id,
		JobID:           o.jobID,
		CleanerID:       o.cleanerID,
		Type:            o.offerType,
		Status:          o.status,
		EarningsOffered: o.earningsOffered,
		RoomsOffered:    append([]kernel.UUID(nil), o.roomsOffered...),
		ExpiresAt:       o.expiresAt,
		CreatedAt:       o.createdAt,
		RespondedAt:     o.respondedAt,
		DeclineReason:   o.declineReason,
	}
}

func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}
	return nil
}

func (o *Offer) ID() kernel.UUID         { return o.id }
func (o *Offer) JobID() kernel.UUID      { return o.jobID }
func (o *Offer) CleanerID() kernel.UUID  { return o.cleanerID }
func (o *Offer) Type() Type              { return o.offerType }
func (o *Offer) Status() Status          { return o.status }
func (o *Offer) EarningsOffered() int64  { return o.earningsOffered }
func (o *Offer) ExpiresAt() time.Time    { return o.expiresAt }
func (o *Offer) CreatedAt() time.Time    { return o.createdAt }
func (o *Offer) DeclineReason() string   { return o.declineReason }
func (o *Offer) PersistedStatus() Status { return o.persistedStatus }

func (o *Offer) RoomsOffered() []kernel.UUID {
	return append([]kernel.UUID(nil), o.roomsOffered...)
}

// IsExpiredAt reports whether a pending offer has passed its deadline.
func (o *Offer) IsExpiredAt(now time.Time) bool {
	return o.status == Pending && now.After(o.expiresAt)
}

// Accept is called by the invited cleaner.
func (o *Offer) Accept(cleanerID kernel.UUID, now time.Time) error {
	if err := o.ensureOwner(cleanerID); err != nil {
		return err
	}
	if o.status == Expired || o.IsExpiredAt(now) {
		return errs.NewConflictError(MsgOfferExpired)
	}
	if o.status != Pending {
		return errs.NewConflictError(MsgOfferUnavailable)
	}
	o.respond(Accepted, now)
	return nil
}

// Decline is called by the invited cleaner with an optional reason.
func (o *Offer) Decline(cleanerID kernel.UUID, reason string, now time.Time) error {
	if err := o.ensureOwner(cleanerID); err != nil {
		return err
	}
	if o.status != Pending {
		return errs.NewConflictError(MsgOfferUnavailable)
	}
	o.declineReason = reason
	o.respond(Declined, now)
	return nil
}

// Expire is applied by the expiry sweep to pending offers past their deadline.
func (o *Offer) Expire(now time.Time) error {
	if !o.IsExpiredAt(now) {
		return errs.NewConflictError(MsgOfferUnavailable)
	}
	o.respond(Expired, now)
	return nil
}

// Withdraw retracts a pending offer, e.g. once the job has been filled by someone else.
func (o *Offer) Withdraw(now time.Time) error {
	if o.status != Pending {
		return errs.NewConflictError(MsgOfferUnavailable)
	}
	o.respond(Withdrawn, now)
	return nil
}

// MarkPersisted records that the current status has been written to the store.
func (o *Offer) MarkPersisted() {
	o.persistedStatus = o.status
}

func (o *Offer) ensureOwner(cleanerID kernel.UUID) error {
	if !o.cleanerID.IsEqual(cleanerID) {
		return errs.NewForbiddenError("offer belongs to another cleaner", cleanerID.String())
	}
	return nil
}

func (o *Offer) respond(status Status, now time.Time) {
	at := now
	o.status = status
	o.respondedAt = &at
}
