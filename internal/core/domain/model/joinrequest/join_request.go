// Package joinrequest models a non-preferred cleaner asking the homeowner for a slot on a job.
package joinrequest

import (
	"errors"
	"fmt"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
)

var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or Restore constructor")

const MsgRequestNotPending = "Request is no longer pending"

type Status string

const (
	Pending      Status = "pending"
	Approved     Status = "approved"
	Declined     Status = "declined"
	Cancelled    Status = "cancelled"
	AutoApproved Status = "auto_approved"
)

func (s Status) Validate() error {
	switch s {
	case Pending, Approved, Declined, Cancelled, AutoApproved:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("join request status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

// Request is a tentative claim on a set of rooms awaiting homeowner approval.
type Request struct {
	id                kernel.UUID
	jobID             kernel.UUID
	cleanerID         kernel.UUID
	homeownerID       kernel.UUID
	status            Status
	persistedStatus   Status
	roomAssignmentIDs []kernel.UUID
	expiresAt         time.Time
	createdAt         time.Time
	respondedAt       *time.Time
	declineReason     string
	isConstructed     bool
}

type Snapshot struct {
	ID                kernel.UUID
	JobID             kernel.UUID
	CleanerID         kernel.UUID
	HomeownerID       kernel.UUID
	Status            Status
	RoomAssignmentIDs []kernel.UUID
	ExpiresAt         time.Time
	CreatedAt         time.Time
	RespondedAt       *time.Time
	DeclineReason     string
}

func NewRequest(
	id, jobID, cleanerID, homeownerID kernel.UUID,
	roomAssignmentIDs []kernel.UUID,
	now, expiresAt time.Time,
) (*Request, error) {
	if err := errors.Join(id.Validate(), jobID.Validate(), cleanerID.Validate(), homeownerID.Validate()); err != nil {
		return nil, err
	}
	if !expiresAt.After(now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("expires at", errors.New("must be in the future"))
	}
	return &Request{
		id:                id,
		jobID:             jobID,
		cleanerID:         cleanerID,
		homeownerID:       homeownerID,
		status:            Pending,
		roomAssignmentIDs: append([]kernel.UUID(nil), roomAssignmentIDs...),
		expiresAt:         expiresAt,
		createdAt:         now,
		isConstructed:     true,
	}, nil
}

func Restore(s Snapshot) (*Request, error) {
	if err := errors.Join(s.ID.Validate(), s.JobID.Validate(), s.CleanerID.Validate(),
		s.HomeownerID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return &Request{
		id:                s.ID,
		jobID:             s.JobID,
		cleanerID:         s.CleanerID,
		homeownerID:       s.HomeownerID,
		status:            s.Status,
		persistedStatus:   s.Status,
		roomAssignmentIDs: append([]kernel.UUID(nil), s.RoomAssignmentIDs...),
		expiresAt:         s.ExpiresAt,
		createdAt:         s.CreatedAt,
		respondedAt:       s.RespondedAt,
		declineReason:     s.DeclineReason,
		isConstructed:     true,
	}, nil
}

func (r *Request) Snapshot() Snapshot {
	return Snapshot{
		ID:                r.id,
		JobID:             r.jobID,
		CleanerID:         r.cleanerID,
		HomeownerID:       r.homeownerID,
		Status:            r.status,
		RoomAssignmentIDs: append([]kernel.UUID(nil), r.roomAssignmentIDs...),
		ExpiresAt:         r.expiresAt,
		CreatedAt:         r.createdAt,
		RespondedAt:       r.respondedAt,
		DeclineReason:     r.declineReason,
	}
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID          { return r.id }
func (r *Request) JobID() kernel.UUID       { return r.jobID }
func (r *Request) CleanerID() kernel.UUID   { return r.cleanerID }
func (r *Request) HomeownerID() kernel.UUID { return r.homeownerID }
func (r *Request) Status() Status           { return r.status }
func (r *Request) PersistedStatus() Status  { return r.persistedStatus }
func (r *Request) ExpiresAt() time.Time     { return r.expiresAt }
func (r *Request) DeclineReason() string    { return r.declineReason }

func (r *Request) RoomAssignmentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), r.roomAssignmentIDs...)
}

func (r *Request) IsExpiredAt(now time.Time) bool {
	return r.status == Pending && now.After(r.expiresAt)
}

// Approve is the homeowner accepting the cleaner.
func (r *Request) Approve(homeownerID kernel.UUID, now time.Time) error {
	if err := r.ensureHomeowner(homeownerID); err != nil {
		return err
	}
	return r.transition(Approved, now)
}

// Decline is the homeowner refusing the cleaner.
func (r *Request) Decline(homeownerID kernel.UUID, reason string, now time.Time) error {
	if err := r.ensureHomeowner(homeownerID); err != nil {
		return err
	}
	if err := r.transition(Declined, now); err != nil {
		return err
	}
	r.declineReason = reason
	return nil
}

// AutoApprove applies the default outcome once the homeowner let the window pass.
func (r *Request) AutoApprove(now time.Time) error {
	if !r.IsExpiredAt(now) {
		return errs.NewConflictError(MsgRequestNotPending)
	}
	return r.transition(AutoApproved, now)
}

// Cancel retires a pending request, e.g. because the job was filled.
func (r *Request) Cancel(now time.Time) error {
	return r.transition(Cancelled, now)
}

func (r *Request) MarkPersisted() {
	r.persistedStatus = r.status
}

func (r *Request) ensureHomeowner(homeownerID kernel.UUID) error {
	if !r.homeownerID.IsEqual(homeownerID) {
		return errs.NewForbiddenError("join request belongs to another homeowner", homeownerID.String())
	}
	return nil
}

func (r *Request) transition(to Status, now time.Time) error {
	if r.status != Pending {
		return errs.NewConflictError(MsgRequestNotPending)
	}
	at := now
	r.status = to
	r.respondedAt = &at
	return nil
}
