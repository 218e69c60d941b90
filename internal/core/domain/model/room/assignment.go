package room

import (
	"errors"
	"fmt"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
)

var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment constructor")

// Assignment is one persisted room-unit of a job.
type Assignment struct {
	id            kernel.UUID
	jobID         kernel.UUID
	appointmentID kernel.UUID
	unit          Unit
	cleanerID     *kernel.UUID
	status        Status
	earningsShare int64
	completedAt   *time.Time
	isConstructed bool
}

// NewAssignment creates an unassigned, pending room for a job.
func NewAssignment(id, jobID, appointmentID kernel.UUID, unit Unit) (*Assignment, error) {
	a := &Assignment{status: Pending, isConstructed: true}
	if err := errors.Join(
		id.Validate(),
		jobID.Validate(),
		appointmentID.Validate(),
		validateUnit(unit),
	); err != nil {
		return nil, err
	}
	a.id, a.jobID, a.appointmentID, a.unit = id, jobID, appointmentID, unit
	return a, nil
}

func RestoreAssignment(
	id, jobID, appointmentID kernel.UUID,
	unit Unit,
	cleanerID *kernel.UUID,
	status Status,
	earningsShare int64,
	completedAt *time.Time,
) (*Assignment, error) {
	a, err := NewAssignment(id, jobID, appointmentID, unit)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if cleanerID == nil && status != Pending {
		return nil, errs.NewValueIsInvalidErrorWithCause("room status",
			fmt.Errorf("%s room must have a cleaner", status))
	}
	a.cleanerID = cleanerID
	a.status = status
	a.earningsShare = earningsShare
	a.completedAt = completedAt
	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

func (a *Assignment) ID() kernel.UUID            { return a.id }
func (a *Assignment) JobID() kernel.UUID         { return a.jobID }
func (a *Assignment) AppointmentID() kernel.UUID { return a.appointmentID }
func (a *Assignment) Unit() Unit                 { return a.unit }
func (a *Assignment) Type() Type                 { return a.unit.Type }
func (a *Assignment) Number() int                { return a.unit.Number }
func (a *Assignment) Label() string              { return a.unit.Label }
func (a *Assignment) EstimatedMinutes() int      { return a.unit.EstimatedMinutes }
func (a *Assignment) Status() Status             { return a.status }
func (a *Assignment) EarningsShare() int64       { return a.earningsShare }
func (a *Assignment) CompletedAt() *time.Time    { return a.completedAt }

func (a *Assignment) CleanerID() *kernel.UUID {
	if a.cleanerID == nil {
		return nil
	}
	id := *a.cleanerID
	return &id
}

func (a *Assignment) IsUnassigned() bool {
	return a.cleanerID == nil
}

func (a *Assignment) IsAssignedTo(cleanerID kernel.UUID) bool {
	return a.cleanerID != nil && a.cleanerID.IsEqual(cleanerID)
}

func (a *Assignment) IsCompleted() bool {
	return a.status == Completed
}

// SetEarningsShare stores the cents this room contributes to its cleaner's pay.
func (a *Assignment) SetEarningsShare(cents int64) error {
	if cents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("earnings share", fmt.Errorf("%d is negative", cents))
	}
	a.earningsShare = cents
	return nil
}

// Start moves a pending room the cleaner owns into progress. Rooms already in progress are left alone.
func (a *Assignment) Start(cleanerID kernel.UUID) error {
	if !a.IsAssignedTo(cleanerID) {
		return errs.NewForbiddenError("room is not assigned to this cleaner", cleanerID.String())
	}
	if a.status == Pending {
		a.status = InProgress
	}
	return nil
}

// Complete marks the room cleaned by its owner.
func (a *Assignment) Complete(cleanerID kernel.UUID, now time.Time) error {
	if !a.IsAssignedTo(cleanerID) {
		return errs.NewForbiddenError("room is not assigned to this cleaner", cleanerID.String())
	}
	if a.status == Completed {
		return errs.NewConflictError("Room is already completed")
	}
	a.status = Completed
	completedAt := now
	a.completedAt = &completedAt
	return nil
}

func validateUnit(u Unit) error {
	if err := u.Type.Validate(); err != nil {
		return err
	}
	if u.Number < 1 {
		return errs.NewValueIsOutOfRangeError("room number", u.Number, 1, "unbounded")
	}
	if u.Label == "" {
		return errs.NewValueIsRequiredError("room label")
	}
	if u.EstimatedMinutes <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated minutes",
			fmt.Errorf("%d is not greater than 0", u.EstimatedMinutes))
	}
	return nil
}
