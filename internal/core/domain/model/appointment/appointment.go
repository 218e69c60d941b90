// Package appointment models the scheduled cleaning visit a multi-cleaner job belongs to.
package appointment

import (
	"errors"
	"fmt"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
)

var ErrAppointmentIsNotConstructed = errors.New("Appointment must be created via NewAppointment or RestoreAppointment constructor")

// PaymentStatus tracks whether the homeowner has paid for the visit.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid payment status", string(s)))
	}
}

// Appointment is one visit to a home on a given date.
// The assigned cleaner list mirrors the job's active completions and is
// rewritten every time a slot is filled or released.
type Appointment struct {
	id              kernel.UUID
	homeID          kernel.UUID
	homeownerID     kernel.UUID
	date            time.Time
	priceCents      int64
	paymentStatus   PaymentStatus
	hasBeenAssigned bool
	assignedIDs     []kernel.UUID
	isConstructed   bool
}

func NewAppointment(id, homeID, homeownerID kernel.UUID, date time.Time, priceCents int64) (*Appointment, error) {
	a := &Appointment{paymentStatus: PaymentPending, isConstructed: true}
	if err := errors.Join(
		validateID("appointment", id),
		validateID("home", homeID),
		validateID("homeowner", homeownerID),
		validateDate(date),
		validatePrice(priceCents),
	); err != nil {
		return nil, err
	}
	a.id, a.homeID, a.homeownerID = id, homeID, homeownerID
	a.date = date.UTC()
	a.priceCents = priceCents
	return a, nil
}

func RestoreAppointment(
	id, homeID, homeownerID kernel.UUID,
	date time.Time,
	priceCents int64,
	paymentStatus PaymentStatus,
	hasBeenAssigned bool,
	assignedIDs []kernel.UUID,
) (*Appointment, error) {
	a, err := NewAppointment(id, homeID, homeownerID, date, priceCents)
	if err != nil {
		return nil, err
	}
	if err = paymentStatus.Validate(); err != nil {
		return nil, err
	}
	a.paymentStatus = paymentStatus
	a.hasBeenAssigned = hasBeenAssigned
	a.assignedIDs = append([]kernel.UUID(nil), assignedIDs...)
	return a, nil
}

func (a *Appointment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAppointmentIsNotConstructed
	}
	return nil
}

func (a *Appointment) ID() kernel.UUID              { return a.id }
func (a *Appointment) HomeID() kernel.UUID          { return a.homeID }
func (a *Appointment) HomeownerID() kernel.UUID     { return a.homeownerID }
func (a *Appointment) Date() time.Time              { return a.date }
func (a *Appointment) PriceCents() int64            { return a.priceCents }
func (a *Appointment) PaymentStatus() PaymentStatus { return a.paymentStatus }
func (a *Appointment) HasBeenAssigned() bool        { return a.hasBeenAssigned }

func (a *Appointment) AssignedCleaners() []kernel.UUID {
	return append([]kernel.UUID(nil), a.assignedIDs...)
}

// IsOwnedBy reports whether the actor is the homeowner of this appointment.
func (a *Appointment) IsOwnedBy(actorID kernel.UUID) bool {
	return a.homeownerID.IsEqual(actorID)
}

// SetAssignedCleaners replaces the assigned employee list; an empty list clears hasBeenAssigned.
func (a *Appointment) SetAssignedCleaners(ids []kernel.UUID) {
	a.assignedIDs = append([]kernel.UUID(nil), ids...)
	a.hasBeenAssigned = len(ids) > 0
}

// Cancel marks the visit cancelled and unassigns every cleaner.
func (a *Appointment) Cancel() error {
	if a.paymentStatus == PaymentCancelled {
		return errs.NewConflictError("Appointment is already cancelled")
	}
	a.paymentStatus = PaymentCancelled
	a.hasBeenAssigned = false
	a.assignedIDs = nil
	return nil
}

// Reschedule moves the visit to another date. Cancelled appointments cannot be moved.
func (a *Appointment) Reschedule(date time.Time) error {
	if a.paymentStatus == PaymentCancelled {
		return errs.NewConflictError("Appointment is cancelled")
	}
	if err := validateDate(date); err != nil {
		return err
	}
	a.date = date.UTC()
	return nil
}

func validateID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	return nil
}

func validatePrice(priceCents int64) error {
	if priceCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is negative", priceCents))
	}
	return nil
}
