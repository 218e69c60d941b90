package commands

import (
	"errors"
	"fmt"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
	"multicleaner/internal/pkg/guard"
)

var (
	ErrHomeownerResponseCommandIsNotConstructed = errors.New(
		"HomeownerResponseCommand must be created via NewHomeownerResponseCommand constructor",
	)
	ErrRescheduleCommandIsNotConstructed = errors.New(
		"RescheduleCommand must be created via NewRescheduleCommand constructor",
	)
	ErrCancelEdgeCaseAppointmentCommandIsNotConstructed = errors.New(
		"CancelEdgeCaseAppointmentCommand must be created via NewCancelEdgeCaseAppointmentCommand constructor",
	)
)

// Response is what a homeowner answers to a staffing prompt.
type Response string

const (
	ProceedWithOne  Response = "proceed_with_one"
	ProceedEdgeCase Response = "proceed_edge_case"
	CancelEdgeCase  Response = "cancel_edge_case"
	CancelBooking   Response = "cancel"
	RescheduleVisit Response = "reschedule"
)

func (r Response) Validate() error {
	switch r {
	case ProceedWithOne, ProceedEdgeCase, CancelEdgeCase, CancelBooking, RescheduleVisit:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("response", fmt.Errorf("%q is not a valid response", string(r)))
	}
}

type HomeownerResponseCommand struct {
	jobID       kernel.UUID
	homeownerID kernel.UUID
	response    Response
	date        *time.Time
	reason      string

	guard guard.ConstructorGuard
}

// NewHomeownerResponseCommand requires a date when the response is a reschedule.
func NewHomeownerResponseCommand(
	jobID, homeownerID kernel.UUID,
	response Response,
	date *time.Time,
	reason string,
) (HomeownerResponseCommand, error) {
	setters := []error{jobID.Validate(), homeownerID.Validate(), response.Validate()}
	if response == RescheduleVisit && (date == nil || date.IsZero()) {
		setters = append(setters, errs.NewValueIsRequiredError("date"))
	}
	if err := errors.Join(setters...); err != nil {
		return HomeownerResponseCommand{}, err
	}

	var at *time.Time
	if date != nil {
		d := *date
		at = &d
	}
	return HomeownerResponseCommand{
		jobID:       jobID,
		homeownerID: homeownerID,
		response:    response,
		date:        at,
		reason:      reason,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c HomeownerResponseCommand) Validate() error {
	return c.guard.Validate(ErrHomeownerResponseCommandIsNotConstructed)
}

func (c HomeownerResponseCommand) JobID() kernel.UUID       { return c.jobID }
func (c HomeownerResponseCommand) HomeownerID() kernel.UUID { return c.homeownerID }
func (c HomeownerResponseCommand) Response() Response       { return c.response }
func (c HomeownerResponseCommand) Date() *time.Time         { return c.date }
func (c HomeownerResponseCommand) Reason() string           { return c.reason }

// RescheduleCommand moves the appointment of a job to another date.
type RescheduleCommand struct {
	jobID       kernel.UUID
	homeownerID kernel.UUID
	date        time.Time

	guard guard.ConstructorGuard
}

func NewRescheduleCommand(jobID, homeownerID kernel.UUID, date time.Time) (RescheduleCommand, error) {
	setters := []error{jobID.Validate(), homeownerID.Validate()}
	if date.IsZero() {
		setters = append(setters, errs.NewValueIsRequiredError("date"))
	}
	if err := errors.Join(setters...); err != nil {
		return RescheduleCommand{}, err
	}
	return RescheduleCommand{jobID: jobID, homeownerID: homeownerID, date: date, guard: guard.NewConstructorGuard()}, nil
}

func (c RescheduleCommand) Validate() error {
	return c.guard.Validate(ErrRescheduleCommandIsNotConstructed)
}

func (c RescheduleCommand) JobID() kernel.UUID       { return c.jobID }
func (c RescheduleCommand) HomeownerID() kernel.UUID { return c.homeownerID }
func (c RescheduleCommand) Date() time.Time          { return c.date }

// CancelEdgeCaseAppointmentCommand cancels a job as the outcome of an edge-case decision.
type CancelEdgeCaseAppointmentCommand struct {
	jobID  kernel.UUID
	reason string

	guard guard.ConstructorGuard
}

func NewCancelEdgeCaseAppointmentCommand(jobID kernel.UUID, reason string) (CancelEdgeCaseAppointmentCommand, error) {
	if err := jobID.Validate(); err != nil {
		return CancelEdgeCaseAppointmentCommand{}, err
	}
	return CancelEdgeCaseAppointmentCommand{jobID: jobID, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelEdgeCaseAppointmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelEdgeCaseAppointmentCommandIsNotConstructed)
}

func (c CancelEdgeCaseAppointmentCommand) JobID() kernel.UUID { return c.jobID }
func (c CancelEdgeCaseAppointmentCommand) Reason() string     { return c.reason }
