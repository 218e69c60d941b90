package commands

import (
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
	"multicleaner/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand opens a multi-cleaner job for an appointment.
// A cleaner count of zero lets the engine recommend one from the home's size.
//
// Example:
//
//	cmd, err := NewCreateJobCommand(appointmentID, 0, &primaryCleanerID, false)
//	if err != nil {
//	    return fmt.Errorf("invalid job request: %w", err)
//	}
//
//	handler := NewCreateJobCommandHandler(engine)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create job: %w", err)
//	}
//	fmt.Printf("Created job %s", cmd.JobID())
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID            kernel.UUID
	appointmentID    kernel.UUID
	cleanerCount     int
	primaryCleanerID *kernel.UUID
	isAutoGenerated  bool

	guard guard.ConstructorGuard
}

// NewCreateJobCommand generates the job id and validates the inputs.
func NewCreateJobCommand(
	appointmentID kernel.UUID,
	cleanerCount int,
	primaryCleanerID *kernel.UUID,
	isAutoGenerated bool,
) (CreateJobCommand, error) {
	command := CreateJobCommand{
		jobID:           kernel.NewUUID(),
		isAutoGenerated: isAutoGenerated,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAppointmentID(appointmentID),
		command.setCleanerCount(cleanerCount),
		command.setPrimaryCleanerID(primaryCleanerID),
	); err != nil {
		return CreateJobCommand{}, err
	}

	return command, nil
}

func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

func (c CreateJobCommand) JobID() kernel.UUID         { return c.jobID }
func (c CreateJobCommand) AppointmentID() kernel.UUID { return c.appointmentID }
func (c CreateJobCommand) IsAutoGenerated() bool      { return c.isAutoGenerated }

// CleanerCount is the requested team size, or zero for the recommended size.
func (c CreateJobCommand) CleanerCount() int { return c.cleanerCount }

func (c CreateJobCommand) PrimaryCleanerID() *kernel.UUID {
	if c.primaryCleanerID == nil {
		return nil
	}
	id := *c.primaryCleanerID
	return &id
}

func (c *CreateJobCommand) setAppointmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.appointmentID = id
	return nil
}

func (c *CreateJobCommand) setCleanerCount(n int) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("cleaner count", n, 0, "unbounded")
	}

	c.cleanerCount = n
	return nil
}

func (c *CreateJobCommand) setPrimaryCleanerID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("primary cleaner", err)
	}

	primary := *id
	c.primaryCleanerID = &primary
	return nil
}
