package commands

import (
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
	"multicleaner/internal/pkg/guard"
)

var ErrFillSlotCommandIsNotConstructed = errors.New(
	"FillSlotCommand must be created via NewFillSlotCommand constructor",
)

// FillSlotCommand assigns a cleaner and a set of rooms to one open slot of a job.
// With no room ids the engine picks the rooms.
type FillSlotCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	cleanerID kernel.UUID
	roomIDs   []kernel.UUID

	guard guard.ConstructorGuard
}

func NewFillSlotCommand(jobID, cleanerID kernel.UUID, roomIDs []kernel.UUID) (FillSlotCommand, error) {
	command := FillSlotCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobID(jobID),
		command.setCleanerID(cleanerID),
		command.setRoomIDs(roomIDs),
	); err != nil {
		return FillSlotCommand{}, err
	}

	return command, nil
}

func (c FillSlotCommand) Validate() error {
	return c.guard.Validate(ErrFillSlotCommandIsNotConstructed)
}

func (c FillSlotCommand) JobID() kernel.UUID     { return c.jobID }
func (c FillSlotCommand) CleanerID() kernel.UUID { return c.cleanerID }

func (c FillSlotCommand) RoomIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.roomIDs...)
}

func (c *FillSlotCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.jobID = id
	return nil
}

func (c *FillSlotCommand) setCleanerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.cleanerID = id
	return nil
}

func (c *FillSlotCommand) setRoomIDs(ids []kernel.UUID) error {
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("room assignment ids", err)
		}
	}

	c.roomIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
