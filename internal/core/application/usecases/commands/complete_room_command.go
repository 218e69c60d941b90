package commands

import (
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/guard"
)

var ErrCompleteRoomCommandIsNotConstructed = errors.New(
	"CompleteRoomCommand must be created via NewCompleteRoomCommand constructor",
)

// CompleteRoomCommand is a cleaner checking one room off their list.
type CompleteRoomCommand struct { //nolint:recvcheck //using for validation
	jobID             kernel.UUID
	roomID            kernel.UUID
	cleanerID         kernel.UUID
	hasRequiredPhotos bool

	guard guard.ConstructorGuard
}

func NewCompleteRoomCommand(jobID, roomID, cleanerID kernel.UUID, hasRequiredPhotos bool) (CompleteRoomCommand, error) {
	command := CompleteRoomCommand{
		hasRequiredPhotos: hasRequiredPhotos,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobID(jobID),
		command.setRoomID(roomID),
		command.setCleanerID(cleanerID),
	); err != nil {
		return CompleteRoomCommand{}, err
	}

	return command, nil
}

func (c CompleteRoomCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRoomCommandIsNotConstructed)
}

func (c CompleteRoomCommand) JobID() kernel.UUID      { return c.jobID }
func (c CompleteRoomCommand) RoomID() kernel.UUID     { return c.roomID }
func (c CompleteRoomCommand) CleanerID() kernel.UUID  { return c.cleanerID }
func (c CompleteRoomCommand) HasRequiredPhotos() bool { return c.hasRequiredPhotos }

func (c *CompleteRoomCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.jobID = id
	return nil
}

func (c *CompleteRoomCommand) setRoomID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.roomID = id
	return nil
}

func (c *CompleteRoomCommand) setCleanerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.cleanerID = id
	return nil
}
