package commands

import (
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
	"multicleaner/internal/pkg/guard"
)

var ErrRequestToJoinCommandIsNotConstructed = errors.New(
	"RequestToJoinCommand must be created via NewRequestToJoinCommand constructor",
)

// RequestToJoinCommand is a cleaner asking for a slot on an open job. Preferred
// cleaners are put on the job at once; everyone else waits for the homeowner.
type RequestToJoinCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	jobID     kernel.UUID
	cleanerID kernel.UUID
	roomIDs   []kernel.UUID

	guard guard.ConstructorGuard
}

func NewRequestToJoinCommand(jobID, cleanerID kernel.UUID, roomIDs []kernel.UUID) (RequestToJoinCommand, error) {
	command := RequestToJoinCommand{
		requestID: kernel.NewUUID(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(jobID.Validate(), cleanerID.Validate(), command.setRoomIDs(roomIDs)); err != nil {
		return RequestToJoinCommand{}, err
	}
	command.jobID, command.cleanerID = jobID, cleanerID

	return command, nil
}

func (c RequestToJoinCommand) Validate() error {
	return c.guard.Validate(ErrRequestToJoinCommandIsNotConstructed)
}

// RequestID is used only when the request has to wait for approval.
func (c RequestToJoinCommand) RequestID() kernel.UUID { return c.requestID }
func (c RequestToJoinCommand) JobID() kernel.UUID     { return c.jobID }
func (c RequestToJoinCommand) CleanerID() kernel.UUID { return c.cleanerID }

func (c RequestToJoinCommand) RoomIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.roomIDs...)
}

func (c *RequestToJoinCommand) setRoomIDs(ids []kernel.UUID) error {
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("room assignment ids", err)
		}
	}

	c.roomIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
