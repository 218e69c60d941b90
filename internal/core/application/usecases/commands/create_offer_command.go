package commands

import (
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/pkg/errs"
	"multicleaner/internal/pkg/guard"
)

var ErrCreateOfferCommandIsNotConstructed = errors.New(
	"CreateOfferCommand must be created via NewCreateOfferCommand constructor",
)

// CreateOfferCommand invites a specific cleaner to a job's open slot.
//
// Example:
//
//	cmd, err := NewCreateOfferCommand(jobID, cleanerID, offer.MarketOpen, 12500, nil)
//	if err != nil {
//	    return err
//	}
//	if err := NewCreateOfferCommandHandler(engine).Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create offer: %w", err)
//	}
//	fmt.Printf("Offer %s sent", cmd.OfferID())
type CreateOfferCommand struct { //nolint:recvcheck //using for validation
	offerID         kernel.UUID
	jobID           kernel.UUID
	cleanerID       kernel.UUID
	offerType       offer.Type
	earningsOffered int64
	roomsOffered    []kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateOfferCommand(
	jobID, cleanerID kernel.UUID,
	offerType offer.Type,
	earningsOffered int64,
	roomsOffered []kernel.UUID,
) (CreateOfferCommand, error) {
	command := CreateOfferCommand{
		offerID: kernel.NewUUID(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		jobID.Validate(),
		cleanerID.Validate(),
		offerType.Validate(),
		command.setEarnings(earningsOffered),
		command.setRooms(roomsOffered),
	); err != nil {
		return CreateOfferCommand{}, err
	}
	command.jobID, command.cleanerID, command.offerType = jobID, cleanerID, offerType

	return command, nil
}

func (c CreateOfferCommand) Validate() error {
	return c.guard.Validate(ErrCreateOfferCommandIsNotConstructed)
}

func (c CreateOfferCommand) OfferID() kernel.UUID   { return c.offerID }
func (c CreateOfferCommand) JobID() kernel.UUID     { return c.jobID }
func (c CreateOfferCommand) CleanerID() kernel.UUID { return c.cleanerID }
func (c CreateOfferCommand) OfferType() offer.Type  { return c.offerType }
func (c CreateOfferCommand) EarningsOffered() int64 { return c.earningsOffered }

func (c CreateOfferCommand) RoomsOffered() []kernel.UUID {
	return append([]kernel.UUID(nil), c.roomsOffered...)
}

func (c *CreateOfferCommand) setEarnings(cents int64) error {
	if cents < 0 {
		return errs.NewValueIsOutOfRangeError("earnings offered", cents, 0, "unbounded")
	}

	c.earningsOffered = cents
	return nil
}

func (c *CreateOfferCommand) setRooms(ids []kernel.UUID) error {
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("rooms offered", err)
		}
	}

	c.roomsOffered = append([]kernel.UUID(nil), ids...)
	return nil
}
