package commands

import (
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/guard"
)

var (
	ErrAcceptOfferCommandIsNotConstructed = errors.New(
		"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
	)
	ErrDeclineOfferCommandIsNotConstructed = errors.New(
		"DeclineOfferCommand must be created via NewDeclineOfferCommand constructor",
	)
)

// AcceptOfferCommand is the invited cleaner taking the slot.
type AcceptOfferCommand struct {
	offerID   kernel.UUID
	cleanerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOfferCommand(offerID, cleanerID kernel.UUID) (AcceptOfferCommand, error) {
	if err := errors.Join(offerID.Validate(), cleanerID.Validate()); err != nil {
		return AcceptOfferCommand{}, err
	}
	return AcceptOfferCommand{offerID: offerID, cleanerID: cleanerID, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

func (c AcceptOfferCommand) OfferID() kernel.UUID   { return c.offerID }
func (c AcceptOfferCommand) CleanerID() kernel.UUID { return c.cleanerID }

// DeclineOfferCommand is the invited cleaner turning the slot down.
type DeclineOfferCommand struct {
	offerID   kernel.UUID
	cleanerID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

func NewDeclineOfferCommand(offerID, cleanerID kernel.UUID, reason string) (DeclineOfferCommand, error) {
	if err := errors.Join(offerID.Validate(), cleanerID.Validate()); err != nil {
		return DeclineOfferCommand{}, err
	}
	return DeclineOfferCommand{
		offerID:   offerID,
		cleanerID: cleanerID,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeclineOfferCommand) Validate() error {
	return c.guard.Validate(ErrDeclineOfferCommandIsNotConstructed)
}

func (c DeclineOfferCommand) OfferID() kernel.UUID   { return c.offerID }
func (c DeclineOfferCommand) CleanerID() kernel.UUID { return c.cleanerID }
func (c DeclineOfferCommand) Reason() string         { return c.reason }
