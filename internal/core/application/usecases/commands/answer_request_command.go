package commands

import (
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/guard"
)

var (
	ErrApproveRequestCommandIsNotConstructed = errors.New(
		"ApproveRequestCommand must be created via NewApproveRequestCommand constructor",
	)
	ErrDeclineRequestCommandIsNotConstructed = errors.New(
		"DeclineRequestCommand must be created via NewDeclineRequestCommand constructor",
	)
)

// ApproveRequestCommand is the homeowner letting a cleaner onto the job.
type ApproveRequestCommand struct {
	requestID   kernel.UUID
	homeownerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveRequestCommand(requestID, homeownerID kernel.UUID) (ApproveRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), homeownerID.Validate()); err != nil {
		return ApproveRequestCommand{}, err
	}
	return ApproveRequestCommand{requestID: requestID, homeownerID: homeownerID, guard: guard.NewConstructorGuard()}, nil
}

func (c ApproveRequestCommand) Validate() error {
	return c.guard.Validate(ErrApproveRequestCommandIsNotConstructed)
}

func (c ApproveRequestCommand) RequestID() kernel.UUID   { return c.requestID }
func (c ApproveRequestCommand) HomeownerID() kernel.UUID { return c.homeownerID }

// DeclineRequestCommand is the homeowner turning a cleaner away, optionally saying why.
type DeclineRequestCommand struct {
	requestID   kernel.UUID
	homeownerID kernel.UUID
	reason      string

	guard guard.ConstructorGuard
}

func NewDeclineRequestCommand(requestID, homeownerID kernel.UUID, reason string) (DeclineRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), homeownerID.Validate()); err != nil {
		return DeclineRequestCommand{}, err
	}
	return DeclineRequestCommand{
		requestID:   requestID,
		homeownerID: homeownerID,
		reason:      reason,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c DeclineRequestCommand) Validate() error {
	return c.guard.Validate(ErrDeclineRequestCommandIsNotConstructed)
}

func (c DeclineRequestCommand) RequestID() kernel.UUID   { return c.requestID }
func (c DeclineRequestCommand) HomeownerID() kernel.UUID { return c.homeownerID }
func (c DeclineRequestCommand) Reason() string           { return c.reason }
