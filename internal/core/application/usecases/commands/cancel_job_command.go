package commands

import (
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/guard"
)

var ErrCancelJobCommandIsNotConstructed = errors.New(
	"CancelJobCommand must be created via NewCancelJobCommand constructor",
)

// CancelJobCommand is the homeowner calling the whole appointment off.
type CancelJobCommand struct { //nolint:recvcheck //using for validation
	jobID       kernel.UUID
	homeownerID kernel.UUID
	reason      string

	guard guard.ConstructorGuard
}

func NewCancelJobCommand(jobID, homeownerID kernel.UUID, reason string) (CancelJobCommand, error) {
	if err := errors.Join(jobID.Validate(), homeownerID.Validate()); err != nil {
		return CancelJobCommand{}, err
	}

	return CancelJobCommand{
		jobID:       jobID,
		homeownerID: homeownerID,
		reason:      reason,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CancelJobCommand) Validate() error {
	return c.guard.Validate(ErrCancelJobCommandIsNotConstructed)
}

func (c CancelJobCommand) JobID() kernel.UUID       { return c.jobID }
func (c CancelJobCommand) HomeownerID() kernel.UUID { return c.homeownerID }
func (c CancelJobCommand) Reason() string           { return c.reason }
