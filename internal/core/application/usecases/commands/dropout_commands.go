package commands

import (
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/guard"
)

var (
	ErrHandleCleanerDropoutCommandIsNotConstructed = errors.New(
		"HandleCleanerDropoutCommand must be created via NewHandleCleanerDropoutCommand constructor",
	)
	ErrOfferSoloCompletionCommandIsNotConstructed = errors.New(
		"OfferSoloCompletionCommand must be created via NewOfferSoloCompletionCommand constructor",
	)
	ErrAcceptSoloCompletionCommandIsNotConstructed = errors.New(
		"AcceptSoloCompletionCommand must be created via NewAcceptSoloCompletionCommand constructor",
	)
	ErrDeclineSoloCompletionCommandIsNotConstructed = errors.New(
		"DeclineSoloCompletionCommand must be created via NewDeclineSoloCompletionCommand constructor",
	)
	ErrOfferExtraWorkCommandIsNotConstructed = errors.New(
		"OfferExtraWorkCommand must be created via NewOfferExtraWorkCommand constructor",
	)
	ErrAcceptExtraWorkCommandIsNotConstructed = errors.New(
		"AcceptExtraWorkCommand must be created via NewAcceptExtraWorkCommand constructor",
	)
	ErrDeclineExtraWorkCommandIsNotConstructed = errors.New(
		"DeclineExtraWorkCommand must be created via NewDeclineExtraWorkCommand constructor",
	)
)

// HandleCleanerDropoutCommand is a cleaner leaving a job they were confirmed on.
type HandleCleanerDropoutCommand struct {
	jobCleaner
	reason string

	guard guard.ConstructorGuard
}

func NewHandleCleanerDropoutCommand(jobID, cleanerID kernel.UUID, reason string) (HandleCleanerDropoutCommand, error) {
	pair, err := newJobCleaner(jobID, cleanerID)
	if err != nil {
		return HandleCleanerDropoutCommand{}, err
	}
	return HandleCleanerDropoutCommand{jobCleaner: pair, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c HandleCleanerDropoutCommand) Validate() error {
	return c.guard.Validate(ErrHandleCleanerDropoutCommandIsNotConstructed)
}

func (c HandleCleanerDropoutCommand) Reason() string { return c.reason }

// OfferSoloCompletionCommand offers the whole job to the last cleaner standing.
type OfferSoloCompletionCommand struct {
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewOfferSoloCompletionCommand(jobID kernel.UUID) (OfferSoloCompletionCommand, error) {
	if err := jobID.Validate(); err != nil {
		return OfferSoloCompletionCommand{}, err
	}
	return OfferSoloCompletionCommand{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (c OfferSoloCompletionCommand) Validate() error {
	return c.guard.Validate(ErrOfferSoloCompletionCommandIsNotConstructed)
}

func (c OfferSoloCompletionCommand) JobID() kernel.UUID { return c.jobID }

type AcceptSoloCompletionCommand struct {
	jobCleaner

	guard guard.ConstructorGuard
}

func NewAcceptSoloCompletionCommand(jobID, cleanerID kernel.UUID) (AcceptSoloCompletionCommand, error) {
	pair, err := newJobCleaner(jobID, cleanerID)
	if err != nil {
		return AcceptSoloCompletionCommand{}, err
	}
	return AcceptSoloCompletionCommand{jobCleaner: pair, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptSoloCompletionCommand) Validate() error {
	return c.guard.Validate(ErrAcceptSoloCompletionCommandIsNotConstructed)
}

type DeclineSoloCompletionCommand struct {
	jobCleaner

	guard guard.ConstructorGuard
}

func NewDeclineSoloCompletionCommand(jobID, cleanerID kernel.UUID) (DeclineSoloCompletionCommand, error) {
	pair, err := newJobCleaner(jobID, cleanerID)
	if err != nil {
		return DeclineSoloCompletionCommand{}, err
	}
	return DeclineSoloCompletionCommand{jobCleaner: pair, guard: guard.NewConstructorGuard()}, nil
}

func (c DeclineSoloCompletionCommand) Validate() error {
	return c.guard.Validate(ErrDeclineSoloCompletionCommandIsNotConstructed)
}

// OfferExtraWorkCommand rebalances the open rooms across the remaining team.
type OfferExtraWorkCommand struct {
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewOfferExtraWorkCommand(jobID kernel.UUID) (OfferExtraWorkCommand, error) {
	if err := jobID.Validate(); err != nil {
		return OfferExtraWorkCommand{}, err
	}
	return OfferExtraWorkCommand{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (c OfferExtraWorkCommand) Validate() error {
	return c.guard.Validate(ErrOfferExtraWorkCommandIsNotConstructed)
}

func (c OfferExtraWorkCommand) JobID() kernel.UUID { return c.jobID }

type AcceptExtraWorkCommand struct {
	jobCleaner

	guard guard.ConstructorGuard
}

func NewAcceptExtraWorkCommand(jobID, cleanerID kernel.UUID) (AcceptExtraWorkCommand, error) {
	pair, err := newJobCleaner(jobID, cleanerID)
	if err != nil {
		return AcceptExtraWorkCommand{}, err
	}
	return AcceptExtraWorkCommand{jobCleaner: pair, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptExtraWorkCommand) Validate() error {
	return c.guard.Validate(ErrAcceptExtraWorkCommandIsNotConstructed)
}

type DeclineExtraWorkCommand struct {
	jobCleaner

	guard guard.ConstructorGuard
}

func NewDeclineExtraWorkCommand(jobID, cleanerID kernel.UUID) (DeclineExtraWorkCommand, error) {
	pair, err := newJobCleaner(jobID, cleanerID)
	if err != nil {
		return DeclineExtraWorkCommand{}, err
	}
	return DeclineExtraWorkCommand{jobCleaner: pair, guard: guard.NewConstructorGuard()}, nil
}

func (c DeclineExtraWorkCommand) Validate() error {
	return c.guard.Validate(ErrDeclineExtraWorkCommandIsNotConstructed)
}
