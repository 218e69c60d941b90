package commands

import (
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/guard"
)

var (
	ErrReleaseSlotCommandIsNotConstructed = errors.New(
		"ReleaseSlotCommand must be created via NewReleaseSlotCommand constructor",
	)
	ErrMarkCleanerCompleteCommandIsNotConstructed = errors.New(
		"MarkCleanerCompleteCommand must be created via NewMarkCleanerCompleteCommand constructor",
	)
	ErrStartJobCommandIsNotConstructed = errors.New(
		"StartJobCommand must be created via NewStartJobCommand constructor",
	)
)

// jobCleaner is the (job, cleaner) pair most cleaner-side commands act on.
type jobCleaner struct {
	jobID     kernel.UUID
	cleanerID kernel.UUID
}

func newJobCleaner(jobID, cleanerID kernel.UUID) (jobCleaner, error) {
	if err := errors.Join(jobID.Validate(), cleanerID.Validate()); err != nil {
		return jobCleaner{}, err
	}
	return jobCleaner{jobID: jobID, cleanerID: cleanerID}, nil
}

func (p jobCleaner) JobID() kernel.UUID     { return p.jobID }
func (p jobCleaner) CleanerID() kernel.UUID { return p.cleanerID }

// ReleaseSlotCommand frees a cleaner's slot and their unfinished rooms without
// the dropout notification policy.
type ReleaseSlotCommand struct {
	jobCleaner
	reason string

	guard guard.ConstructorGuard
}

func NewReleaseSlotCommand(jobID, cleanerID kernel.UUID, reason string) (ReleaseSlotCommand, error) {
	pair, err := newJobCleaner(jobID, cleanerID)
	if err != nil {
		return ReleaseSlotCommand{}, err
	}
	return ReleaseSlotCommand{jobCleaner: pair, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c ReleaseSlotCommand) Validate() error {
	return c.guard.Validate(ErrReleaseSlotCommandIsNotConstructed)
}

func (c ReleaseSlotCommand) Reason() string { return c.reason }

// MarkCleanerCompleteCommand closes out every room a cleaner still holds.
type MarkCleanerCompleteCommand struct {
	jobCleaner

	guard guard.ConstructorGuard
}

func NewMarkCleanerCompleteCommand(jobID, cleanerID kernel.UUID) (MarkCleanerCompleteCommand, error) {
	pair, err := newJobCleaner(jobID, cleanerID)
	if err != nil {
		return MarkCleanerCompleteCommand{}, err
	}
	return MarkCleanerCompleteCommand{jobCleaner: pair, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkCleanerCompleteCommand) Validate() error {
	return c.guard.Validate(ErrMarkCleanerCompleteCommandIsNotConstructed)
}

// StartJobCommand records a cleaner arriving on site.
type StartJobCommand struct {
	jobCleaner

	guard guard.ConstructorGuard
}

func NewStartJobCommand(jobID, cleanerID kernel.UUID) (StartJobCommand, error) {
	pair, err := newJobCleaner(jobID, cleanerID)
	if err != nil {
		return StartJobCommand{}, err
	}
	return StartJobCommand{jobCleaner: pair, guard: guard.NewConstructorGuard()}, nil
}

func (c StartJobCommand) Validate() error {
	return c.guard.Validate(ErrStartJobCommandIsNotConstructed)
}
