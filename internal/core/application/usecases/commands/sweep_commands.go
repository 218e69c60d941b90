package commands

import (
	"errors"

	"multicleaner/internal/pkg/guard"
)

// Sweep commands carry no parameters. Each handler returns a SweepResult.

var (
	ErrProcessExpiredOffersCommandIsNotConstructed = errors.New(
		"ProcessExpiredOffersCommand must be created via NewProcessExpiredOffersCommand constructor",
	)
	ErrWithdrawOffersForFilledJobsCommandIsNotConstructed = errors.New(
		"WithdrawOffersForFilledJobsCommand must be created via NewWithdrawOffersForFilledJobsCommand constructor",
	)
	ErrAutoApproveExpiredRequestsCommandIsNotConstructed = errors.New(
		"AutoApproveExpiredRequestsCommand must be created via NewAutoApproveExpiredRequestsCommand constructor",
	)
	ErrProcessEdgeCaseDecisionsCommandIsNotConstructed = errors.New(
		"ProcessEdgeCaseDecisionsCommand must be created via NewProcessEdgeCaseDecisionsCommand constructor",
	)
	ErrProcessExpiredEdgeCaseDecisionsCommandIsNotConstructed = errors.New(
		"ProcessExpiredEdgeCaseDecisionsCommand must be created via NewProcessExpiredEdgeCaseDecisionsCommand constructor",
	)
	ErrHandleExpiredExtraWorkOffersCommandIsNotConstructed = errors.New(
		"HandleExpiredExtraWorkOffersCommand must be created via NewHandleExpiredExtraWorkOffersCommand constructor",
	)
	ErrProcessUrgentFillNotificationsCommandIsNotConstructed = errors.New(
		"ProcessUrgentFillNotificationsCommand must be created via NewProcessUrgentFillNotificationsCommand constructor",
	)
	ErrProcessFinalWarningsCommandIsNotConstructed = errors.New(
		"ProcessFinalWarningsCommand must be created via NewProcessFinalWarningsCommand constructor",
	)
	ErrProcessSoloCompletionOffersCommandIsNotConstructed = errors.New(
		"ProcessSoloCompletionOffersCommand must be created via NewProcessSoloCompletionOffersCommand constructor",
	)
)

// ProcessExpiredOffersCommand expires pending offers whose deadline has passed and tells each cleaner.
type ProcessExpiredOffersCommand struct {
	guard guard.ConstructorGuard
}

func NewProcessExpiredOffersCommand() ProcessExpiredOffersCommand {
	return ProcessExpiredOffersCommand{guard: guard.NewConstructorGuard()}
}

func (c ProcessExpiredOffersCommand) Validate() error {
	return c.guard.Validate(ErrProcessExpiredOffersCommandIsNotConstructed)
}

// WithdrawOffersForFilledJobsCommand withdraws offers still pending on jobs that have since been filled.
type WithdrawOffersForFilledJobsCommand struct {
	guard guard.ConstructorGuard
}

func NewWithdrawOffersForFilledJobsCommand() WithdrawOffersForFilledJobsCommand {
	return WithdrawOffersForFilledJobsCommand{guard: guard.NewConstructorGuard()}
}

func (c WithdrawOffersForFilledJobsCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawOffersForFilledJobsCommandIsNotConstructed)
}

// AutoApproveExpiredRequestsCommand approves join requests the homeowner let lapse, or cancels them when the job filled meanwhile.
type AutoApproveExpiredRequestsCommand struct {
	guard guard.ConstructorGuard
}

func NewAutoApproveExpiredRequestsCommand() AutoApproveExpiredRequestsCommand {
	return AutoApproveExpiredRequestsCommand{guard: guard.NewConstructorGuard()}
}

func (c AutoApproveExpiredRequestsCommand) Validate() error {
	return c.guard.Validate(ErrAutoApproveExpiredRequestsCommandIsNotConstructed)
}

// ProcessEdgeCaseDecisionsCommand asks homeowners of edge-sized, half-staffed jobs whether to proceed with one cleaner.
type ProcessEdgeCaseDecisionsCommand struct {
	guard guard.ConstructorGuard
}

func NewProcessEdgeCaseDecisionsCommand() ProcessEdgeCaseDecisionsCommand {
	return ProcessEdgeCaseDecisionsCommand{guard: guard.NewConstructorGuard()}
}

func (c ProcessEdgeCaseDecisionsCommand) Validate() error {
	return c.guard.Validate(ErrProcessEdgeCaseDecisionsCommandIsNotConstructed)
}

// ProcessExpiredEdgeCaseDecisionsCommand proceeds with one cleaner where the homeowner did not answer in time.
type ProcessExpiredEdgeCaseDecisionsCommand struct {
	guard guard.ConstructorGuard
}

func NewProcessExpiredEdgeCaseDecisionsCommand() ProcessExpiredEdgeCaseDecisionsCommand {
	return ProcessExpiredEdgeCaseDecisionsCommand{guard: guard.NewConstructorGuard()}
}

func (c ProcessExpiredEdgeCaseDecisionsCommand) Validate() error {
	return c.guard.Validate(ErrProcessExpiredEdgeCaseDecisionsCommandIsNotConstructed)
}

// HandleExpiredExtraWorkOffersCommand releases cleaners who left an extra-work offer unanswered and settles the team.
type HandleExpiredExtraWorkOffersCommand struct {
	guard guard.ConstructorGuard
}

func NewHandleExpiredExtraWorkOffersCommand() HandleExpiredExtraWorkOffersCommand {
	return HandleExpiredExtraWorkOffersCommand{guard: guard.NewConstructorGuard()}
}

func (c HandleExpiredExtraWorkOffersCommand) Validate() error {
	return c.guard.Validate(ErrHandleExpiredExtraWorkOffersCommandIsNotConstructed)
}

// ProcessUrgentFillNotificationsCommand escalates unfilled jobs whose appointment is near: urgent offers to preferred cleaners and a homeowner alert.
type ProcessUrgentFillNotificationsCommand struct {
	guard guard.ConstructorGuard
}

func NewProcessUrgentFillNotificationsCommand() ProcessUrgentFillNotificationsCommand {
	return ProcessUrgentFillNotificationsCommand{guard: guard.NewConstructorGuard()}
}

func (c ProcessUrgentFillNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrProcessUrgentFillNotificationsCommandIsNotConstructed)
}

// ProcessFinalWarningsCommand warns homeowners and confirmed cleaners of jobs still unfilled shortly before the appointment.
type ProcessFinalWarningsCommand struct {
	guard guard.ConstructorGuard
}

func NewProcessFinalWarningsCommand() ProcessFinalWarningsCommand {
	return ProcessFinalWarningsCommand{guard: guard.NewConstructorGuard()}
}

func (c ProcessFinalWarningsCommand) Validate() error {
	return c.guard.Validate(ErrProcessFinalWarningsCommandIsNotConstructed)
}

// ProcessSoloCompletionOffersCommand expires unanswered solo completion offers and releases the cleaner.
type ProcessSoloCompletionOffersCommand struct {
	guard guard.ConstructorGuard
}

func NewProcessSoloCompletionOffersCommand() ProcessSoloCompletionOffersCommand {
	return ProcessSoloCompletionOffersCommand{guard: guard.NewConstructorGuard()}
}

func (c ProcessSoloCompletionOffersCommand) Validate() error {
	return c.guard.Validate(ErrProcessSoloCompletionOffersCommandIsNotConstructed)
}
