package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
)

type ProcessExpiredEdgeCaseDecisionsCommandHandler struct {
	engine *Engine
}

func NewProcessExpiredEdgeCaseDecisionsCommandHandler(engine *Engine) ProcessExpiredEdgeCaseDecisionsCommandHandler {
	return ProcessExpiredEdgeCaseDecisionsCommandHandler{
		engine: engine,
	}
}

// Handle applies the default outcome to decisions the homeowner let lapse.
func (h ProcessExpiredEdgeCaseDecisionsCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessExpiredEdgeCaseDecisionsCommand,
) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	e := h.engine
	candidates, err := e.read().JobRepository().FindExpiredEdgeCaseDecisions(ctx, e.clock.Now())
	if err != nil {
		return SweepResult{}, err
	}

	return e.sweep(ctx, "expired_edge_case_decisions", jobIDs(candidates), func(ctx context.Context, t *tx, id kernel.UUID) (bool, error) {
		j, err := t.JobRepository().Get(ctx, id)
		if err != nil {
			return false, err
		}
		if j.HomeownerDecision() != job.DecisionPending {
			return false, nil
		}

		// A decision whose job no longer has exactly one cleaner is withdrawn, not applied.
		actives, err := t.CompletionRepository().ListActiveByJob(ctx, j.ID())
		if err != nil {
			return false, err
		}
		if err = j.ApplyConfirmedCount(len(actives)); err != nil {
			return false, err
		}
		withdrawn := j.HomeownerDecision() != job.DecisionPending
		if !withdrawn {
			if err = j.AutoProceed(t.now); err != nil {
				return false, err
			}
		}
		s, err := e.syncJob(ctx, t, j)
		if err != nil {
			return false, err
		}
		if withdrawn {
			return false, nil
		}

		params := notice.Params{JobID: j.ID(), AppointmentID: j.AppointmentID()}
		t.out.Add(s.appointment.HomeownerID(), notice.EdgeCaseAutoProceeded, params)
		t.out.Add(s.actives[0].CleanerID(), notice.EdgeCaseSoleCleaner, params)
		return true, nil
	}), nil
}
