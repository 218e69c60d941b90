package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
)

type ProcessEdgeCaseDecisionsCommandHandler struct {
	engine *Engine
}

func NewProcessEdgeCaseDecisionsCommandHandler(engine *Engine) ProcessEdgeCaseDecisionsCommandHandler {
	return ProcessEdgeCaseDecisionsCommandHandler{
		engine: engine,
	}
}

// Handle opens a decision window for every edge-sized two-cleaner job that has
// exactly one cleaner confirmed. The homeowner gets the cleaner's name and the
// deadline; silence means the job goes ahead with that cleaner.
func (h ProcessEdgeCaseDecisionsCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessEdgeCaseDecisionsCommand,
) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	e := h.engine
	candidates, err := e.read().JobRepository().FindEdgeCaseCandidates(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	return e.sweep(ctx, "edge_case_decisions", jobIDs(candidates), func(ctx context.Context, t *tx, id kernel.UUID) (bool, error) {
		j, err := t.JobRepository().Get(ctx, id)
		if err != nil {
			return false, err
		}
		if !j.QualifiesForEdgeCaseDecision() {
			return false, nil
		}

		appt, err := t.AppointmentRepository().Get(ctx, j.AppointmentID())
		if err != nil {
			return false, err
		}
		hm, err := t.HomeRepository().Get(ctx, appt.HomeID())
		if err != nil {
			return false, err
		}
		if !e.classifier.ClassifyHome(hm).IsEdgeLargeHome {
			return false, nil
		}
		actives, err := t.CompletionRepository().ListActiveByJob(ctx, j.ID())
		if err != nil {
			return false, err
		}
		if len(actives) != 1 {
			return false, nil
		}

		if err = j.RequestEdgeCaseDecision(t.now, e.settings.EdgeCaseDecisionWindow); err != nil {
			return false, err
		}
		if err = t.JobRepository().Update(ctx, j); err != nil {
			return false, err
		}

		t.out.Add(appt.HomeownerID(), notice.EdgeCaseDecision, notice.Params{
			JobID:         j.ID(),
			AppointmentID: j.AppointmentID(),
			CleanerName:   e.contactName(ctx, t, actives[0].CleanerID()),
			ExpiresAt:     j.EdgeCaseDecisionExpiresAt(),
		})
		return true, nil
	}), nil
}

func jobIDs(jobs []*job.Job) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID())
	}
	return out
}
