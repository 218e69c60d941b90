package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
)

type ProcessFinalWarningsCommandHandler struct {
	engine *Engine
}

func NewProcessFinalWarningsCommandHandler(engine *Engine) ProcessFinalWarningsCommandHandler {
	return ProcessFinalWarningsCommandHandler{
		engine: engine,
	}
}

// Handle warns the homeowner and the confirmed cleaners of jobs still short of
// cleaners right before the appointment.
func (h ProcessFinalWarningsCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessFinalWarningsCommand,
) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	e := h.engine
	now := e.clock.Now()
	candidates, err := e.read().JobRepository().FindFinalWarningCandidates(ctx, now, now.Add(e.settings.FinalWarningHorizon))
	if err != nil {
		return SweepResult{}, err
	}

	return e.sweep(ctx, "final_warning", jobIDs(candidates), func(ctx context.Context, t *tx, id kernel.UUID) (bool, error) {
		j, err := t.JobRepository().Get(ctx, id)
		if err != nil {
			return false, err
		}
		if j.EnsureFillable() != nil || j.FinalWarningAt() != nil {
			return false, nil
		}
		if err = j.MarkFinalWarningSent(t.now); err != nil {
			return false, err
		}
		s, err := e.syncJob(ctx, t, j)
		if err != nil {
			return false, err
		}

		date := s.appointment.Date()
		params := notice.Params{
			JobID:             j.ID(),
			AppointmentID:     j.AppointmentID(),
			RemainingCleaners: len(s.actives),
			Shortfall:         j.OpenSlots(),
			Date:              &date,
		}
		t.out.Add(s.appointment.HomeownerID(), notice.FinalWarning, params)
		t.out.AddAll(cleanerIDs(s.actives), notice.FinalWarning, params)
		return true, nil
	}), nil
}
