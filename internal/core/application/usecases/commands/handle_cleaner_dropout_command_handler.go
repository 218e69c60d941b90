package commands

import (
	"context"
)

type HandleCleanerDropoutCommandHandler struct {
	engine *Engine
}

func NewHandleCleanerDropoutCommandHandler(engine *Engine) HandleCleanerDropoutCommandHandler {
	return HandleCleanerDropoutCommandHandler{
		engine: engine,
	}
}

// Handle releases the cleaner and tells the homeowner and the remaining team what
// options are left. The notices are advisory: no offer is opened here.
func (h HandleCleanerDropoutCommandHandler) Handle(
	ctx context.Context,
	cmd HandleCleanerDropoutCommand,
) (DropoutOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return DropoutOutcome{}, err
	}

	var outcome DropoutOutcome
	err := h.engine.inTx(ctx, func(t *tx) error {
		j, err := t.JobRepository().Get(ctx, cmd.JobID())
		if err != nil {
			return err
		}
		s, err := h.engine.releaseSlot(ctx, t, j, cmd.CleanerID(), cmd.Reason())
		if err != nil {
			return err
		}

		outcome = outcomeOf(j, s)
		h.engine.adviseHomeowner(t, j, s, outcome)
		h.engine.adviseSurvivors(t, j, s, outcome)
		return nil
	})
	if err != nil {
		return DropoutOutcome{}, err
	}
	return outcome, nil
}
