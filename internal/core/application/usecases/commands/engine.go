package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/policy"
	"multicleaner/internal/core/domain/services"
	"multicleaner/internal/core/ports"
	"multicleaner/internal/pkg/clock"
	"multicleaner/internal/pkg/errs"
)

// Engine bundles the collaborators shared by every command handler.
// It holds no job state: all coordination goes through the unit of work.
type Engine struct {
	uowFactory UoWFactory
	clock      clock.Clock
	settings   policy.Settings
	pricing    ports.PricingService
	gateway    ports.NotificationGateway
	metrics    ports.MetricsCollector
	splitter   services.RoomSplitter
	classifier services.HomeClassifier
	logger     *slog.Logger
}

// NewEngine validates the settings and wires the domain services from them.
func NewEngine(
	uowFactory UoWFactory,
	clk clock.Clock,
	settings policy.Settings,
	pricing ports.PricingService,
	gateway ports.NotificationGateway,
	metrics ports.MetricsCollector,
	logger *slog.Logger,
) (*Engine, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if clk == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}
	if pricing == nil {
		return nil, errs.NewValueIsRequiredError("pricing")
	}
	if gateway == nil {
		return nil, errs.NewValueIsRequiredError("gateway")
	}
	if metrics == nil {
		return nil, errs.NewValueIsRequiredError("metrics")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		uowFactory: uowFactory,
		clock:      clk,
		settings:   settings,
		pricing:    pricing,
		gateway:    gateway,
		metrics:    metrics,
		splitter:   services.NewRoomSplitter(),
		classifier: services.NewHomeClassifier(settings.LargeHomeBedsThreshold, settings.LargeHomeBathsThreshold),
		logger:     logger.With("component", "engine"),
	}, nil
}

// tx is one transaction: the unit of work plus everything that must wait for commit.
type tx struct {
	UoW
	now      time.Time
	out      notice.Outbox
	filled   int
	released int
}

// inTx runs fn inside a transaction. Notices and slot metrics are emitted only
// after a successful commit; a failed delivery never undoes the committed state.
func (e *Engine) inTx(ctx context.Context, fn func(t *tx) error) error {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	t := &tx{UoW: uow, now: e.clock.Now()}
	if err := fn(t); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	for range t.filled {
		e.metrics.IncSlotFilled()
	}
	for range t.released {
		e.metrics.IncSlotReleased()
	}
	e.dispatch(ctx, t.out.Drain())
	return nil
}

// read returns a unit of work without a transaction, for sweep candidate scans.
func (e *Engine) read() UoW {
	return e.uowFactory.Create()
}

func (e *Engine) dispatch(ctx context.Context, notices []notice.Notice) {
	for _, n := range notices {
		msg, err := notice.Compose(n)
		if err != nil {
			e.logger.ErrorContext(ctx, "failed to compose notification",
				"kind", n.Kind.String(), "recipient", n.Recipient.String(), "error", err)
			e.metrics.IncNotificationFailure(n.Kind.String())
			continue
		}
		if err = e.gateway.Notify(ctx, msg); err != nil {
			e.logger.ErrorContext(ctx, "failed to deliver notification",
				"kind", n.Kind.String(), "recipient", n.Recipient.String(), "error", err)
			e.metrics.IncNotificationFailure(n.Kind.String())
		}
	}
}

// SweepResult is what a sweep reports to the scheduler.
type SweepResult struct {
	Processed int
	Errors    int
}

// sweepStep handles one candidate in its own transaction. It re-reads the item and
// reports false when the item is no longer in the state the scan found it in.
type sweepStep func(ctx context.Context, t *tx, id kernel.UUID) (bool, error)

// sweep runs step for every candidate, isolating failures per item.
// A ConflictError means another writer got there first and is not counted as a failure.
func (e *Engine) sweep(ctx context.Context, name string, ids []kernel.UUID, step sweepStep) SweepResult {
	started := time.Now()
	logger := e.logger.With("sweep", name)

	var res SweepResult
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}

		var acted bool
		err := e.inTx(ctx, func(t *tx) error {
			var stepErr error
			acted, stepErr = step(ctx, t, id)
			return stepErr
		})

		switch {
		case err == nil && acted:
			res.Processed++
		case err == nil:
		case errors.Is(err, errs.ErrConflict):
			logger.InfoContext(ctx, "item skipped", "id", id.String(), "reason", err.Error())
		default:
			res.Errors++
			logger.ErrorContext(ctx, "item failed", "id", id.String(), "error", err)
		}
	}

	e.metrics.RecordSweep(name, res.Processed, res.Errors, time.Since(started))
	logger.InfoContext(ctx, "sweep finished", "candidates", len(ids), "processed", res.Processed, "errors", res.Errors)
	return res
}
