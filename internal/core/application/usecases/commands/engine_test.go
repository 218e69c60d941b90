package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"multicleaner/internal/adapters/out/metrics"
	"multicleaner/internal/adapters/out/postgres"
	"multicleaner/internal/adapters/out/postgres/completionrepo"
	"multicleaner/internal/adapters/out/postgres/jobrepo"
	"multicleaner/internal/adapters/out/postgres/testdb"
	"multicleaner/internal/adapters/out/pricing"
	"multicleaner/internal/core/application/usecases/commands"
	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/policy"
	"multicleaner/internal/pkg/clock"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var epoch = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// recordingGateway keeps every message it is asked to deliver.
type recordingGateway struct {
	mu   sync.Mutex
	sent []notice.Message
	err  error
}

func (g *recordingGateway) Notify(_ context.Context, msg notice.Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, msg)
	return g.err
}

func (g *recordingGateway) kindsFor(recipient kernel.UUID) []notice.Kind {
	g.mu.Lock()
	defer g.mu.Unlock()
	var kinds []notice.Kind
	for _, m := range g.sent {
		if m.Recipient.IsEqual(recipient) {
			kinds = append(kinds, m.Kind)
		}
	}
	return kinds
}

func (g *recordingGateway) reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = nil
}

// harness runs the engine against a migrated sqlite database with a fake clock.
type harness struct {
	db      *gorm.DB
	engine  *commands.Engine
	clock   *clock.FakeClock
	gateway *recordingGateway
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testdb.Open(t)
	uows := postgres.NewGormUnitOfWorkFactory(db)
	clk := clock.Fake(epoch)
	card, err := pricing.NewRateCard(10)
	require.NoError(t, err)
	gw := &recordingGateway{}

	engine, err := commands.NewEngine(
		commands.FuncUoWFactory(func() commands.UoW { return uows.Create() }),
		clk,
		policy.Default(),
		card,
		gw,
		metrics.NewNop(),
		slog.New(slog.DiscardHandler),
	)
	require.NoError(t, err)

	return &harness{db: db, engine: engine, clock: clk, gateway: gw}
}

func (h *harness) seed(t *testing.T, beds int, baths float64, cleaners int) testdb.Fixture {
	t.Helper()
	return testdb.SeedJob(t, h.db, beds, baths, cleaners, epoch.Add(7*24*time.Hour), epoch)
}

func (h *harness) fill(t *testing.T, jobID, cleanerID kernel.UUID, roomIDs []kernel.UUID) error {
	t.Helper()
	cmd, err := commands.NewFillSlotCommand(jobID, cleanerID, roomIDs)
	require.NoError(t, err)
	return commands.NewFillSlotCommandHandler(h.engine).Handle(t.Context(), cmd)
}

func (h *harness) job(t *testing.T, id kernel.UUID) *job.Job {
	t.Helper()
	j, err := jobrepo.NewGormJobRepository(h.db).Get(t.Context(), id)
	require.NoError(t, err)
	return j
}

func (h *harness) completion(t *testing.T, jobID, cleanerID kernel.UUID) (*completion.Completion, error) {
	t.Helper()
	return completionrepo.NewGormCompletionRepository(h.db).GetByJobAndCleaner(t.Context(), jobID, cleanerID)
}

func conflictMessage(t *testing.T, err error) string {
	t.Helper()
	require.ErrorIs(t, err, errs.ErrConflict)
	msg, ok := errs.ConflictMessage(err)
	require.True(t, ok)
	return msg
}

func TestNewEngine_RequiresCollaborators(t *testing.T) {
	uows := commands.FuncUoWFactory(func() commands.UoW { return nil })
	card, err := pricing.NewRateCard(10)
	require.NoError(t, err)
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name  string
		build func() (*commands.Engine, error)
	}{
		{"uow factory", func() (*commands.Engine, error) {
			return commands.NewEngine(nil, clock.Real(), policy.Default(), card, &recordingGateway{}, metrics.NewNop(), logger)
		}},
		{"clock", func() (*commands.Engine, error) {
			return commands.NewEngine(uows, nil, policy.Default(), card, &recordingGateway{}, metrics.NewNop(), logger)
		}},
		{"pricing", func() (*commands.Engine, error) {
			return commands.NewEngine(uows, clock.Real(), policy.Default(), nil, &recordingGateway{}, metrics.NewNop(), logger)
		}},
		{"gateway", func() (*commands.Engine, error) {
			return commands.NewEngine(uows, clock.Real(), policy.Default(), card, nil, metrics.NewNop(), logger)
		}},
		{"metrics", func() (*commands.Engine, error) {
			return commands.NewEngine(uows, clock.Real(), policy.Default(), card, &recordingGateway{}, nil, logger)
		}},
		{"logger", func() (*commands.Engine, error) {
			return commands.NewEngine(uows, clock.Real(), policy.Default(), card, &recordingGateway{}, metrics.NewNop(), nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := tt.build()
			require.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.Nil(t, engine)
		})
	}
}

func TestNewEngine_RejectsInvalidSettings(t *testing.T) {
	card, err := pricing.NewRateCard(10)
	require.NoError(t, err)
	settings := policy.Default()
	settings.OfferExpiration = 0

	engine, err := commands.NewEngine(
		commands.FuncUoWFactory(func() commands.UoW { return nil }),
		clock.Real(), settings, card, &recordingGateway{}, metrics.NewNop(), slog.New(slog.DiscardHandler),
	)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Nil(t, engine)
}

func TestEngine_DeliveryFailureDoesNotUndoCommittedFill(t *testing.T) {
	h := newHarness(t)
	f := h.seed(t, 2, 1, 2)
	h.gateway.err = errors.New("smtp down")

	require.NoError(t, h.fill(t, f.Job.ID(), kernel.NewUUID(), nil))
	err := h.fill(t, f.Job.ID(), kernel.NewUUID(), nil)

	require.NoError(t, err)
	j := h.job(t, f.Job.ID())
	assert.Equal(t, job.Filled, j.Status())
	assert.Equal(t, 2, j.CleanersConfirmed())
	assert.Contains(t, h.gateway.kindsFor(f.Appointment.HomeownerID()), notice.JobFilled)
}
