package queries_test

import (
	"context"
	"log/slog"
	"time"

	"multicleaner/internal/adapters/out/metrics"
	"multicleaner/internal/adapters/out/postgres"
	"multicleaner/internal/adapters/out/postgres/testdb"
	"multicleaner/internal/adapters/out/pricing"
	"multicleaner/internal/core/application/usecases/commands"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/core/domain/model/policy"
	"multicleaner/internal/pkg/clock"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var epoch = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type discardGateway struct{}

func (discardGateway) Notify(context.Context, notice.Message) error { return nil }

// QueryTestSuite seeds state through the command engine and reads it back
// through the query handlers.
type QueryTestSuite struct {
	suite.Suite
	db      *gorm.DB
	clock   *clock.FakeClock
	card    *pricing.RateCard
	engine  *commands.Engine
	fixture testdb.Fixture
}

func (suite *QueryTestSuite) SetupTest() {
	suite.db = testdb.Open(suite.T())
	suite.clock = clock.Fake(epoch)

	card, err := pricing.NewRateCard(10)
	suite.Require().NoError(err)
	suite.card = card

	uows := postgres.NewGormUnitOfWorkFactory(suite.db)
	engine, err := commands.NewEngine(
		commands.FuncUoWFactory(func() commands.UoW { return uows.Create() }),
		suite.clock,
		policy.Default(),
		card,
		discardGateway{},
		metrics.NewNop(),
		slog.New(slog.DiscardHandler),
	)
	suite.Require().NoError(err)
	suite.engine = engine

	suite.fixture = testdb.SeedJob(suite.T(), suite.db, 3, 2, 2, epoch.Add(7*24*time.Hour), epoch)
}

func (suite *QueryTestSuite) ctx() context.Context {
	return suite.T().Context()
}

func (suite *QueryTestSuite) fill(cleanerID kernel.UUID, roomIDs []kernel.UUID) {
	cmd, err := commands.NewFillSlotCommand(suite.fixture.Job.ID(), cleanerID, roomIDs)
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewFillSlotCommandHandler(suite.engine).Handle(suite.ctx(), cmd))
}

func (suite *QueryTestSuite) completeRoom(roomID, cleanerID kernel.UUID) {
	cmd, err := commands.NewCompleteRoomCommand(suite.fixture.Job.ID(), roomID, cleanerID, true)
	suite.Require().NoError(err)
	_, err = commands.NewCompleteRoomCommandHandler(suite.engine).Handle(suite.ctx(), cmd)
	suite.Require().NoError(err)
}

func (suite *QueryTestSuite) offer(cleanerID kernel.UUID, roomIDs []kernel.UUID) kernel.UUID {
	cmd, err := commands.NewCreateOfferCommand(suite.fixture.Job.ID(), cleanerID, offer.MarketOpen, 12500, roomIDs)
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewCreateOfferCommandHandler(suite.engine).Handle(suite.ctx(), cmd))
	return cmd.OfferID()
}
