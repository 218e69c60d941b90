package offerrepo_test

import (
	"testing"
	"time"

	"multicleaner/internal/adapters/out/postgres/jobrepo"
	"multicleaner/internal/adapters/out/postgres/offerrepo"
	"multicleaner/internal/adapters/out/postgres/testdb"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OfferRepositoryTestSuite struct {
	suite.Suite
	db      *gorm.DB
	repo    *offerrepo.GormOfferRepository
	fixture testdb.Fixture
	now     time.Time
}

func TestOfferRepository(t *testing.T) {
	suite.Run(t, new(OfferRepositoryTestSuite))
}

func (suite *OfferRepositoryTestSuite) SetupTest() {
	suite.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.db = testdb.Open(suite.T())
	suite.repo = offerrepo.NewGormOfferRepository(suite.db)
	suite.fixture = testdb.SeedJob(suite.T(), suite.db, 4, 3, 2, suite.now.Add(7*24*time.Hour), suite.now)
}

func (suite *OfferRepositoryTestSuite) newOffer(cleanerID kernel.UUID) *offer.Offer {
	o, err := offer.NewOffer(kernel.NewUUID(), suite.fixture.Job.ID(), cleanerID, offer.MarketOpen, 9000,
		testdb.RoomIDs(suite.fixture.Rooms[:2]), suite.now, suite.now.Add(48*time.Hour))
	suite.Require().NoError(err)
	return o
}

func (suite *OfferRepositoryTestSuite) TestAdd_SecondLiveOffer_Conflict() {
	ctx := suite.T().Context()
	cleaner := kernel.NewUUID()

	suite.Require().NoError(suite.repo.Add(ctx, suite.newOffer(cleaner)))

	err := suite.repo.Add(ctx, suite.newOffer(cleaner))
	suite.Require().ErrorIs(err, errs.ErrConflict)
	msg, _ := errs.ConflictMessage(err)
	suite.Equal("Cleaner already has an active offer for this job", msg)
}

func (suite *OfferRepositoryTestSuite) TestAdd_AfterDecline_AllowsNewOffer() {
	ctx := suite.T().Context()
	cleaner := kernel.NewUUID()
	first := suite.newOffer(cleaner)
	suite.Require().NoError(suite.repo.Add(ctx, first))
	suite.Require().NoError(first.Decline(cleaner, "busy", suite.now))
	suite.Require().NoError(suite.repo.Update(ctx, first))

	suite.NoError(suite.repo.Add(ctx, suite.newOffer(cleaner)))
}

func (suite *OfferRepositoryTestSuite) TestGet_RoundTripsRoomsOffered() {
	ctx := suite.T().Context()
	o := suite.newOffer(kernel.NewUUID())
	suite.Require().NoError(suite.repo.Add(ctx, o))

	stored, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.RoomsOffered(), stored.RoomsOffered())
	suite.Equal(offer.Pending, stored.PersistedStatus())
}

func (suite *OfferRepositoryTestSuite) TestUpdate_ConcurrentResponders_SecondLoses() {
	ctx := suite.T().Context()
	cleaner := kernel.NewUUID()
	o := suite.newOffer(cleaner)
	suite.Require().NoError(suite.repo.Add(ctx, o))

	first, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Accept(cleaner, suite.now))
	suite.Require().NoError(suite.repo.Update(ctx, first))

	suite.Require().NoError(second.Expire(suite.now.Add(49 * time.Hour)))
	err = suite.repo.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	msg, _ := errs.ConflictMessage(err)
	suite.Equal(offer.MsgOfferUnavailable, msg)
}

func (suite *OfferRepositoryTestSuite) TestFindExpiredPending_SecondSweepFindsNothing() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repo.Add(ctx, suite.newOffer(kernel.NewUUID())))
	later := suite.now.Add(49 * time.Hour)

	expired, err := suite.repo.FindExpiredPending(ctx, later)
	suite.Require().NoError(err)
	suite.Require().Len(expired, 1)
	suite.Require().NoError(expired[0].Expire(later))
	suite.Require().NoError(suite.repo.Update(ctx, expired[0]))

	expired, err = suite.repo.FindExpiredPending(ctx, later)
	suite.Require().NoError(err)
	suite.Empty(expired)
}

func (suite *OfferRepositoryTestSuite) TestFindPendingForFilledJobs() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repo.Add(ctx, suite.newOffer(kernel.NewUUID())))

	pending, err := suite.repo.FindPendingForFilledJobs(ctx)
	suite.Require().NoError(err)
	suite.Empty(pending)

	j := suite.fixture.Job
	suite.Require().NoError(j.ApplyConfirmedCount(2))
	suite.Require().NoError(jobrepo.NewGormJobRepository(suite.db).Update(ctx, j))

	pending, err = suite.repo.FindPendingForFilledJobs(ctx)
	suite.Require().NoError(err)
	suite.Len(pending, 1)
}

func (suite *OfferRepositoryTestSuite) TestHasLive() {
	ctx := suite.T().Context()
	cleaner := kernel.NewUUID()
	jobID := suite.fixture.Job.ID()

	live, err := suite.repo.HasLive(ctx, jobID, cleaner)
	suite.Require().NoError(err)
	suite.False(live)

	suite.Require().NoError(suite.repo.Add(ctx, suite.newOffer(cleaner)))

	live, err = suite.repo.HasLive(ctx, jobID, cleaner)
	suite.Require().NoError(err)
	suite.True(live)
}
