package joinrequestrepo_test

import (
	"testing"
	"time"

	"multicleaner/internal/adapters/out/postgres/joinrequestrepo"
	"multicleaner/internal/adapters/out/postgres/testdb"
	"multicleaner/internal/core/domain/model/joinrequest"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type JoinRequestRepositoryTestSuite struct {
	suite.Suite
	repo    *joinrequestrepo.GormJoinRequestRepository
	fixture testdb.Fixture
	now     time.Time
}

func TestJoinRequestRepository(t *testing.T) {
	suite.Run(t, new(JoinRequestRepositoryTestSuite))
}

func (suite *JoinRequestRepositoryTestSuite) SetupTest() {
	suite.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	db := testdb.Open(suite.T())
	suite.repo = joinrequestrepo.NewGormJoinRequestRepository(db)
	suite.fixture = testdb.SeedJob(suite.T(), db, 4, 3, 2, suite.now.Add(7*24*time.Hour), suite.now)
}

func (suite *JoinRequestRepositoryTestSuite) newRequest(cleanerID kernel.UUID) *joinrequest.Request {
	r, err := joinrequest.NewRequest(kernel.NewUUID(), suite.fixture.Job.ID(), cleanerID,
		suite.fixture.Home.OwnerID(), testdb.RoomIDs(suite.fixture.Rooms[:2]), suite.now, suite.now.Add(48*time.Hour))
	suite.Require().NoError(err)
	return r
}

func (suite *JoinRequestRepositoryTestSuite) TestAdd_DuplicatePending_Conflict() {
	ctx := suite.T().Context()
	cleaner := kernel.NewUUID()
	suite.Require().NoError(suite.repo.Add(ctx, suite.newRequest(cleaner)))

	err := suite.repo.Add(ctx, suite.newRequest(cleaner))
	suite.Require().ErrorIs(err, errs.ErrConflict)
	msg, _ := errs.ConflictMessage(err)
	suite.Equal(joinrequestrepo.MsgDuplicateRequest, msg)
}

func (suite *JoinRequestRepositoryTestSuite) TestAdd_AfterDecline_AllowsNewRequest() {
	ctx := suite.T().Context()
	cleaner := kernel.NewUUID()
	first := suite.newRequest(cleaner)
	suite.Require().NoError(suite.repo.Add(ctx, first))
	suite.Require().NoError(first.Decline(suite.fixture.Home.OwnerID(), "", suite.now))
	suite.Require().NoError(suite.repo.Update(ctx, first))

	suite.NoError(suite.repo.Add(ctx, suite.newRequest(cleaner)))
}

func (suite *JoinRequestRepositoryTestSuite) TestUpdate_AlreadyAnswered_Conflict() {
	ctx := suite.T().Context()
	r := suite.newRequest(kernel.NewUUID())
	suite.Require().NoError(suite.repo.Add(ctx, r))

	stale, err := suite.repo.Get(ctx, r.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(r.Approve(suite.fixture.Home.OwnerID(), suite.now))
	suite.Require().NoError(suite.repo.Update(ctx, r))

	suite.Require().NoError(stale.Cancel(suite.now))
	err = suite.repo.Update(ctx, stale)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	msg, _ := errs.ConflictMessage(err)
	suite.Equal(joinrequest.MsgRequestNotPending, msg)
}

func (suite *JoinRequestRepositoryTestSuite) TestFindExpiredPending() {
	ctx := suite.T().Context()
	r := suite.newRequest(kernel.NewUUID())
	suite.Require().NoError(suite.repo.Add(ctx, r))

	found, err := suite.repo.FindExpiredPending(ctx, suite.now.Add(47*time.Hour))
	suite.Require().NoError(err)
	suite.Empty(found)

	found, err = suite.repo.FindExpiredPending(ctx, suite.now.Add(49*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(r.RoomAssignmentIDs(), found[0].RoomAssignmentIDs())
}

func (suite *JoinRequestRepositoryTestSuite) TestHasPendingAndListPendingByJob() {
	ctx := suite.T().Context()
	cleaner := kernel.NewUUID()
	suite.Require().NoError(suite.repo.Add(ctx, suite.newRequest(cleaner)))
	suite.Require().NoError(suite.repo.Add(ctx, suite.newRequest(kernel.NewUUID())))

	pending, err := suite.repo.HasPending(ctx, suite.fixture.Job.ID(), cleaner)
	suite.Require().NoError(err)
	suite.True(pending)

	list, err := suite.repo.ListPendingByJob(ctx, suite.fixture.Job.ID())
	suite.Require().NoError(err)
	suite.Len(list, 2)
}
