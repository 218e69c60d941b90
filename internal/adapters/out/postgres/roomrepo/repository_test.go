package roomrepo_test

import (
	"testing"
	"time"

	"multicleaner/internal/adapters/out/postgres/roomrepo"
	"multicleaner/internal/adapters/out/postgres/testdb"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RoomRepositoryTestSuite struct {
	suite.Suite
	db      *gorm.DB
	repo    *roomrepo.GormRoomRepository
	fixture testdb.Fixture
}

func TestRoomRepository(t *testing.T) {
	suite.Run(t, new(RoomRepositoryTestSuite))
}

func (suite *RoomRepositoryTestSuite) SetupTest() {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.db = testdb.Open(suite.T())
	suite.repo = roomrepo.NewGormRoomRepository(suite.db)
	suite.fixture = testdb.SeedJob(suite.T(), suite.db, 3, 2, 2, now.Add(7*24*time.Hour), now)
}

func (suite *RoomRepositoryTestSuite) TestListByJob_ReturnsEveryRoomUnassigned() {
	rooms, err := suite.repo.ListByJob(suite.T().Context(), suite.fixture.Job.ID())
	suite.Require().NoError(err)

	suite.Len(rooms, len(suite.fixture.Rooms))
	for _, r := range rooms {
		suite.True(r.IsUnassigned())
		suite.Equal(room.Pending, r.Status())
	}
}

func (suite *RoomRepositoryTestSuite) TestClaim_SecondClaimOnSameRoomsTouchesNothing() {
	ctx := suite.T().Context()
	ids := testdb.RoomIDs(suite.fixture.Rooms[:3])
	first, second := kernel.NewUUID(), kernel.NewUUID()

	claimed, err := suite.repo.Claim(ctx, suite.fixture.Job.ID(), ids, first)
	suite.Require().NoError(err)
	suite.Equal(3, claimed)

	claimed, err = suite.repo.Claim(ctx, suite.fixture.Job.ID(), ids, second)
	suite.Require().NoError(err)
	suite.Zero(claimed)

	for _, id := range ids {
		r, err := suite.repo.Get(ctx, id)
		suite.Require().NoError(err)
		suite.True(r.IsAssignedTo(first))
	}
}

func (suite *RoomRepositoryTestSuite) TestClaim_PartialOverlapClaimsOnlyFreeRooms() {
	ctx := suite.T().Context()
	jobID := suite.fixture.Job.ID()

	_, err := suite.repo.Claim(ctx, jobID, testdb.RoomIDs(suite.fixture.Rooms[:2]), kernel.NewUUID())
	suite.Require().NoError(err)

	claimed, err := suite.repo.Claim(ctx, jobID, testdb.RoomIDs(suite.fixture.Rooms[1:4]), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Equal(2, claimed)
}

func (suite *RoomRepositoryTestSuite) TestClaim_IgnoresRoomsOfOtherJobs() {
	ctx := suite.T().Context()

	claimed, err := suite.repo.Claim(ctx, kernel.NewUUID(), testdb.RoomIDs(suite.fixture.Rooms), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Zero(claimed)
}

func (suite *RoomRepositoryTestSuite) TestReleaseCleaner_KeepsCompletedRooms() {
	ctx := suite.T().Context()
	jobID := suite.fixture.Job.ID()
	cleaner := kernel.NewUUID()
	ids := testdb.RoomIDs(suite.fixture.Rooms[:3])

	_, err := suite.repo.Claim(ctx, jobID, ids, cleaner)
	suite.Require().NoError(err)

	done, err := suite.repo.Get(ctx, ids[0])
	suite.Require().NoError(err)
	suite.Require().NoError(done.Complete(cleaner, time.Now().UTC()))
	suite.Require().NoError(suite.repo.Update(ctx, done))

	released, err := suite.repo.ReleaseCleaner(ctx, jobID, cleaner)
	suite.Require().NoError(err)
	suite.Equal(2, released)

	kept, err := suite.repo.Get(ctx, ids[0])
	suite.Require().NoError(err)
	suite.True(kept.IsCompleted())
	suite.True(kept.IsAssignedTo(cleaner))

	freed, err := suite.repo.Get(ctx, ids[1])
	suite.Require().NoError(err)
	suite.True(freed.IsUnassigned())
	suite.Equal(room.Pending, freed.Status())
}

func (suite *RoomRepositoryTestSuite) TestUpdate_WritesEarningsShare() {
	ctx := suite.T().Context()
	r := suite.fixture.Rooms[0]
	suite.Require().NoError(r.SetEarningsShare(1234))

	suite.Require().NoError(suite.repo.Update(ctx, r))

	stored, err := suite.repo.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(1234), stored.EarningsShare())
}

func (suite *RoomRepositoryTestSuite) TestGet_UnknownRoom_NotFound() {
	_, err := suite.repo.Get(suite.T().Context(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}
