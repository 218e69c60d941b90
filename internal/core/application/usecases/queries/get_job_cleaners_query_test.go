package queries_test

import (
	"time"

	"multicleaner/internal/adapters/out/postgres/roomrepo"
	"multicleaner/internal/adapters/out/postgres/userrepo"
	"multicleaner/internal/core/application/usecases/queries"
	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/ports"
	"multicleaner/internal/pkg/errs"
)

func (suite *QueryTestSuite) jobCleaners(jobID kernel.UUID) ([]queries.GetJobCleanersQueryResponse, error) {
	query, err := queries.NewGetJobCleanersQuery(jobID)
	suite.Require().NoError(err)
	return queries.NewGetJobCleanersQueryHandler(suite.db, suite.card).Handle(suite.ctx(), query)
}

func (suite *QueryTestSuite) priceRooms(totalCents int64) {
	suite.Require().NoError(suite.card.UpdateRoomEarningsShares(suite.ctx(), suite.fixture.Rooms, totalCents))
	repo := roomrepo.NewGormRoomRepository(suite.db)
	for _, r := range suite.fixture.Rooms {
		suite.Require().NoError(repo.Update(suite.ctx(), r))
	}
}

func (suite *QueryTestSuite) TestGetJobCleaners_EarningsPerCleaner() {
	suite.priceRooms(27000)
	rooms := suite.fixture.Rooms
	first, second := kernel.NewUUID(), kernel.NewUUID()
	suite.Require().NoError(userrepo.NewGormUserDirectory(suite.db).Upsert(suite.ctx(),
		ports.Contact{ID: first, Name: "Dana"}))

	suite.fill(first, []kernel.UUID{rooms[0].ID(), rooms[1].ID(), rooms[2].ID()})
	suite.clock.Advance(time.Minute)
	suite.fill(second, []kernel.UUID{rooms[3].ID(), rooms[4].ID(), rooms[5].ID(), rooms[6].ID(), rooms[7].ID()})
	suite.completeRoom(rooms[0].ID(), first)

	result, err := suite.jobCleaners(suite.fixture.Job.ID())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(first, result[0].CleanerID)
	suite.Equal("Dana", result[0].Name)
	suite.Equal(completion.Assigned, result[0].Status)
	suite.Equal(3, result[0].RoomCount)
	suite.Equal(1, result[0].CompletedRooms)
	suite.Equal(rooms[0].EstimatedMinutes()+rooms[1].EstimatedMinutes()+rooms[2].EstimatedMinutes(), result[0].Minutes)

	suite.Equal(second, result[1].CleanerID)
	suite.Empty(result[1].Name)
	suite.Equal(5, result[1].RoomCount)

	suite.Equal(int64(27000), result[0].EarningsCents+result[1].EarningsCents)
}

func (suite *QueryTestSuite) TestGetJobCleaners_EmptyJob() {
	result, err := suite.jobCleaners(suite.fixture.Job.ID())

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *QueryTestSuite) TestGetJobCleaners_UnknownJob() {
	_, err := suite.jobCleaners(kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
