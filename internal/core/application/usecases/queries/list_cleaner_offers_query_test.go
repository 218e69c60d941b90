package queries_test

import (
	"time"

	"multicleaner/internal/core/application/usecases/commands"
	"multicleaner/internal/core/application/usecases/queries"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/offer"
)

func (suite *QueryTestSuite) listOffers(cleanerID kernel.UUID) []queries.ListCleanerOffersQueryResponse {
	query, err := queries.NewListCleanerOffersQuery(cleanerID)
	suite.Require().NoError(err)
	result, err := queries.NewListCleanerOffersQueryHandler(suite.db, suite.clock).Handle(suite.ctx(), query)
	suite.Require().NoError(err)
	return result
}

func (suite *QueryTestSuite) TestListCleanerOffers_PendingOffer() {
	cleaner := kernel.NewUUID()
	rooms := []kernel.UUID{suite.fixture.Rooms[0].ID(), suite.fixture.Rooms[1].ID()}
	offerID := suite.offer(cleaner, rooms)

	result := suite.listOffers(cleaner)

	suite.Require().Len(result, 1)
	suite.Equal(offerID, result[0].OfferID)
	suite.Equal(suite.fixture.Job.ID(), result[0].JobID)
	suite.Equal(offer.MarketOpen, result[0].Type)
	suite.Equal(int64(12500), result[0].EarningsOffered)
	suite.Equal(rooms, result[0].RoomIDs)
	suite.True(result[0].ExpiresAt.Equal(epoch.Add(48 * time.Hour)))
	suite.Equal(2, result[0].CleanersNeeded)
}

func (suite *QueryTestSuite) TestListCleanerOffers_HidesExpiredOffers() {
	cleaner := kernel.NewUUID()
	suite.offer(cleaner, nil)

	suite.clock.Advance(49 * time.Hour)

	suite.Empty(suite.listOffers(cleaner))
}

func (suite *QueryTestSuite) TestListCleanerOffers_HidesDeclinedOffers() {
	cleaner := kernel.NewUUID()
	offerID := suite.offer(cleaner, nil)

	cmd, err := commands.NewDeclineOfferCommand(offerID, cleaner, "busy")
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewDeclineOfferCommandHandler(suite.engine).Handle(suite.ctx(), cmd))

	suite.Empty(suite.listOffers(cleaner))
}

func (suite *QueryTestSuite) TestListCleanerOffers_OtherCleanersSeeNothing() {
	suite.offer(kernel.NewUUID(), nil)

	result := suite.listOffers(kernel.NewUUID())

	suite.NotNil(result)
	suite.Empty(result)
}
