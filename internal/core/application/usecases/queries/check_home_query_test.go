package queries_test

import (
	"multicleaner/internal/adapters/out/postgres/homerepo"
	"multicleaner/internal/core/application/usecases/queries"
	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/policy"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/pkg/errs"
)

func (suite *QueryTestSuite) storeHome(beds int, baths float64) kernel.UUID {
	h, err := home.NewHome(kernel.NewUUID(), kernel.NewUUID(), beds, baths, 0)
	suite.Require().NoError(err)
	suite.Require().NoError(homerepo.NewGormHomeRepository(suite.db).Add(suite.ctx(), h))
	return h.ID()
}

func (suite *QueryTestSuite) checkHome(id kernel.UUID) (queries.CheckHomeQueryResponse, error) {
	query, err := queries.NewCheckHomeQuery(id)
	suite.Require().NoError(err)
	return queries.NewCheckHomeQueryHandler(suite.db, policy.Default()).Handle(suite.ctx(), query)
}

func (suite *QueryTestSuite) TestCheckHome_SmallHomeIsSolo() {
	id := suite.storeHome(2, 1)

	result, err := suite.checkHome(id)

	suite.Require().NoError(err)
	suite.False(result.IsLargeHome)
	suite.True(result.IsSoloAllowed)
	suite.Equal(1, result.RecommendedCleaners)
	suite.Len(result.Rooms, 5)
	suite.Equal(room.TotalMinutes(result.Rooms), result.TotalMinutes)
}

func (suite *QueryTestSuite) TestCheckHome_EdgeHomeAllowsSolo() {
	id := suite.storeHome(3, 2)

	result, err := suite.checkHome(id)

	suite.Require().NoError(err)
	suite.True(result.IsLargeHome)
	suite.True(result.IsEdgeLargeHome)
	suite.True(result.IsSoloAllowed)
	suite.False(result.IsMultiCleanerRequired)
}

func (suite *QueryTestSuite) TestCheckHome_LargeHomeNeedsATeam() {
	id := suite.storeHome(5, 4)

	result, err := suite.checkHome(id)

	suite.Require().NoError(err)
	suite.True(result.IsMultiCleanerRequired)
	suite.GreaterOrEqual(result.RecommendedCleaners, 2)
	suite.Equal(5, result.Beds)
	suite.InDelta(4.0, result.Baths, 0.001)
}

func (suite *QueryTestSuite) TestCheckHome_UnknownHome() {
	_, err := suite.checkHome(kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryTestSuite) TestCheckHome_NotConstructed() {
	_, err := queries.NewCheckHomeQueryHandler(suite.db, policy.Default()).Handle(suite.ctx(), queries.CheckHomeQuery{})

	suite.Require().ErrorIs(err, queries.ErrCheckHomeQueryIsNotConstructed)
}
