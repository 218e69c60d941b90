package queries_test

import (
	"time"

	"multicleaner/internal/core/application/usecases/commands"
	"multicleaner/internal/core/application/usecases/queries"
	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/pkg/errs"
)

func (suite *QueryTestSuite) assignments(cleanerID kernel.UUID) (queries.GetCleanerAssignmentsQueryResponse, error) {
	query, err := queries.NewGetCleanerAssignmentsQuery(suite.fixture.Job.ID(), cleanerID)
	suite.Require().NoError(err)
	return queries.NewGetCleanerAssignmentsQueryHandler(suite.db).Handle(suite.ctx(), query)
}

func (suite *QueryTestSuite) TestGetCleanerAssignments_Checklist() {
	rooms := suite.fixture.Rooms
	cleaner := kernel.NewUUID()
	suite.fill(cleaner, []kernel.UUID{rooms[0].ID(), rooms[3].ID()})
	suite.clock.Advance(90 * time.Minute)
	suite.completeRoom(rooms[3].ID(), cleaner)

	result, err := suite.assignments(cleaner)

	suite.Require().NoError(err)
	suite.Equal(completion.Assigned, result.Status)
	suite.True(result.AppointmentDate.Equal(suite.fixture.Appointment.Date()))
	suite.Equal(rooms[0].EstimatedMinutes()+rooms[3].EstimatedMinutes(), result.TotalMinutes)

	suite.Require().Len(result.Rooms, 2)
	bathroom, bedroom := result.Rooms[0], result.Rooms[1]
	suite.Equal(rooms[3].ID(), bathroom.RoomID)
	suite.Equal(room.Bathroom, bathroom.Type)
	suite.Equal(room.Completed, bathroom.Status)
	suite.Require().NotNil(bathroom.CompletedAt)
	suite.True(bathroom.CompletedAt.Equal(suite.clock.Now()))

	suite.Equal(rooms[0].ID(), bedroom.RoomID)
	suite.Equal(room.Pending, bedroom.Status)
	suite.Nil(bedroom.CompletedAt)
}

func (suite *QueryTestSuite) TestGetCleanerAssignments_DroppedOutCleanerHasNoRooms() {
	rooms := suite.fixture.Rooms
	cleaner := kernel.NewUUID()
	suite.fill(cleaner, []kernel.UUID{rooms[0].ID()})

	cmd, err := commands.NewReleaseSlotCommand(suite.fixture.Job.ID(), cleaner, "sick")
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewReleaseSlotCommandHandler(suite.engine).Handle(suite.ctx(), cmd))

	result, err := suite.assignments(cleaner)

	suite.Require().NoError(err)
	suite.Equal(completion.DroppedOut, result.Status)
	suite.Empty(result.Rooms)
	suite.Zero(result.TotalMinutes)
}

func (suite *QueryTestSuite) TestGetCleanerAssignments_StrangerIsNotFound() {
	_, err := suite.assignments(kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
