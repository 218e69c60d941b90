package http_test

import (
	"net/http"
	"time"

	api "multicleaner/internal/adapters/in/http"
	"multicleaner/internal/core/application/usecases/commands"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
)

func (suite *APITestSuite) TestCreateHomeThenCheck() {
	owner := kernel.NewUUID()

	rec := suite.do(http.MethodPost, "/api/v1/homes", owner, api.NewHome{Beds: 3, Baths: 2})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created api.Created
	suite.decode(rec, &created)

	rec = suite.do(http.MethodGet, "/api/v1/homes/"+created.ID.String()+"/check", owner, nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var check api.HomeCheck
	suite.decode(rec, &check)

	suite.Equal(created.ID, check.HomeID)
	suite.True(check.IsEdgeLargeHome)
	suite.NotEmpty(check.Rooms)
}

func (suite *APITestSuite) TestMissingActorIsUnauthorized() {
	rec := suite.do(http.MethodPost, "/api/v1/homes", kernel.UUID{}, api.NewHome{Beds: 3, Baths: 2})

	body := suite.assertError(rec, http.StatusUnauthorized)
	suite.Contains(body.Message, api.ActorHeader)
}

func (suite *APITestSuite) TestUnknownJobIsNotFound() {
	rec := suite.do(http.MethodGet, "/api/v1/jobs/"+kernel.NewUUID().String()+"/status", kernel.NewUUID(), nil)

	suite.assertError(rec, http.StatusNotFound)
}

func (suite *APITestSuite) TestMalformedPathIDIsBadRequest() {
	rec := suite.do(http.MethodGet, "/api/v1/jobs/not-an-id/status", kernel.NewUUID(), nil)

	suite.assertError(rec, http.StatusBadRequest)
}

func (suite *APITestSuite) TestInvalidBodyIsBadRequest() {
	rec := suite.do(http.MethodPost, suite.jobPath("/offers"), kernel.NewUUID(), api.NewOffer{
		CleanerID: kernel.NewUUID().String(),
		Type:      "raffle",
	})

	suite.assertError(rec, http.StatusBadRequest)
}

func (suite *APITestSuite) TestFillSlotsUntilFilled() {
	first, second := kernel.NewUUID(), kernel.NewUUID()

	suite.Equal(http.StatusNoContent, suite.do(http.MethodPost, suite.jobPath("/slots"), first, api.RoomSelection{}).Code)
	suite.Equal(http.StatusNoContent, suite.do(http.MethodPost, suite.jobPath("/slots"), second, api.RoomSelection{}).Code)

	rec := suite.do(http.MethodGet, suite.jobPath("/status"), first, nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var status api.JobStatus
	suite.decode(rec, &status)
	suite.Equal(job.Filled.String(), status.Status)
	suite.Equal(2, status.CleanersConfirmed)
	suite.Len(status.Cleaners, 2)
	suite.Equal(len(suite.fixture.Rooms), status.TotalRooms)

	rec = suite.do(http.MethodPost, suite.jobPath("/slots"), kernel.NewUUID(), api.RoomSelection{})
	body := suite.assertError(rec, http.StatusConflict)
	suite.Equal(job.MsgJobFilled, body.Message)
}

func (suite *APITestSuite) TestHomeownerResponseAfterTimeoutReturnsDecision() {
	cleaner := kernel.NewUUID()
	suite.Require().Equal(http.StatusNoContent,
		suite.do(http.MethodPost, suite.jobPath("/slots"), cleaner, api.RoomSelection{}).Code)
	ctx := suite.T().Context()
	_, err := commands.NewProcessEdgeCaseDecisionsCommandHandler(suite.engine).
		Handle(ctx, commands.NewProcessEdgeCaseDecisionsCommand())
	suite.Require().NoError(err)
	suite.clock.Advance(25 * time.Hour)
	_, err = commands.NewProcessExpiredEdgeCaseDecisionsCommandHandler(suite.engine).
		Handle(ctx, commands.NewProcessExpiredEdgeCaseDecisionsCommand())
	suite.Require().NoError(err)

	rec := suite.do(http.MethodPost, suite.jobPath("/homeowner-response"), suite.fixture.Appointment.HomeownerID(),
		api.HomeownerResponse{Response: string(commands.ProceedEdgeCase)})

	body := suite.assertError(rec, http.StatusConflict)
	suite.Equal(job.MsgDecisionAlreadyMade, body.Message)
	suite.Equal(string(job.DecisionAutoProceeded), body.Decision)
}

func (suite *APITestSuite) TestHomeownerResponseWithoutDecisionOmitsIt() {
	rec := suite.do(http.MethodPost, suite.jobPath("/homeowner-response"), suite.fixture.Appointment.HomeownerID(),
		api.HomeownerResponse{Response: string(commands.ProceedEdgeCase)})

	body := suite.assertError(rec, http.StatusConflict)
	suite.Equal(job.MsgDecisionNotRequired, body.Message)
	suite.Empty(body.Decision)
	suite.NotContains(rec.Body.String(), `"decision"`)
}

func (suite *APITestSuite) TestAssignmentsListTheCallersRooms() {
	cleaner := kernel.NewUUID()
	suite.Require().Equal(http.StatusNoContent,
		suite.do(http.MethodPost, suite.jobPath("/slots"), cleaner, api.RoomSelection{}).Code)

	rec := suite.do(http.MethodGet, suite.jobPath("/assignments"), cleaner, nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var checklist api.Checklist
	suite.decode(rec, &checklist)

	suite.Equal(cleaner, checklist.CleanerID)
	suite.NotEmpty(checklist.Rooms)
	suite.Positive(checklist.TotalMinutes)
}

func (suite *APITestSuite) TestCancelByStrangerIsForbidden() {
	rec := suite.do(http.MethodPost, suite.jobPath("/cancel"), kernel.NewUUID(), api.Reason{Reason: "changed my mind"})

	body := suite.assertError(rec, http.StatusForbidden)
	suite.Contains(body.Message, commands.MsgNotHomeowner)
}

func (suite *APITestSuite) TestCancelByHomeowner() {
	owner := suite.fixture.Appointment.HomeownerID()

	rec := suite.do(http.MethodPost, suite.jobPath("/cancel"), owner, api.Reason{Reason: "travel"})
	suite.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodGet, suite.jobPath("/status"), owner, nil)
	var status api.JobStatus
	suite.decode(rec, &status)
	suite.Equal(job.Cancelled.String(), status.Status)
}

func (suite *APITestSuite) TestOffersRoundTrip() {
	cleaner := kernel.NewUUID()
	rec := suite.do(http.MethodPost, suite.jobPath("/offers"), suite.fixture.Appointment.HomeownerID(), api.NewOffer{
		CleanerID:       cleaner.String(),
		Type:            "market_open",
		EarningsOffered: 12500,
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created api.Created
	suite.decode(rec, &created)

	rec = suite.do(http.MethodGet, "/api/v1/offers", cleaner, nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var offers []api.Offer
	suite.decode(rec, &offers)
	suite.Require().Len(offers, 1)
	suite.Equal(created.ID, offers[0].ID)

	rec = suite.do(http.MethodPost, "/api/v1/offers/"+created.ID.String()+"/accept", cleaner, nil)
	suite.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodGet, "/api/v1/offers", cleaner, nil)
	suite.decode(rec, &offers)
	suite.Empty(offers)
}

func (suite *APITestSuite) TestNotificationsInbox() {
	user := kernel.NewUUID()
	id, err := suite.inbox.Add(suite.T().Context(), notice.Message{
		Recipient: user,
		Kind:      notice.OfferReceived,
		Title:     "New offer",
		Body:      "A job is waiting for you",
	}, epoch)
	suite.Require().NoError(err)

	rec := suite.do(http.MethodGet, "/api/v1/notifications?unread=true", user, nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var inbox []api.Notification
	suite.decode(rec, &inbox)
	suite.Require().Len(inbox, 1)
	suite.Equal(id, inbox[0].ID)
	suite.Equal(notice.OfferReceived.String(), inbox[0].Kind)

	rec = suite.do(http.MethodPost, "/api/v1/notifications/"+id.String()+"/read", kernel.NewUUID(), nil)
	suite.assertError(rec, http.StatusNotFound)

	rec = suite.do(http.MethodPost, "/api/v1/notifications/"+id.String()+"/read", user, nil)
	suite.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodGet, "/api/v1/notifications?unread=true", user, nil)
	suite.decode(rec, &inbox)
	suite.Empty(inbox)
}

func (suite *APITestSuite) TestNotificationsRejectsNegativeLimit() {
	rec := suite.do(http.MethodGet, "/api/v1/notifications?limit=-1", kernel.NewUUID(), nil)

	suite.assertError(rec, http.StatusBadRequest)
}
