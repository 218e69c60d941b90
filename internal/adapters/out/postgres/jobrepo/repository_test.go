package jobrepo_test

import (
	"testing"
	"time"

	"multicleaner/internal/adapters/out/postgres/jobrepo"
	"multicleaner/internal/adapters/out/postgres/testdb"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type JobRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo *jobrepo.GormJobRepository
	now  time.Time
}

func TestJobRepository(t *testing.T) {
	suite.Run(t, new(JobRepositoryTestSuite))
}

func (suite *JobRepositoryTestSuite) SetupTest() {
	suite.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.db = testdb.Open(suite.T())
	suite.repo = jobrepo.NewGormJobRepository(suite.db)
}

func (suite *JobRepositoryTestSuite) seed(cleaners int, date time.Time) *job.Job {
	return testdb.SeedJob(suite.T(), suite.db, 3, 2, cleaners, date, suite.now).Job
}

func (suite *JobRepositoryTestSuite) TestAdd_SecondJobForAppointment_Conflict() {
	existing := suite.seed(2, suite.now.Add(96*time.Hour))

	dup, err := job.NewJob(kernel.NewUUID(), existing.AppointmentID(), 2, nil, false, 100, suite.now)
	suite.Require().NoError(err)

	err = suite.repo.Add(suite.T().Context(), dup)
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *JobRepositoryTestSuite) TestGet_RoundTripsState() {
	ctx := suite.T().Context()
	j := suite.seed(2, suite.now.Add(96*time.Hour))

	stored, err := suite.repo.Get(ctx, j.ID())
	suite.Require().NoError(err)
	suite.Equal(j.AppointmentID(), stored.AppointmentID())
	suite.Equal(job.Open, stored.Status())
	suite.Equal(2, stored.TotalCleanersRequired())
	suite.Equal(j.TotalEstimatedMinutes(), stored.TotalEstimatedMinutes())
	suite.Equal(1, stored.Version())
	suite.True(j.Snapshot().CreatedAt.Equal(stored.Snapshot().CreatedAt))

	byAppointment, err := suite.repo.GetByAppointment(ctx, j.AppointmentID())
	suite.Require().NoError(err)
	suite.Equal(j.ID(), byAppointment.ID())
}

func (suite *JobRepositoryTestSuite) TestUpdate_StaleCopy_Conflict() {
	ctx := suite.T().Context()
	j := suite.seed(2, suite.now.Add(96*time.Hour))

	first, err := suite.repo.Get(ctx, j.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(ctx, j.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ApplyConfirmedCount(1))
	suite.Require().NoError(suite.repo.Update(ctx, first))
	suite.Equal(2, first.Version())

	suite.Require().NoError(second.ApplyConfirmedCount(1))
	err = suite.repo.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	msg, _ := errs.ConflictMessage(err)
	suite.Equal(job.MsgConcurrentModification, msg)
}

func (suite *JobRepositoryTestSuite) TestFindEdgeCaseCandidates_OnlyOneOfTwoUndecided() {
	ctx := suite.T().Context()
	date := suite.now.Add(96 * time.Hour)

	candidate := suite.seed(2, date)
	suite.Require().NoError(candidate.ApplyConfirmedCount(1))
	suite.Require().NoError(suite.repo.Update(ctx, candidate))

	decided := suite.seed(2, date)
	suite.Require().NoError(decided.ApplyConfirmedCount(1))
	suite.Require().NoError(decided.RequestEdgeCaseDecision(suite.now, 24*time.Hour))
	suite.Require().NoError(suite.repo.Update(ctx, decided))

	threeWay := suite.seed(3, date)
	suite.Require().NoError(threeWay.ApplyConfirmedCount(1))
	suite.Require().NoError(suite.repo.Update(ctx, threeWay))

	found, err := suite.repo.FindEdgeCaseCandidates(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(candidate.ID(), found[0].ID())
}

func (suite *JobRepositoryTestSuite) TestFindExpiredEdgeCaseDecisions_OnlyPastDeadline() {
	ctx := suite.T().Context()
	j := suite.seed(2, suite.now.Add(96*time.Hour))
	suite.Require().NoError(j.ApplyConfirmedCount(1))
	suite.Require().NoError(j.RequestEdgeCaseDecision(suite.now, 24*time.Hour))
	suite.Require().NoError(suite.repo.Update(ctx, j))

	found, err := suite.repo.FindExpiredEdgeCaseDecisions(ctx, suite.now.Add(23*time.Hour))
	suite.Require().NoError(err)
	suite.Empty(found)

	found, err = suite.repo.FindExpiredEdgeCaseDecisions(ctx, suite.now.Add(25*time.Hour))
	suite.Require().NoError(err)
	suite.Len(found, 1)
}

func (suite *JobRepositoryTestSuite) TestFindUrgentFillCandidates_WindowAndStamp() {
	ctx := suite.T().Context()
	soon := suite.seed(2, suite.now.Add(48*time.Hour))
	suite.seed(2, suite.now.Add(10*24*time.Hour))
	stamped := suite.seed(2, suite.now.Add(24*time.Hour))
	suite.Require().NoError(stamped.MarkUrgentFillSent(suite.now))
	suite.Require().NoError(suite.repo.Update(ctx, stamped))

	found, err := suite.repo.FindUrgentFillCandidates(ctx, suite.now, suite.now.Add(72*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(soon.ID(), found[0].ID())
}

func (suite *JobRepositoryTestSuite) TestFindExpiredSoloOffers_SkipsAnswered() {
	ctx := suite.T().Context()
	open := suite.seed(2, suite.now.Add(96*time.Hour))
	suite.Require().NoError(open.ApplyConfirmedCount(1))
	suite.Require().NoError(open.OfferSolo(suite.now, 12*time.Hour))
	suite.Require().NoError(suite.repo.Update(ctx, open))

	declined := suite.seed(2, suite.now.Add(96*time.Hour))
	suite.Require().NoError(declined.ApplyConfirmedCount(1))
	suite.Require().NoError(declined.OfferSolo(suite.now, 12*time.Hour))
	suite.Require().NoError(declined.DeclineSolo())
	suite.Require().NoError(suite.repo.Update(ctx, declined))

	found, err := suite.repo.FindExpiredSoloOffers(ctx, suite.now.Add(13*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(open.ID(), found[0].ID())
}

func (suite *JobRepositoryTestSuite) TestGet_UnknownJob_NotFound() {
	_, err := suite.repo.Get(suite.T().Context(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}
