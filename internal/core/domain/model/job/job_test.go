package job_test

import (
	"testing"
	"time"

	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func newJob(t *testing.T, required int) *job.Job {
	t.Helper()
	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), required, nil, false, 180, now)
	require.NoError(t, err)
	return j
}

func requireConflict(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	got, ok := errs.ConflictMessage(err)
	require.True(t, ok, "expected conflict, got %v", err)
	assert.Equal(t, message, got)
}

func TestNewJob(t *testing.T) {
	t.Run("should start open with version 1", func(t *testing.T) {
		primary := kernel.NewUUID()
		j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), 2, &primary, true, 200, now)

		require.NoError(t, err)
		assert.Equal(t, job.Open, j.Status())
		assert.Equal(t, 0, j.CleanersConfirmed())
		assert.Equal(t, 2, j.OpenSlots())
		assert.Equal(t, 1, j.Version())
		assert.True(t, j.IsAutoGenerated())
		assert.True(t, primary.IsEqual(*j.PrimaryCleanerID()))
		assert.Equal(t, job.DecisionNone, j.HomeownerDecision())
	})

	t.Run("should reject zero required cleaners", func(t *testing.T) {
		_, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), 0, nil, false, 0, now)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("restore rejects confirmed above required", func(t *testing.T) {
		s := newJob(t, 2).Snapshot()
		s.CleanersConfirmed = 3

		_, err := job.Restore(s)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("snapshot round trips", func(t *testing.T) {
		j := newJob(t, 3)
		require.NoError(t, j.ApplyConfirmedCount(2))

		restored, err := job.Restore(j.Snapshot())
		require.NoError(t, err)
		assert.Equal(t, j.Snapshot(), restored.Snapshot())
	})
}

func TestDeriveStatus(t *testing.T) {
	for required := 1; required <= 5; required++ {
		for confirmed := 0; confirmed <= required; confirmed++ {
			got := job.DeriveStatus(confirmed, required)
			switch {
			case confirmed == 0:
				assert.Equal(t, job.Open, got)
			case confirmed < required:
				assert.Equal(t, job.PartiallyFilled, got)
			default:
				assert.Equal(t, job.Filled, got)
			}
		}
	}
}

func TestJob_ApplyConfirmedCount(t *testing.T) {
	t.Run("should derive status from the count", func(t *testing.T) {
		j := newJob(t, 2)

		require.NoError(t, j.ApplyConfirmedCount(1))
		assert.Equal(t, job.PartiallyFilled, j.Status())

		require.NoError(t, j.ApplyConfirmedCount(2))
		assert.Equal(t, job.Filled, j.Status())
		assert.True(t, j.IsFilled())

		require.NoError(t, j.ApplyConfirmedCount(-4))
		assert.Equal(t, 0, j.CleanersConfirmed())
		assert.Equal(t, job.Open, j.Status())
	})

	t.Run("should refuse to exceed required", func(t *testing.T) {
		j := newJob(t, 2)
		requireConflict(t, j.ApplyConfirmedCount(3), job.MsgJobFilled)
		assert.Equal(t, 0, j.CleanersConfirmed())
	})

	t.Run("terminal status is sticky", func(t *testing.T) {
		j := newJob(t, 2)
		require.NoError(t, j.ApplyConfirmedCount(1))
		require.NoError(t, j.Cancel())

		require.NoError(t, j.ApplyConfirmedCount(0))
		assert.Equal(t, job.Cancelled, j.Status())
	})
}

func TestJob_EnsureFillable(t *testing.T) {
	j := newJob(t, 2)
	require.NoError(t, j.EnsureFillable())

	require.NoError(t, j.ApplyConfirmedCount(2))
	requireConflict(t, j.EnsureFillable(), job.MsgJobFilled)

	require.NoError(t, j.Complete())
	requireConflict(t, j.EnsureFillable(), job.MsgJobInactive)
	requireConflict(t, j.Cancel(), job.MsgJobInactive)
}

func TestJob_ShrinkToConfirmed(t *testing.T) {
	j := newJob(t, 3)
	requireConflict(t, j.ShrinkToConfirmed(), "No cleaners remain on this job")

	require.NoError(t, j.ApplyConfirmedCount(2))
	require.NoError(t, j.ShrinkToConfirmed())
	assert.Equal(t, 2, j.TotalCleanersRequired())
	assert.Equal(t, job.Filled, j.Status())
}

func TestJob_EdgeCaseDecision(t *testing.T) {
	edgeJob := func(t *testing.T) *job.Job {
		j := newJob(t, 2)
		require.NoError(t, j.ApplyConfirmedCount(1))
		require.True(t, j.QualifiesForEdgeCaseDecision())
		return j
	}

	t.Run("should open the decision window", func(t *testing.T) {
		j := edgeJob(t)

		require.NoError(t, j.RequestEdgeCaseDecision(now, 24*time.Hour))
		assert.True(t, j.EdgeCaseDecisionRequired())
		assert.Equal(t, job.DecisionPending, j.HomeownerDecision())
		assert.True(t, now.Add(24*time.Hour).Equal(*j.EdgeCaseDecisionExpiresAt()))
		assert.False(t, j.QualifiesForEdgeCaseDecision(), "second sweep pass must skip the job")
		requireConflict(t, j.RequestEdgeCaseDecision(now, time.Hour), job.MsgDecisionNotRequired)
	})

	t.Run("should not qualify when not one of two", func(t *testing.T) {
		j := newJob(t, 3)
		require.NoError(t, j.ApplyConfirmedCount(1))
		assert.False(t, j.QualifiesForEdgeCaseDecision())
	})

	t.Run("proceed requires a pending decision", func(t *testing.T) {
		j := edgeJob(t)
		requireConflict(t, j.Proceed(), job.MsgDecisionNotRequired)

		require.NoError(t, j.RequestEdgeCaseDecision(now, 24*time.Hour))
		require.NoError(t, j.Proceed())
		assert.True(t, j.IsPaymentSplit())
		requireConflict(t, j.Proceed(), job.MsgDecisionAlreadyMade)
	})

	t.Run("auto proceed only after the window", func(t *testing.T) {
		j := edgeJob(t)
		require.NoError(t, j.RequestEdgeCaseDecision(now, 24*time.Hour))

		requireConflict(t, j.AutoProceed(now.Add(time.Hour)), "Decision window is still open")
		require.NoError(t, j.AutoProceed(now.Add(25*time.Hour)))
		assert.Equal(t, job.DecisionAutoProceeded, j.HomeownerDecision())
		requireConflict(t, j.Proceed(), job.MsgDecisionAlreadyMade)
	})

	t.Run("filling the job withdraws a pending decision", func(t *testing.T) {
		j := edgeJob(t)
		require.NoError(t, j.RequestEdgeCaseDecision(now, 24*time.Hour))

		require.NoError(t, j.ApplyConfirmedCount(2))

		assert.Equal(t, job.Filled, j.Status())
		assert.False(t, j.EdgeCaseDecisionRequired())
		assert.Equal(t, job.DecisionNone, j.HomeownerDecision())
		assert.Nil(t, j.EdgeCaseDecisionExpiresAt())
		requireConflict(t, j.AutoProceed(now.Add(25*time.Hour)), job.MsgDecisionNotRequired)
		requireConflict(t, j.Proceed(), job.MsgDecisionNotRequired)
	})

	t.Run("a made decision survives the job filling", func(t *testing.T) {
		j := edgeJob(t)
		require.NoError(t, j.RequestEdgeCaseDecision(now, 24*time.Hour))
		require.NoError(t, j.Proceed())

		require.NoError(t, j.ApplyConfirmedCount(2))

		assert.Equal(t, job.DecisionProceed, j.HomeownerDecision())
		assert.True(t, j.IsPaymentSplit())
	})

	t.Run("cancel edge case cancels the job", func(t *testing.T) {
		j := edgeJob(t)
		require.NoError(t, j.RequestEdgeCaseDecision(now, 24*time.Hour))

		require.NoError(t, j.CancelEdgeCase())
		assert.Equal(t, job.Cancelled, j.Status())
		assert.Equal(t, job.DecisionCancel, j.HomeownerDecision())
	})
}

func TestJob_SoloOffer(t *testing.T) {
	t.Run("accept inside the window shrinks the job", func(t *testing.T) {
		j := newJob(t, 2)
		require.NoError(t, j.ApplyConfirmedCount(1))
		require.NoError(t, j.OfferSolo(now, 12*time.Hour))
		assert.True(t, j.SoloOfferPending())
		requireConflict(t, j.OfferSolo(now, 12*time.Hour), "A solo offer is already pending")

		require.NoError(t, j.AcceptSolo(now.Add(time.Hour)))
		assert.False(t, j.SoloOfferPending())
		assert.Equal(t, 1, j.TotalCleanersRequired())
		assert.Equal(t, job.Filled, j.Status())
	})

	t.Run("accept after the window fails", func(t *testing.T) {
		j := newJob(t, 2)
		require.NoError(t, j.ApplyConfirmedCount(1))
		require.NoError(t, j.OfferSolo(now, 12*time.Hour))

		requireConflict(t, j.AcceptSolo(now.Add(13*time.Hour)), job.MsgSoloOfferExpired)
	})

	t.Run("expire and decline close the offer", func(t *testing.T) {
		j := newJob(t, 2)
		require.NoError(t, j.ApplyConfirmedCount(1))
		requireConflict(t, j.DeclineSolo(), job.MsgNoSoloOffer)

		require.NoError(t, j.OfferSolo(now, 12*time.Hour))
		requireConflict(t, j.ExpireSolo(now.Add(time.Hour)), "Solo offer is still open")
		require.NoError(t, j.ExpireSolo(now.Add(13*time.Hour)))
		requireConflict(t, j.ExpireSolo(now.Add(14*time.Hour)), job.MsgNoSoloOffer)

		require.NoError(t, j.OfferSolo(now.Add(20*time.Hour), 12*time.Hour))
		require.NoError(t, j.DeclineSolo())
		assert.False(t, j.SoloOfferPending())
	})
}

func TestJob_ExtraWork(t *testing.T) {
	j := newJob(t, 3)
	require.NoError(t, j.ApplyConfirmedCount(2))
	requireConflict(t, j.EnsureExtraWorkOpen(now), job.MsgNoExtraWorkOffer)

	require.NoError(t, j.OfferExtraWork(now, 12*time.Hour))
	assert.True(t, j.ExtraWorkPending())
	require.NoError(t, j.EnsureExtraWorkOpen(now.Add(11*time.Hour)))
	requireConflict(t, j.EnsureExtraWorkOpen(now.Add(13*time.Hour)), job.MsgExtraWorkOfferExpired)

	require.NoError(t, j.CloseExtraWork())
	assert.False(t, j.ExtraWorkPending())
	requireConflict(t, j.CloseExtraWork(), job.MsgNoExtraWorkOffer)
}

func TestJob_Escalations(t *testing.T) {
	j := newJob(t, 2)

	require.NoError(t, j.MarkUrgentFillSent(now))
	assert.Error(t, j.MarkUrgentFillSent(now))
	require.NoError(t, j.MarkFinalWarningSent(now))
	assert.Error(t, j.MarkFinalWarningSent(now))

	j.ClearEscalations()
	assert.Nil(t, j.UrgentNotificationSentAt())
	assert.Nil(t, j.FinalWarningAt())
}

func TestJob_AdvanceVersion(t *testing.T) {
	j := newJob(t, 2)
	j.AdvanceVersion()
	assert.Equal(t, 2, j.Version())
}
