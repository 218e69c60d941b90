package commands_test

import (
	"testing"
	"time"

	"multicleaner/internal/adapters/out/postgres/appointmentrepo"
	"multicleaner/internal/adapters/out/postgres/homerepo"
	"multicleaner/internal/adapters/out/postgres/offerrepo"
	"multicleaner/internal/adapters/out/postgres/roomrepo"
	"multicleaner/internal/core/application/usecases/commands"
	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/core/domain/services"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *harness) bookHome(t *testing.T, beds int, baths float64) *appointment.Appointment {
	t.Helper()
	ctx := t.Context()

	hm, err := home.NewHome(kernel.NewUUID(), kernel.NewUUID(), beds, baths, 0)
	require.NoError(t, err)
	require.NoError(t, homerepo.NewGormHomeRepository(h.db).Add(ctx, hm))

	a, err := appointment.NewAppointment(kernel.NewUUID(), hm.ID(), hm.OwnerID(), epoch.Add(7*24*time.Hour), 30000)
	require.NoError(t, err)
	require.NoError(t, appointmentrepo.NewGormAppointmentRepository(h.db).Add(ctx, a))
	return a
}

func TestCreateJobCommandHandler_Handle_MaterializesRooms(t *testing.T) {
	h := newHarness(t)
	appt := h.bookHome(t, 4, 3)
	primary := kernel.NewUUID()
	cmd, err := commands.NewCreateJobCommand(appt.ID(), 0, &primary, false)
	require.NoError(t, err)

	require.NoError(t, commands.NewCreateJobCommandHandler(h.engine).Handle(t.Context(), cmd))

	j := h.job(t, cmd.JobID())
	assert.Equal(t, job.Open, j.Status())
	assert.GreaterOrEqual(t, j.TotalCleanersRequired(), 2)

	hm, err := homerepo.NewGormHomeRepository(h.db).Get(t.Context(), appt.HomeID())
	require.NoError(t, err)
	rooms, err := roomrepo.NewGormRoomRepository(h.db).ListByJob(t.Context(), j.ID())
	require.NoError(t, err)
	assert.Len(t, rooms, len(services.NewRoomSplitter().GenerateRoomList(hm)))

	var shares int64
	for _, r := range rooms {
		assert.True(t, r.IsUnassigned())
		shares += r.EarningsShare()
	}
	assert.Positive(t, shares)

	offers, err := offerrepo.NewGormOfferRepository(h.db).ListPendingByJob(t.Context(), j.ID())
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, offer.PrimaryInvite, offers[0].Type())
	assert.True(t, offers[0].CleanerID().IsEqual(primary))
	assert.Contains(t, h.gateway.kindsFor(primary), notice.OfferReceived)
}

func TestCreateJobCommandHandler_Handle_UnknownAppointment(t *testing.T) {
	h := newHarness(t)
	cmd, err := commands.NewCreateJobCommand(kernel.NewUUID(), 2, nil, true)
	require.NoError(t, err)

	err = commands.NewCreateJobCommandHandler(h.engine).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestStartJobCommandHandler_Handle_StartsCleanerRooms(t *testing.T) {
	h := newHarness(t)
	f := h.seed(t, 2, 1, 1)
	cleaner := kernel.NewUUID()
	require.NoError(t, h.fill(t, f.Job.ID(), cleaner, nil))
	cmd, err := commands.NewStartJobCommand(f.Job.ID(), cleaner)
	require.NoError(t, err)

	require.NoError(t, commands.NewStartJobCommandHandler(h.engine).Handle(t.Context(), cmd))
	require.NoError(t, commands.NewStartJobCommandHandler(h.engine).Handle(t.Context(), cmd))

	c, err := h.completion(t, f.Job.ID(), cleaner)
	require.NoError(t, err)
	assert.Equal(t, completion.Started, c.Status())
	rooms, err := roomrepo.NewGormRoomRepository(h.db).ListByJob(t.Context(), f.Job.ID())
	require.NoError(t, err)
	for _, r := range rooms {
		assert.Equal(t, room.InProgress, r.Status())
	}
}

func TestCompleteRoomCommandHandler_Handle(t *testing.T) {
	h := newHarness(t)
	f := h.seed(t, 2, 1, 1)
	cleaner := kernel.NewUUID()
	require.NoError(t, h.fill(t, f.Job.ID(), cleaner, nil))
	handler := commands.NewCompleteRoomCommandHandler(h.engine)
	complete := func(roomID, by kernel.UUID, photos bool) (commands.CompleteRoomResult, error) {
		cmd, err := commands.NewCompleteRoomCommand(f.Job.ID(), roomID, by, photos)
		require.NoError(t, err)
		return handler.Handle(t.Context(), cmd)
	}

	t.Run("photos are required", func(t *testing.T) {
		_, err := complete(f.Rooms[0].ID(), cleaner, false)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), commands.MsgPhotosRequired)
	})

	t.Run("another cleaner's room is forbidden", func(t *testing.T) {
		_, err := complete(f.Rooms[0].ID(), kernel.NewUUID(), true)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("last room completes the job", func(t *testing.T) {
		var res commands.CompleteRoomResult
		for i, r := range f.Rooms {
			var err error
			res, err = complete(r.ID(), cleaner, true)
			require.NoError(t, err)
			if i < len(f.Rooms)-1 {
				assert.False(t, res.JobCompleted)
			}
		}

		assert.True(t, res.CleanerCompleted)
		assert.True(t, res.JobCompleted)
		assert.Equal(t, job.Completed, h.job(t, f.Job.ID()).Status())
		assert.Contains(t, h.gateway.kindsFor(f.Appointment.HomeownerID()), notice.JobCompleted)
	})

	t.Run("completed room cannot be completed again", func(t *testing.T) {
		_, err := complete(f.Rooms[0].ID(), cleaner, true)

		require.Error(t, err)
	})
}

func TestMarkCleanerCompleteCommandHandler_Handle_WaitsForWholeTeam(t *testing.T) {
	h := newHarness(t)
	f := h.seed(t, 3, 2, 2)
	first, second := kernel.NewUUID(), kernel.NewUUID()
	require.NoError(t, h.fill(t, f.Job.ID(), first, nil))
	require.NoError(t, h.fill(t, f.Job.ID(), second, nil))
	handler := commands.NewMarkCleanerCompleteCommandHandler(h.engine)

	cmd, err := commands.NewMarkCleanerCompleteCommand(f.Job.ID(), first)
	require.NoError(t, err)
	require.NoError(t, handler.Handle(t.Context(), cmd))

	c, err := h.completion(t, f.Job.ID(), first)
	require.NoError(t, err)
	assert.Equal(t, completion.Completed, c.Status())
	assert.Equal(t, job.Filled, h.job(t, f.Job.ID()).Status())

	cmd, err = commands.NewMarkCleanerCompleteCommand(f.Job.ID(), second)
	require.NoError(t, err)
	require.NoError(t, handler.Handle(t.Context(), cmd))

	assert.Equal(t, job.Completed, h.job(t, f.Job.ID()).Status())
}

func TestCancelJobCommandHandler_Handle(t *testing.T) {
	h := newHarness(t)
	f := h.seed(t, 3, 2, 2)
	cleaner := kernel.NewUUID()
	require.NoError(t, h.fill(t, f.Job.ID(), cleaner, nil))
	handler := commands.NewCancelJobCommandHandler(h.engine)

	stranger, err := commands.NewCancelJobCommand(f.Job.ID(), kernel.NewUUID(), "")
	require.NoError(t, err)
	require.ErrorIs(t, handler.Handle(t.Context(), stranger), errs.ErrForbidden)

	cmd, err := commands.NewCancelJobCommand(f.Job.ID(), f.Appointment.HomeownerID(), "plans changed")
	require.NoError(t, err)
	require.NoError(t, handler.Handle(t.Context(), cmd))

	assert.Equal(t, job.Cancelled, h.job(t, f.Job.ID()).Status())
	a, err := appointmentrepo.NewGormAppointmentRepository(h.db).Get(t.Context(), f.Appointment.ID())
	require.NoError(t, err)
	assert.Equal(t, appointment.PaymentCancelled, a.PaymentStatus())
	assert.False(t, a.HasBeenAssigned())
	c, err := h.completion(t, f.Job.ID(), cleaner)
	require.NoError(t, err)
	assert.Equal(t, completion.DroppedOut, c.Status())
	assert.Contains(t, h.gateway.kindsFor(cleaner), notice.AppointmentCancelled)
}

func TestCancelJobCommandHandler_Handle_KeepsFinishedCleaner(t *testing.T) {
	h := newHarness(t)
	f := h.seed(t, 3, 2, 2)
	done, busy := kernel.NewUUID(), kernel.NewUUID()
	require.NoError(t, h.fill(t, f.Job.ID(), done, nil))
	require.NoError(t, h.fill(t, f.Job.ID(), busy, nil))
	finish, err := commands.NewMarkCleanerCompleteCommand(f.Job.ID(), done)
	require.NoError(t, err)
	require.NoError(t, commands.NewMarkCleanerCompleteCommandHandler(h.engine).Handle(t.Context(), finish))

	cmd, err := commands.NewCancelJobCommand(f.Job.ID(), f.Appointment.HomeownerID(), "")
	require.NoError(t, err)
	require.NoError(t, commands.NewCancelJobCommandHandler(h.engine).Handle(t.Context(), cmd))

	c, err := h.completion(t, f.Job.ID(), done)
	require.NoError(t, err)
	assert.Equal(t, completion.Completed, c.Status())
	c, err = h.completion(t, f.Job.ID(), busy)
	require.NoError(t, err)
	assert.Equal(t, completion.DroppedOut, c.Status())
}
