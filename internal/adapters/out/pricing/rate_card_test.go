package pricing_test

import (
	"testing"
	"time"

	"multicleaner/internal/adapters/out/pricing"
	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppointment(t *testing.T, priceCents int64) (*home.Home, *appointment.Appointment) {
	t.Helper()
	h, err := home.NewHome(kernel.NewUUID(), kernel.NewUUID(), 3, 2, 0)
	require.NoError(t, err)
	a, err := appointment.NewAppointment(kernel.NewUUID(), h.ID(), h.OwnerID(), time.Now().Add(72*time.Hour), priceCents)
	require.NoError(t, err)
	return h, a
}

func newRooms(t *testing.T, minutes ...int) []*room.Assignment {
	t.Helper()
	jobID, apptID := kernel.NewUUID(), kernel.NewUUID()
	out := make([]*room.Assignment, 0, len(minutes))
	for i, m := range minutes {
		r, err := room.NewAssignment(kernel.NewUUID(), jobID, apptID, room.Unit{
			Type:             room.Bedroom,
			Number:           i + 1,
			Label:            "Bedroom",
			EstimatedMinutes: m,
		})
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func TestNewRateCard_RejectsFeeOutOfRange(t *testing.T) {
	_, err := pricing.NewRateCard(100)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = pricing.NewRateCard(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestRateCard_TotalJobPriceDeductsPlatformFee(t *testing.T) {
	card, err := pricing.NewRateCard(10)
	require.NoError(t, err)
	h, a := newAppointment(t, 30000)

	total, err := card.CalculateTotalJobPrice(t.Context(), h, a, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(27000), total)

	solo, err := card.CalculateSoloCompletionEarnings(t.Context(), a)
	require.NoError(t, err)
	assert.Equal(t, total, solo)
}

func TestRateCard_PerCleanerEarningsSumToTotal(t *testing.T) {
	card, err := pricing.NewRateCard(0)
	require.NoError(t, err)

	shares, err := card.CalculatePerCleanerEarnings(t.Context(), 10000, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{3334, 3333, 3333}, shares)

	_, err = card.CalculatePerCleanerEarnings(t.Context(), 10000, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestRateCard_RoomSharesFollowMinutes(t *testing.T) {
	card, err := pricing.NewRateCard(0)
	require.NoError(t, err)
	rooms := newRooms(t, 30, 30, 60)

	require.NoError(t, card.UpdateRoomEarningsShares(t.Context(), rooms, 1001))

	assert.Equal(t, int64(250), rooms[0].EarningsShare())
	assert.Equal(t, int64(250), rooms[1].EarningsShare())
	assert.Equal(t, int64(501), rooms[2].EarningsShare())
}

func held(t *testing.T, r *room.Assignment, cleanerID *kernel.UUID, status room.Status) *room.Assignment {
	t.Helper()
	out, err := room.RestoreAssignment(r.ID(), r.JobID(), r.AppointmentID(), r.Unit(), cleanerID, status, r.EarningsShare(), nil)
	require.NoError(t, err)
	return out
}

func TestRateCard_RecalculateEarningsAfterDropout(t *testing.T) {
	card, err := pricing.NewRateCard(0)
	require.NoError(t, err)
	alice, bob := kernel.NewUUID(), kernel.NewUUID()

	rooms := newRooms(t, 30, 30, 30)
	require.NoError(t, card.UpdateRoomEarningsShares(t.Context(), rooms, 900))

	// Alice held one room, the dropped cleaner held two and left them unassigned.
	before := []*room.Assignment{
		held(t, rooms[0], &alice, room.InProgress),
		held(t, rooms[1], nil, room.Pending),
		held(t, rooms[2], nil, room.Pending),
	}
	after := []*room.Assignment{
		before[0],
		held(t, rooms[1], &alice, room.Pending),
		held(t, rooms[2], &bob, room.Pending),
	}

	earnings, err := card.RecalculateEarningsAfterDropout(t.Context(), before, after, []kernel.UUID{alice, bob})
	require.NoError(t, err)
	require.Len(t, earnings, 2)
	assert.Equal(t, int64(600), earnings[0].TotalEarningsCents)
	assert.Equal(t, int64(300), earnings[0].ExtraEarningsCents)
	assert.Equal(t, int64(300), earnings[1].TotalEarningsCents)
	assert.Equal(t, int64(300), earnings[1].ExtraEarningsCents)
}

func TestRateCard_GenerateEarningsBreakdown(t *testing.T) {
	card, err := pricing.NewRateCard(0)
	require.NoError(t, err)
	alice := kernel.NewUUID()

	rooms := newRooms(t, 30, 60)
	require.NoError(t, card.UpdateRoomEarningsShares(t.Context(), rooms, 900))
	rooms = []*room.Assignment{
		held(t, rooms[0], &alice, room.Completed),
		held(t, rooms[1], nil, room.Pending),
	}

	lines, err := card.GenerateEarningsBreakdown(t.Context(), rooms)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, alice, lines[0].CleanerID)
	assert.Equal(t, 1, lines[0].RoomCount)
	assert.Equal(t, 30, lines[0].Minutes)
	assert.Equal(t, int64(300), lines[0].EarningsCents)
	assert.Equal(t, 1, lines[0].CompletedRooms)
}
