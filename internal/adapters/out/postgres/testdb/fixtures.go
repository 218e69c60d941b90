package testdb

import (
	"testing"
	"time"

	"multicleaner/internal/adapters/out/postgres/appointmentrepo"
	"multicleaner/internal/adapters/out/postgres/homerepo"
	"multicleaner/internal/adapters/out/postgres/jobrepo"
	"multicleaner/internal/adapters/out/postgres/roomrepo"
	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/core/domain/services"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Fixture is a stored home, its appointment and an open job over the home's rooms.
type Fixture struct {
	Home        *home.Home
	Appointment *appointment.Appointment
	Job         *job.Job
	Rooms       []*room.Assignment
}

// SeedJob stores a fixture for a home of the given size that needs cleaners cleaners.
func SeedJob(t *testing.T, db *gorm.DB, beds int, baths float64, cleaners int, date, now time.Time) Fixture {
	t.Helper()
	ctx := t.Context()

	h, err := home.NewHome(kernel.NewUUID(), kernel.NewUUID(), beds, baths, 0)
	require.NoError(t, err)
	require.NoError(t, homerepo.NewGormHomeRepository(db).Add(ctx, h))

	a, err := appointment.NewAppointment(kernel.NewUUID(), h.ID(), h.OwnerID(), date, 30000)
	require.NoError(t, err)
	require.NoError(t, appointmentrepo.NewGormAppointmentRepository(db).Add(ctx, a))

	units := services.NewRoomSplitter().GenerateRoomList(h)
	j, err := job.NewJob(kernel.NewUUID(), a.ID(), cleaners, nil, false, room.TotalMinutes(units), now)
	require.NoError(t, err)
	require.NoError(t, jobrepo.NewGormJobRepository(db).Add(ctx, j))

	rooms := make([]*room.Assignment, 0, len(units))
	for _, u := range units {
		r, err := room.NewAssignment(kernel.NewUUID(), j.ID(), a.ID(), u)
		require.NoError(t, err)
		rooms = append(rooms, r)
	}
	require.NoError(t, roomrepo.NewGormRoomRepository(db).AddAll(ctx, rooms))

	return Fixture{Home: h, Appointment: a, Job: j, Rooms: rooms}
}

// RoomIDs returns the ids of rooms.
func RoomIDs(rooms []*room.Assignment) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID())
	}
	return ids
}
