package postgres_test

import (
	"testing"
	"time"

	"multicleaner/internal/adapters/out/postgres/appointmentrepo"
	"multicleaner/internal/adapters/out/postgres/homerepo"
	"multicleaner/internal/adapters/out/postgres/notificationrepo"
	"multicleaner/internal/adapters/out/postgres/testdb"
	"multicleaner/internal/adapters/out/postgres/userrepo"
	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/ports"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeRepository_PreferredCleanersRoundTrip(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	db := testdb.Open(t)
	repo := homerepo.NewGormHomeRepository(db)
	f := testdb.SeedJob(t, db, 3, 2.5, 2, now.Add(72*time.Hour), now)

	primary := kernel.NewUUID()
	other := kernel.NewUUID()
	require.NoError(t, f.Home.SetPreferredCleaners([]kernel.UUID{primary, other}, &primary))
	require.NoError(t, repo.Update(ctx, f.Home))

	stored, err := repo.Get(ctx, f.Home.ID())
	require.NoError(t, err)
	assert.InDelta(t, 2.5, stored.Baths(), 0.001)
	assert.True(t, stored.IsPreferred(other))
	require.NotNil(t, stored.PrimaryPreferredCleaner())
	assert.Equal(t, primary, *stored.PrimaryPreferredCleaner())
}

func TestAppointmentRepository_CancelRoundTrip(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	db := testdb.Open(t)
	repo := appointmentrepo.NewGormAppointmentRepository(db)
	f := testdb.SeedJob(t, db, 3, 2, 2, now.Add(72*time.Hour), now)

	cleaner := kernel.NewUUID()
	f.Appointment.SetAssignedCleaners([]kernel.UUID{cleaner})
	require.NoError(t, repo.Update(ctx, f.Appointment))
	stored, err := repo.Get(ctx, f.Appointment.ID())
	require.NoError(t, err)
	assert.True(t, stored.HasBeenAssigned())
	assert.Equal(t, []kernel.UUID{cleaner}, stored.AssignedCleaners())

	require.NoError(t, stored.Cancel())
	require.NoError(t, repo.Update(ctx, stored))
	stored, err = repo.Get(ctx, f.Appointment.ID())
	require.NoError(t, err)
	assert.Equal(t, appointment.PaymentCancelled, stored.PaymentStatus())
	assert.False(t, stored.HasBeenAssigned())
}

func TestAppointmentRepository_UpdateUnknown_NotFound(t *testing.T) {
	db := testdb.Open(t)
	a, err := appointment.NewAppointment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC(), 100)
	require.NoError(t, err)

	err = appointmentrepo.NewGormAppointmentRepository(db).Update(t.Context(), a)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUserDirectory_UpsertOverwrites(t *testing.T) {
	ctx := t.Context()
	dir := userrepo.NewGormUserDirectory(testdb.Open(t))
	id := kernel.NewUUID()

	require.NoError(t, dir.Upsert(ctx, ports.Contact{ID: id, Name: "Dana", Email: "dana@example.com"}))
	require.NoError(t, dir.Upsert(ctx, ports.Contact{ID: id, Name: "Dana K", PushToken: "tok"}))

	c, err := dir.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dana K", c.Name)
	assert.Empty(t, c.Email)
	assert.Equal(t, "tok", c.PushToken)

	_, err = dir.Get(ctx, kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNotificationStore_ListAndMarkRead(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := notificationrepo.NewGormNotificationStore(testdb.Open(t))
	recipient := kernel.NewUUID()

	msg, err := notice.Compose(notice.Notice{Recipient: recipient, Kind: notice.OfferExpired})
	require.NoError(t, err)
	first, err := store.Add(ctx, msg, now)
	require.NoError(t, err)
	_, err = store.Add(ctx, msg, now.Add(time.Minute))
	require.NoError(t, err)

	require.NoError(t, store.MarkRead(ctx, first, recipient, now.Add(time.Hour)))
	require.NoError(t, store.MarkRead(ctx, first, recipient, now.Add(2*time.Hour)))

	all, err := store.ListByRecipient(ctx, recipient, false, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[1].ID)
	require.NotNil(t, all[1].ReadAt)
	assert.True(t, all[1].ReadAt.Equal(now.Add(time.Hour)))

	unread, err := store.ListByRecipient(ctx, recipient, true, 0)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	err = store.MarkRead(ctx, first, kernel.NewUUID(), now)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
