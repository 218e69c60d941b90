package appointment_test

import (
	"testing"
	"time"

	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppointment(t *testing.T) *appointment.Appointment {
	t.Helper()
	a, err := appointment.NewAppointment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC), 30000)
	require.NoError(t, err)
	return a
}

func TestNewAppointment(t *testing.T) {
	t.Run("should start pending and unassigned", func(t *testing.T) {
		a := newAppointment(t)

		assert.Equal(t, appointment.PaymentPending, a.PaymentStatus())
		assert.False(t, a.HasBeenAssigned())
		assert.Empty(t, a.AssignedCleaners())
		assert.Equal(t, int64(30000), a.PriceCents())
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		_, err := appointment.NewAppointment(kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), time.Time{}, -1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown payment status on restore", func(t *testing.T) {
		_, err := appointment.RestoreAppointment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			time.Now(), 100, "refunded", false, nil)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAppointment_AssignedCleaners(t *testing.T) {
	a := newAppointment(t)
	c1, c2 := kernel.NewUUID(), kernel.NewUUID()

	a.SetAssignedCleaners([]kernel.UUID{c1, c2})
	assert.True(t, a.HasBeenAssigned())
	assert.Len(t, a.AssignedCleaners(), 2)

	a.SetAssignedCleaners(nil)
	assert.False(t, a.HasBeenAssigned())
}

func TestAppointment_Cancel(t *testing.T) {
	a := newAppointment(t)
	a.SetAssignedCleaners([]kernel.UUID{kernel.NewUUID()})

	require.NoError(t, a.Cancel())
	assert.Equal(t, appointment.PaymentCancelled, a.PaymentStatus())
	assert.False(t, a.HasBeenAssigned())

	err := a.Cancel()
	assert.ErrorIs(t, err, errs.ErrConflict)

	err = a.Reschedule(time.Now().Add(48 * time.Hour))
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestAppointment_Reschedule(t *testing.T) {
	a := newAppointment(t)
	next := time.Date(2026, 11, 9, 9, 0, 0, 0, time.FixedZone("EST", -5*3600))

	require.NoError(t, a.Reschedule(next))
	assert.True(t, next.Equal(a.Date()))
	assert.Equal(t, time.UTC, a.Date().Location())

	assert.ErrorIs(t, a.Reschedule(time.Time{}), errs.ErrValueIsRequired)
}
