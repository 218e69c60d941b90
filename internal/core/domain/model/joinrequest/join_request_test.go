package joinrequest_test

import (
	"testing"
	"time"

	"multicleaner/internal/core/domain/model/joinrequest"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func newRequest(t *testing.T, homeownerID kernel.UUID) *joinrequest.Request {
	t.Helper()
	r, err := joinrequest.NewRequest(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), homeownerID,
		[]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}, now, now.Add(48*time.Hour))
	require.NoError(t, err)
	return r
}

func TestNewRequest(t *testing.T) {
	r := newRequest(t, kernel.NewUUID())
	assert.Equal(t, joinrequest.Pending, r.Status())
	assert.Len(t, r.RoomAssignmentIDs(), 2)

	_, err := joinrequest.NewRequest(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		nil, now, now.Add(-time.Minute))
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRequest_ApproveAndDecline(t *testing.T) {
	owner := kernel.NewUUID()

	t.Run("approve is homeowner only and once", func(t *testing.T) {
		r := newRequest(t, owner)
		assert.ErrorIs(t, r.Approve(kernel.NewUUID(), now), errs.ErrForbidden)
		require.NoError(t, r.Approve(owner, now))
		assert.Equal(t, joinrequest.Approved, r.Status())

		msg, ok := errs.ConflictMessage(r.Approve(owner, now))
		require.True(t, ok)
		assert.Equal(t, joinrequest.MsgRequestNotPending, msg)
	})

	t.Run("decline keeps the reason", func(t *testing.T) {
		r := newRequest(t, owner)
		require.NoError(t, r.Decline(owner, "prefer my regular team", now))
		assert.Equal(t, joinrequest.Declined, r.Status())
		assert.Equal(t, "prefer my regular team", r.DeclineReason())
		assert.ErrorIs(t, r.Cancel(now), errs.ErrConflict)
	})
}

func TestRequest_AutoApprove(t *testing.T) {
	r := newRequest(t, kernel.NewUUID())

	assert.ErrorIs(t, r.AutoApprove(now.Add(time.Hour)), errs.ErrConflict)
	require.NoError(t, r.AutoApprove(now.Add(49*time.Hour)))
	assert.Equal(t, joinrequest.AutoApproved, r.Status())
	assert.ErrorIs(t, r.AutoApprove(now.Add(50*time.Hour)), errs.ErrConflict)
}

func TestRequest_Restore(t *testing.T) {
	r := newRequest(t, kernel.NewUUID())
	restored, err := joinrequest.Restore(r.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, r.Snapshot(), restored.Snapshot())
	assert.Equal(t, joinrequest.Pending, restored.PersistedStatus())

	require.NoError(t, restored.Cancel(now))
	restored.MarkPersisted()
	assert.Equal(t, joinrequest.Cancelled, restored.PersistedStatus())
}
