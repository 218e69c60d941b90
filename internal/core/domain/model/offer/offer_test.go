package offer_test

import (
	"testing"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func newOffer(t *testing.T, cleanerID kernel.UUID) *offer.Offer {
	t.Helper()
	o, err := offer.NewOffer(kernel.NewUUID(), kernel.NewUUID(), cleanerID, offer.MarketOpen, 9000,
		[]kernel.UUID{kernel.NewUUID()}, now, now.Add(48*time.Hour))
	require.NoError(t, err)
	return o
}

func conflictMessage(t *testing.T, err error) string {
	t.Helper()
	msg, ok := errs.ConflictMessage(err)
	require.True(t, ok, "expected conflict, got %v", err)
	return msg
}

func TestNewOffer(t *testing.T) {
	t.Run("should create pending offer", func(t *testing.T) {
		o := newOffer(t, kernel.NewUUID())

		assert.Equal(t, offer.Pending, o.Status())
		assert.Equal(t, offer.Status(""), o.PersistedStatus(), "new offers have not been stored yet")
		assert.Len(t, o.RoomsOffered(), 1)
		assert.True(t, o.Status().IsLive())
	})

	t.Run("should reject bad input", func(t *testing.T) {
		_, err := offer.NewOffer(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "cold_call", 1, nil, now, now.Add(time.Hour))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = offer.NewOffer(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), offer.UrgentFill, -1, nil, now, now.Add(time.Hour))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = offer.NewOffer(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), offer.UrgentFill, 1, nil, now, now)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOffer_Accept(t *testing.T) {
	cleaner := kernel.NewUUID()

	t.Run("should accept pending offer", func(t *testing.T) {
		o := newOffer(t, cleaner)
		require.NoError(t, o.Accept(cleaner, now.Add(time.Hour)))
		assert.Equal(t, offer.Accepted, o.Status())
	})

	t.Run("should forbid another cleaner", func(t *testing.T) {
		o := newOffer(t, cleaner)
		assert.ErrorIs(t, o.Accept(kernel.NewUUID(), now), errs.ErrForbidden)
	})

	t.Run("should report expiry past the deadline", func(t *testing.T) {
		o := newOffer(t, cleaner)
		assert.Equal(t, offer.MsgOfferExpired, conflictMessage(t, o.Accept(cleaner, now.Add(49*time.Hour))))
		assert.Equal(t, offer.Pending, o.Status())
	})

	t.Run("should report expiry for expired offers", func(t *testing.T) {
		o := newOffer(t, cleaner)
		require.NoError(t, o.Expire(now.Add(49*time.Hour)))
		assert.Equal(t, offer.MsgOfferExpired, conflictMessage(t, o.Accept(cleaner, now)))
	})

	t.Run("should report unavailable for accepted offers", func(t *testing.T) {
		o := newOffer(t, cleaner)
		require.NoError(t, o.Accept(cleaner, now))
		assert.Equal(t, offer.MsgOfferUnavailable, conflictMessage(t, o.Accept(cleaner, now)))
	})
}

func TestOffer_Decline(t *testing.T) {
	cleaner := kernel.NewUUID()
	o := newOffer(t, cleaner)

	assert.ErrorIs(t, o.Decline(kernel.NewUUID(), "", now), errs.ErrForbidden)
	require.NoError(t, o.Decline(cleaner, "too far", now))
	assert.Equal(t, offer.Declined, o.Status())
	assert.Equal(t, "too far", o.DeclineReason())
	assert.Equal(t, offer.MsgOfferUnavailable, conflictMessage(t, o.Decline(cleaner, "", now)))
}

func TestOffer_ExpireAndWithdraw(t *testing.T) {
	cleaner := kernel.NewUUID()

	o := newOffer(t, cleaner)
	assert.Error(t, o.Expire(now.Add(time.Hour)), "not yet expired")
	require.NoError(t, o.Expire(now.Add(49*time.Hour)))
	assert.Error(t, o.Expire(now.Add(50*time.Hour)), "already expired")
	assert.Error(t, o.Withdraw(now))

	w := newOffer(t, cleaner)
	require.NoError(t, w.Withdraw(now))
	assert.Equal(t, offer.Withdrawn, w.Status())
	assert.False(t, w.Status().IsLive())
}

func TestOffer_Restore(t *testing.T) {
	o := newOffer(t, kernel.NewUUID())

	restored, err := offer.Restore(o.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, o.Snapshot(), restored.Snapshot())
	assert.Equal(t, offer.Pending, restored.PersistedStatus())

	require.NoError(t, restored.Withdraw(now))
	assert.Equal(t, offer.Pending, restored.PersistedStatus())
	restored.MarkPersisted()
	assert.Equal(t, offer.Withdrawn, restored.PersistedStatus())
}
