package guard_test

import (
	"errors"
	"testing"

	"multicleaner/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("test object not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample shows the guard embedded in a command-like value.
func TestConstructorGuardUsageExample(t *testing.T) {
	type slotRequest struct {
		cleanerCount int
		guard        guard.ConstructorGuard
	}

	errNotConstructed := errors.New("slotRequest must be created via newSlotRequest")
	newSlotRequest := func(count int) slotRequest {
		return slotRequest{cleanerCount: count, guard: guard.NewConstructorGuard()}
	}

	valid := newSlotRequest(2)
	require.NoError(t, valid.guard.Validate(errNotConstructed))
	assert.Equal(t, 2, valid.cleanerCount)

	var invalid slotRequest
	require.ErrorIs(t, invalid.guard.Validate(errNotConstructed), errNotConstructed)
}
