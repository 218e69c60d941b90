package policy_test

import (
	"testing"
	"time"

	"multicleaner/internal/core/domain/model/policy"
	"multicleaner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	s := policy.Default()

	assert.NoError(t, s.Validate())
	assert.Equal(t, 48*time.Hour, s.OfferExpiration)
	assert.Equal(t, 48*time.Hour, s.JoinRequestExpiration)
	assert.Equal(t, 24*time.Hour, s.EdgeCaseDecisionWindow)
	assert.Equal(t, 12*time.Hour, s.ExtraWorkOfferWindow)
	assert.Equal(t, 3, s.LargeHomeBedsThreshold)
	assert.Equal(t, 3.0, s.LargeHomeBathsThreshold)
	assert.Equal(t, 240, s.MaxSoloMinutes)
}

func TestSettings_Validate(t *testing.T) {
	s := policy.Default()
	s.OfferExpiration = 0
	s.LargeHomeBedsThreshold = 0

	err := s.Validate()

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
