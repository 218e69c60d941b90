// Package policy holds the tunable windows and thresholds of the orchestration engine.
package policy

import (
	"errors"
	"fmt"
	"time"

	"multicleaner/internal/pkg/errs"
)

// Settings is built once from configuration and shared read-only by every handler.
type Settings struct {
	OfferExpiration        time.Duration
	JoinRequestExpiration  time.Duration
	EdgeCaseDecisionWindow time.Duration
	ExtraWorkOfferWindow   time.Duration

	LargeHomeBedsThreshold  int
	LargeHomeBathsThreshold float64

	UrgentFillHorizon   time.Duration
	FinalWarningHorizon time.Duration

	// MaxSoloMinutes is the most effort one cleaner is expected to take on alone.
	MaxSoloMinutes int
}

func Default() Settings {
	return Settings{
		OfferExpiration:         48 * time.Hour,
		JoinRequestExpiration:   48 * time.Hour,
		EdgeCaseDecisionWindow:  24 * time.Hour,
		ExtraWorkOfferWindow:    12 * time.Hour,
		LargeHomeBedsThreshold:  3,
		LargeHomeBathsThreshold: 3,
		UrgentFillHorizon:       3 * 24 * time.Hour,
		FinalWarningHorizon:     24 * time.Hour,
		MaxSoloMinutes:          240,
	}
}

func (s Settings) Validate() error {
	return errors.Join(
		positive("offer expiration", s.OfferExpiration),
		positive("join request expiration", s.JoinRequestExpiration),
		positive("edge case decision window", s.EdgeCaseDecisionWindow),
		positive("extra work offer window", s.ExtraWorkOfferWindow),
		positive("urgent fill horizon", s.UrgentFillHorizon),
		positive("final warning horizon", s.FinalWarningHorizon),
		atLeastOne("large home beds threshold", float64(s.LargeHomeBedsThreshold)),
		atLeastOne("large home baths threshold", s.LargeHomeBathsThreshold),
		atLeastOne("max solo minutes", float64(s.MaxSoloMinutes)),
	)
}

func positive(name string, d time.Duration) error {
	if d <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is not positive", d))
	}
	return nil
}

func atLeastOne(name string, v float64) error {
	if v < 1 {
		return errs.NewValueIsOutOfRangeError(name, v, 1, "unbounded")
	}
	return nil
}
