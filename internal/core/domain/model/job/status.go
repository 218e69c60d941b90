package job

import (
	"fmt"

	"multicleaner/internal/pkg/errs"
)

type Status string

const (
	Open            Status = "open"
	PartiallyFilled Status = "partially_filled"
	Filled          Status = "filled"
	Completed       Status = "completed"
	Cancelled       Status = "cancelled"
)

func (s Status) Validate() error {
	switch s {
	case Open, PartiallyFilled, Filled, Completed, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("job status", fmt.Errorf("%q is not a valid job status", string(s)))
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

func (s Status) String() string { return string(s) }

// DeriveStatus maps a confirmed/required pair onto the fill states.
func DeriveStatus(confirmed, required int) Status {
	switch {
	case confirmed <= 0:
		return Open
	case confirmed < required:
		return PartiallyFilled
	default:
		return Filled
	}
}

// Decision is the homeowner's answer to an edge-case prompt.
type Decision string

const (
	DecisionNone          Decision = ""
	DecisionPending       Decision = "pending"
	DecisionProceed       Decision = "proceed"
	DecisionCancel        Decision = "cancel"
	DecisionAutoProceeded Decision = "auto_proceeded"
)

func (d Decision) Validate() error {
	switch d {
	case DecisionNone, DecisionPending, DecisionProceed, DecisionCancel, DecisionAutoProceeded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("homeowner decision", fmt.Errorf("%q is not a valid decision", string(d)))
	}
}

// IsProceed reports whether the homeowner (or the timeout) chose to go ahead with the confirmed cleaner.
func (d Decision) IsProceed() bool {
	return d == DecisionProceed || d == DecisionAutoProceeded
}
