package room

import (
	"fmt"

	"multicleaner/internal/pkg/errs"
)

// Status is the cleaning progress of a single room.
//
//	pending ──> in_progress ──> completed
//	   └─────────────────────────┘
type Status string

const (
	Pending    Status = "pending"
	InProgress Status = "in_progress"
	Completed  Status = "completed"
)

func (s Status) Validate() error {
	switch s {
	case Pending, InProgress, Completed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("room status", fmt.Errorf("%q is not a valid room status", string(s)))
	}
}

func (s Status) String() string { return string(s) }
