// Package completion models a cleaner's participation in a job.
//
// One Completion exists per (job, cleaner) pair that has ever held a slot. Rows
// are never deleted: a cleaner who drops out keeps a dropped_out row, and a
// cleaner who later rejoins reuses that row.
package completion

import (
	"errors"
	"fmt"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
)

var ErrCompletionIsNotConstructed = errors.New("Completion must be created via NewCompletion or Restore constructor")

type Status string

const (
	Assigned   Status = "assigned"
	Started    Status = "started"
	Completed  Status = "completed"
	DroppedOut Status = "dropped_out"
	NoShow     Status = "no_show"
)

// ActiveStatuses are the statuses that hold a slot on the job.
var ActiveStatuses = []Status{Assigned, Started, Completed}

func (s Status) Validate() error {
	switch s {
	case Assigned, Started, Completed, DroppedOut, NoShow:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("completion status", fmt.Errorf("%q is not a valid completion status", string(s)))
	}
}

// IsActive reports whether the status counts toward the job's confirmed cleaners.
func (s Status) IsActive() bool {
	return s == Assigned || s == Started || s == Completed
}

// Completion tracks one cleaner's slot on one job.
type Completion struct {
	id                  kernel.UUID
	jobID               kernel.UUID
	cleanerID           kernel.UUID
	status              Status
	assignedAt          time.Time
	startedAt           *time.Time
	completedAt         *time.Time
	droppedOutAt        *time.Time
	dropoutReason       string
	soloAcceptedAt      *time.Time
	soloDeclinedAt      *time.Time
	extraWorkAcceptedAt *time.Time
	extraWorkDeclinedAt *time.Time
	isConstructed       bool
}

// Snapshot is the persisted form of a Completion.
type Snapshot struct {
	ID                  kernel.UUID
	JobID               kernel.UUID
	CleanerID           kernel.UUID
	Status              Status
	AssignedAt          time.Time
	StartedAt           *time.Time
	CompletedAt         *time.Time
	DroppedOutAt        *time.Time
	DropoutReason       string
	SoloAcceptedAt      *time.Time
	SoloDeclinedAt      *time.Time
	ExtraWorkAcceptedAt *time.Time
	ExtraWorkDeclinedAt *time.Time
}

func NewCompletion(id, jobID, cleanerID kernel.UUID, now time.Time) (*Completion, error) {
	if err := errors.Join(id.Validate(), jobID.Validate(), cleanerID.Validate()); err != nil {
		return nil, err
	}
	return &Completion{
		id:            id,
		jobID:         jobID,
		cleanerID:     cleanerID,
		status:        Assigned,
		assignedAt:    now,
		isConstructed: true,
	}, nil
}

func Restore(s Snapshot) (*Completion, error) {
	c, err := NewCompletion(s.ID, s.JobID, s.CleanerID, s.AssignedAt)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	c.status = s.Status
	c.startedAt = s.StartedAt
	c.completedAt = s.CompletedAt
	c.droppedOutAt = s.DroppedOutAt
	c.dropoutReason = s.DropoutReason
	c.soloAcceptedAt = s.SoloAcceptedAt
	c.soloDeclinedAt = s.SoloDeclinedAt
	c.extraWorkAcceptedAt = s.ExtraWorkAcceptedAt
	c.extraWorkDeclinedAt = s.ExtraWorkDeclinedAt
	return c, nil
}

func (c *Completion) Snapshot() Snapshot {
	return Snapshot{
		ID:                  c.id,
		JobID:               c.jobID,
		CleanerID:           c.cleanerID,
		Status:              c.status,
		AssignedAt:          c.assignedAt,
		StartedAt:           c.startedAt,
		CompletedAt:         c.completedAt,
		DroppedOutAt:        c.droppedOutAt,
		DropoutReason:       c.dropoutReason,
		SoloAcceptedAt:      c.soloAcceptedAt,
		SoloDeclinedAt:      c.soloDeclinedAt,
		ExtraWorkAcceptedAt: c.extraWorkAcceptedAt,
		ExtraWorkDeclinedAt: c.extraWorkDeclinedAt,
	}
}

func (c *Completion) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCompletionIsNotConstructed
	}
	return nil
}

func (c *Completion) ID() kernel.UUID        { return c.id }
func (c *Completion) JobID() kernel.UUID     { return c.jobID }
func (c *Completion) CleanerID() kernel.UUID { return c.cleanerID }
func (c *Completion) Status() Status         { return c.status }
func (c *Completion) IsActive() bool         { return c.status.IsActive() }
func (c *Completion) AssignedAt() time.Time  { return c.assignedAt }
func (c *Completion) DropoutReason() string  { return c.dropoutReason }

// HasAnsweredExtraWork reports whether the cleaner accepted or declined the current extra-work offer.
func (c *Completion) HasAnsweredExtraWork() bool {
	return c.extraWorkAcceptedAt != nil || c.extraWorkDeclinedAt != nil
}

func (c *Completion) HasAcceptedExtraWork() bool {
	return c.extraWorkAcceptedAt != nil
}

// Start records the cleaner arriving on site.
func (c *Completion) Start(now time.Time) error {
	switch c.status {
	case Started:
		return nil
	case Assigned:
		at := now
		c.startedAt = &at
		c.status = Started
		return nil
	default:
		return errs.NewConflictError(fmt.Sprintf("Cannot start a %s assignment", c.status))
	}
}

// Complete marks the cleaner's share of the job done.
func (c *Completion) Complete(now time.Time) error {
	if c.status == Completed {
		return errs.NewConflictError("Cleaner has already completed this job")
	}
	if !c.status.IsActive() {
		return errs.NewConflictError("Cleaner is not assigned to this job")
	}
	at := now
	if c.startedAt == nil {
		c.startedAt = &at
	}
	c.completedAt = &at
	c.status = Completed
	return nil
}

// DropOut releases the slot. Completed cleaners cannot drop out.
func (c *Completion) DropOut(now time.Time, reason string) error {
	if c.status == Completed {
		return errs.NewConflictError("Cleaner has already completed this job")
	}
	if !c.status.IsActive() {
		return errs.NewConflictError("Cleaner is not assigned to this job")
	}
	at := now
	c.droppedOutAt = &at
	c.dropoutReason = reason
	c.status = DroppedOut
	return nil
}

// Reassign brings a dropped-out cleaner back onto the job and clears per-stint flags.
func (c *Completion) Reassign(now time.Time) error {
	if c.status.IsActive() {
		return errs.NewConflictError("Cleaner is already assigned to this job")
	}
	c.status = Assigned
	c.assignedAt = now
	c.startedAt = nil
	c.completedAt = nil
	c.droppedOutAt = nil
	c.dropoutReason = ""
	c.soloAcceptedAt = nil
	c.soloDeclinedAt = nil
	c.extraWorkAcceptedAt = nil
	c.extraWorkDeclinedAt = nil
	return nil
}

func (c *Completion) AcceptSolo(now time.Time) error {
	if !c.IsActive() {
		return errs.NewConflictError("Cleaner is not assigned to this job")
	}
	at := now
	c.soloAcceptedAt = &at
	return nil
}

func (c *Completion) DeclineSolo(now time.Time) {
	at := now
	c.soloDeclinedAt = &at
}

func (c *Completion) AcceptExtraWork(now time.Time) error {
	if !c.IsActive() {
		return errs.NewConflictError("Cleaner is not assigned to this job")
	}
	if c.HasAnsweredExtraWork() {
		return errs.NewConflictError("Extra work offer already answered")
	}
	at := now
	c.extraWorkAcceptedAt = &at
	return nil
}

func (c *Completion) DeclineExtraWork(now time.Time) error {
	if c.HasAnsweredExtraWork() {
		return errs.NewConflictError("Extra work offer already answered")
	}
	at := now
	c.extraWorkDeclinedAt = &at
	return nil
}

// ResetExtraWork clears a previous answer when a new extra-work round starts.
func (c *Completion) ResetExtraWork() {
	c.extraWorkAcceptedAt = nil
	c.extraWorkDeclinedAt = nil
}
