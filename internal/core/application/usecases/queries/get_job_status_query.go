package queries

import (
	"errors"
	"time"

	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/guard"
)

var ErrGetJobStatusQueryIsNotConstructed = errors.New(
	"GetJobStatusQuery must be created via NewGetJobStatusQuery constructor",
)

// GetJobStatusQuery reads the progress of one job.
type GetJobStatusQuery struct {
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetJobStatusQuery(jobID kernel.UUID) (GetJobStatusQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetJobStatusQuery{}, err
	}
	return GetJobStatusQuery{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetJobStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetJobStatusQueryIsNotConstructed)
}

func (q GetJobStatusQuery) JobID() kernel.UUID { return q.jobID }

// GetJobStatusQueryResponse is the job header plus room progress.
// ProgressPercent is completed rooms over all rooms, rounded down.
type GetJobStatusQueryResponse struct {
	JobID                     kernel.UUID
	AppointmentID             kernel.UUID
	AppointmentDate           time.Time
	Status                    job.Status
	TotalCleanersRequired     int
	CleanersConfirmed         int
	EdgeCaseDecisionRequired  bool
	HomeownerDecision         job.Decision
	EdgeCaseDecisionExpiresAt *time.Time
	TotalRooms                int
	CompletedRooms            int
	ProgressPercent           int
	Cleaners                  []JobStatusCleaner
}

// JobStatusCleaner is one cleaner's share of the job's rooms.
type JobStatusCleaner struct {
	CleanerID      kernel.UUID
	Status         completion.Status
	AssignedRooms  int
	CompletedRooms int
}
