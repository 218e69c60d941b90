package queries

import (
	"errors"
	"time"

	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/guard"
)

var ErrGetJobCleanersQueryIsNotConstructed = errors.New(
	"GetJobCleanersQuery must be created via NewGetJobCleanersQuery constructor",
)

// GetJobCleanersQuery lists the cleaners on a job with what each of them earns.
type GetJobCleanersQuery struct {
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetJobCleanersQuery(jobID kernel.UUID) (GetJobCleanersQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetJobCleanersQuery{}, err
	}
	return GetJobCleanersQuery{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetJobCleanersQuery) Validate() error {
	return q.guard.Validate(ErrGetJobCleanersQueryIsNotConstructed)
}

func (q GetJobCleanersQuery) JobID() kernel.UUID { return q.jobID }

// GetJobCleanersQueryResponse is one active cleaner. Name is empty when the
// user directory has no contact for the cleaner.
type GetJobCleanersQueryResponse struct {
	CleanerID      kernel.UUID
	Name           string
	Status         completion.Status
	AssignedAt     time.Time
	RoomCount      int
	CompletedRooms int
	Minutes        int
	EarningsCents  int64
}
