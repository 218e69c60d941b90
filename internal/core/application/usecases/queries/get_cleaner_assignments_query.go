package queries

import (
	"errors"
	"time"

	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/pkg/guard"
)

var ErrGetCleanerAssignmentsQueryIsNotConstructed = errors.New(
	"GetCleanerAssignmentsQuery must be created via NewGetCleanerAssignmentsQuery constructor",
)

// GetCleanerAssignmentsQuery reads a cleaner's room checklist on one job.
type GetCleanerAssignmentsQuery struct {
	jobID     kernel.UUID
	cleanerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCleanerAssignmentsQuery(jobID, cleanerID kernel.UUID) (GetCleanerAssignmentsQuery, error) {
	if err := errors.Join(jobID.Validate(), cleanerID.Validate()); err != nil {
		return GetCleanerAssignmentsQuery{}, err
	}
	return GetCleanerAssignmentsQuery{
		jobID:     jobID,
		cleanerID: cleanerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetCleanerAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetCleanerAssignmentsQueryIsNotConstructed)
}

func (q GetCleanerAssignmentsQuery) JobID() kernel.UUID     { return q.jobID }
func (q GetCleanerAssignmentsQuery) CleanerID() kernel.UUID { return q.cleanerID }

type GetCleanerAssignmentsQueryResponse struct {
	JobID           kernel.UUID
	CleanerID       kernel.UUID
	Status          completion.Status
	AppointmentDate time.Time
	TotalMinutes    int
	EarningsCents   int64
	Rooms           []CleanerRoom
}

// CleanerRoom is one checklist line.
type CleanerRoom struct {
	RoomID           kernel.UUID
	Type             room.Type
	Number           int
	Label            string
	EstimatedMinutes int
	Status           room.Status
	CompletedAt      *time.Time
}
