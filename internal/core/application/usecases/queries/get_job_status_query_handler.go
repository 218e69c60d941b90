package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetJobStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetJobStatusQueryHandler(db *gorm.DB) GetJobStatusQueryHandler {
	return GetJobStatusQueryHandler{db: db}
}

// Handle returns the job header, room totals and a line per cleaner who is
// still on the job. Dropped out cleaners are left out.
func (h GetJobStatusQueryHandler) Handle(ctx context.Context, query GetJobStatusQuery) (GetJobStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetJobStatusQueryResponse{}, err
	}

	result := GetJobStatusQueryResponse{JobID: query.JobID(), Cleaners: make([]JobStatusCleaner, 0)}

	var (
		appointmentID uuid.UUID
		date          time.Time
		status        string
		decision      string
		expiresAt     *time.Time
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			j.appointment_id,
			a.date,
			j.status,
			j.total_cleaners_required,
			j.cleaners_confirmed,
			j.edge_case_decision_required,
			j.homeowner_decision,
			j.edge_case_decision_expires_at
		FROM multi_cleaner_jobs j
		JOIN appointments a ON a.id = j.appointment_id
		WHERE j.id = ?
	`, query.JobID().Bytes()).Row().Scan(
		&appointmentID,
		&date,
		&status,
		&result.TotalCleanersRequired,
		&result.CleanersConfirmed,
		&result.EdgeCaseDecisionRequired,
		&decision,
		&expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetJobStatusQueryResponse{}, errs.NewObjectNotFoundError("job", query.JobID().String())
	}
	if err != nil {
		return GetJobStatusQueryResponse{}, err
	}

	if result.AppointmentID, err = kernel.UUIDFromBytes(appointmentID[:]); err != nil {
		return GetJobStatusQueryResponse{}, err
	}
	result.AppointmentDate = date.UTC()
	result.Status = job.Status(status)
	result.HomeownerDecision = job.Decision(decision)
	if expiresAt != nil {
		utc := expiresAt.UTC()
		result.EdgeCaseDecisionExpiresAt = &utc
	}

	perCleaner, err := h.roomCounts(ctx, query.JobID(), &result)
	if err != nil {
		return GetJobStatusQueryResponse{}, err
	}
	if result.TotalRooms > 0 {
		result.ProgressPercent = result.CompletedRooms * 100 / result.TotalRooms
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			cleaner_id,
			status
		FROM cleaner_job_completions
		WHERE job_id = ? AND status IN ?
		ORDER BY assigned_at, cleaner_id
	`, query.JobID().Bytes(), activeCompletionStatuses()).Rows()
	if err != nil {
		return GetJobStatusQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var cleanerID uuid.UUID
		var cleanerStatus string
		if err = rows.Scan(&cleanerID, &cleanerStatus); err != nil {
			return GetJobStatusQueryResponse{}, err
		}

		id, idErr := kernel.UUIDFromBytes(cleanerID[:])
		if idErr != nil {
			return GetJobStatusQueryResponse{}, idErr
		}
		line := perCleaner[id]
		line.CleanerID = id
		line.Status = completion.Status(cleanerStatus)
		result.Cleaners = append(result.Cleaners, line)
	}

	if err = rows.Err(); err != nil {
		return GetJobStatusQueryResponse{}, err
	}

	return result, nil
}

// roomCounts fills the job-wide totals and returns the per-cleaner tallies.
func (h GetJobStatusQueryHandler) roomCounts(
	ctx context.Context,
	jobID kernel.UUID,
	result *GetJobStatusQueryResponse,
) (map[kernel.UUID]JobStatusCleaner, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			cleaner_id,
			status
		FROM room_assignments
		WHERE job_id = ?
	`, jobID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perCleaner := make(map[kernel.UUID]JobStatusCleaner)
	for rows.Next() {
		var cleanerID *uuid.UUID
		var status string
		if err = rows.Scan(&cleanerID, &status); err != nil {
			return nil, err
		}

		completed := room.Status(status) == room.Completed
		result.TotalRooms++
		if completed {
			result.CompletedRooms++
		}
		if cleanerID == nil {
			continue
		}

		id, idErr := kernel.UUIDFromBytes(cleanerID[:])
		if idErr != nil {
			return nil, idErr
		}
		line := perCleaner[id]
		line.AssignedRooms++
		if completed {
			line.CompletedRooms++
		}
		perCleaner[id] = line
	}

	return perCleaner, rows.Err()
}

func activeCompletionStatuses() []string {
	return []string{
		string(completion.Assigned),
		string(completion.Started),
		string(completion.Completed),
	}
}
