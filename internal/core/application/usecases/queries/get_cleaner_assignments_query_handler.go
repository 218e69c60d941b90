package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetCleanerAssignmentsQueryHandler struct {
	db *gorm.DB
}

func NewGetCleanerAssignmentsQueryHandler(db *gorm.DB) GetCleanerAssignmentsQueryHandler {
	return GetCleanerAssignmentsQueryHandler{db: db}
}

// Handle returns the rooms currently assigned to the cleaner ordered by type and number.
// A cleaner who never joined the job is reported as not found; one who dropped out
// gets an empty checklist.
func (h GetCleanerAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetCleanerAssignmentsQuery,
) (GetCleanerAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCleanerAssignmentsQueryResponse{}, err
	}

	result := GetCleanerAssignmentsQueryResponse{
		JobID:     query.JobID(),
		CleanerID: query.CleanerID(),
		Rooms:     make([]CleanerRoom, 0),
	}

	var status string
	var date time.Time
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.status,
			a.date
		FROM cleaner_job_completions c
		JOIN multi_cleaner_jobs j ON j.id = c.job_id
		JOIN appointments a ON a.id = j.appointment_id
		WHERE c.job_id = ? AND c.cleaner_id = ?
	`, query.JobID().Bytes(), query.CleanerID().Bytes()).Row().Scan(&status, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCleanerAssignmentsQueryResponse{}, errs.NewObjectNotFoundError("cleaner assignment", query.CleanerID().String())
	}
	if err != nil {
		return GetCleanerAssignmentsQueryResponse{}, err
	}
	result.Status = completion.Status(status)
	result.AppointmentDate = date.UTC()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			room_type,
			room_number,
			room_label,
			estimated_minutes,
			status,
			earnings_share,
			completed_at
		FROM room_assignments
		WHERE job_id = ? AND cleaner_id = ?
		ORDER BY room_type, room_number
	`, query.JobID().Bytes(), query.CleanerID().Bytes()).Rows()
	if err != nil {
		return GetCleanerAssignmentsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var line CleanerRoom
		var id uuid.UUID
		var roomType, roomStatus string
		var share int64

		err = rows.Scan(
			&id,
			&roomType,
			&line.Number,
			&line.Label,
			&line.EstimatedMinutes,
			&roomStatus,
			&share,
			&line.CompletedAt,
		)
		if err != nil {
			return GetCleanerAssignmentsQueryResponse{}, err
		}

		roomID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetCleanerAssignmentsQueryResponse{}, idErr
		}
		line.RoomID = roomID
		line.Type = room.Type(roomType)
		line.Status = room.Status(roomStatus)
		if line.CompletedAt != nil {
			utc := line.CompletedAt.UTC()
			line.CompletedAt = &utc
		}

		result.TotalMinutes += line.EstimatedMinutes
		result.EarningsCents += share
		result.Rooms = append(result.Rooms, line)
	}

	if err = rows.Err(); err != nil {
		return GetCleanerAssignmentsQueryResponse{}, err
	}

	return result, nil
}
