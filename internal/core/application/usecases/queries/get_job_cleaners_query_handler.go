package queries

import (
	"context"
	"time"

	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/core/ports"
	"multicleaner/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetJobCleanersQueryHandler struct {
	db      *gorm.DB
	pricing ports.PricingService
}

func NewGetJobCleanersQueryHandler(db *gorm.DB, pricing ports.PricingService) GetJobCleanersQueryHandler {
	return GetJobCleanersQueryHandler{db: db, pricing: pricing}
}

// Handle lists active cleaners in join order. Earnings come from the pricing
// service's breakdown over the job's current room assignment.
func (h GetJobCleanersQueryHandler) Handle(
	ctx context.Context,
	query GetJobCleanersQuery,
) ([]GetJobCleanersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var jobs int64
	err := h.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM multi_cleaner_jobs WHERE id = ?`,
		query.JobID().Bytes()).Row().Scan(&jobs)
	if err != nil {
		return nil, err
	}
	if jobs == 0 {
		return nil, errs.NewObjectNotFoundError("job", query.JobID().String())
	}

	cleaners, err := h.activeCleaners(ctx, query.JobID())
	if err != nil {
		return nil, err
	}
	rooms, err := h.rooms(ctx, query.JobID())
	if err != nil {
		return nil, err
	}

	lines, err := h.pricing.GenerateEarningsBreakdown(ctx, rooms)
	if err != nil {
		return nil, errs.NewUpstreamError("pricing", err)
	}
	byCleaner := make(map[kernel.UUID]ports.EarningsLine, len(lines))
	for _, l := range lines {
		byCleaner[l.CleanerID] = l
	}

	for i := range cleaners {
		l := byCleaner[cleaners[i].CleanerID]
		cleaners[i].RoomCount = l.RoomCount
		cleaners[i].CompletedRooms = l.CompletedRooms
		cleaners[i].Minutes = l.Minutes
		cleaners[i].EarningsCents = l.EarningsCents
	}

	return cleaners, nil
}

func (h GetJobCleanersQueryHandler) activeCleaners(
	ctx context.Context,
	jobID kernel.UUID,
) ([]GetJobCleanersQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.cleaner_id,
			COALESCE(u.name, ''),
			c.status,
			c.assigned_at
		FROM cleaner_job_completions c
		LEFT JOIN contacts u ON u.id = c.cleaner_id
		WHERE c.job_id = ? AND c.status IN ?
		ORDER BY c.assigned_at, c.cleaner_id
	`, jobID.Bytes(), activeCompletionStatuses()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cleaners := make([]GetJobCleanersQueryResponse, 0)
	for rows.Next() {
		var line GetJobCleanersQueryResponse
		var id uuid.UUID
		var status string
		var assignedAt time.Time

		if err = rows.Scan(&id, &line.Name, &status, &assignedAt); err != nil {
			return nil, err
		}

		if line.CleanerID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		line.Status = completion.Status(status)
		line.AssignedAt = assignedAt.UTC()
		cleaners = append(cleaners, line)
	}

	return cleaners, rows.Err()
}

func (h GetJobCleanersQueryHandler) rooms(ctx context.Context, jobID kernel.UUID) ([]*room.Assignment, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			appointment_id,
			room_type,
			room_number,
			room_label,
			estimated_minutes,
			cleaner_id,
			status,
			earnings_share,
			completed_at
		FROM room_assignments
		WHERE job_id = ?
	`, jobID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]*room.Assignment, 0)
	for rows.Next() {
		var (
			id, appointmentID uuid.UUID
			cleanerID         *uuid.UUID
			unit              room.Unit
			roomType, status  string
			share             int64
			completedAt       *time.Time
		)
		err = rows.Scan(
			&id,
			&appointmentID,
			&roomType,
			&unit.Number,
			&unit.Label,
			&unit.EstimatedMinutes,
			&cleanerID,
			&status,
			&share,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}
		unit.Type = room.Type(roomType)

		roomID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		apptID, idErr := kernel.UUIDFromBytes(appointmentID[:])
		if idErr != nil {
			return nil, idErr
		}
		var holder *kernel.UUID
		if cleanerID != nil {
			c, idErr := kernel.UUIDFromBytes(cleanerID[:])
			if idErr != nil {
				return nil, idErr
			}
			holder = &c
		}

		a, restoreErr := room.RestoreAssignment(roomID, jobID, apptID, unit, holder, room.Status(status), share, completedAt)
		if restoreErr != nil {
			return nil, restoreErr
		}
		rooms = append(rooms, a)
	}

	return rooms, rows.Err()
}
