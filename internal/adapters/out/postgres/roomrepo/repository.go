package roomrepo

import (
	"context"
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRoomRepository implements ports.RoomRepository using GORM.
type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) AddAll(ctx context.Context, rooms []*room.Assignment) error {
	if len(rooms) == 0 {
		return nil
	}
	dtos := make([]RoomDTO, 0, len(rooms))
	for _, a := range rooms {
		if err := a.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(a))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormRoomRepository) Update(ctx context.Context, a *room.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).
		Model(&RoomDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":         dto.Status,
			"earnings_share": dto.EarningsShare,
			"completed_at":   dto.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("room", a.ID().String())
	}
	return nil
}

func (r *GormRoomRepository) Get(ctx context.Context, id kernel.UUID) (*room.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RoomDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("room", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// ListByJob returns the job's rooms ordered by type and number.
func (r *GormRoomRepository) ListByJob(ctx context.Context, jobID kernel.UUID) ([]*room.Assignment, error) {
	var dtos []RoomDTO
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID.Bytes()).
		Order("room_type, room_number").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	rooms := make([]*room.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, a)
	}
	return rooms, nil
}

// Claim is a compare-and-swap on cleaner_id: rows already owned by someone are left untouched.
func (r *GormRoomRepository) Claim(
	ctx context.Context,
	jobID kernel.UUID,
	roomIDs []kernel.UUID,
	cleanerID kernel.UUID,
) (int, error) {
	if len(roomIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&RoomDTO{}).
		Where("job_id = ? AND id IN ? AND cleaner_id IS NULL", jobID.Bytes(), kernel.UUIDStrings(roomIDs)).
		Update("cleaner_id", cleanerID.Bytes())
	return int(result.RowsAffected), result.Error
}

func (r *GormRoomRepository) ReleaseCleaner(ctx context.Context, jobID, cleanerID kernel.UUID) (int, error) {
	result := r.db.WithContext(ctx).
		Model(&RoomDTO{}).
		Where("job_id = ? AND cleaner_id = ? AND status <> ?", jobID.Bytes(), cleanerID.Bytes(), string(room.Completed)).
		Updates(map[string]any{
			"cleaner_id": nil,
			"status":     string(room.Pending),
		})
	return int(result.RowsAffected), result.Error
}
