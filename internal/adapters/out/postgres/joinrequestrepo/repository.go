package joinrequestrepo

import (
	"context"
	"errors"
	"time"

	"multicleaner/internal/adapters/out/postgres/pgerrors"
	"multicleaner/internal/core/domain/model/joinrequest"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"

	"gorm.io/gorm"
)

const MsgDuplicateRequest = "A join request for this job is already pending"

// GormJoinRequestRepository implements ports.JoinRequestRepository using GORM.
type GormJoinRequestRepository struct {
	db *gorm.DB
}

func NewGormJoinRequestRepository(db *gorm.DB) *GormJoinRequestRepository {
	return &GormJoinRequestRepository{db: db}
}

func (r *GormJoinRequestRepository) Add(ctx context.Context, req *joinrequest.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	dto := fromDomain(req)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause(MsgDuplicateRequest, err)
		}
		return err
	}
	req.MarkPersisted()
	return nil
}

func (r *GormJoinRequestRepository) Update(ctx context.Context, req *joinrequest.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	dto := fromDomain(req)
	result := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ? AND status = ?", dto.ID, string(req.PersistedStatus())).
		Updates(map[string]any{
			"status":         dto.Status,
			"responded_at":   dto.RespondedAt,
			"decline_reason": dto.DeclineReason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError(joinrequest.MsgRequestNotPending)
	}
	req.MarkPersisted()
	return nil
}

func (r *GormJoinRequestRepository) Get(ctx context.Context, id kernel.UUID) (*joinrequest.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("join request", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormJoinRequestRepository) HasPending(ctx context.Context, jobID, cleanerID kernel.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("job_id = ? AND cleaner_id = ? AND status = ?", jobID.Bytes(), cleanerID.Bytes(), string(joinrequest.Pending)).
		Count(&n).Error
	return n > 0, err
}

func (r *GormJoinRequestRepository) ListPendingByJob(ctx context.Context, jobID kernel.UUID) ([]*joinrequest.Request, error) {
	return r.find(r.db.WithContext(ctx).
		Where("job_id = ? AND status = ?", jobID.Bytes(), string(joinrequest.Pending)))
}

func (r *GormJoinRequestRepository) FindExpiredPending(ctx context.Context, now time.Time) ([]*joinrequest.Request, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", string(joinrequest.Pending), now))
}

func (r *GormJoinRequestRepository) find(scope *gorm.DB) ([]*joinrequest.Request, error) {
	var dtos []RequestDTO
	if err := scope.Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]*joinrequest.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}
