package completionrepo

import (
	"context"
	"errors"

	"multicleaner/internal/adapters/out/postgres/pgerrors"
	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCompletionRepository implements ports.CompletionRepository using GORM.
type GormCompletionRepository struct {
	db *gorm.DB
}

func NewGormCompletionRepository(db *gorm.DB) *GormCompletionRepository {
	return &GormCompletionRepository{db: db}
}

func (r *GormCompletionRepository) Add(ctx context.Context, c *completion.Completion) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("Cleaner is already assigned to this job", err)
		}
		return err
	}
	return nil
}

func (r *GormCompletionRepository) Update(ctx context.Context, c *completion.Completion) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	result := r.db.WithContext(ctx).Model(&CompletionDTO{}).Where("id = ?", dto.ID).Updates(dto.columns())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("completion", c.ID().String())
	}
	return nil
}

func (r *GormCompletionRepository) GetByJobAndCleaner(
	ctx context.Context,
	jobID, cleanerID kernel.UUID,
) (*completion.Completion, error) {
	var dto CompletionDTO
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND cleaner_id = ?", jobID.Bytes(), cleanerID.Bytes()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cleaner assignment", cleanerID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormCompletionRepository) ListByJob(ctx context.Context, jobID kernel.UUID) ([]*completion.Completion, error) {
	return r.find(r.db.WithContext(ctx).Where("job_id = ?", jobID.Bytes()))
}

func (r *GormCompletionRepository) ListActiveByJob(ctx context.Context, jobID kernel.UUID) ([]*completion.Completion, error) {
	return r.find(r.db.WithContext(ctx).Where("job_id = ? AND status IN ?", jobID.Bytes(), activeStatuses()))
}

func (r *GormCompletionRepository) CountActive(ctx context.Context, jobID kernel.UUID) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&CompletionDTO{}).
		Where("job_id = ? AND status IN ?", jobID.Bytes(), activeStatuses()).
		Count(&n).Error
	return int(n), err
}

func (r *GormCompletionRepository) find(scope *gorm.DB) ([]*completion.Completion, error) {
	var dtos []CompletionDTO
	if err := scope.Order("assigned_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]*completion.Completion, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func activeStatuses() []string {
	out := make([]string, 0, len(completion.ActiveStatuses))
	for _, s := range completion.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}
