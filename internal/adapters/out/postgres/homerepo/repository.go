package homerepo

import (
	"context"
	"errors"

	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormHomeRepository implements ports.HomeRepository using GORM.
type GormHomeRepository struct {
	db *gorm.DB
}

func NewGormHomeRepository(db *gorm.DB) *GormHomeRepository {
	return &GormHomeRepository{db: db}
}

func (r *GormHomeRepository) Add(ctx context.Context, h *home.Home) error {
	if err := h.Validate(); err != nil {
		return err
	}
	dto := fromDomain(h)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormHomeRepository) Update(ctx context.Context, h *home.Home) error {
	if err := h.Validate(); err != nil {
		return err
	}

	dto := fromDomain(h)
	result := r.db.WithContext(ctx).
		Model(&HomeDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("home", dto.ID.String())
	}
	return nil
}

func (r *GormHomeRepository) Get(ctx context.Context, id kernel.UUID) (*home.Home, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HomeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("home", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
