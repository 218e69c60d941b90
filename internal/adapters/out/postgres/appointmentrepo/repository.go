package appointmentrepo

import (
	"context"
	"errors"

	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAppointmentRepository implements ports.AppointmentRepository using GORM.
type GormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

func (r *GormAppointmentRepository) Add(ctx context.Context, a *appointment.Appointment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	dto := fromDomain(a)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormAppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).
		Model(&AppointmentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("appointment", dto.ID.String())
	}
	return nil
}

func (r *GormAppointmentRepository) Get(ctx context.Context, id kernel.UUID) (*appointment.Appointment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AppointmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("appointment", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
