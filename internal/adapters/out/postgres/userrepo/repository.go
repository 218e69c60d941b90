// Package userrepo is the gorm-backed user directory used to address notifications.
package userrepo

import (
	"context"
	"errors"

	"multicleaner/internal/adapters/out/postgres/pgtypes"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/ports"
	"multicleaner/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContactDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);not null;default:''"`
	PushToken string    `gorm:"type:text;not null;default:''"`
}

func (ContactDTO) TableName() string {
	return "contacts"
}

// GormUserDirectory implements ports.UserDirectory using GORM.
type GormUserDirectory struct {
	db *gorm.DB
}

func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

func (r *GormUserDirectory) Get(ctx context.Context, id kernel.UUID) (ports.Contact, error) {
	if err := id.Validate(); err != nil {
		return ports.Contact{}, err
	}

	var dto ContactDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Contact{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return ports.Contact{}, err
	}

	contactID, err := pgtypes.FromID(dto.ID)
	if err != nil {
		return ports.Contact{}, err
	}
	return ports.Contact{ID: contactID, Name: dto.Name, Email: dto.Email, PushToken: dto.PushToken}, nil
}

// Upsert inserts the contact or overwrites every field of an existing one.
func (r *GormUserDirectory) Upsert(ctx context.Context, c ports.Contact) error {
	if err := c.ID.Validate(); err != nil {
		return err
	}
	if c.Name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	dto := ContactDTO{ID: c.ID.Bytes(), Name: c.Name, Email: c.Email, PushToken: c.PushToken}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
