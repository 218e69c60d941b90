// Package homerepo persists homes and their preferred cleaners.
package homerepo

import (
	"multicleaner/internal/adapters/out/postgres/pgtypes"
	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type HomeDTO struct {
	ID                        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID                   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Beds                      int        `gorm:"type:int;not null"`
	Baths                     float64    `gorm:"type:numeric(4,1);not null"`
	Sqft                      int        `gorm:"type:int;not null;default:0"`
	PreferredCleanerIDs       []string   `gorm:"serializer:json;type:text"`
	PrimaryPreferredCleanerID *uuid.UUID `gorm:"type:uuid"`
}

func (HomeDTO) TableName() string {
	return "homes"
}

func fromDomain(h *home.Home) HomeDTO {
	return HomeDTO{
		ID:                        h.ID().Bytes(),
		OwnerID:                   h.OwnerID().Bytes(),
		Beds:                      h.Beds(),
		Baths:                     h.Baths(),
		Sqft:                      h.Sqft(),
		PreferredCleanerIDs:       kernel.UUIDStrings(h.PreferredCleaners()),
		PrimaryPreferredCleanerID: pgtypes.NullableID(h.PrimaryPreferredCleaner()),
	}
}

func toDomain(d HomeDTO) (*home.Home, error) {
	id, err := pgtypes.FromID(d.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := pgtypes.FromID(d.OwnerID)
	if err != nil {
		return nil, err
	}
	preferred, err := kernel.UUIDsFromStrings(d.PreferredCleanerIDs)
	if err != nil {
		return nil, err
	}
	primary, err := pgtypes.FromNullableID(d.PrimaryPreferredCleanerID)
	if err != nil {
		return nil, err
	}
	return home.RestoreHome(id, ownerID, d.Beds, d.Baths, d.Sqft, preferred, primary)
}
