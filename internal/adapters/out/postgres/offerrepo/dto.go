// Package offerrepo persists cleaner job offers.
package offerrepo

import (
	"time"

	"multicleaner/internal/adapters/out/postgres/pgtypes"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/offer"

	"github.com/google/uuid"
)

// OfferDTO is the cleaner_job_offers row. The partial unique index allows at most
// one pending or accepted offer per job and cleaner.
type OfferDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_offers_live,where:status = 'pending' OR status = 'accepted'"`
	CleanerID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_offers_live,where:status = 'pending' OR status = 'accepted'"`
	OfferType       string    `gorm:"type:varchar(32);not null"`
	Status          string    `gorm:"type:varchar(32);not null;index"`
	EarningsOffered int64     `gorm:"type:bigint;not null"`
	RoomsOffered    []string  `gorm:"serializer:json;type:text"`
	ExpiresAt       time.Time `gorm:"not null;index"`
	CreatedAt       time.Time `gorm:"not null"`
	RespondedAt     *time.Time
	DeclineReason   string `gorm:"type:text;not null;default:''"`
}

func (OfferDTO) TableName() string {
	return "cleaner_job_offers"
}

func fromDomain(o *offer.Offer) OfferDTO {
	s := o.Snapshot()
	return OfferDTO{
		ID:              s.ID.Bytes(),
		JobID:           s.JobID.Bytes(),
		CleanerID:       s.CleanerID.Bytes(),
		OfferType:       string(s.Type),
		Status:          string(s.Status),
		EarningsOffered: s.EarningsOffered,
		RoomsOffered:    kernel.UUIDStrings(s.RoomsOffered),
		ExpiresAt:       s.ExpiresAt,
		CreatedAt:       s.CreatedAt,
		RespondedAt:     s.RespondedAt,
		DeclineReason:   s.DeclineReason,
	}
}

func toDomain(d OfferDTO) (*offer.Offer, error) {
	id, err := pgtypes.FromID(d.ID)
	if err != nil {
		return nil, err
	}
	jobID, err := pgtypes.FromID(d.JobID)
	if err != nil {
		return nil, err
	}
	cleanerID, err := pgtypes.FromID(d.CleanerID)
	if err != nil {
		return nil, err
	}
	rooms, err := kernel.UUIDsFromStrings(d.RoomsOffered)
	if err != nil {
		return nil, err
	}

	return offer.Restore(offer.Snapshot{
		ID:              id,
		JobID:           jobID,
		CleanerID:       cleanerID,
		Type:            offer.Type(d.OfferType),
		Status:          offer.Status(d.Status),
		EarningsOffered: d.EarningsOffered,
		RoomsOffered:    rooms,
		ExpiresAt:       d.ExpiresAt.UTC(),
		CreatedAt:       d.CreatedAt.UTC(),
		RespondedAt:     pgtypes.UTC(d.RespondedAt),
		DeclineReason:   d.DeclineReason,
	})
}
