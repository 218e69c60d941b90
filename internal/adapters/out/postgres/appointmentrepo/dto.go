// Package appointmentrepo persists appointments.
package appointmentrepo

import (
	"time"

	"multicleaner/internal/adapters/out/postgres/pgtypes"
	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AppointmentDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	HomeID             uuid.UUID `gorm:"type:uuid;not null;index"`
	HomeownerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Date               time.Time `gorm:"not null;index"`
	PriceCents         int64     `gorm:"type:bigint;not null"`
	PaymentStatus      string    `gorm:"type:varchar(32);not null"`
	HasBeenAssigned    bool      `gorm:"not null;default:false"`
	AssignedCleanerIDs []string  `gorm:"serializer:json;type:text"`
}

func (AppointmentDTO) TableName() string {
	return "appointments"
}

func fromDomain(a *appointment.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:                 a.ID().Bytes(),
		HomeID:             a.HomeID().Bytes(),
		HomeownerID:        a.HomeownerID().Bytes(),
		Date:               a.Date(),
		PriceCents:         a.PriceCents(),
		PaymentStatus:      string(a.PaymentStatus()),
		HasBeenAssigned:    a.HasBeenAssigned(),
		AssignedCleanerIDs: kernel.UUIDStrings(a.AssignedCleaners()),
	}
}

func toDomain(d AppointmentDTO) (*appointment.Appointment, error) {
	id, err := pgtypes.FromID(d.ID)
	if err != nil {
		return nil, err
	}
	homeID, err := pgtypes.FromID(d.HomeID)
	if err != nil {
		return nil, err
	}
	homeownerID, err := pgtypes.FromID(d.HomeownerID)
	if err != nil {
		return nil, err
	}
	assigned, err := kernel.UUIDsFromStrings(d.AssignedCleanerIDs)
	if err != nil {
		return nil, err
	}

	return appointment.RestoreAppointment(id, homeID, homeownerID, d.Date.UTC(), d.PriceCents,
		appointment.PaymentStatus(d.PaymentStatus), d.HasBeenAssigned, assigned)
}
