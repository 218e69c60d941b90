// Package roomrepo persists room assignments. Cleaner ownership of a room is
// changed only by conditional updates so that two fills never claim the same row.
package roomrepo

import (
	"time"

	"multicleaner/internal/adapters/out/postgres/pgtypes"
	"multicleaner/internal/core/domain/model/room"

	"github.com/google/uuid"
)

type RoomDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	JobID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	AppointmentID    uuid.UUID  `gorm:"type:uuid;not null"`
	RoomType         string     `gorm:"type:varchar(32);not null"`
	RoomNumber       int        `gorm:"type:int;not null"`
	RoomLabel        string     `gorm:"type:varchar(64);not null"`
	EstimatedMinutes int        `gorm:"type:int;not null"`
	CleanerID        *uuid.UUID `gorm:"type:uuid;index"`
	Status           string     `gorm:"type:varchar(32);not null"`
	EarningsShare    int64      `gorm:"type:bigint;not null;default:0"`
	CompletedAt      *time.Time
}

func (RoomDTO) TableName() string {
	return "room_assignments"
}

func fromDomain(a *room.Assignment) RoomDTO {
	return RoomDTO{
		ID:               a.ID().Bytes(),
		JobID:            a.JobID().Bytes(),
		AppointmentID:    a.AppointmentID().Bytes(),
		RoomType:         string(a.Type()),
		RoomNumber:       a.Number(),
		RoomLabel:        a.Label(),
		EstimatedMinutes: a.EstimatedMinutes(),
		CleanerID:        pgtypes.NullableID(a.CleanerID()),
		Status:           string(a.Status()),
		EarningsShare:    a.EarningsShare(),
		CompletedAt:      a.CompletedAt(),
	}
}

func toDomain(d RoomDTO) (*room.Assignment, error) {
	id, err := pgtypes.FromID(d.ID)
	if err != nil {
		return nil, err
	}
	jobID, err := pgtypes.FromID(d.JobID)
	if err != nil {
		return nil, err
	}
	appointmentID, err := pgtypes.FromID(d.AppointmentID)
	if err != nil {
		return nil, err
	}
	cleanerID, err := pgtypes.FromNullableID(d.CleanerID)
	if err != nil {
		return nil, err
	}

	unit := room.Unit{
		Type:             room.Type(d.RoomType),
		Number:           d.RoomNumber,
		Label:            d.RoomLabel,
		EstimatedMinutes: d.EstimatedMinutes,
	}
	return room.RestoreAssignment(id, jobID, appointmentID, unit, cleanerID,
		room.Status(d.Status), d.EarningsShare, pgtypes.UTC(d.CompletedAt))
}
