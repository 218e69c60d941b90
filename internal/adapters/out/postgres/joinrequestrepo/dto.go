// Package joinrequestrepo persists approval-gate join requests.
package joinrequestrepo

import (
	"time"

	"multicleaner/internal/adapters/out/postgres/pgtypes"
	"multicleaner/internal/core/domain/model/joinrequest"
	"multicleaner/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RequestDTO is the cleaner_join_requests row; at most one pending request per job and cleaner.
type RequestDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_join_requests_pending,where:status = 'pending'"`
	CleanerID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_join_requests_pending,where:status = 'pending'"`
	HomeownerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Status            string    `gorm:"type:varchar(32);not null;index"`
	RoomAssignmentIDs []string  `gorm:"serializer:json;type:text"`
	ExpiresAt         time.Time `gorm:"not null"`
	CreatedAt         time.Time `gorm:"not null"`
	RespondedAt       *time.Time
	DeclineReason     string `gorm:"type:text;not null;default:''"`
}

func (RequestDTO) TableName() string {
	return "cleaner_join_requests"
}

func fromDomain(r *joinrequest.Request) RequestDTO {
	s := r.Snapshot()
	return RequestDTO{
		ID:                s.ID.Bytes(),
		JobID:             s.JobID.Bytes(),
		CleanerID:         s.CleanerID.Bytes(),
		HomeownerID:       s.HomeownerID.Bytes(),
		Status:            string(s.Status),
		RoomAssignmentIDs: kernel.UUIDStrings(s.RoomAssignmentIDs),
		ExpiresAt:         s.ExpiresAt,
		CreatedAt:         s.CreatedAt,
		RespondedAt:       s.RespondedAt,
		DeclineReason:     s.DeclineReason,
	}
}

func toDomain(d RequestDTO) (*joinrequest.Request, error) {
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
	homeownerID, err := pgtypes.FromID(d.HomeownerID)
	if err != nil {
		return nil, err
	}
	rooms, err := kernel.UUIDsFromStrings(d.RoomAssignmentIDs)
	if err != nil {
		return nil, err
	}

	return joinrequest.Restore(joinrequest.Snapshot{
		ID:                id,
		JobID:             jobID,
		CleanerID:         cleanerID,
		HomeownerID:       homeownerID,
		Status:            joinrequest.Status(d.Status),
		RoomAssignmentIDs: rooms,
		ExpiresAt:         d.ExpiresAt.UTC(),
		CreatedAt:         d.CreatedAt.UTC(),
		RespondedAt:       pgtypes.UTC(d.RespondedAt),
		DeclineReason:     d.DeclineReason,
	})
}
