// Package completionrepo persists the per-cleaner history of each job.
package completionrepo

import (
	"time"

	"multicleaner/internal/adapters/out/postgres/pgtypes"
	"multicleaner/internal/core/domain/model/completion"

	"github.com/google/uuid"
)

// CompletionDTO is one (job, cleaner) pairing. The pair is unique: a cleaner
// who rejoins reuses the row.
type CompletionDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_completions_job_cleaner"`
	CleanerID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_completions_job_cleaner;index"`
	Status              string    `gorm:"type:varchar(32);not null"`
	AssignedAt          time.Time `gorm:"not null"`
	StartedAt           *time.Time
	CompletedAt         *time.Time
	DroppedOutAt        *time.Time
	DropoutReason       string `gorm:"type:text;not null;default:''"`
	SoloAcceptedAt      *time.Time
	SoloDeclinedAt      *time.Time
	ExtraWorkAcceptedAt *time.Time
	ExtraWorkDeclinedAt *time.Time
}

func (CompletionDTO) TableName() string {
	return "cleaner_job_completions"
}

func fromDomain(c *completion.Completion) CompletionDTO {
	s := c.Snapshot()
	return CompletionDTO{
		ID:                  s.ID.Bytes(),
		JobID:               s.JobID.Bytes(),
		CleanerID:           s.CleanerID.Bytes(),
		Status:              string(s.Status),
		AssignedAt:          s.AssignedAt,
		StartedAt:           s.StartedAt,
		CompletedAt:         s.CompletedAt,
		DroppedOutAt:        s.DroppedOutAt,
		DropoutReason:       s.DropoutReason,
		SoloAcceptedAt:      s.SoloAcceptedAt,
		SoloDeclinedAt:      s.SoloDeclinedAt,
		ExtraWorkAcceptedAt: s.ExtraWorkAcceptedAt,
		ExtraWorkDeclinedAt: s.ExtraWorkDeclinedAt,
	}
}

func (d CompletionDTO) columns() map[string]any {
	return map[string]any{
		"status":                 d.Status,
		"assigned_at":            d.AssignedAt,
		"started_at":             d.StartedAt,
		"completed_at":           d.CompletedAt,
		"dropped_out_at":         d.DroppedOutAt,
		"dropout_reason":         d.DropoutReason,
		"solo_accepted_at":       d.SoloAcceptedAt,
		"solo_declined_at":       d.SoloDeclinedAt,
		"extra_work_accepted_at": d.ExtraWorkAcceptedAt,
		"extra_work_declined_at": d.ExtraWorkDeclinedAt,
	}
}

func toDomain(d CompletionDTO) (*completion.Completion, error) {
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

	return completion.Restore(completion.Snapshot{
		ID:                  id,
		JobID:               jobID,
		CleanerID:           cleanerID,
		Status:              completion.Status(d.Status),
		AssignedAt:          d.AssignedAt.UTC(),
		StartedAt:           pgtypes.UTC(d.StartedAt),
		CompletedAt:         pgtypes.UTC(d.CompletedAt),
		DroppedOutAt:        pgtypes.UTC(d.DroppedOutAt),
		DropoutReason:       d.DropoutReason,
		SoloAcceptedAt:      pgtypes.UTC(d.SoloAcceptedAt),
		SoloDeclinedAt:      pgtypes.UTC(d.SoloDeclinedAt),
		ExtraWorkAcceptedAt: pgtypes.UTC(d.ExtraWorkAcceptedAt),
		ExtraWorkDeclinedAt: pgtypes.UTC(d.ExtraWorkDeclinedAt),
	})
}
