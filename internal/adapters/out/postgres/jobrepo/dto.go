// Package jobrepo persists MultiCleanerJob aggregates with optimistic versioning.
package jobrepo

import (
	"time"

	"multicleaner/internal/adapters/out/postgres/pgtypes"
	"multicleaner/internal/core/domain/model/job"

	"github.com/google/uuid"
)

// JobDTO is the multi_cleaner_jobs row.
type JobDTO struct {
	ID                        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AppointmentID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	TotalCleanersRequired     int        `gorm:"type:int;not null"`
	CleanersConfirmed         int        `gorm:"type:int;not null;default:0"`
	Status                    string     `gorm:"type:varchar(32);not null;index"`
	IsAutoGenerated           bool       `gorm:"not null;default:false"`
	PrimaryCleanerID          *uuid.UUID `gorm:"type:uuid"`
	TotalEstimatedMinutes     int        `gorm:"type:int;not null"`
	EdgeCaseDecisionRequired  bool       `gorm:"not null;default:false"`
	HomeownerDecision         string     `gorm:"type:varchar(32);not null;default:''"`
	EdgeCaseDecisionSentAt    *time.Time
	EdgeCaseDecisionExpiresAt *time.Time
	UrgentNotificationSentAt  *time.Time
	FinalWarningAt            *time.Time
	SoloOfferSentAt           *time.Time
	SoloOfferExpiresAt        *time.Time
	SoloOfferAcceptedAt       *time.Time
	SoloOfferDeclined         bool `gorm:"not null;default:false"`
	SoloOfferExpired          bool `gorm:"not null;default:false"`
	ExtraWorkOffersSentAt     *time.Time
	ExtraWorkOffersExpireAt   *time.Time
	ExtraWorkOffersExpired    bool      `gorm:"not null;default:false"`
	Version                   int       `gorm:"type:int;not null"`
	CreatedAt                 time.Time `gorm:"not null"`
}

func (JobDTO) TableName() string {
	return "multi_cleaner_jobs"
}

func fromDomain(j *job.Job) JobDTO {
	s := j.Snapshot()
	return JobDTO{
		ID:                        s.ID.Bytes(),
		AppointmentID:             s.AppointmentID.Bytes(),
		TotalCleanersRequired:     s.TotalCleanersRequired,
		CleanersConfirmed:         s.CleanersConfirmed,
		Status:                    string(s.Status),
		IsAutoGenerated:           s.IsAutoGenerated,
		PrimaryCleanerID:          pgtypes.NullableID(s.PrimaryCleanerID),
		TotalEstimatedMinutes:     s.TotalEstimatedMinutes,
		EdgeCaseDecisionRequired:  s.EdgeCaseDecisionRequired,
		HomeownerDecision:         string(s.HomeownerDecision),
		EdgeCaseDecisionSentAt:    s.EdgeCaseDecisionSentAt,
		EdgeCaseDecisionExpiresAt: s.EdgeCaseDecisionExpiresAt,
		UrgentNotificationSentAt:  s.UrgentNotificationSentAt,
		FinalWarningAt:            s.FinalWarningAt,
		SoloOfferSentAt:           s.SoloOfferSentAt,
		SoloOfferExpiresAt:        s.SoloOfferExpiresAt,
		SoloOfferAcceptedAt:       s.SoloOfferAcceptedAt,
		SoloOfferDeclined:         s.SoloOfferDeclined,
		SoloOfferExpired:          s.SoloOfferExpired,
		ExtraWorkOffersSentAt:     s.ExtraWorkOffersSentAt,
		ExtraWorkOffersExpireAt:   s.ExtraWorkOffersExpireAt,
		ExtraWorkOffersExpired:    s.ExtraWorkOffersExpired,
		Version:                   s.Version,
		CreatedAt:                 s.CreatedAt,
	}
}

// columns is the update set for everything except the key, the appointment and the creation time.
func (d JobDTO) columns() map[string]any {
	return map[string]any{
		"total_cleaners_required":       d.TotalCleanersRequired,
		"cleaners_confirmed":            d.CleanersConfirmed,
		"status":                        d.Status,
		"is_auto_generated":             d.IsAutoGenerated,
		"primary_cleaner_id":            d.PrimaryCleanerID,
		"total_estimated_minutes":       d.TotalEstimatedMinutes,
		"edge_case_decision_required":   d.EdgeCaseDecisionRequired,
		"homeowner_decision":            d.HomeownerDecision,
		"edge_case_decision_sent_at":    d.EdgeCaseDecisionSentAt,
		"edge_case_decision_expires_at": d.EdgeCaseDecisionExpiresAt,
		"urgent_notification_sent_at":   d.UrgentNotificationSentAt,
		"final_warning_at":              d.FinalWarningAt,
		"solo_offer_sent_at":            d.SoloOfferSentAt,
		"solo_offer_expires_at":         d.SoloOfferExpiresAt,
		"solo_offer_accepted_at":        d.SoloOfferAcceptedAt,
		"solo_offer_declined":           d.SoloOfferDeclined,
		"solo_offer_expired":            d.SoloOfferExpired,
		"extra_work_offers_sent_at":     d.ExtraWorkOffersSentAt,
		"extra_work_offers_expire_at":   d.ExtraWorkOffersExpireAt,
		"extra_work_offers_expired":     d.ExtraWorkOffersExpired,
	}
}

func toDomain(d JobDTO) (*job.Job, error) {
	id, err := pgtypes.FromID(d.ID)
	if err != nil {
		return nil, err
	}
	appointmentID, err := pgtypes.FromID(d.AppointmentID)
	if err != nil {
		return nil, err
	}
	primary, err := pgtypes.FromNullableID(d.PrimaryCleanerID)
	if err != nil {
		return nil, err
	}

	return job.Restore(job.Snapshot{
		ID:                        id,
		AppointmentID:             appointmentID,
		TotalCleanersRequired:     d.TotalCleanersRequired,
		CleanersConfirmed:         d.CleanersConfirmed,
		Status:                    job.Status(d.Status),
		IsAutoGenerated:           d.IsAutoGenerated,
		PrimaryCleanerID:          primary,
		TotalEstimatedMinutes:     d.TotalEstimatedMinutes,
		EdgeCaseDecisionRequired:  d.EdgeCaseDecisionRequired,
		HomeownerDecision:         job.Decision(d.HomeownerDecision),
		EdgeCaseDecisionSentAt:    pgtypes.UTC(d.EdgeCaseDecisionSentAt),
		EdgeCaseDecisionExpiresAt: pgtypes.UTC(d.EdgeCaseDecisionExpiresAt),
		UrgentNotificationSentAt:  pgtypes.UTC(d.UrgentNotificationSentAt),
		FinalWarningAt:            pgtypes.UTC(d.FinalWarningAt),
		SoloOfferSentAt:           pgtypes.UTC(d.SoloOfferSentAt),
		SoloOfferExpiresAt:        pgtypes.UTC(d.SoloOfferExpiresAt),
		SoloOfferAcceptedAt:       pgtypes.UTC(d.SoloOfferAcceptedAt),
		SoloOfferDeclined:         d.SoloOfferDeclined,
		SoloOfferExpired:          d.SoloOfferExpired,
		ExtraWorkOffersSentAt:     pgtypes.UTC(d.ExtraWorkOffersSentAt),
		ExtraWorkOffersExpireAt:   pgtypes.UTC(d.ExtraWorkOffersExpireAt),
		ExtraWorkOffersExpired:    d.ExtraWorkOffersExpired,
		Version:                   d.Version,
		CreatedAt:                 d.CreatedAt.UTC(),
	})
}
