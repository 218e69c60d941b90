package jobrepo

import (
	"context"
	"errors"
	"time"

	"multicleaner/internal/adapters/out/postgres/pgerrors"
	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"

	"gorm.io/gorm"
)

// unfilled are the states the escalation sweeps look at.
var unfilled = []string{string(job.Open), string(job.PartiallyFilled)}

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db *gorm.DB
}

func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Add saves a new job. A second job for the same appointment is a conflict.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("Appointment already has a multi-cleaner job", err)
		}
		return err
	}
	return nil
}

// Update is an optimistic write: it only matches the row at the version the job was read with.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	values := dto.columns()
	values["version"] = dto.Version + 1

	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError(job.MsgConcurrentModification)
	}

	aggregate.AdvanceVersion()
	return nil
}

func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "job", id, "id = ?", id.Bytes())
}

func (r *GormJobRepository) GetByAppointment(ctx context.Context, appointmentID kernel.UUID) (*job.Job, error) {
	if err := appointmentID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "appointment job", appointmentID, "appointment_id = ?", appointmentID.Bytes())
}

func (r *GormJobRepository) FindEdgeCaseCandidates(ctx context.Context) ([]*job.Job, error) {
	return r.find(r.db.WithContext(ctx).Where(
		"status = ? AND cleaners_confirmed = 1 AND total_cleaners_required = 2 AND edge_case_decision_required = ?",
		string(job.PartiallyFilled), false,
	))
}

func (r *GormJobRepository) FindExpiredEdgeCaseDecisions(ctx context.Context, now time.Time) ([]*job.Job, error) {
	return r.find(r.db.WithContext(ctx).Where(
		"edge_case_decision_required = ? AND homeowner_decision = ? AND edge_case_decision_expires_at < ? AND status NOT IN ?",
		true, string(job.DecisionPending), now, terminal(),
	))
}

func (r *GormJobRepository) FindUrgentFillCandidates(ctx context.Context, now, until time.Time) ([]*job.Job, error) {
	return r.find(r.escalationScope(ctx, now, until).
		Where("multi_cleaner_jobs.urgent_notification_sent_at IS NULL"))
}

func (r *GormJobRepository) FindFinalWarningCandidates(ctx context.Context, now, until time.Time) ([]*job.Job, error) {
	return r.find(r.escalationScope(ctx, now, until).
		Where("multi_cleaner_jobs.final_warning_at IS NULL"))
}

func (r *GormJobRepository) FindExpiredSoloOffers(ctx context.Context, now time.Time) ([]*job.Job, error) {
	return r.find(r.db.WithContext(ctx).Where(
		"solo_offer_sent_at IS NOT NULL AND solo_offer_accepted_at IS NULL AND solo_offer_declined = ? "+
			"AND solo_offer_expired = ? AND solo_offer_expires_at < ? AND status NOT IN ?",
		false, false, now, terminal(),
	))
}

func (r *GormJobRepository) FindExpiredExtraWorkWindows(ctx context.Context, now time.Time) ([]*job.Job, error) {
	return r.find(r.db.WithContext(ctx).Where(
		"extra_work_offers_sent_at IS NOT NULL AND extra_work_offers_expired = ? AND extra_work_offers_expire_at < ? "+
			"AND status NOT IN ?",
		false, now, terminal(),
	))
}

// escalationScope selects unfilled jobs of live appointments dated in [now, until].
func (r *GormJobRepository) escalationScope(ctx context.Context, now, until time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Select("multi_cleaner_jobs.*").
		Joins("JOIN appointments ON appointments.id = multi_cleaner_jobs.appointment_id").
		Where("multi_cleaner_jobs.status IN ?", unfilled).
		Where("appointments.payment_status <> ?", string(appointment.PaymentCancelled)).
		Where("appointments.date >= ? AND appointments.date <= ?", now, until)
}

func (r *GormJobRepository) first(ctx context.Context, param string, id kernel.UUID, query string, args ...any) (*job.Job, error) {
	var dto JobDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormJobRepository) find(scope *gorm.DB) ([]*job.Job, error) {
	var dtos []JobDTO
	if err := scope.Order("multi_cleaner_jobs.created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func terminal() []string {
	return []string{string(job.Completed), string(job.Cancelled)}
}
