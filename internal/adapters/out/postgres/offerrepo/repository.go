package offerrepo

import (
	"context"
	"errors"
	"time"

	"multicleaner/internal/adapters/out/postgres/pgerrors"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/pkg/errs"

	"gorm.io/gorm"
)

const msgDuplicateOffer = "Cleaner already has an active offer for this job"

// GormOfferRepository implements ports.OfferRepository using GORM.
type GormOfferRepository struct {
	db *gorm.DB
}

func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

func (r *GormOfferRepository) Add(ctx context.Context, o *offer.Offer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	dto := fromDomain(o)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause(msgDuplicateOffer, err)
		}
		return err
	}
	o.MarkPersisted()
	return nil
}

// Update only applies when the stored status still matches the status the offer was loaded with,
// so two concurrent responders cannot both move the same offer.
func (r *GormOfferRepository) Update(ctx context.Context, o *offer.Offer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	dto := fromDomain(o)
	result := r.db.WithContext(ctx).
		Model(&OfferDTO{}).
		Where("id = ? AND status = ?", dto.ID, string(o.PersistedStatus())).
		Updates(map[string]any{
			"status":         dto.Status,
			"responded_at":   dto.RespondedAt,
			"decline_reason": dto.DeclineReason,
		})
	if result.Error != nil {
		if pgerrors.IsUniqueViolation(result.Error) {
			return errs.NewConflictErrorWithCause(msgDuplicateOffer, result.Error)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError(offer.MsgOfferUnavailable)
	}
	o.MarkPersisted()
	return nil
}

func (r *GormOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormOfferRepository) HasLive(ctx context.Context, jobID, cleanerID kernel.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&OfferDTO{}).
		Where("job_id = ? AND cleaner_id = ? AND status IN ?", jobID.Bytes(), cleanerID.Bytes(), liveStatuses()).
		Count(&n).Error
	return n > 0, err
}

func (r *GormOfferRepository) ListPendingByJob(ctx context.Context, jobID kernel.UUID) ([]*offer.Offer, error) {
	return r.find(r.db.WithContext(ctx).
		Where("job_id = ? AND status = ?", jobID.Bytes(), string(offer.Pending)))
}

func (r *GormOfferRepository) FindExpiredPending(ctx context.Context, now time.Time) ([]*offer.Offer, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", string(offer.Pending), now))
}

func (r *GormOfferRepository) FindPendingForFilledJobs(ctx context.Context) ([]*offer.Offer, error) {
	return r.find(r.db.WithContext(ctx).
		Select("cleaner_job_offers.*").
		Joins("JOIN multi_cleaner_jobs ON multi_cleaner_jobs.id = cleaner_job_offers.job_id").
		Where("cleaner_job_offers.status = ? AND multi_cleaner_jobs.status = ?", string(offer.Pending), string(job.Filled)))
}

func (r *GormOfferRepository) find(scope *gorm.DB) ([]*offer.Offer, error) {
	var dtos []OfferDTO
	if err := scope.Order("cleaner_job_offers.created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]*offer.Offer, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func liveStatuses() []string {
	return []string{string(offer.Pending), string(offer.Accepted)}
}
