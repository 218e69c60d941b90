// Package notificationrepo stores in-app notifications so a user can list
// them later, independent of the live socket channel.
package notificationrepo

import (
	"context"
	"errors"
	"time"

	"multicleaner/internal/adapters/out/postgres/pgtypes"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationDTO struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	RecipientID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	Kind           string            `gorm:"type:varchar(64);not null"`
	Title          string            `gorm:"type:varchar(255);not null"`
	Body           string            `gorm:"type:text;not null"`
	Data           map[string]string `gorm:"serializer:json;type:text"`
	ActionRequired bool              `gorm:"not null;default:false"`
	ExpiresAt      *time.Time
	ReadAt         *time.Time
	CreatedAt      time.Time `gorm:"not null;index:idx_notifications_recipient"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// Record is a stored notification as shown in a user's inbox.
type Record struct {
	ID             kernel.UUID
	RecipientID    kernel.UUID
	Kind           string
	Title          string
	Body           string
	Data           map[string]string
	ActionRequired bool
	ExpiresAt      *time.Time
	ReadAt         *time.Time
	CreatedAt      time.Time
}

type GormNotificationStore struct {
	db *gorm.DB
}

func NewGormNotificationStore(db *gorm.DB) *GormNotificationStore {
	return &GormNotificationStore{db: db}
}

// Add stores msg for its recipient and returns the new notification id.
func (s *GormNotificationStore) Add(ctx context.Context, msg notice.Message, now time.Time) (kernel.UUID, error) {
	if err := msg.Recipient.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	id := kernel.NewUUID()
	dto := NotificationDTO{
		ID:             id.Bytes(),
		RecipientID:    msg.Recipient.Bytes(),
		Kind:           msg.Kind.String(),
		Title:          msg.Title,
		Body:           msg.Body,
		Data:           msg.Data,
		ActionRequired: msg.ActionRequired,
		ExpiresAt:      pgtypes.UTC(msg.ExpiresAt),
		CreatedAt:      now.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return kernel.UUID{}, err
	}
	return id, nil
}

// ListByRecipient returns the newest notifications first.
func (s *GormNotificationStore) ListByRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
	unreadOnly bool,
	limit int,
) ([]Record, error) {
	if err := recipientID.Validate(); err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Where("recipient_id = ?", recipientID.Bytes())
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []NotificationDTO
	if err := query.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(dtos))
	for _, dto := range dtos {
		id, err := pgtypes.FromID(dto.ID)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			ID:             id,
			RecipientID:    recipientID,
			Kind:           dto.Kind,
			Title:          dto.Title,
			Body:           dto.Body,
			Data:           dto.Data,
			ActionRequired: dto.ActionRequired,
			ExpiresAt:      pgtypes.UTC(dto.ExpiresAt),
			ReadAt:         pgtypes.UTC(dto.ReadAt),
			CreatedAt:      dto.CreatedAt.UTC(),
		})
	}
	return records, nil
}

// MarkRead stamps the notification as read. Marking it twice keeps the first stamp.
func (s *GormNotificationStore) MarkRead(ctx context.Context, id, recipientID kernel.UUID, now time.Time) error {
	var dto NotificationDTO
	err := s.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id.Bytes(), recipientID.Bytes()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("notification", id.String())
		}
		return err
	}
	if dto.ReadAt != nil {
		return nil
	}

	return s.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND read_at IS NULL", dto.ID).
		Update("read_at", now.UTC()).Error
}
