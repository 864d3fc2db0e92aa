package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notificationDomain "github.com/Thushyanthini0507/artzyra-server/internal/domain/notification"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// NotificationModel is the GORM model for the notifications table.
type NotificationModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID  `gorm:"type:uuid;index;not null"`
	Kind        string     `gorm:"not null;size:40"`
	Title       string     `gorm:"not null;size:200"`
	Body        string     `gorm:"size:1000"`
	BookingID   *uuid.UUID `gorm:"type:uuid;index"`
	Read        bool       `gorm:"not null;default:false;index"`
	CreatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (NotificationModel) TableName() string {
	return "notifications"
}

// GormNotificationRepository is the GORM-based implementation of
// notification.Repository.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID retrieves a notification by ID.
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notificationDomain.Notification, error) {
	var model NotificationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Notification", id.String())
		}
		return nil, fmt.Errorf("failed to find notification by ID: %w", err)
	}
	return toDomainNotification(&model), nil
}

// FindByRecipient retrieves a user's notifications with pagination, newest
// first.
func (r *GormNotificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, page, limit int) ([]*notificationDomain.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&NotificationModel{}).Where("recipient_id = ?", recipientID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var models []NotificationModel
	offset := (page - 1) * limit
	if err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find notifications: %w", err)
	}

	notifications := make([]*notificationDomain.Notification, len(models))
	for i := range models {
		notifications[i] = toDomainNotification(&models[i])
	}
	return notifications, total, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *GormNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// Save persists a new notification.
func (r *GormNotificationRepository) Save(ctx context.Context, n *notificationDomain.Notification) error {
	model := &NotificationModel{
		ID:          n.ID(),
		RecipientID: n.RecipientID(),
		Kind:        string(n.Kind()),
		Title:       n.Title(),
		Body:        n.Body(),
		BookingID:   n.BookingID(),
		Read:        n.Read(),
		CreatedAt:   n.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// MarkRead marks one notification as read, scoped to its recipient.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Notification", id.String())
	}
	return nil
}

// MarkAllRead marks all of a user's notifications as read.
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// Delete removes one notification, scoped to its recipient.
func (r *GormNotificationRepository) Delete(ctx context.Context, id, recipientID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&NotificationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Notification", id.String())
	}
	return nil
}

func toDomainNotification(m *NotificationModel) *notificationDomain.Notification {
	return notificationDomain.Reconstruct(
		m.ID,
		m.RecipientID,
		notificationDomain.Kind(m.Kind),
		m.Title,
		m.Body,
		m.BookingID,
		m.Read,
		m.CreatedAt,
	)
}
