package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attachmentDomain "github.com/Thushyanthini0507/artzyra-server/internal/domain/attachment"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// AttachmentModel is the GORM model for the attachments table.
type AttachmentModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	BookingID *uuid.UUID `gorm:"type:uuid;index"`
	Purpose   string     `gorm:"not null;size:20;index"`
	FileName  string     `gorm:"not null;size:255"`
	MimeType  string     `gorm:"not null;size:100"`
	SizeBytes int64      `gorm:"not null"`
	URL       string     `gorm:"not null;size:500"`
	StoreRef  string     `gorm:"not null;size:255"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (AttachmentModel) TableName() string {
	return "attachments"
}

// GormAttachmentRepository is the GORM-based implementation of
// attachment.Repository.
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository.
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// FindByID retrieves an attachment by ID.
func (r *GormAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*attachmentDomain.Attachment, error) {
	var model AttachmentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Attachment", id.String())
		}
		return nil, fmt.Errorf("failed to find attachment by ID: %w", err)
	}
	return toDomainAttachment(&model), nil
}

// FindByBookingID retrieves the attachments on a booking, oldest first.
func (r *GormAttachmentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*attachmentDomain.Attachment, error) {
	var models []AttachmentModel
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find booking attachments: %w", err)
	}
	return toDomainAttachments(models), nil
}

// FindByOwnerID retrieves a user's attachments for one purpose.
func (r *GormAttachmentRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, purpose attachmentDomain.Purpose) ([]*attachmentDomain.Attachment, error) {
	var models []AttachmentModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND purpose = ?", ownerID, string(purpose)).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner attachments: %w", err)
	}
	return toDomainAttachments(models), nil
}

// Save persists a new attachment.
func (r *GormAttachmentRepository) Save(ctx context.Context, a *attachmentDomain.Attachment) error {
	model := &AttachmentModel{
		ID:        a.ID(),
		OwnerID:   a.OwnerID(),
		BookingID: a.BookingID(),
		Purpose:   string(a.Purpose()),
		FileName:  a.FileName(),
		MimeType:  a.MimeType(),
		SizeBytes: a.SizeBytes(),
		URL:       a.URL(),
		StoreRef:  a.StoreRef(),
		CreatedAt: a.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}
	return nil
}

// Delete removes an attachment record permanently.
func (r *GormAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AttachmentModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete attachment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Attachment", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toDomainAttachment(m *AttachmentModel) *attachmentDomain.Attachment {
	return attachmentDomain.Reconstruct(
		m.ID,
		m.OwnerID,
		m.BookingID,
		attachmentDomain.Purpose(m.Purpose),
		m.FileName,
		m.MimeType,
		m.SizeBytes,
		m.URL,
		m.StoreRef,
		m.CreatedAt,
	)
}

func toDomainAttachments(models []AttachmentModel) []*attachmentDomain.Attachment {
	attachments := make([]*attachmentDomain.Attachment, len(models))
	for i := range models {
		attachments[i] = toDomainAttachment(&models[i])
	}
	return attachments
}
