package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	chatDomain "github.com/Thushyanthini0507/artzyra-server/internal/domain/chat"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// ChatThreadModel is the GORM model for the chat_threads table.
type ChatThreadModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	ArtistID   uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ChatThreadModel) TableName() string {
	return "chat_threads"
}

// ChatMessageModel is the GORM model for the chat_messages table.
type ChatMessageModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ThreadID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	SenderID  uuid.UUID  `gorm:"type:uuid;not null"`
	Body      string     `gorm:"size:4000"`
	FileID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// GormChatRepository is the GORM-based implementation of chat.Repository.
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates a new GormChatRepository.
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// FindThreadByID retrieves a thread by ID.
func (r *GormChatRepository) FindThreadByID(ctx context.Context, id uuid.UUID) (*chatDomain.Thread, error) {
	var model ChatThreadModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Thread", id.String())
		}
		return nil, fmt.Errorf("failed to find thread by ID: %w", err)
	}
	return toDomainThread(&model), nil
}

// FindThreadByBookingID retrieves the thread attached to a booking.
func (r *GormChatRepository) FindThreadByBookingID(ctx context.Context, bookingID uuid.UUID) (*chatDomain.Thread, error) {
	var model ChatThreadModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Thread", bookingID.String())
		}
		return nil, fmt.Errorf("failed to find thread by booking: %w", err)
	}
	return toDomainThread(&model), nil
}

// ListThreadsForUser retrieves the threads a user participates in.
func (r *GormChatRepository) ListThreadsForUser(ctx context.Context, userID uuid.UUID) ([]*chatDomain.Thread, error) {
	var models []ChatThreadModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? OR artist_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	threads := make([]*chatDomain.Thread, len(models))
	for i := range models {
		threads[i] = toDomainThread(&models[i])
	}
	return threads, nil
}

// SaveThread persists a new thread.
func (r *GormChatRepository) SaveThread(ctx context.Context, t *chatDomain.Thread) error {
	model := &ChatThreadModel{
		ID:         t.ID(),
		BookingID:  t.BookingID(),
		CustomerID: t.CustomerID(),
		ArtistID:   t.ArtistID(),
		CreatedAt:  t.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save thread: %w", err)
	}
	return nil
}

// ListMessages retrieves a page of a thread's messages, oldest first.
func (r *GormChatRepository) ListMessages(ctx context.Context, threadID uuid.UUID, page, limit int) ([]*chatDomain.Message, int64, error) {
	query := r.db.WithContext(ctx).Model(&ChatMessageModel{}).Where("thread_id = ?", threadID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	var models []ChatMessageModel
	offset := (page - 1) * limit
	if err := query.Session(&gorm.Session{}).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find messages: %w", err)
	}

	messages := make([]*chatDomain.Message, len(models))
	for i := range models {
		messages[i] = toDomainMessage(&models[i])
	}
	return messages, total, nil
}

// SaveMessage persists a new message.
func (r *GormChatRepository) SaveMessage(ctx context.Context, m *chatDomain.Message) error {
	model := &ChatMessageModel{
		ID:        m.ID(),
		ThreadID:  m.ThreadID(),
		SenderID:  m.SenderID(),
		Body:      m.Body(),
		FileID:    m.FileID(),
		CreatedAt: m.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toDomainThread(m *ChatThreadModel) *chatDomain.Thread {
	return chatDomain.ReconstructThread(m.ID, m.BookingID, m.CustomerID, m.ArtistID, m.CreatedAt)
}

func toDomainMessage(m *ChatMessageModel) *chatDomain.Message {
	return chatDomain.ReconstructMessage(m.ID, m.ThreadID, m.SenderID, m.Body, m.FileID, m.CreatedAt)
}
