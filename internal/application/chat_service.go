package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/booking"
	"github.com/Thushyanthini0507/artzyra-server/internal/domain/chat"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// SendMessageRequest holds the data for one chat message.
type SendMessageRequest struct {
	Body   string     `json:"body"`
	FileID *uuid.UUID `json:"file_id"`
}

// ThreadDTO is the response representation of a chat thread.
type ThreadDTO struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ArtistID   uuid.UUID `json:"artist_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// MessageDTO is the response representation of a chat message.
type MessageDTO struct {
	ID        uuid.UUID  `json:"id"`
	ThreadID  uuid.UUID  `json:"thread_id"`
	SenderID  uuid.UUID  `json:"sender_id"`
	Body      string     `json:"body,omitempty"`
	FileID    *uuid.UUID `json:"file_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ChatService manages per-booking conversations between the two parties.
type ChatService struct {
	chats    chat.Repository
	bookings booking.Repository
}

// NewChatService creates a new ChatService.
func NewChatService(chats chat.Repository, bookings booking.Repository) *ChatService {
	return &ChatService{chats: chats, bookings: bookings}
}

// GetOrCreateThread returns the booking's conversation, creating it on first
// use. Only the booking's parties may open it.
func (s *ChatService) GetOrCreateThread(ctx context.Context, bookingID, userID uuid.UUID) (*ThreadDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsParty(userID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}

	t, err := s.chats.FindThreadByBookingID(ctx, bookingID)
	if err != nil {
		var derr *domain.DomainError
		if !errors.As(err, &derr) || derr.Code != domain.CodeNotFound {
			return nil, err
		}
		t = chat.NewThread(bookingID, bk.CustomerID(), bk.ArtistID())
		if err := s.chats.SaveThread(ctx, t); err != nil {
			return nil, err
		}
	}

	dto := toThreadDTO(t)
	return &dto, nil
}

// GetThread returns one conversation the user participates in.
func (s *ChatService) GetThread(ctx context.Context, threadID, userID uuid.UUID) (*ThreadDTO, error) {
	t, err := s.chats.FindThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !t.IsParticipant(userID) {
		return nil, domain.NewForbiddenError("thread does not belong to this user")
	}
	dto := toThreadDTO(t)
	return &dto, nil
}

// ListThreads lists the user's conversations.
func (s *ChatService) ListThreads(ctx context.Context, userID uuid.UUID) ([]ThreadDTO, error) {
	ts, err := s.chats.ListThreadsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ThreadDTO, len(ts))
	for i, t := range ts {
		dtos[i] = toThreadDTO(t)
	}
	return dtos, nil
}

// ListMessages returns a page of a thread's messages, oldest first.
func (s *ChatService) ListMessages(ctx context.Context, threadID, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[MessageDTO], error) {
	t, err := s.chats.FindThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !t.IsParticipant(userID) {
		return nil, domain.NewForbiddenError("thread does not belong to this user")
	}

	ms, total, err := s.chats.ListMessages(ctx, threadID, page, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]MessageDTO, len(ms))
	for i, m := range ms {
		dtos[i] = toMessageDTO(m)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// SendMessage appends a message to a thread the user participates in.
func (s *ChatService) SendMessage(ctx context.Context, threadID, senderID uuid.UUID, req SendMessageRequest) (*MessageDTO, error) {
	t, err := s.chats.FindThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !t.IsParticipant(senderID) {
		return nil, domain.NewForbiddenError("thread does not belong to this user")
	}

	m, err := chat.NewMessage(threadID, senderID, req.Body, req.FileID)
	if err != nil {
		return nil, err
	}
	if err := s.chats.SaveMessage(ctx, m); err != nil {
		return nil, err
	}

	dto := toMessageDTO(m)
	return &dto, nil
}

func toThreadDTO(t *chat.Thread) ThreadDTO {
	return ThreadDTO{
		ID:         t.ID(),
		BookingID:  t.BookingID(),
		CustomerID: t.CustomerID(),
		ArtistID:   t.ArtistID(),
		CreatedAt:  t.CreatedAt(),
	}
}

func toMessageDTO(m *chat.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID(),
		ThreadID:  m.ThreadID(),
		SenderID:  m.SenderID(),
		Body:      m.Body(),
		FileID:    m.FileID(),
		CreatedAt: m.CreatedAt(),
	}
}
