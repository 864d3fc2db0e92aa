package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// Thread is the conversation attached to a single booking. Exactly one
// thread exists per booking, shared by its customer and artist.
type Thread struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	customerID uuid.UUID
	artistID   uuid.UUID
	createdAt  time.Time
}

// NewThread creates the conversation for a booking.
func NewThread(bookingID, customerID, artistID uuid.UUID) *Thread {
	return &Thread{
		id:         uuid.New(),
		bookingID:  bookingID,
		customerID: customerID,
		artistID:   artistID,
		createdAt:  time.Now().UTC(),
	}
}

// ReconstructThread rebuilds a Thread from persistence data.
func ReconstructThread(id, bookingID, customerID, artistID uuid.UUID, createdAt time.Time) *Thread {
	return &Thread{
		id:         id,
		bookingID:  bookingID,
		customerID: customerID,
		artistID:   artistID,
		createdAt:  createdAt,
	}
}

func (t *Thread) ID() uuid.UUID         { return t.id }
func (t *Thread) BookingID() uuid.UUID  { return t.bookingID }
func (t *Thread) CustomerID() uuid.UUID { return t.customerID }
func (t *Thread) ArtistID() uuid.UUID   { return t.artistID }
func (t *Thread) CreatedAt() time.Time  { return t.createdAt }

// IsParticipant reports whether the user belongs to this thread.
func (t *Thread) IsParticipant(userID uuid.UUID) bool {
	return t.customerID == userID || t.artistID == userID
}

// Message is a single chat message within a thread.
type Message struct {
	id        uuid.UUID
	threadID  uuid.UUID
	senderID  uuid.UUID
	body      string
	fileID    *uuid.UUID
	createdAt time.Time
}

// NewMessage creates a message. Either body text or an attachment is required.
func NewMessage(threadID, senderID uuid.UUID, body string, fileID *uuid.UUID) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" && fileID == nil {
		return nil, domain.NewValidationError("message body or attachment is required")
	}
	return &Message{
		id:        uuid.New(),
		threadID:  threadID,
		senderID:  senderID,
		body:      body,
		fileID:    fileID,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructMessage rebuilds a Message from persistence data.
func ReconstructMessage(id, threadID, senderID uuid.UUID, body string, fileID *uuid.UUID, createdAt time.Time) *Message {
	return &Message{
		id:        id,
		threadID:  threadID,
		senderID:  senderID,
		body:      body,
		fileID:    fileID,
		createdAt: createdAt,
	}
}

func (m *Message) ID() uuid.UUID        { return m.id }
func (m *Message) ThreadID() uuid.UUID  { return m.threadID }
func (m *Message) SenderID() uuid.UUID  { return m.senderID }
func (m *Message) Body() string         { return m.body }
func (m *Message) FileID() *uuid.UUID   { return m.fileID }
func (m *Message) CreatedAt() time.Time { return m.createdAt }

// Repository defines the persistence contract for chat threads and messages.
type Repository interface {
	FindThreadByID(ctx context.Context, id uuid.UUID) (*Thread, error)
	FindThreadByBookingID(ctx context.Context, bookingID uuid.UUID) (*Thread, error)
	ListThreadsForUser(ctx context.Context, userID uuid.UUID) ([]*Thread, error)
	SaveThread(ctx context.Context, t *Thread) error
	ListMessages(ctx context.Context, threadID uuid.UUID, page, limit int) ([]*Message, int64, error)
	SaveMessage(ctx context.Context, m *Message) error
}
