package attachment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Purpose classifies what an uploaded file is for.
type Purpose string

const (
	PurposeReference   Purpose = "reference"
	PurposeDeliverable Purpose = "deliverable"
	PurposePortfolio   Purpose = "portfolio"
	PurposeAvatar      Purpose = "avatar"
	PurposeChat        Purpose = "chat"
)

// IsValid returns true if the purpose is recognized.
func (p Purpose) IsValid() bool {
	switch p {
	case PurposeReference, PurposeDeliverable, PurposePortfolio, PurposeAvatar, PurposeChat:
		return true
	}
	return false
}

// Attachment is the aggregate root for uploaded files.
type Attachment struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	bookingID *uuid.UUID
	purpose   Purpose
	fileName  string
	mimeType  string
	sizeBytes int64
	url       string
	storeRef  string
	createdAt time.Time
}

// NewAttachment creates an attachment record for a stored file.
func NewAttachment(ownerID uuid.UUID, bookingID *uuid.UUID, purpose Purpose, fileName, mimeType string, sizeBytes int64, url, storeRef string) (*Attachment, error) {
	if !purpose.IsValid() {
		return nil, fmt.Errorf("invalid attachment purpose: %s", purpose)
	}
	if url == "" {
		return nil, fmt.Errorf("attachment URL is required")
	}

	return &Attachment{
		id:        uuid.New(),
		ownerID:   ownerID,
		bookingID: bookingID,
		purpose:   purpose,
		fileName:  fileName,
		mimeType:  mimeType,
		sizeBytes: sizeBytes,
		url:       url,
		storeRef:  storeRef,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds an Attachment from persistence.
func Reconstruct(id, ownerID uuid.UUID, bookingID *uuid.UUID, purpose Purpose, fileName, mimeType string, sizeBytes int64, url, storeRef string, createdAt time.Time) *Attachment {
	return &Attachment{
		id:        id,
		ownerID:   ownerID,
		bookingID: bookingID,
		purpose:   purpose,
		fileName:  fileName,
		mimeType:  mimeType,
		sizeBytes: sizeBytes,
		url:       url,
		storeRef:  storeRef,
		createdAt: createdAt,
	}
}

// Getters.
func (a *Attachment) ID() uuid.UUID         { return a.id }
func (a *Attachment) OwnerID() uuid.UUID    { return a.ownerID }
func (a *Attachment) BookingID() *uuid.UUID { return a.bookingID }
func (a *Attachment) Purpose() Purpose      { return a.purpose }
func (a *Attachment) FileName() string      { return a.fileName }
func (a *Attachment) MimeType() string      { return a.mimeType }
func (a *Attachment) SizeBytes() int64      { return a.sizeBytes }
func (a *Attachment) URL() string           { return a.url }
func (a *Attachment) StoreRef() string      { return a.storeRef }
func (a *Attachment) CreatedAt() time.Time  { return a.createdAt }

// Repository defines the persistence contract for attachments.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Attachment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*Attachment, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, purpose Purpose) ([]*Attachment, error)
	Save(ctx context.Context, a *Attachment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StoredFile is what the image store returns after an upload.
type StoredFile struct {
	URL      string
	StoreRef string
}

// Store abstracts the external file/image hosting provider.
type Store interface {
	Upload(ctx context.Context, fileName, mimeType string, data []byte) (StoredFile, error)
	Delete(ctx context.Context, storeRef string) error
}
