package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/attachment"
	"github.com/Thushyanthini0507/artzyra-server/internal/domain/booking"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// Upload limits.
const (
	maxUploadBytes = 10 << 20 // 10 MiB
)

var allowedMimePrefixes = []string{"image/", "application/pdf", "audio/", "video/"}

// UploadAttachmentRequest holds the metadata and bytes of one upload.
type UploadAttachmentRequest struct {
	BookingID *uuid.UUID
	Purpose   string
	FileName  string
	MimeType  string
	Data      []byte
}

// AttachmentDTO is the response representation of an attachment.
type AttachmentDTO struct {
	ID        uuid.UUID  `json:"id"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	Purpose   string     `json:"purpose"`
	FileName  string     `json:"file_name"`
	MimeType  string     `json:"mime_type"`
	SizeBytes int64      `json:"size_bytes"`
	URL       string     `json:"url"`
	CreatedAt time.Time  `json:"created_at"`
}

// AttachmentService uploads files to the external store and records them.
type AttachmentService struct {
	repo     attachment.Repository
	store    attachment.Store
	bookings booking.Repository
	logger   *zap.Logger
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(repo attachment.Repository, store attachment.Store, bookings booking.Repository, logger *zap.Logger) *AttachmentService {
	return &AttachmentService{
		repo:     repo,
		store:    store,
		bookings: bookings,
		logger:   logger,
	}
}

// Upload validates, stores and records one file. Booking-scoped uploads are
// restricted to the booking's parties.
func (s *AttachmentService) Upload(ctx context.Context, ownerID uuid.UUID, req UploadAttachmentRequest) (*AttachmentDTO, error) {
	if len(req.Data) == 0 {
		return nil, domain.NewValidationError("file is empty")
	}
	if len(req.Data) > maxUploadBytes {
		return nil, domain.NewValidationError("file exceeds the 10MB upload limit")
	}
	if !mimeAllowed(req.MimeType) {
		return nil, domain.NewValidationError("unsupported file type")
	}

	purpose := attachment.Purpose(req.Purpose)
	if !purpose.IsValid() {
		return nil, domain.NewValidationError("unknown attachment purpose")
	}

	if req.BookingID != nil {
		bk, err := s.bookings.FindByID(ctx, *req.BookingID)
		if err != nil {
			return nil, err
		}
		if !bk.IsParty(ownerID) {
			return nil, domain.NewForbiddenError("booking does not belong to this user")
		}
	}

	stored, err := s.store.Upload(ctx, req.FileName, req.MimeType, req.Data)
	if err != nil {
		s.logger.Error("file store upload failed",
			zap.String("file_name", req.FileName),
			zap.Error(err),
		)
		return nil, domain.NewInvalidOperationError("file could not be stored")
	}

	a, err := attachment.NewAttachment(ownerID, req.BookingID, purpose, req.FileName, req.MimeType, int64(len(req.Data)), stored.URL, stored.StoreRef)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}

	dto := toAttachmentDTO(a)
	return &dto, nil
}

// GetBookingAttachments lists the files attached to a booking.
func (s *AttachmentService) GetBookingAttachments(ctx context.Context, bookingID, requesterID uuid.UUID, isAdmin bool) ([]AttachmentDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !bk.IsParty(requesterID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}

	as, err := s.repo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	dtos := make([]AttachmentDTO, len(as))
	for i, a := range as {
		dtos[i] = toAttachmentDTO(a)
	}
	return dtos, nil
}

// Delete removes an attachment the user owns, from both store and records.
func (s *AttachmentService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a.OwnerID() != ownerID {
		return domain.NewForbiddenError("attachment does not belong to this user")
	}

	if err := s.store.Delete(ctx, a.StoreRef()); err != nil {
		s.logger.Warn("file store delete failed, record removed anyway",
			zap.String("attachment_id", id.String()),
			zap.Error(err),
		)
	}
	return s.repo.Delete(ctx, id)
}

func mimeAllowed(mimeType string) bool {
	for _, prefix := range allowedMimePrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}

func toAttachmentDTO(a *attachment.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:        a.ID(),
		BookingID: a.BookingID(),
		Purpose:   string(a.Purpose()),
		FileName:  a.FileName(),
		MimeType:  a.MimeType(),
		SizeBytes: a.SizeBytes(),
		URL:       a.URL(),
		CreatedAt: a.CreatedAt(),
	}
}
