package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	bookingDomain "github.com/Thushyanthini0507/artzyra-server/internal/domain/booking"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookingNumber       string          `gorm:"uniqueIndex;not null;size:20"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	ArtistID            uuid.UUID       `gorm:"type:uuid;index;not null"`
	Service             string          `gorm:"not null;size:200"`
	Tier                string          `gorm:"size:20"`
	PricingType         string          `gorm:"not null;size:20"`
	PaymentType         string          `gorm:"not null;size:20"`
	AdvancePercentage   int             `gorm:""`
	Project             json.RawMessage `gorm:"type:jsonb;not null"`
	Schedule            json.RawMessage `gorm:"type:jsonb;not null"`
	EstimatedStartAt    *time.Time      `gorm:""`
	TotalAmountCents    int64           `gorm:"not null"`
	AmountPaidCents     int64           `gorm:"not null;default:0"`
	AmountRefundedCents int64           `gorm:"not null;default:0"`
	Currency            string          `gorm:"not null;size:3;default:'LKR'"`
	Status              string          `gorm:"not null;size:30;index"`
	PaymentStatus       string          `gorm:"not null;size:20;index"`
	Revisions           json.RawMessage `gorm:"type:jsonb"`
	Cancellation        json.RawMessage `gorm:"type:jsonb"`
	Dispute             json.RawMessage `gorm:"type:jsonb"`
	FinalApproval       json.RawMessage `gorm:"type:jsonb"`
	Version             int64           `gorm:"not null;default:1"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB, logger *zap.Logger) *GormBookingRepository {
	return &GormBookingRepository{db: db, logger: logger}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return r.toDomainBooking(&model)
}

// FindByNumber retrieves a booking by its booking number.
func (r *GormBookingRepository) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", number)
		}
		return nil, fmt.Errorf("failed to find booking by number: %w", err)
	}
	return r.toDomainBooking(&model)
}

// FindByCustomerID retrieves bookings for a specific customer with pagination.
func (r *GormBookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Where("customer_id = ?", customerID), page, limit)
}

// FindByArtistID retrieves bookings for a specific artist with pagination.
func (r *GormBookingRepository) FindByArtistID(ctx context.Context, artistID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Where("artist_id = ?", artistID), page, limit)
}

// ListAll retrieves all bookings with pagination (admin). A non-nil status
// filter matches the canonical spelling and any legacy spelling of it.
func (r *GormBookingRepository) ListAll(ctx context.Context, status *bookingDomain.Status, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	query := r.db.WithContext(ctx)
	if status != nil {
		query = query.Where("status IN ?", bookingDomain.StoredSpellings(*status))
	}
	return r.findPage(ctx, query, page, limit)
}

// CountByStatus returns booking counts grouped by raw stored status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	// Only update if the version matches (current version - 1, since
	// IncrementVersion was called before persisting)
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":                model.Status,
			"payment_status":        model.PaymentStatus,
			"project":               model.Project,
			"schedule":              model.Schedule,
			"estimated_start_at":    model.EstimatedStartAt,
			"total_amount_cents":    model.TotalAmountCents,
			"amount_paid_cents":     model.AmountPaidCents,
			"amount_refunded_cents": model.AmountRefundedCents,
			"revisions":             model.Revisions,
			"cancellation":          model.Cancellation,
			"dispute":               model.Dispute,
			"final_approval":        model.FinalApproval,
			"version":               model.Version,
			"updated_at":            model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// Delete removes a booking permanently.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

func (r *GormBookingRepository) findPage(ctx context.Context, query *gorm.DB, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	// Reusing a *gorm.DB after a finisher is unsafe, hence the sessions.
	var total int64
	if err := query.Session(&gorm.Session{}).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := r.toDomainBooking(&models[i])
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) (*BookingModel, error) {
	snap := bk.Snapshot()

	projectJSON, err := json.Marshal(snap.Project)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project brief: %w", err)
	}
	scheduleJSON, err := json.Marshal(snap.Schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schedule: %w", err)
	}

	var revisionsJSON json.RawMessage
	if len(snap.Revisions) > 0 {
		if revisionsJSON, err = json.Marshal(snap.Revisions); err != nil {
			return nil, fmt.Errorf("failed to marshal revisions: %w", err)
		}
	}
	var cancellationJSON json.RawMessage
	if snap.Cancellation != nil {
		if cancellationJSON, err = json.Marshal(snap.Cancellation); err != nil {
			return nil, fmt.Errorf("failed to marshal cancellation: %w", err)
		}
	}
	var disputeJSON json.RawMessage
	if snap.Dispute != nil {
		if disputeJSON, err = json.Marshal(snap.Dispute); err != nil {
			return nil, fmt.Errorf("failed to marshal dispute: %w", err)
		}
	}
	var approvalJSON json.RawMessage
	if snap.FinalApproval != nil {
		if approvalJSON, err = json.Marshal(snap.FinalApproval); err != nil {
			return nil, fmt.Errorf("failed to marshal final approval: %w", err)
		}
	}

	return &BookingModel{
		ID:                  snap.ID,
		BookingNumber:       snap.BookingNumber,
		CustomerID:          snap.CustomerID,
		ArtistID:            snap.ArtistID,
		Service:             snap.Service,
		Tier:                string(snap.Tier),
		PricingType:         string(snap.PricingType),
		PaymentType:         string(snap.PaymentType),
		AdvancePercentage:   snap.AdvancePercentage,
		Project:             projectJSON,
		Schedule:            scheduleJSON,
		EstimatedStartAt:    snap.EstimatedStartAt,
		TotalAmountCents:    snap.TotalAmountCents,
		AmountPaidCents:     snap.AmountPaidCents,
		AmountRefundedCents: snap.AmountRefundedCents,
		Currency:            snap.Currency,
		Status:              string(snap.Status),
		PaymentStatus:       string(snap.PaymentStatus),
		Revisions:           revisionsJSON,
		Cancellation:        cancellationJSON,
		Dispute:             disputeJSON,
		FinalApproval:       approvalJSON,
		Version:             snap.Version,
		CreatedAt:           snap.CreatedAt,
		UpdatedAt:           snap.UpdatedAt,
	}, nil
}

func (r *GormBookingRepository) toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	var project bookingDomain.ProjectBrief
	if err := json.Unmarshal(m.Project, &project); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project brief: %w", err)
	}
	var schedule bookingDomain.Schedule
	if err := json.Unmarshal(m.Schedule, &schedule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schedule: %w", err)
	}

	var revisions []bookingDomain.Revision
	if len(m.Revisions) > 0 {
		if err := json.Unmarshal(m.Revisions, &revisions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal revisions: %w", err)
		}
	}
	var cancellation *bookingDomain.Cancellation
	if len(m.Cancellation) > 0 {
		cancellation = &bookingDomain.Cancellation{}
		if err := json.Unmarshal(m.Cancellation, cancellation); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cancellation: %w", err)
		}
	}
	var dispute *bookingDomain.Dispute
	if len(m.Dispute) > 0 {
		dispute = &bookingDomain.Dispute{}
		if err := json.Unmarshal(m.Dispute, dispute); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dispute: %w", err)
		}
	}
	var approval *bookingDomain.FinalApproval
	if len(m.FinalApproval) > 0 {
		approval = &bookingDomain.FinalApproval{}
		if err := json.Unmarshal(m.FinalApproval, approval); err != nil {
			return nil, fmt.Errorf("failed to unmarshal final approval: %w", err)
		}
	}

	// Legacy spellings in old rows are folded on read; unknown values pass
	// through so admin tooling can surface them.
	status, known := bookingDomain.Canonicalize(m.Status)
	if !known {
		r.logger.Warn("unrecognized booking status in stored row",
			zap.String("booking_id", m.ID.String()),
			zap.String("status", m.Status),
		)
	}
	paymentStatus, knownPayment := bookingDomain.CanonicalizePaymentStatus(m.PaymentStatus)
	if !knownPayment {
		r.logger.Warn("unrecognized payment status in stored row",
			zap.String("booking_id", m.ID.String()),
			zap.String("payment_status", m.PaymentStatus),
		)
	}

	return bookingDomain.Reconstruct(bookingDomain.Snapshot{
		ID:                  m.ID,
		BookingNumber:       m.BookingNumber,
		CustomerID:          m.CustomerID,
		ArtistID:            m.ArtistID,
		Service:             m.Service,
		Tier:                bookingDomain.PackageTier(m.Tier),
		PricingType:         bookingDomain.PricingType(m.PricingType),
		PaymentType:         bookingDomain.PaymentType(m.PaymentType),
		AdvancePercentage:   m.AdvancePercentage,
		Project:             project,
		Schedule:            schedule,
		EstimatedStartAt:    m.EstimatedStartAt,
		TotalAmountCents:    m.TotalAmountCents,
		AmountPaidCents:     m.AmountPaidCents,
		AmountRefundedCents: m.AmountRefundedCents,
		Currency:            m.Currency,
		Status:              status,
		PaymentStatus:       paymentStatus,
		Revisions:           revisions,
		Cancellation:        cancellation,
		Dispute:             dispute,
		FinalApproval:       approval,
		Version:             m.Version,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}), nil
}
