package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentDomain "github.com/Thushyanthini0507/artzyra-server/internal/domain/payment"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// PaymentModel is the GORM model for the payments table.
type PaymentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID     uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Kind          string    `gorm:"not null;size:20"`
	AmountCents   int64     `gorm:"not null"`
	Currency      string    `gorm:"not null;size:3"`
	Status        string    `gorm:"not null;size:20;index"`
	GatewayRef    string    `gorm:"size:100"`
	FailureReason string    `gorm:"size:500"`
	RefundedCents int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PaymentModel) TableName() string {
	return "payments"
}

// GormPaymentRepository is the GORM-based implementation of payment.Repository.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID retrieves a payment by ID.
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*paymentDomain.Payment, error) {
	var model PaymentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Payment", id.String())
		}
		return nil, fmt.Errorf("failed to find payment by ID: %w", err)
	}
	return toDomainPayment(&model), nil
}

// FindByBookingID retrieves the payments for a booking, newest first.
func (r *GormPaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*paymentDomain.Payment, error) {
	var models []PaymentModel
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find booking payments: %w", err)
	}

	payments := make([]*paymentDomain.Payment, len(models))
	for i := range models {
		payments[i] = toDomainPayment(&models[i])
	}
	return payments, nil
}

// FindByCustomerID retrieves a customer's payments with pagination.
func (r *GormPaymentRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, page, limit int) ([]*paymentDomain.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&PaymentModel{}).Where("customer_id = ?", customerID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customer payments: %w", err)
	}

	var models []PaymentModel
	offset := (page - 1) * limit
	if err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find customer payments: %w", err)
	}

	payments := make([]*paymentDomain.Payment, len(models))
	for i := range models {
		payments[i] = toDomainPayment(&models[i])
	}
	return payments, total, nil
}

// Save persists a new payment.
func (r *GormPaymentRepository) Save(ctx context.Context, p *paymentDomain.Payment) error {
	if err := r.db.WithContext(ctx).Create(toPaymentModel(p)).Error; err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

// Update persists changes to an existing payment.
func (r *GormPaymentRepository) Update(ctx context.Context, p *paymentDomain.Payment) error {
	model := toPaymentModel(p)
	result := r.db.WithContext(ctx).
		Model(&PaymentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":         model.Status,
			"gateway_ref":    model.GatewayRef,
			"failure_reason": model.FailureReason,
			"refunded_cents": model.RefundedCents,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Payment", p.ID().String())
	}
	return nil
}

// --- Conversion Helpers ---

func toPaymentModel(p *paymentDomain.Payment) *PaymentModel {
	return &PaymentModel{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		CustomerID:    p.CustomerID(),
		Kind:          string(p.Kind()),
		AmountCents:   p.AmountCents(),
		Currency:      p.Currency(),
		Status:        string(p.Status()),
		GatewayRef:    p.GatewayRef(),
		FailureReason: p.FailureReason(),
		RefundedCents: p.RefundedCents(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func toDomainPayment(m *PaymentModel) *paymentDomain.Payment {
	return paymentDomain.Reconstruct(
		m.ID,
		m.BookingID,
		m.CustomerID,
		paymentDomain.Kind(m.Kind),
		m.AmountCents,
		m.Currency,
		paymentDomain.Status(m.Status),
		m.GatewayRef,
		m.FailureReason,
		m.RefundedCents,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
