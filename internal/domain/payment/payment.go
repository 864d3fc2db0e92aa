package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// Status is the lifecycle state of a single charge attempt.
type Status string

const (
	StatusInitiated Status = "initiated"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// Kind distinguishes an advance charge from a full or balance charge.
type Kind string

const (
	KindAdvance Kind = "advance"
	KindFull    Kind = "full"
	KindBalance Kind = "balance"
)

// Payment records one charge attempt against a booking.
type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	customerID    uuid.UUID
	kind          Kind
	amountCents   int64
	currency      string
	status        Status
	gatewayRef    string
	failureReason string
	refundedCents int64
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPayment creates an initiated charge for a booking.
func NewPayment(bookingID, customerID uuid.UUID, kind Kind, amountCents int64) (*Payment, error) {
	if amountCents <= 0 {
		return nil, domain.NewValidationError("payment amount must be positive")
	}
	switch kind {
	case KindAdvance, KindFull, KindBalance:
	default:
		return nil, domain.NewValidationError("unknown payment kind")
	}

	now := time.Now().UTC()
	return &Payment{
		id:          uuid.New(),
		bookingID:   bookingID,
		customerID:  customerID,
		kind:        kind,
		amountCents: amountCents,
		currency:    domain.CurrencyLKR,
		status:      StatusInitiated,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Payment from persistence data.
func Reconstruct(
	id, bookingID, customerID uuid.UUID,
	kind Kind,
	amountCents int64,
	currency string,
	status Status,
	gatewayRef, failureReason string,
	refundedCents int64,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		bookingID:     bookingID,
		customerID:    customerID,
		kind:          kind,
		amountCents:   amountCents,
		currency:      currency,
		status:        status,
		gatewayRef:    gatewayRef,
		failureReason: failureReason,
		refundedCents: refundedCents,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Payment) ID() uuid.UUID         { return p.id }
func (p *Payment) BookingID() uuid.UUID  { return p.bookingID }
func (p *Payment) CustomerID() uuid.UUID { return p.customerID }
func (p *Payment) Kind() Kind            { return p.kind }
func (p *Payment) AmountCents() int64    { return p.amountCents }
func (p *Payment) Currency() string      { return p.currency }
func (p *Payment) Status() Status        { return p.status }
func (p *Payment) GatewayRef() string    { return p.gatewayRef }
func (p *Payment) FailureReason() string { return p.failureReason }
func (p *Payment) RefundedCents() int64  { return p.refundedCents }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time  { return p.updatedAt }

// MarkSucceeded records gateway confirmation of the charge.
func (p *Payment) MarkSucceeded(gatewayRef string) error {
	if p.status != StatusInitiated {
		return domain.NewInvalidOperationError("payment is not awaiting confirmation")
	}
	p.status = StatusSucceeded
	p.gatewayRef = gatewayRef
	p.updatedAt = time.Now().UTC()
	return nil
}

// MarkFailed records a gateway decline.
func (p *Payment) MarkFailed(reason string) error {
	if p.status != StatusInitiated {
		return domain.NewInvalidOperationError("payment is not awaiting confirmation")
	}
	p.status = StatusFailed
	p.failureReason = reason
	p.updatedAt = time.Now().UTC()
	return nil
}

// MarkRefunded records a processed refund against a succeeded charge.
func (p *Payment) MarkRefunded(amountCents int64) error {
	if p.status != StatusSucceeded {
		return domain.NewInvalidOperationError("only a succeeded payment can be refunded")
	}
	if amountCents <= 0 || amountCents > p.amountCents {
		return domain.NewValidationError("refund amount out of range")
	}
	p.status = StatusRefunded
	p.refundedCents = amountCents
	p.updatedAt = time.Now().UTC()
	return nil
}

// Repository defines the persistence contract for payments.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*Payment, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, page, limit int) ([]*Payment, int64, error)
	Save(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
}

// ChargeResult is the gateway's answer to a charge verification.
type ChargeResult struct {
	Succeeded  bool
	GatewayRef string
	Reason     string
}

// Gateway abstracts the external payment provider.
type Gateway interface {
	// VerifyCharge confirms whether the charge identified by token cleared
	// for the given amount.
	VerifyCharge(ctx context.Context, token string, amountCents int64, currency string) (ChargeResult, error)
	// CreateRefund asks the provider to return amountCents of the original
	// charge. Returns the provider's refund reference.
	CreateRefund(ctx context.Context, gatewayRef string, amountCents int64) (string, error)
}
