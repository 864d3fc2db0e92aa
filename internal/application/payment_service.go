package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/booking"
	"github.com/Thushyanthini0507/artzyra-server/internal/domain/payment"
	"github.com/Thushyanthini0507/artzyra-server/internal/events"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/kafka"
)

// CreatePaymentRequest holds the data to charge a booking.
type CreatePaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	// Token is the gateway's client-side charge token.
	Token string `json:"token" binding:"required"`
}

// PaymentDTO is the response representation of a payment.
type PaymentDTO struct {
	ID            uuid.UUID `json:"id"`
	BookingID     uuid.UUID `json:"booking_id"`
	Kind          string    `json:"kind"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	FailureReason string    `json:"failure_reason,omitempty"`
	RefundedCents int64     `json:"refunded_cents,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentService charges bookings through the gateway and records outcomes.
// Outcomes are also published to the payment topic; the consumer applies them
// to the booking's payment axis.
type PaymentService struct {
	payments payment.Repository
	bookings booking.Repository
	gateway  payment.Gateway
	producer EventPublisher
	logger   *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	payments payment.Repository,
	bookings booking.Repository,
	gateway payment.Gateway,
	producer EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments: payments,
		bookings: bookings,
		gateway:  gateway,
		producer: producer,
		logger:   logger,
	}
}

// CreatePayment charges the amount currently due on a booking: the advance
// for advance-type bookings, the full amount otherwise. Only the booking's
// customer may pay, and only while the payment axis allows it.
func (s *PaymentService) CreatePayment(ctx context.Context, customerID uuid.UUID, req CreatePaymentRequest) (*PaymentDTO, error) {
	bk, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if bk.CustomerID() != customerID {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	if !booking.CanPayNow(bk.PaymentStatus(), bk.Status()) {
		return nil, domain.NewInvalidOperationError("booking is not payable in its current state")
	}

	kind := payment.KindFull
	amount := bk.TotalAmountCents()
	if bk.PaymentType() == booking.PaymentTypeAdvance {
		kind = payment.KindAdvance
		amount = booking.AdvanceAmount(bk.TotalAmountCents(), bk.AdvancePercentage())
	}

	p, err := payment.NewPayment(bk.ID(), customerID, kind, amount)
	if err != nil {
		return nil, err
	}
	if err := s.payments.Save(ctx, p); err != nil {
		return nil, err
	}

	result, err := s.gateway.VerifyCharge(ctx, req.Token, amount, p.Currency())
	if err != nil {
		s.logger.Error("gateway charge verification failed",
			zap.String("payment_id", p.ID().String()),
			zap.Error(err),
		)
		return nil, domain.NewInvalidOperationError("payment could not be verified")
	}

	if result.Succeeded {
		if err := p.MarkSucceeded(result.GatewayRef); err != nil {
			return nil, err
		}
	} else {
		if err := p.MarkFailed(result.Reason); err != nil {
			return nil, err
		}
	}
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}

	eventType := events.PaymentSucceeded
	if !result.Succeeded {
		eventType = events.PaymentFailed
	}
	s.publishPaymentEvent(ctx, eventType, p, result.Reason)

	dto := toPaymentDTO(p)
	return &dto, nil
}

// VerifyPaymentRequest re-checks a charge whose client-side flow finished
// after the initial attempt.
type VerifyPaymentRequest struct {
	PaymentID uuid.UUID `json:"payment_id" binding:"required"`
	Token     string    `json:"token" binding:"required"`
}

// VerifyPayment confirms a still-initiated charge against the gateway and
// applies the outcome. Verifying an already settled payment is a no-op that
// returns its current state.
func (s *PaymentService) VerifyPayment(ctx context.Context, customerID uuid.UUID, req VerifyPaymentRequest) (*PaymentDTO, error) {
	p, err := s.payments.FindByID(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if p.CustomerID() != customerID {
		return nil, domain.NewForbiddenError("payment does not belong to this user")
	}
	if p.Status() != payment.StatusInitiated {
		dto := toPaymentDTO(p)
		return &dto, nil
	}

	result, err := s.gateway.VerifyCharge(ctx, req.Token, p.AmountCents(), p.Currency())
	if err != nil {
		s.logger.Error("gateway charge verification failed",
			zap.String("payment_id", p.ID().String()),
			zap.Error(err),
		)
		return nil, domain.NewInvalidOperationError("payment could not be verified")
	}

	if result.Succeeded {
		if err := p.MarkSucceeded(result.GatewayRef); err != nil {
			return nil, err
		}
	} else {
		if err := p.MarkFailed(result.Reason); err != nil {
			return nil, err
		}
	}
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}

	eventType := events.PaymentSucceeded
	if !result.Succeeded {
		eventType = events.PaymentFailed
	}
	s.publishPaymentEvent(ctx, eventType, p, result.Reason)

	dto := toPaymentDTO(p)
	return &dto, nil
}

// RefundCancellation processes the pending refund of a cancelled booking
// through the gateway (admin). The refund-processed event drives the
// booking's payment axis to refunded.
func (s *PaymentService) RefundCancellation(ctx context.Context, bookingID uuid.UUID) (*PaymentDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	cancellation := bk.Cancellation()
	if cancellation == nil || cancellation.RefundStatus != booking.RefundPending {
		return nil, domain.NewInvalidOperationError("no pending refund on this booking")
	}

	charges, err := s.payments.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	var charge *payment.Payment
	for _, p := range charges {
		if p.Status() == payment.StatusSucceeded {
			charge = p
			break
		}
	}
	if charge == nil {
		return nil, domain.NewInvalidOperationError("no succeeded charge to refund")
	}

	refundRef, err := s.gateway.CreateRefund(ctx, charge.GatewayRef(), cancellation.RefundAmountCents)
	if err != nil {
		s.logger.Error("gateway refund failed",
			zap.String("booking_id", bookingID.String()),
			zap.Error(err),
		)
		return nil, domain.NewInvalidOperationError("refund could not be processed")
	}

	if err := charge.MarkRefunded(cancellation.RefundAmountCents); err != nil {
		return nil, err
	}
	if err := s.payments.Update(ctx, charge); err != nil {
		return nil, err
	}

	s.logger.Info("refund processed",
		zap.String("booking_id", bookingID.String()),
		zap.String("refund_ref", refundRef),
		zap.Int64("amount_cents", cancellation.RefundAmountCents),
	)
	s.publishPaymentEvent(ctx, events.PaymentRefundProcessed, charge, "")

	dto := toPaymentDTO(charge)
	return &dto, nil
}

// GetBookingPayments lists the charges made against one booking.
func (s *PaymentService) GetBookingPayments(ctx context.Context, bookingID, requesterID uuid.UUID, isAdmin bool) ([]PaymentDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !bk.IsParty(requesterID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}

	charges, err := s.payments.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	dtos := make([]PaymentDTO, len(charges))
	for i, p := range charges {
		dtos[i] = toPaymentDTO(p)
	}
	return dtos, nil
}

// GetCustomerPayments lists a customer's own payment history.
func (s *PaymentService) GetCustomerPayments(ctx context.Context, customerID uuid.UUID, page, limit int) (*domain.PaginatedResult[PaymentDTO], error) {
	charges, total, err := s.payments.FindByCustomerID(ctx, customerID, page, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]PaymentDTO, len(charges))
	for i, p := range charges {
		dtos[i] = toPaymentDTO(p)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

func (s *PaymentService) publishPaymentEvent(ctx context.Context, eventType string, p *payment.Payment, reason string) {
	amount := p.AmountCents()
	if eventType == events.PaymentRefundProcessed {
		amount = p.RefundedCents()
	}
	evt := events.PaymentEvent{
		PaymentID:   p.ID(),
		BookingID:   p.BookingID(),
		CustomerID:  p.CustomerID(),
		AmountCents: amount,
		Currency:    p.Currency(),
		Kind:        string(p.Kind()),
		Reason:      reason,
		OccurredAt:  time.Now().UTC(),
	}

	cloudEvent, err := kafka.NewCloudEvent(events.SourceBookingService, eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicPaymentEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicPaymentEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toPaymentDTO(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		Kind:          string(p.Kind()),
		AmountCents:   p.AmountCents(),
		Currency:      p.Currency(),
		Status:        string(p.Status()),
		FailureReason: p.FailureReason(),
		RefundedCents: p.RefundedCents(),
		CreatedAt:     p.CreatedAt(),
	}
}
