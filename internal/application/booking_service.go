package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/booking"
	"github.com/Thushyanthini0507/artzyra-server/internal/domain/user"
	"github.com/Thushyanthini0507/artzyra-server/internal/events"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/auth"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/kafka"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/metrics"
)

// EventPublisher publishes CloudEvents to a topic. Satisfied by the Kafka
// producer; tests substitute a recording fake.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ArtistID          uuid.UUID            `json:"artist_id" binding:"required"`
	Service           string               `json:"service" binding:"required"`
	Tier              string               `json:"tier"`
	PricingType       string               `json:"pricing_type" binding:"required"`
	PaymentType       string               `json:"payment_type" binding:"required"`
	AdvancePercentage int                  `json:"advance_percentage"`
	QuotedAmountCents int64                `json:"quoted_amount_cents"`
	Project           booking.ProjectBrief `json:"project"`
	Schedule          booking.Schedule     `json:"schedule"`
	EstimatedStartAt  *time.Time           `json:"estimated_start_at"`
}

// UpdateBookingRequest holds customer edits to a pending booking.
type UpdateBookingRequest struct {
	Project          booking.ProjectBrief `json:"project"`
	Schedule         booking.Schedule     `json:"schedule"`
	EstimatedStartAt *time.Time           `json:"estimated_start_at"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID                  uuid.UUID              `json:"id"`
	BookingNumber       string                 `json:"booking_number"`
	CustomerID          uuid.UUID              `json:"customer_id"`
	ArtistID            uuid.UUID              `json:"artist_id"`
	Service             string                 `json:"service"`
	Tier                string                 `json:"tier,omitempty"`
	PricingType         string                 `json:"pricing_type"`
	PaymentType         string                 `json:"payment_type"`
	AdvancePercentage   int                    `json:"advance_percentage,omitempty"`
	Project             booking.ProjectBrief   `json:"project"`
	Schedule            booking.Schedule       `json:"schedule"`
	EstimatedStartAt    *time.Time             `json:"estimated_start_at,omitempty"`
	TotalAmountCents    int64                  `json:"total_amount_cents"`
	AmountPaidCents     int64                  `json:"amount_paid_cents"`
	AmountRefundedCents int64                  `json:"amount_refunded_cents"`
	Currency            string                 `json:"currency"`
	Status              string                 `json:"status"`
	PaymentStatus       string                 `json:"payment_status"`
	CanPayNow           bool                   `json:"can_pay_now"`
	Revisions           []booking.Revision     `json:"revisions,omitempty"`
	Cancellation        *booking.Cancellation  `json:"cancellation,omitempty"`
	Dispute             *booking.Dispute       `json:"dispute,omitempty"`
	FinalApproval       *booking.FinalApproval `json:"final_approval,omitempty"`
	Version             int64                  `json:"version"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo     booking.Repository
	users    user.Repository
	pricing  booking.PricingStrategy
	refunds  booking.RefundPolicy
	producer EventPublisher
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo booking.Repository,
	users user.Repository,
	pricing booking.PricingStrategy,
	refunds booking.RefundPolicy,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		users:    users,
		pricing:  pricing,
		refunds:  refunds,
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking creates a new booking from the customer towards an approved
// artist, pricing it from the artist's base rate or the agreed custom quote.
func (s *BookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	artist, err := s.users.FindByID(ctx, req.ArtistID)
	if err != nil {
		return nil, err
	}
	if !artist.IsApprovedArtist() {
		return nil, domain.NewValidationError("artist is not accepting bookings")
	}

	var artistRate int64
	if artist.Profile() != nil {
		artistRate = artist.Profile().BaseRateCents
	}

	totalCents, err := s.pricing.Quote(booking.QuoteParams{
		PricingType:     booking.PricingType(req.PricingType),
		Tier:            booking.PackageTier(req.Tier),
		ArtistRateCents: artistRate,
		QuotedCents:     req.QuotedAmountCents,
		DurationMinutes: req.Schedule.DurationMinutes,
	})
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}

	bk, err := booking.NewBooking(
		customerID,
		req.ArtistID,
		req.Service,
		booking.PackageTier(req.Tier),
		booking.PricingType(req.PricingType),
		booking.PaymentType(req.PaymentType),
		req.AdvancePercentage,
		req.Project,
		req.Schedule,
		req.EstimatedStartAt,
		totalCents,
		domain.CurrencyLKR,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishBookingEvent(ctx, events.BookingCreated, bk, customerID, auth.RoleCustomer, "")

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking. Only the booking's parties and
// admins may read it.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, requesterID uuid.UUID, role auth.Role) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if role != auth.RoleAdmin && !bk.IsParty(requesterID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetCustomerBookings retrieves paginated bookings for a customer.
func (s *BookingService) GetCustomerBookings(ctx context.Context, customerID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByCustomerID(ctx, customerID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetArtistBookings retrieves paginated bookings for an artist.
func (s *BookingService) GetArtistBookings(ctx context.Context, artistID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByArtistID(ctx, artistID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// AcceptBooking confirms a pending booking on the artist's (or an admin's)
// behalf.
func (s *BookingService) AcceptBooking(ctx context.Context, bookingID, actorID uuid.UUID, role auth.Role) (*BookingDTO, error) {
	if role == auth.RoleArtist {
		artist, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		// Approval can be revoked after the booking was placed.
		if !artist.IsApprovedArtist() {
			return nil, domain.NewForbiddenError("artist account is not yet approved")
		}
	}
	return s.transition(ctx, bookingID, actorID, role, events.BookingAccepted, "", func(bk *booking.Booking, actor booking.Actor) error {
		return bk.Accept(actor)
	})
}

// DeclineBooking rejects a pending booking.
func (s *BookingService) DeclineBooking(ctx context.Context, bookingID, actorID uuid.UUID, role auth.Role) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, actorID, role, events.BookingDeclined, "", func(bk *booking.Booking, actor booking.Actor) error {
		return bk.Decline(actor)
	})
}

// StartBooking marks a confirmed booking as in progress.
func (s *BookingService) StartBooking(ctx context.Context, bookingID, actorID uuid.UUID, role auth.Role) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, actorID, role, events.BookingStarted, "", func(bk *booking.Booking, actor booking.Actor) error {
		return bk.Start(actor)
	})
}

// DeliverBooking submits finished work for the customer's review.
func (s *BookingService) DeliverBooking(ctx context.Context, bookingID, actorID uuid.UUID, role auth.Role) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, actorID, role, events.BookingDelivered, "", func(bk *booking.Booking, actor booking.Actor) error {
		return bk.Deliver(actor)
	})
}

// ApproveBooking records the customer's final sign-off.
func (s *BookingService) ApproveBooking(ctx context.Context, bookingID, actorID uuid.UUID, role auth.Role, feedback string) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, actorID, role, events.BookingCompleted, "", func(bk *booking.Booking, actor booking.Actor) error {
		return bk.Approve(actor, feedback)
	})
}

// RequestChanges sends delivered work back with a revision note.
func (s *BookingService) RequestChanges(ctx context.Context, bookingID, actorID uuid.UUID, role auth.Role, note string) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, actorID, role, events.BookingChangesRequested, note, func(bk *booking.Booking, actor booking.Actor) error {
		return bk.RequestChanges(actor, note)
	})
}

// CompleteBooking finishes an in-progress booking without the review step.
func (s *BookingService) CompleteBooking(ctx context.Context, bookingID, actorID uuid.UUID, role auth.Role) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, actorID, role, events.BookingCompleted, "", func(bk *booking.Booking, actor booking.Actor) error {
		return bk.Complete(actor)
	})
}

// CancelBooking cancels a booking, evaluating the refund policy.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, role auth.Role, reason string) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, actorID, role, events.BookingCancelled, reason, func(bk *booking.Booking, actor booking.Actor) error {
		return bk.Cancel(actor, actorID, reason, s.refunds, time.Now().UTC())
	})
}

// UpdateBooking applies customer edits to a still-pending booking.
func (s *BookingService) UpdateBooking(ctx context.Context, bookingID, customerID uuid.UUID, req UpdateBookingRequest) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.CustomerID() != customerID {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	if err := bk.UpdateDetails(req.Project, req.Schedule, req.EstimatedStartAt); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// DeleteBooking hard-deletes a booking. Only the owning customer may delete,
// and only while the booking is still pending.
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID, customerID uuid.UUID) error {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if bk.CustomerID() != customerID {
		return domain.NewForbiddenError("booking does not belong to this user")
	}
	if !bk.CanBeDeleted() {
		return domain.NewInvalidOperationError("only pending bookings can be deleted; cancel instead")
	}
	return s.repo.Delete(ctx, bookingID)
}

// RaiseDispute opens a dispute on an active booking.
func (s *BookingService) RaiseDispute(ctx context.Context, bookingID, actorID uuid.UUID, role auth.Role, reason string) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if role != auth.RoleAdmin && !bk.IsParty(actorID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	if err := bk.RaiseDispute(actorID, reason); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// ResolveDispute closes an open dispute (admin).
func (s *BookingService) ResolveDispute(ctx context.Context, bookingID uuid.UUID, resolution string) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := bk.ResolveDispute(resolution); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// --- Payment-axis updates, driven by the payment service and consumers ---

// ApplyPaymentSucceeded records a captured charge against the booking.
func (s *BookingService) ApplyPaymentSucceeded(ctx context.Context, bookingID uuid.UUID, amountCents int64) error {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	from := bk.PaymentStatus()
	if err := bk.RecordPayment(amountCents); err != nil {
		return err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return err
	}

	metrics.ObservePaymentEvent("succeeded")
	s.logger.Info("payment recorded on booking",
		zap.String("booking_id", bookingID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(bk.PaymentStatus())),
		zap.Int64("amount_cents", amountCents),
	)
	return nil
}

// ApplyPaymentFailed marks the booking's payment axis failed. The booking
// status itself is never touched.
func (s *BookingService) ApplyPaymentFailed(ctx context.Context, bookingID uuid.UUID) error {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := bk.RecordPaymentFailure(); err != nil {
		return err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return err
	}

	metrics.ObservePaymentEvent("failed")
	return nil
}

// ApplyRefundProcessed finalizes the refund leg of a cancellation.
func (s *BookingService) ApplyRefundProcessed(ctx context.Context, bookingID uuid.UUID) error {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := bk.RecordRefundProcessed(); err != nil {
		return err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return err
	}

	metrics.ObservePaymentEvent("refund_processed")
	return nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin), optionally
// filtered by status. Legacy status spellings in the filter are folded to
// their canonical form; the fold is logged so stale callers can be found.
func (s *BookingService) ListAllBookings(ctx context.Context, statusFilter string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	var filter *booking.Status
	if statusFilter != "" {
		canonical, known := booking.Canonicalize(statusFilter)
		if !known {
			return nil, domain.NewValidationError(fmt.Sprintf("unknown status: %s", statusFilter))
		}
		if string(canonical) != statusFilter {
			s.logger.Warn("legacy status spelling in admin filter",
				zap.String("raw", statusFilter),
				zap.String("canonical", string(canonical)),
			)
		}
		filter = &canonical
	}

	bookings, total, err := s.repo.ListAll(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetBookingStats returns aggregate booking statistics (admin). Counts stored
// under legacy spellings are folded into their canonical status.
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	byStatus := make(map[string]int64, len(counts))
	var total int64
	for raw, c := range counts {
		status, known := booking.Canonicalize(raw)
		key := raw
		if known {
			key = string(status)
		}
		byStatus[key] += c
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      byStatus,
	}, nil
}

// ForceBookingStatus is the admin moderation override. It bypasses the
// transition table but refuses unknown target states.
func (s *BookingService) ForceBookingStatus(ctx context.Context, bookingID uuid.UUID, adminID uuid.UUID, target string) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	from := bk.Status()
	if err := bk.ForceStatus(booking.Status(target)); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Warn("booking status forced by admin",
		zap.String("booking_id", bookingID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(bk.Status())),
	)
	metrics.ObserveTransition(string(from), string(bk.Status()), string(booking.ActorAdmin))
	s.publishBookingEvent(ctx, events.BookingStatusForced, bk, adminID, auth.RoleAdmin, "")

	result := toBookingDTO(bk)
	return &result, nil
}

// --- Helpers ---

// transition runs one table-guarded status mutation: resolve the actor,
// apply the mutation, persist with optimistic locking, then publish.
func (s *BookingService) transition(
	ctx context.Context,
	bookingID, actorID uuid.UUID,
	role auth.Role,
	eventType, reason string,
	mutate func(bk *booking.Booking, actor booking.Actor) error,
) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	actor, err := resolveActor(bk, actorID, role)
	if err != nil {
		return nil, err
	}

	from := bk.Status()
	if err := mutate(bk, actor); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	metrics.ObserveTransition(string(from), string(bk.Status()), string(actor))
	s.publishBookingEvent(ctx, eventType, bk, actorID, role, reason)

	result := toBookingDTO(bk)
	return &result, nil
}

// resolveActor maps the authenticated user onto a transition-table actor,
// refusing users who are not a party to the booking.
func resolveActor(bk *booking.Booking, userID uuid.UUID, role auth.Role) (booking.Actor, error) {
	switch role {
	case auth.RoleAdmin:
		return booking.ActorAdmin, nil
	case auth.RoleArtist:
		if bk.ArtistID() != userID {
			return "", domain.NewForbiddenError("booking does not belong to this artist")
		}
		return booking.ActorArtist, nil
	default:
		if bk.CustomerID() != userID {
			return "", domain.NewForbiddenError("booking does not belong to this user")
		}
		return booking.ActorCustomer, nil
	}
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *booking.Booking, actorID uuid.UUID, role auth.Role, reason string) {
	evt := events.BookingEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		CustomerID:    bk.CustomerID(),
		ArtistID:      bk.ArtistID(),
		Status:        string(bk.Status()),
		ActorID:       actorID,
		ActorRole:     string(role),
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}

	cloudEvent, err := kafka.NewCloudEvent(events.SourceBookingService, eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toBookingDTO(bk *booking.Booking) BookingDTO {
	snap := bk.Snapshot()
	return BookingDTO{
		ID:                  snap.ID,
		BookingNumber:       snap.BookingNumber,
		CustomerID:          snap.CustomerID,
		ArtistID:            snap.ArtistID,
		Service:             snap.Service,
		Tier:                string(snap.Tier),
		PricingType:         string(snap.PricingType),
		PaymentType:         string(snap.PaymentType),
		AdvancePercentage:   snap.AdvancePercentage,
		Project:             snap.Project,
		Schedule:            snap.Schedule,
		EstimatedStartAt:    snap.EstimatedStartAt,
		TotalAmountCents:    snap.TotalAmountCents,
		AmountPaidCents:     snap.AmountPaidCents,
		AmountRefundedCents: snap.AmountRefundedCents,
		Currency:            snap.Currency,
		Status:              string(snap.Status),
		PaymentStatus:       string(snap.PaymentStatus),
		CanPayNow:           booking.CanPayNow(snap.PaymentStatus, snap.Status),
		Revisions:           snap.Revisions,
		Cancellation:        snap.Cancellation,
		Dispute:             snap.Dispute,
		FinalApproval:       snap.FinalApproval,
		Version:             snap.Version,
		CreatedAt:           snap.CreatedAt,
		UpdatedAt:           snap.UpdatedAt,
	}
}

func toBookingDTOs(bookings []*booking.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}
