package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Booking is the aggregate root for one engagement between a customer and an
// artist. All status mutations go through the transition table; the payment
// axis is kept consistent with the lifecycle by the aggregate itself.
type Booking struct {
	id            uuid.UUID
	bookingNumber string
	customerID    uuid.UUID
	artistID      uuid.UUID

	service           string
	tier              PackageTier
	pricingType       PricingType
	paymentType       PaymentType
	advancePercentage int
	project           ProjectBrief
	schedule          Schedule
	estimatedStartAt  *time.Time

	totalAmountCents    int64
	amountPaidCents     int64
	amountRefundedCents int64
	currency            string

	status        Status
	paymentStatus PaymentStatus

	revisions     []Revision
	cancellation  *Cancellation
	dispute       *Dispute
	finalApproval *FinalApproval

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateBookingNumber creates a booking number in the format "AZ-XXXXXX".
func generateBookingNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		result[i] = bookingNumberChars[n.Int64()]
	}
	return "AZ-" + string(result), nil
}

// NewBooking creates a new Booking with status=pending, paymentStatus=pending.
func NewBooking(
	customerID, artistID uuid.UUID,
	service string,
	tier PackageTier,
	pricingType PricingType,
	paymentType PaymentType,
	advancePercentage int,
	project ProjectBrief,
	schedule Schedule,
	estimatedStartAt *time.Time,
	totalAmountCents int64,
	currency string,
) (*Booking, error) {
	if customerID == uuid.Nil {
		return nil, domain.NewValidationError("customer ID is required")
	}
	if artistID == uuid.Nil {
		return nil, domain.NewValidationError("artist ID is required")
	}
	if customerID == artistID {
		return nil, domain.NewValidationError("customer and artist must differ")
	}
	if service == "" {
		return nil, domain.NewValidationError("service is required")
	}
	if tier != "" && !tier.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid package tier: %s", tier))
	}
	if !pricingType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid pricing type: %s", pricingType))
	}
	if !paymentType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid payment type: %s", paymentType))
	}
	if totalAmountCents < 0 {
		return nil, domain.NewValidationError("total amount cannot be negative")
	}
	if paymentType == PaymentTypeAdvance && (advancePercentage <= 0 || advancePercentage > 100) {
		return nil, domain.NewValidationError("advance percentage must be between 1 and 100")
	}

	bookingNumber, err := generateBookingNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Booking{
		id:                uuid.New(),
		bookingNumber:     bookingNumber,
		customerID:        customerID,
		artistID:          artistID,
		service:           service,
		tier:              tier,
		pricingType:       pricingType,
		paymentType:       paymentType,
		advancePercentage: advancePercentage,
		project:           project,
		schedule:          schedule,
		estimatedStartAt:  estimatedStartAt,
		totalAmountCents:  totalAmountCents,
		currency:          currency,
		status:            StatusPending,
		paymentStatus:     PaymentPending,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// Snapshot is the flat persistence representation of a Booking.
type Snapshot struct {
	ID                  uuid.UUID
	BookingNumber       string
	CustomerID          uuid.UUID
	ArtistID            uuid.UUID
	Service             string
	Tier                PackageTier
	PricingType         PricingType
	PaymentType         PaymentType
	AdvancePercentage   int
	Project             ProjectBrief
	Schedule            Schedule
	EstimatedStartAt    *time.Time
	TotalAmountCents    int64
	AmountPaidCents     int64
	AmountRefundedCents int64
	Currency            string
	Status              Status
	PaymentStatus       PaymentStatus
	Revisions           []Revision
	Cancellation        *Cancellation
	Dispute             *Dispute
	FinalApproval       *FinalApproval
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:                  s.ID,
		bookingNumber:       s.BookingNumber,
		customerID:          s.CustomerID,
		artistID:            s.ArtistID,
		service:             s.Service,
		tier:                s.Tier,
		pricingType:         s.PricingType,
		paymentType:         s.PaymentType,
		advancePercentage:   s.AdvancePercentage,
		project:             s.Project,
		schedule:            s.Schedule,
		estimatedStartAt:    s.EstimatedStartAt,
		totalAmountCents:    s.TotalAmountCents,
		amountPaidCents:     s.AmountPaidCents,
		amountRefundedCents: s.AmountRefundedCents,
		currency:            s.Currency,
		status:              s.Status,
		paymentStatus:       s.PaymentStatus,
		revisions:           s.Revisions,
		cancellation:        s.Cancellation,
		dispute:             s.Dispute,
		finalApproval:       s.FinalApproval,
		version:             s.Version,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
	}
}

// Snapshot returns the flat persistence representation of the booking.
func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                  b.id,
		BookingNumber:       b.bookingNumber,
		CustomerID:          b.customerID,
		ArtistID:            b.artistID,
		Service:             b.service,
		Tier:                b.tier,
		PricingType:         b.pricingType,
		PaymentType:         b.paymentType,
		AdvancePercentage:   b.advancePercentage,
		Project:             b.project,
		Schedule:            b.schedule,
		EstimatedStartAt:    b.estimatedStartAt,
		TotalAmountCents:    b.totalAmountCents,
		AmountPaidCents:     b.amountPaidCents,
		AmountRefundedCents: b.amountRefundedCents,
		Currency:            b.currency,
		Status:              b.status,
		PaymentStatus:       b.paymentStatus,
		Revisions:           b.revisions,
		Cancellation:        b.cancellation,
		Dispute:             b.dispute,
		FinalApproval:       b.finalApproval,
		Version:             b.version,
		CreatedAt:           b.createdAt,
		UpdatedAt:           b.updatedAt,
	}
}

// --- Getters ---

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) BookingNumber() string        { return b.bookingNumber }
func (b *Booking) CustomerID() uuid.UUID        { return b.customerID }
func (b *Booking) ArtistID() uuid.UUID          { return b.artistID }
func (b *Booking) Service() string              { return b.service }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) PaymentType() PaymentType     { return b.paymentType }
func (b *Booking) AdvancePercentage() int       { return b.advancePercentage }
func (b *Booking) TotalAmountCents() int64      { return b.totalAmountCents }
func (b *Booking) AmountPaidCents() int64       { return b.amountPaidCents }
func (b *Booking) AmountRefundedCents() int64   { return b.amountRefundedCents }
func (b *Booking) Currency() string             { return b.currency }
func (b *Booking) EstimatedStartAt() *time.Time { return b.estimatedStartAt }
func (b *Booking) Cancellation() *Cancellation  { return b.cancellation }
func (b *Booking) Dispute() *Dispute            { return b.dispute }
func (b *Booking) Revisions() []Revision        { return b.revisions }
func (b *Booking) Version() int64               { return b.version }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }

// IsParty returns true if the user is the booking's customer or artist.
func (b *Booking) IsParty(userID uuid.UUID) bool {
	return b.customerID == userID || b.artistID == userID
}

// moneyBearing reports whether this booking carries a payment obligation.
func (b *Booking) moneyBearing() bool {
	return b.totalAmountCents > 0
}

// paymentSettled reports whether enough money has been captured for the
// artist to commit: full payment, or the advance for advance-type bookings.
func (b *Booking) paymentSettled() bool {
	if b.paymentStatus == PaymentSucceeded {
		return true
	}
	return b.paymentStatus == PaymentPartial && b.paymentType == PaymentTypeAdvance
}

func (b *Booking) touch() {
	b.updatedAt = time.Now().UTC()
}

// --- Lifecycle behavior ---

// Accept moves the booking to confirmed on behalf of the given actor.
// Money-bearing bookings cannot be confirmed until payment has settled.
func (b *Booking) Accept(actor Actor) error {
	next, err := Transition(b.status, actor, ActionAccept)
	if err != nil {
		return err
	}
	if b.moneyBearing() && !b.paymentSettled() {
		return domain.NewInvalidOperationError("payment must be completed before the booking can be confirmed")
	}
	b.status = next
	b.touch()
	return nil
}

// Decline rejects a booking before any commitment was made.
func (b *Booking) Decline(actor Actor) error {
	next, err := Transition(b.status, actor, ActionDecline)
	if err != nil {
		return err
	}
	b.status = next
	b.touch()
	return nil
}

// Start marks the engagement as underway.
func (b *Booking) Start(actor Actor) error {
	next, err := Transition(b.status, actor, ActionStart)
	if err != nil {
		return err
	}
	if b.moneyBearing() && !b.paymentSettled() {
		return domain.NewInvalidOperationError("payment must be completed before work can start")
	}
	b.status = next
	b.touch()
	return nil
}

// Deliver submits finished work for the customer's final approval.
func (b *Booking) Deliver(actor Actor) error {
	next, err := Transition(b.status, actor, ActionDeliver)
	if err != nil {
		return err
	}
	for i := range b.revisions {
		if b.revisions[i].Status == RevisionRequested {
			b.revisions[i].Status = RevisionDelivered
		}
	}
	b.status = next
	b.touch()
	return nil
}

// Approve records the customer's final sign-off and completes the booking.
func (b *Booking) Approve(actor Actor, feedback string) error {
	next, err := Transition(b.status, actor, ActionApprove)
	if err != nil {
		return err
	}
	for i := range b.revisions {
		if b.revisions[i].Status == RevisionDelivered {
			b.revisions[i].Status = RevisionAccepted
		}
	}
	b.finalApproval = &FinalApproval{ApprovedAt: time.Now().UTC(), Feedback: feedback}
	b.status = next
	b.touch()
	return nil
}

// RequestChanges sends delivered work back with a revision note.
func (b *Booking) RequestChanges(actor Actor, note string) error {
	if note == "" {
		return domain.NewValidationError("revision note is required")
	}
	next, err := Transition(b.status, actor, ActionRequestChanges)
	if err != nil {
		return err
	}
	b.revisions = append(b.revisions, Revision{
		ID:          uuid.New(),
		Note:        note,
		Status:      RevisionRequested,
		RequestedAt: time.Now().UTC(),
	})
	b.status = next
	b.touch()
	return nil
}

// Complete finishes the engagement directly, without the review step.
func (b *Booking) Complete(actor Actor) error {
	next, err := Transition(b.status, actor, ActionComplete)
	if err != nil {
		return err
	}
	b.status = next
	b.touch()
	return nil
}

// Cancel undoes a committed (or pending) booking. Refund eligibility is
// decided by the policy; the cancellation record, refund amount and status
// change are applied together so a partial update can never be observed.
func (b *Booking) Cancel(actor Actor, cancelledBy uuid.UUID, reason string, policy RefundPolicy, now time.Time) error {
	next, err := Transition(b.status, actor, ActionCancel)
	if err != nil {
		return err
	}

	startAt := b.estimatedStartAt
	if startAt == nil {
		startAt = b.schedule.BookingDate
	}
	refundCents, err := policy.Evaluate(b.status, startAt, now, b.totalAmountCents)
	if err != nil {
		return err
	}

	// A refund can only return money that was actually captured.
	if refundCents > b.amountPaidCents {
		refundCents = b.amountPaidCents
	}
	refundStatus := RefundNone
	if refundCents > 0 && CanRefund(b.paymentStatus) {
		refundStatus = RefundPending
	} else {
		refundCents = 0
	}

	b.status = next
	b.cancellation = &Cancellation{
		CancelledBy:       cancelledBy,
		CancelledByRole:   actor,
		CancelledAt:       now,
		Reason:            reason,
		RefundAmountCents: refundCents,
		RefundStatus:      refundStatus,
	}
	b.touch()
	return nil
}

// ForceStatus is the admin moderation override: it bypasses the transition
// table but still refuses unknown target states.
func (b *Booking) ForceStatus(target Status) error {
	canonical, ok := Canonicalize(string(target))
	if !ok {
		return domain.NewValidationError(fmt.Sprintf("unknown status: %s", target))
	}
	b.status = canonical
	b.touch()
	return nil
}

// CanBeDeleted reports whether a hard delete is allowed. Only bookings still
// pending may be deleted; everything else must go through cancellation.
func (b *Booking) CanBeDeleted() bool {
	return b.status == StatusPending
}

// UpdateDetails applies customer edits. Allowed only while still pending.
func (b *Booking) UpdateDetails(project ProjectBrief, schedule Schedule, estimatedStartAt *time.Time) error {
	if b.status != StatusPending {
		return domain.NewInvalidOperationError("only pending bookings can be edited")
	}
	b.project = project
	b.schedule = schedule
	b.estimatedStartAt = estimatedStartAt
	b.touch()
	return nil
}

// --- Payment axis behavior ---

// RecordPayment applies a captured charge of the given amount. The booking
// moves to succeeded when fully paid, or to partial for a settled advance.
func (b *Booking) RecordPayment(amountCents int64) error {
	if amountCents <= 0 {
		return domain.NewValidationError("payment amount must be positive")
	}
	if b.status == StatusCancelled || b.status == StatusDeclined {
		return domain.NewInvalidOperationError("cannot record a payment on a closed booking")
	}

	paid := b.amountPaidCents + amountCents
	target := PaymentPartial
	if paid >= b.totalAmountCents {
		target = PaymentSucceeded
	}
	if !b.paymentStatus.CanTransitionTo(target) {
		return domain.NewInvalidTransitionError(string(b.paymentStatus), string(target))
	}

	b.amountPaidCents = paid
	b.paymentStatus = target
	b.touch()
	return nil
}

// RecordPaymentFailure marks a failed charge. The booking status is never
// altered by a failed payment.
func (b *Booking) RecordPaymentFailure() error {
	if !b.paymentStatus.CanTransitionTo(PaymentFailed) {
		return domain.NewInvalidTransitionError(string(b.paymentStatus), string(PaymentFailed))
	}
	b.paymentStatus = PaymentFailed
	b.touch()
	return nil
}

// RecordRefundProcessed finalizes the refund leg of a cancellation once the
// gateway confirms it.
func (b *Booking) RecordRefundProcessed() error {
	if b.cancellation == nil || b.cancellation.RefundStatus != RefundPending {
		return domain.NewInvalidOperationError("no pending refund on this booking")
	}
	if !b.paymentStatus.CanTransitionTo(PaymentRefunded) {
		return domain.NewInvalidTransitionError(string(b.paymentStatus), string(PaymentRefunded))
	}
	b.cancellation.RefundStatus = RefundProcessed
	b.amountRefundedCents = b.cancellation.RefundAmountCents
	b.paymentStatus = PaymentRefunded
	b.touch()
	return nil
}

// --- Disputes ---

// RaiseDispute opens a dispute on an active booking.
func (b *Booking) RaiseDispute(raisedBy uuid.UUID, reason string) error {
	if b.dispute != nil {
		return domain.NewInvalidOperationError("a dispute has already been raised")
	}
	if b.status == StatusCancelled || b.status == StatusDeclined {
		return domain.NewInvalidOperationError("cannot raise a dispute on a cancelled or declined booking")
	}
	if reason == "" {
		return domain.NewValidationError("dispute reason is required")
	}
	b.dispute = &Dispute{
		RaisedBy: raisedBy,
		RaisedAt: time.Now().UTC(),
		Reason:   reason,
		Status:   DisputeOpen,
	}
	b.touch()
	return nil
}

// ResolveDispute closes an open dispute with the admin's resolution.
func (b *Booking) ResolveDispute(resolution string) error {
	if b.dispute == nil || b.dispute.Status != DisputeOpen {
		return domain.NewInvalidOperationError("no open dispute on this booking")
	}
	now := time.Now().UTC()
	b.dispute.Status = DisputeResolved
	b.dispute.Resolution = resolution
	b.dispute.ResolvedAt = &now
	b.touch()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.touch()
}
