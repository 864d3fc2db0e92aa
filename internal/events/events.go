package events

import (
	"time"

	"github.com/google/uuid"
)

// Kafka topics.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"
)

// Event source for CloudEvents published by this service.
const SourceBookingService = "artzyra/booking-service"

// Booking event types.
const (
	BookingCreated          = "booking.created"
	BookingAccepted         = "booking.accepted"
	BookingDeclined         = "booking.declined"
	BookingStarted          = "booking.started"
	BookingDelivered        = "booking.delivered"
	BookingChangesRequested = "booking.changes_requested"
	BookingCompleted        = "booking.completed"
	BookingCancelled        = "booking.cancelled"
	BookingStatusForced     = "booking.status_forced"
)

// Payment event types.
const (
	PaymentSucceeded       = "payment.succeeded"
	PaymentFailed          = "payment.failed"
	PaymentRefundProcessed = "payment.refund_processed"
)

// BookingEvent is the payload for all booking lifecycle events.
type BookingEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	CustomerID    uuid.UUID `json:"customer_id"`
	ArtistID      uuid.UUID `json:"artist_id"`
	Status        string    `json:"status"`
	// ActorID is the user whose action produced the event. The notification
	// consumer uses it to pick the other party as recipient.
	ActorID    uuid.UUID `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentEvent is the payload for payment outcome events.
type PaymentEvent struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Kind        string    `json:"kind"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
