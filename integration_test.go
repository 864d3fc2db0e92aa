//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingEvents "github.com/Thushyanthini0507/artzyra-server/internal/events"
)

// TestPaymentSucceeded_SettlesBooking verifies that a payment.succeeded event
// on payment.events is picked up by the payment consumer and recorded against
// the booking's payment axis.
func TestPaymentSucceeded_SettlesBooking(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.PaymentConsumer.Close() }()

	bookingID := uuid.New()
	customerID := uuid.New()
	artistID := uuid.New()
	seedBooking(t, infra.DB, bookingID, customerID, artistID, "pending", 175000)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.PaymentConsumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	evt := bookingEvents.PaymentEvent{
		PaymentID:   uuid.New(),
		BookingID:   bookingID,
		CustomerID:  customerID,
		AmountCents: 175000,
		Currency:    "LKR",
		Kind:        "full",
		OccurredAt:  time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, bookingEvents.TopicPaymentEvents,
		bookingEvents.SourceBookingService, bookingEvents.PaymentSucceeded, evt)

	model := waitForPaymentStatus(t, infra.DB, bookingID, "succeeded", 15*time.Second)
	assert.Equal(t, int64(175000), model.AmountPaidCents)
	assert.Equal(t, "pending", model.Status, "a payment never moves the lifecycle status")
	assert.Greater(t, model.Version, int64(1), "the settled booking must have been re-persisted")
}

// TestBookingAccepted_NotifiesCustomer verifies the full notification loop:
// accepting a booking publishes booking.accepted, and the notifier consumer
// materializes an in-app notification for the customer.
func TestBookingAccepted_NotifiesCustomer(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.NotifierConsumer.Close() }()

	bookingID := uuid.New()
	customerID := uuid.New()
	artistID := uuid.New()
	seedBooking(t, infra.DB, bookingID, customerID, artistID, "pending", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.NotifierConsumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	evt := bookingEvents.BookingEvent{
		BookingID:     bookingID,
		BookingNumber: "AZ-TEST01",
		CustomerID:    customerID,
		ArtistID:      artistID,
		Status:        "confirmed",
		ActorID:       artistID,
		ActorRole:     "artist",
		OccurredAt:    time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, bookingEvents.TopicBookingEvents,
		bookingEvents.SourceBookingService, bookingEvents.BookingAccepted, evt)

	// The artist acted, so the customer is the recipient.
	notification := waitForNotification(t, infra.DB, customerID, "booking_accepted", 15*time.Second)
	require.NotNil(t, notification.BookingID)
	assert.Equal(t, bookingID, *notification.BookingID)
	assert.False(t, notification.Read)
}

// TestBookingAccepted_EventPayload verifies the published booking.accepted
// event carries the fields the notification consumer depends on.
func TestBookingAccepted_EventPayload(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	evt := bookingEvents.BookingEvent{
		BookingID:     uuid.New(),
		BookingNumber: "AZ-TEST02",
		CustomerID:    uuid.New(),
		ArtistID:      uuid.New(),
		Status:        "confirmed",
		ActorID:       uuid.New(),
		ActorRole:     "artist",
		OccurredAt:    time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, bookingEvents.TopicBookingEvents,
		bookingEvents.SourceBookingService, bookingEvents.BookingAccepted, evt)

	ce := consumeOneEvent(t, infra.KafkaBrokers, bookingEvents.TopicBookingEvents,
		bookingEvents.BookingAccepted, 15*time.Second)

	var got bookingEvents.BookingEvent
	require.NoError(t, ce.ParseData(&got))
	assert.Equal(t, evt.BookingID, got.BookingID)
	assert.Equal(t, evt.CustomerID, got.CustomerID)
	assert.Equal(t, evt.ActorID, got.ActorID)
	assert.Equal(t, "confirmed", got.Status)
}
