package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/notification"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/kafka"
)

type recordedNotification struct {
	recipientID uuid.UUID
	kind        notification.Kind
	title       string
	body        string
	bookingID   *uuid.UUID
}

type fakeNotifier struct {
	notifications []recordedNotification
	err           error
}

func (f *fakeNotifier) Notify(_ context.Context, recipientID uuid.UUID, kind notification.Kind, title, body string, bookingID *uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.notifications = append(f.notifications, recordedNotification{
		recipientID: recipientID,
		kind:        kind,
		title:       title,
		body:        body,
		bookingID:   bookingID,
	})
	return nil
}

func newTestConsumer(notifier Notifier) *NotificationConsumer {
	return &NotificationConsumer{
		notifier: notifier,
		logger:   zap.NewNop(),
	}
}

func bookingEventMessage(t *testing.T, eventType string, evt BookingEvent) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent(SourceBookingService, eventType, evt)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Value: raw}
}

func TestNotificationConsumer_NotifiesNonActingParty(t *testing.T) {
	notifier := &fakeNotifier{}
	consumer := newTestConsumer(notifier)

	customerID := uuid.New()
	artistID := uuid.New()
	bookingID := uuid.New()

	// The artist accepted, so the customer hears about it.
	msg := bookingEventMessage(t, BookingAccepted, BookingEvent{
		BookingID:     bookingID,
		BookingNumber: "AZ-ABC123",
		CustomerID:    customerID,
		ArtistID:      artistID,
		Status:        "confirmed",
		ActorID:       artistID,
		ActorRole:     "artist",
		OccurredAt:    time.Now().UTC(),
	})
	require.NoError(t, consumer.handleMessage(context.Background(), msg))

	require.Len(t, notifier.notifications, 1)
	got := notifier.notifications[0]
	assert.Equal(t, customerID, got.recipientID)
	assert.Equal(t, notification.KindBookingAccepted, got.kind)
	assert.Contains(t, got.body, "AZ-ABC123")
	require.NotNil(t, got.bookingID)
	assert.Equal(t, bookingID, *got.bookingID)
}

func TestNotificationConsumer_CustomerActionNotifiesArtist(t *testing.T) {
	notifier := &fakeNotifier{}
	consumer := newTestConsumer(notifier)

	customerID := uuid.New()
	artistID := uuid.New()

	msg := bookingEventMessage(t, BookingCancelled, BookingEvent{
		BookingID:     uuid.New(),
		BookingNumber: "AZ-XYZ789",
		CustomerID:    customerID,
		ArtistID:      artistID,
		Status:        "cancelled",
		ActorID:       customerID,
		ActorRole:     "customer",
		Reason:        "project shelved",
		OccurredAt:    time.Now().UTC(),
	})
	require.NoError(t, consumer.handleMessage(context.Background(), msg))

	require.Len(t, notifier.notifications, 1)
	got := notifier.notifications[0]
	assert.Equal(t, artistID, got.recipientID)
	assert.Equal(t, notification.KindBookingCancelled, got.kind)
	assert.Contains(t, got.body, "project shelved")
}

func TestNotificationConsumer_AdminOverrideNotifiesCustomer(t *testing.T) {
	notifier := &fakeNotifier{}
	consumer := newTestConsumer(notifier)

	customerID := uuid.New()

	// An admin forced the status, so the actor is neither party.
	msg := bookingEventMessage(t, BookingStatusForced, BookingEvent{
		BookingID:     uuid.New(),
		BookingNumber: "AZ-FRC001",
		CustomerID:    customerID,
		ArtistID:      uuid.New(),
		Status:        "completed",
		ActorID:       uuid.New(),
		ActorRole:     "admin",
		OccurredAt:    time.Now().UTC(),
	})
	require.NoError(t, consumer.handleMessage(context.Background(), msg))

	require.Len(t, notifier.notifications, 1)
	got := notifier.notifications[0]
	assert.Equal(t, customerID, got.recipientID)
	assert.Equal(t, notification.KindStatusUpdated, got.kind)
}

func TestNotificationConsumer_MalformedMessageNotRetried(t *testing.T) {
	notifier := &fakeNotifier{}
	consumer := newTestConsumer(notifier)

	err := consumer.handleMessage(context.Background(), kafkago.Message{Value: []byte("not json")})
	assert.NoError(t, err, "malformed messages are dropped, not retried")
	assert.Empty(t, notifier.notifications)
}

func TestNotificationConsumer_UnknownEventTypeIgnored(t *testing.T) {
	notifier := &fakeNotifier{}
	consumer := newTestConsumer(notifier)

	msg := bookingEventMessage(t, "booking.sneezed", BookingEvent{BookingID: uuid.New()})
	assert.NoError(t, consumer.handleMessage(context.Background(), msg))
	assert.Empty(t, notifier.notifications)
}

func TestNotificationConsumer_StoreFailureRetried(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("db down")}
	consumer := newTestConsumer(notifier)

	msg := bookingEventMessage(t, BookingAccepted, BookingEvent{
		BookingID:  uuid.New(),
		CustomerID: uuid.New(),
		ArtistID:   uuid.New(),
		ActorID:    uuid.New(),
	})
	assert.Error(t, consumer.handleMessage(context.Background(), msg), "store failures must be retried")
}
