package events

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/notification"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/kafka"
)

// Notifier stores notifications for recipients. Implemented by the
// notification service.
type Notifier interface {
	Notify(ctx context.Context, recipientID uuid.UUID, kind notification.Kind, title, body string, bookingID *uuid.UUID) error
}

// NotificationConsumer materializes in-app notifications from booking events.
// The recipient is always the party who did not act.
type NotificationConsumer struct {
	consumer *kafka.Consumer
	notifier Notifier
	logger   *zap.Logger
}

// NewNotificationConsumer creates a new NotificationConsumer.
func NewNotificationConsumer(
	brokers []string,
	groupID string,
	notifier Notifier,
	logger *zap.Logger,
) *NotificationConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicBookingEvents, logger)
	return &NotificationConsumer{
		consumer: consumer,
		notifier: notifier,
		logger:   logger,
	}
}

// Start begins consuming booking events. Blocks until the context is cancelled.
func (c *NotificationConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *NotificationConsumer) Close() error {
	return c.consumer.Close()
}

// bookingNotificationText maps each booking event type to the notification
// kind and title shown to the other party.
var bookingNotificationText = map[string]struct {
	kind  notification.Kind
	title string
}{
	BookingCreated:          {notification.KindBookingCreated, "New booking request"},
	BookingAccepted:         {notification.KindBookingAccepted, "Booking confirmed"},
	BookingDeclined:         {notification.KindBookingDeclined, "Booking declined"},
	BookingStarted:          {notification.KindBookingStarted, "Work started"},
	BookingDelivered:        {notification.KindBookingDelivered, "Work delivered for review"},
	BookingChangesRequested: {notification.KindChangesRequested, "Changes requested"},
	BookingCompleted:        {notification.KindBookingCompleted, "Booking completed"},
	BookingCancelled:        {notification.KindBookingCancelled, "Booking cancelled"},
	BookingStatusForced:     {notification.KindStatusUpdated, "Booking status updated"},
}

func (c *NotificationConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from booking topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	text, ok := bookingNotificationText[cloudEvent.Type]
	if !ok {
		c.logger.Debug("ignoring unhandled booking event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}

	var evt BookingEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse booking event data",
			zap.String("type", cloudEvent.Type),
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	recipient := evt.CustomerID
	if evt.ActorID == evt.CustomerID {
		recipient = evt.ArtistID
	}

	body := fmt.Sprintf("Booking %s is now %s.", evt.BookingNumber, evt.Status)
	if evt.Reason != "" {
		body = fmt.Sprintf("%s Reason: %s", body, evt.Reason)
	}

	bookingID := evt.BookingID
	if err := c.notifier.Notify(ctx, recipient, text.kind, text.title, body, &bookingID); err != nil {
		c.logger.Error("failed to store notification",
			zap.String("type", cloudEvent.Type),
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
