package events

import (
	"context"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/platform/kafka"
)

// PaymentApplier is the slice of the booking service the consumer needs to
// apply payment outcomes to bookings.
type PaymentApplier interface {
	ApplyPaymentSucceeded(ctx context.Context, bookingID uuid.UUID, amountCents int64) error
	ApplyPaymentFailed(ctx context.Context, bookingID uuid.UUID) error
	ApplyRefundProcessed(ctx context.Context, bookingID uuid.UUID) error
}

// PaymentEventConsumer listens to payment events and keeps the booking's
// payment axis in step with gateway outcomes.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	applier  PaymentApplier
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	applier PaymentApplier,
	logger *zap.Logger,
) *PaymentEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		applier:  applier,
		logger:   logger,
	}
}

// Start begins consuming payment events. Blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	var evt PaymentEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse payment event data",
			zap.String("type", cloudEvent.Type),
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing payment event",
		zap.String("type", cloudEvent.Type),
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("payment_id", evt.PaymentID.String()),
	)

	switch cloudEvent.Type {
	case PaymentSucceeded:
		err = c.applier.ApplyPaymentSucceeded(ctx, evt.BookingID, evt.AmountCents)
	case PaymentFailed:
		err = c.applier.ApplyPaymentFailed(ctx, evt.BookingID)
	case PaymentRefundProcessed:
		err = c.applier.ApplyRefundProcessed(ctx, evt.BookingID)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}

	if err != nil {
		c.logger.Error("failed to apply payment event to booking",
			zap.String("type", cloudEvent.Type),
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
