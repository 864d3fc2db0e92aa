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

	"github.com/Thushyanthini0507/artzyra-server/internal/platform/kafka"
)

type appliedCall struct {
	method      string
	bookingID   uuid.UUID
	amountCents int64
}

type fakePaymentApplier struct {
	calls []appliedCall
	err   error
}

func (f *fakePaymentApplier) ApplyPaymentSucceeded(_ context.Context, bookingID uuid.UUID, amountCents int64) error {
	f.calls = append(f.calls, appliedCall{method: "succeeded", bookingID: bookingID, amountCents: amountCents})
	return f.err
}

func (f *fakePaymentApplier) ApplyPaymentFailed(_ context.Context, bookingID uuid.UUID) error {
	f.calls = append(f.calls, appliedCall{method: "failed", bookingID: bookingID})
	return f.err
}

func (f *fakePaymentApplier) ApplyRefundProcessed(_ context.Context, bookingID uuid.UUID) error {
	f.calls = append(f.calls, appliedCall{method: "refunded", bookingID: bookingID})
	return f.err
}

func paymentEventMessage(t *testing.T, eventType string, evt PaymentEvent) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent(SourceBookingService, eventType, evt)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Value: raw}
}

func TestPaymentConsumer_DispatchesByEventType(t *testing.T) {
	applier := &fakePaymentApplier{}
	consumer := &PaymentEventConsumer{applier: applier, logger: zap.NewNop()}

	bookingID := uuid.New()
	base := PaymentEvent{
		PaymentID:  uuid.New(),
		BookingID:  bookingID,
		CustomerID: uuid.New(),
		Currency:   "LKR",
		OccurredAt: time.Now().UTC(),
	}

	succeeded := base
	succeeded.AmountCents = 175000
	require.NoError(t, consumer.handleMessage(context.Background(), paymentEventMessage(t, PaymentSucceeded, succeeded)))
	require.NoError(t, consumer.handleMessage(context.Background(), paymentEventMessage(t, PaymentFailed, base)))
	require.NoError(t, consumer.handleMessage(context.Background(), paymentEventMessage(t, PaymentRefundProcessed, base)))

	require.Len(t, applier.calls, 3)
	assert.Equal(t, appliedCall{method: "succeeded", bookingID: bookingID, amountCents: 175000}, applier.calls[0])
	assert.Equal(t, "failed", applier.calls[1].method)
	assert.Equal(t, "refunded", applier.calls[2].method)
}

func TestPaymentConsumer_MalformedMessageNotRetried(t *testing.T) {
	applier := &fakePaymentApplier{}
	consumer := &PaymentEventConsumer{applier: applier, logger: zap.NewNop()}

	err := consumer.handleMessage(context.Background(), kafkago.Message{Value: []byte("{broken")})
	assert.NoError(t, err)
	assert.Empty(t, applier.calls)
}

func TestPaymentConsumer_UnknownTypeIgnored(t *testing.T) {
	applier := &fakePaymentApplier{}
	consumer := &PaymentEventConsumer{applier: applier, logger: zap.NewNop()}

	msg := paymentEventMessage(t, "payment.pondering", PaymentEvent{BookingID: uuid.New()})
	assert.NoError(t, consumer.handleMessage(context.Background(), msg))
	assert.Empty(t, applier.calls)
}

func TestPaymentConsumer_ApplierFailureRetried(t *testing.T) {
	applier := &fakePaymentApplier{err: errors.New("version conflict")}
	consumer := &PaymentEventConsumer{applier: applier, logger: zap.NewNop()}

	msg := paymentEventMessage(t, PaymentSucceeded, PaymentEvent{BookingID: uuid.New(), AmountCents: 1000})
	assert.Error(t, consumer.handleMessage(context.Background(), msg))
}
