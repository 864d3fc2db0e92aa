package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizePaymentStatus(t *testing.T) {
	got, ok := CanonicalizePaymentStatus("paid")
	require.True(t, ok)
	assert.Equal(t, PaymentSucceeded, got)

	got, ok = CanonicalizePaymentStatus(" Succeeded ")
	require.True(t, ok)
	assert.Equal(t, PaymentSucceeded, got)

	got, ok = CanonicalizePaymentStatus("escrowed")
	assert.False(t, ok)
	assert.Equal(t, PaymentStatus("escrowed"), got)
}

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, PaymentPending.CanTransitionTo(PaymentSucceeded))
	assert.True(t, PaymentPending.CanTransitionTo(PaymentFailed))
	assert.True(t, PaymentFailed.CanTransitionTo(PaymentSucceeded), "failed charges may be retried")
	assert.True(t, PaymentSucceeded.CanTransitionTo(PaymentRefunded))
	assert.True(t, PaymentPartial.CanTransitionTo(PaymentRefunded))

	assert.False(t, PaymentPending.CanTransitionTo(PaymentRefunded), "nothing captured, nothing to refund")
	assert.False(t, PaymentRefunded.CanTransitionTo(PaymentSucceeded), "refunded is terminal")
	assert.False(t, PaymentSucceeded.CanTransitionTo(PaymentPending))
}

func TestCanPayNow(t *testing.T) {
	assert.True(t, CanPayNow(PaymentPending, StatusPending))
	assert.True(t, CanPayNow(PaymentPending, StatusConfirmed))
	assert.True(t, CanPayNow(PaymentFailed, StatusPending), "failed charges are retryable")

	assert.False(t, CanPayNow(PaymentPending, StatusCancelled))
	assert.False(t, CanPayNow(PaymentFailed, StatusCancelled))
	assert.False(t, CanPayNow(PaymentPending, StatusDeclined))
	assert.False(t, CanPayNow(PaymentSucceeded, StatusConfirmed))
	assert.False(t, CanPayNow(PaymentPartial, StatusInProgress))
}

func TestCanRefund(t *testing.T) {
	assert.True(t, CanRefund(PaymentSucceeded))
	assert.True(t, CanRefund(PaymentPartial))
	assert.False(t, CanRefund(PaymentPending))
	assert.False(t, CanRefund(PaymentRefunded))
	assert.False(t, CanRefund(PaymentFailed))
}
