package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefundPolicy_Evaluate(t *testing.T) {
	policy := NewRefundPolicy(24)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	farStart := now.Add(72 * time.Hour)
	soonStart := now.Add(6 * time.Hour)

	tests := []struct {
		name    string
		status  Status
		startAt *time.Time
		want    int64
	}{
		{"pending refunds in full regardless of timing", StatusPending, &soonStart, 5000},
		{"confirmed outside window refunds in full", StatusConfirmed, &farStart, 5000},
		{"in_progress outside window refunds in full", StatusInProgress, &farStart, 5000},
		{"in_progress inside window refunds half", StatusInProgress, &soonStart, 2500},
		{"confirmed inside window refunds nothing", StatusConfirmed, &soonStart, 0},
		{"review inside window refunds nothing", StatusReview, &soonStart, 0},
		{"nil start treated as outside window", StatusConfirmed, nil, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Evaluate(tt.status, tt.startAt, now, 5000)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefundPolicy_Evaluate_Refused(t *testing.T) {
	policy := NewRefundPolicy(24)
	now := time.Now().UTC()

	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		_, err := policy.Evaluate(status, nil, now, 5000)
		assert.Error(t, err, "status %s must refuse cancellation", status)
	}
}

func TestRefundPolicy_Evaluate_WindowBoundary(t *testing.T) {
	policy := NewRefundPolicy(24)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Exactly at the window boundary counts as inside.
	boundary := now.Add(24 * time.Hour)
	got, err := policy.Evaluate(StatusConfirmed, &boundary, now, 10000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	justOutside := now.Add(24*time.Hour + time.Minute)
	got, err = policy.Evaluate(StatusConfirmed, &justOutside, now, 10000)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), got)
}

func TestNewRefundPolicy_DefaultWindow(t *testing.T) {
	assert.Equal(t, DefaultCancellationWindowHours, NewRefundPolicy(0).WindowHours)
	assert.Equal(t, DefaultCancellationWindowHours, NewRefundPolicy(-5).WindowHours)
	assert.Equal(t, 48, NewRefundPolicy(48).WindowHours)
}
