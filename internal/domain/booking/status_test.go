package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize_LegacySpellings(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"pending", StatusPending},
		{"pending approval", StatusPending},
		{"confirmed", StatusConfirmed},
		{"accepted", StatusConfirmed},
		{"in progress", StatusConfirmed},
		{"active", StatusConfirmed},
		{"approved", StatusConfirmed},
		{"in_progress", StatusInProgress},
		{"review", StatusReview},
		{"completed", StatusCompleted},
		{"done", StatusCompleted},
		{"finished", StatusCompleted},
		{"cancelled", StatusCancelled},
		{"canceled", StatusCancelled},
		{"declined", StatusDeclined},
		{"rejected", StatusDeclined},
		{"failed", StatusDeclined},
		{"  Accepted  ", StatusConfirmed},
		{"COMPLETED", StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Canonicalize(tt.raw)
			require.True(t, ok, "expected %q to be recognized", tt.raw)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	raws := []string{
		"pending", "pending approval", "accepted", "in progress", "active",
		"approved", "in_progress", "review", "done", "finished", "canceled",
		"rejected", "failed",
	}
	for _, raw := range raws {
		first, ok := Canonicalize(raw)
		require.True(t, ok)
		second, ok := Canonicalize(string(first))
		require.True(t, ok)
		assert.Equal(t, first, second, "canonical form of %q must be a fixpoint", raw)
	}
}

func TestCanonicalize_UnknownPassesThrough(t *testing.T) {
	got, ok := Canonicalize("limbo")
	assert.False(t, ok)
	assert.Equal(t, Status("limbo"), got)
}

func TestStoredSpellings(t *testing.T) {
	spellings := StoredSpellings(StatusConfirmed)
	assert.ElementsMatch(t,
		[]string{"confirmed", "accepted", "in progress", "active", "approved"},
		spellings,
	)

	assert.ElementsMatch(t, []string{"review"}, StoredSpellings(StatusReview))
	assert.ElementsMatch(t, []string{"cancelled", "canceled"}, StoredSpellings(StatusCancelled))
}

func TestTransition_AllowedPaths(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		actor  Actor
		action Action
		want   Status
	}{
		{"artist accepts pending", StatusPending, ActorArtist, ActionAccept, StatusConfirmed},
		{"artist declines pending", StatusPending, ActorArtist, ActionDecline, StatusDeclined},
		{"admin accepts pending", StatusPending, ActorAdmin, ActionAccept, StatusConfirmed},
		{"customer cancels pending", StatusPending, ActorCustomer, ActionCancel, StatusCancelled},
		{"customer cancels confirmed", StatusConfirmed, ActorCustomer, ActionCancel, StatusCancelled},
		{"artist starts confirmed", StatusConfirmed, ActorArtist, ActionStart, StatusInProgress},
		{"artist delivers", StatusInProgress, ActorArtist, ActionDeliver, StatusReview},
		{"artist completes directly", StatusInProgress, ActorArtist, ActionComplete, StatusCompleted},
		{"admin declines in_progress", StatusInProgress, ActorAdmin, ActionDecline, StatusDeclined},
		{"customer cancels in_progress", StatusInProgress, ActorCustomer, ActionCancel, StatusCancelled},
		{"customer approves review", StatusReview, ActorCustomer, ActionApprove, StatusCompleted},
		{"customer requests changes", StatusReview, ActorCustomer, ActionRequestChanges, StatusInProgress},
		{"customer cancels review", StatusReview, ActorCustomer, ActionCancel, StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.actor, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransition_RejectedPaths(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		actor  Actor
		action Action
	}{
		{"customer cannot accept own booking", StatusPending, ActorCustomer, ActionAccept},
		{"artist cannot cancel confirmed", StatusConfirmed, ActorArtist, ActionCancel},
		{"artist cannot approve delivery", StatusReview, ActorArtist, ActionApprove},
		{"completed is terminal", StatusCompleted, ActorAdmin, ActionCancel},
		{"cancelled is terminal", StatusCancelled, ActorArtist, ActionStart},
		{"declined is terminal", StatusDeclined, ActorCustomer, ActionCancel},
		{"cannot deliver before starting", StatusConfirmed, ActorArtist, ActionDeliver},
		{"unknown source status", Status("limbo"), ActorAdmin, ActionAccept},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Transition(tt.from, tt.actor, tt.action)
			assert.Error(t, err)
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusDeclined.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusReview.IsTerminal())
}
