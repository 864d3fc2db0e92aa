package booking

import (
	"time"

	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// DefaultCancellationWindowHours is the free-cancellation window applied when
// no override is configured.
const DefaultCancellationWindowHours = 24

// RefundPolicy decides refund eligibility and amount for a cancellation.
type RefundPolicy struct {
	WindowHours int
}

// NewRefundPolicy creates a policy with the given cancellation window,
// falling back to the default for non-positive values.
func NewRefundPolicy(windowHours int) RefundPolicy {
	if windowHours <= 0 {
		windowHours = DefaultCancellationWindowHours
	}
	return RefundPolicy{WindowHours: windowHours}
}

// Evaluate computes the refund for cancelling a booking. It is a pure function
// of the booking status, time until the engagement starts, and total amount.
//
// Rules, in order:
//  1. completed or already cancelled: refused.
//  2. pending: full refund, no commitment was made.
//  3. more than WindowHours before the start: full refund.
//  4. in_progress inside the window: half, work has started.
//  5. otherwise: zero. A confirmed booking cancelled inside the window gets
//     nothing; the slot was committed and no work justifies a partial.
//
// A nil start time means the engagement has no scheduled start (remote or
// asynchronous work), which is treated as outside the window.
func (p RefundPolicy) Evaluate(status Status, startAt *time.Time, now time.Time, totalAmountCents int64) (int64, error) {
	if status == StatusCompleted || status == StatusCancelled {
		return 0, domain.NewNotCancellableError(string(status))
	}

	if status == StatusPending {
		return totalAmountCents, nil
	}

	if startAt == nil || startAt.Sub(now).Hours() > float64(p.WindowHours) {
		return totalAmountCents, nil
	}

	if status == StatusInProgress {
		return totalAmountCents / 2, nil
	}

	return 0, nil
}
