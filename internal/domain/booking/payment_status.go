package booking

import "strings"

// PaymentStatus is the payment axis of a booking, independent of Status.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentPartial   PaymentStatus = "partial"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentFailed    PaymentStatus = "failed"
)

// paymentTransitions defines the allowed moves on the payment axis.
// A failed charge may be retried; refunded is terminal.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentSucceeded, PaymentPartial, PaymentFailed},
	PaymentPartial:   {PaymentSucceeded, PaymentRefunded, PaymentFailed},
	PaymentFailed:    {PaymentSucceeded, PaymentPartial},
	PaymentSucceeded: {PaymentRefunded},
	PaymentRefunded:  {},
}

// CanonicalizePaymentStatus folds gateway synonyms ("paid") onto the canonical
// payment enum. Unrecognized values pass through with ok=false.
func CanonicalizePaymentStatus(raw string) (PaymentStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch PaymentStatus(s) {
	case PaymentPending, PaymentSucceeded, PaymentPartial, PaymentRefunded, PaymentFailed:
		return PaymentStatus(s), true
	}
	if s == "paid" {
		return PaymentSucceeded, true
	}
	return PaymentStatus(raw), false
}

// IsValid returns true if the payment status is recognized.
func (p PaymentStatus) IsValid() bool {
	_, ok := paymentTransitions[p]
	return ok
}

// CanTransitionTo returns true if the payment axis allows this move.
func (p PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, t := range paymentTransitions[p] {
		if t == target {
			return true
		}
	}
	return false
}

// CanPayNow reports whether a payment may be initiated: the booking still owes
// money and has not been cancelled or declined. A failed charge may be
// retried until one succeeds.
func CanPayNow(payment PaymentStatus, status Status) bool {
	if status == StatusCancelled || status == StatusDeclined {
		return false
	}
	return payment == PaymentPending || payment == PaymentFailed
}

// CanRefund reports whether money has been captured and not yet returned.
func CanRefund(payment PaymentStatus) bool {
	return payment == PaymentSucceeded || payment == PaymentPartial
}
