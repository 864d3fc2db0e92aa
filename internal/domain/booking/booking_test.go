package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T, totalCents int64) *Booking {
	t.Helper()
	b, err := NewBooking(
		uuid.New(), uuid.New(),
		"logo design",
		TierStandard,
		PricingPackage,
		PaymentTypeFull,
		0,
		ProjectBrief{Title: "Brand refresh", Description: "new logo and palette"},
		Schedule{},
		nil,
		totalCents,
		"LKR",
	)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	b := newTestBooking(t, 175000)

	assert.Equal(t, StatusPending, b.Status())
	assert.Equal(t, PaymentPending, b.PaymentStatus())
	assert.Equal(t, int64(1), b.Version())
	assert.True(t, strings.HasPrefix(b.BookingNumber(), "AZ-"))
	assert.Len(t, b.BookingNumber(), 9)
}

func TestNewBooking_Validation(t *testing.T) {
	customerID := uuid.New()
	artistID := uuid.New()
	project := ProjectBrief{Title: "x"}

	_, err := NewBooking(uuid.Nil, artistID, "svc", TierBasic, PricingPackage, PaymentTypeFull, 0, project, Schedule{}, nil, 1000, "LKR")
	assert.Error(t, err)

	_, err = NewBooking(customerID, customerID, "svc", TierBasic, PricingPackage, PaymentTypeFull, 0, project, Schedule{}, nil, 1000, "LKR")
	assert.Error(t, err, "customer booking themselves must fail")

	_, err = NewBooking(customerID, artistID, "", TierBasic, PricingPackage, PaymentTypeFull, 0, project, Schedule{}, nil, 1000, "LKR")
	assert.Error(t, err)

	_, err = NewBooking(customerID, artistID, "svc", "deluxe", PricingPackage, PaymentTypeFull, 0, project, Schedule{}, nil, 1000, "LKR")
	assert.Error(t, err)

	_, err = NewBooking(customerID, artistID, "svc", TierBasic, PricingPackage, PaymentTypeAdvance, 0, project, Schedule{}, nil, 1000, "LKR")
	assert.Error(t, err, "advance payment without a percentage must fail")
}

func TestBooking_Accept_RequiresSettledPayment(t *testing.T) {
	b := newTestBooking(t, 100000)

	err := b.Accept(ActorArtist)
	assert.Error(t, err, "money-bearing booking cannot be confirmed while unpaid")
	assert.Equal(t, StatusPending, b.Status())

	require.NoError(t, b.RecordPayment(100000))
	require.NoError(t, b.Accept(ActorArtist))
	assert.Equal(t, StatusConfirmed, b.Status())
}

func TestBooking_Accept_FreeBooking(t *testing.T) {
	b := newTestBooking(t, 0)

	require.NoError(t, b.Accept(ActorArtist))
	assert.Equal(t, StatusConfirmed, b.Status())
}

func TestBooking_AdvanceSettlesPayment(t *testing.T) {
	b, err := NewBooking(
		uuid.New(), uuid.New(), "mural", TierPremium, PricingPackage,
		PaymentTypeAdvance, 30,
		ProjectBrief{Title: "wall mural"}, Schedule{}, nil, 300000, "LKR",
	)
	require.NoError(t, err)

	require.NoError(t, b.RecordPayment(90000))
	assert.Equal(t, PaymentPartial, b.PaymentStatus())

	require.NoError(t, b.Accept(ActorArtist), "a settled advance unlocks confirmation")
	assert.Equal(t, StatusConfirmed, b.Status())
}

func TestBooking_RecordPayment(t *testing.T) {
	b := newTestBooking(t, 100000)

	require.NoError(t, b.RecordPayment(40000))
	assert.Equal(t, PaymentPartial, b.PaymentStatus())
	assert.Equal(t, int64(40000), b.AmountPaidCents())

	require.NoError(t, b.RecordPayment(60000))
	assert.Equal(t, PaymentSucceeded, b.PaymentStatus())
	assert.Equal(t, int64(100000), b.AmountPaidCents())

	assert.Error(t, b.RecordPayment(0))
	assert.Error(t, b.RecordPayment(-5))
}

func TestBooking_PaymentFailure_DoesNotTouchStatus(t *testing.T) {
	b := newTestBooking(t, 100000)

	require.NoError(t, b.RecordPaymentFailure())
	assert.Equal(t, PaymentFailed, b.PaymentStatus())
	assert.Equal(t, StatusPending, b.Status())

	// A retried charge can still succeed after a failure.
	require.NoError(t, b.RecordPayment(100000))
	assert.Equal(t, PaymentSucceeded, b.PaymentStatus())
}

func TestBooking_FullLifecycle(t *testing.T) {
	b := newTestBooking(t, 100000)

	require.NoError(t, b.RecordPayment(100000))
	require.NoError(t, b.Accept(ActorArtist))
	require.NoError(t, b.Start(ActorArtist))
	require.NoError(t, b.Deliver(ActorArtist))
	assert.Equal(t, StatusReview, b.Status())

	require.NoError(t, b.RequestChanges(ActorCustomer, "make the logo bigger"))
	assert.Equal(t, StatusInProgress, b.Status())
	require.Len(t, b.Revisions(), 1)
	assert.Equal(t, RevisionRequested, b.Revisions()[0].Status)

	require.NoError(t, b.Deliver(ActorArtist))
	assert.Equal(t, RevisionDelivered, b.Revisions()[0].Status)

	require.NoError(t, b.Approve(ActorCustomer, "great work"))
	assert.Equal(t, StatusCompleted, b.Status())
	assert.Equal(t, RevisionAccepted, b.Revisions()[0].Status)
}

func TestBooking_RequestChanges_RequiresNote(t *testing.T) {
	b := newTestBooking(t, 0)
	require.NoError(t, b.Accept(ActorArtist))
	require.NoError(t, b.Start(ActorArtist))
	require.NoError(t, b.Deliver(ActorArtist))

	assert.Error(t, b.RequestChanges(ActorCustomer, ""))
	assert.Equal(t, StatusReview, b.Status(), "failed request must not move the booking")
}

func TestBooking_Cancel_PendingFullRefund(t *testing.T) {
	b := newTestBooking(t, 100000)
	require.NoError(t, b.RecordPayment(100000))

	policy := NewRefundPolicy(24)
	now := time.Now().UTC()
	require.NoError(t, b.Cancel(ActorCustomer, b.CustomerID(), "changed my mind", policy, now))

	assert.Equal(t, StatusCancelled, b.Status())
	c := b.Cancellation()
	require.NotNil(t, c)
	assert.Equal(t, b.CustomerID(), c.CancelledBy)
	assert.Equal(t, ActorCustomer, c.CancelledByRole)
	assert.Equal(t, "changed my mind", c.Reason)
	assert.Equal(t, int64(100000), c.RefundAmountCents)
	assert.Equal(t, RefundPending, c.RefundStatus)
}

func TestBooking_Cancel_RefundCappedAtAmountPaid(t *testing.T) {
	b := newTestBooking(t, 100000)
	require.NoError(t, b.RecordPayment(40000))

	policy := NewRefundPolicy(24)
	require.NoError(t, b.Cancel(ActorCustomer, b.CustomerID(), "", policy, time.Now().UTC()))

	c := b.Cancellation()
	require.NotNil(t, c)
	assert.Equal(t, int64(40000), c.RefundAmountCents, "refund can only return captured money")
}

func TestBooking_Cancel_UnpaidHasNoRefundLeg(t *testing.T) {
	b := newTestBooking(t, 100000)

	policy := NewRefundPolicy(24)
	require.NoError(t, b.Cancel(ActorCustomer, b.CustomerID(), "", policy, time.Now().UTC()))

	c := b.Cancellation()
	require.NotNil(t, c)
	assert.Equal(t, int64(0), c.RefundAmountCents)
	assert.Equal(t, RefundNone, c.RefundStatus)
}

func TestBooking_Cancel_InvalidTransitionMutatesNothing(t *testing.T) {
	b := newTestBooking(t, 0)
	require.NoError(t, b.Accept(ActorArtist))
	require.NoError(t, b.Start(ActorArtist))
	require.NoError(t, b.Complete(ActorArtist))

	policy := NewRefundPolicy(24)
	err := b.Cancel(ActorCustomer, b.CustomerID(), "", policy, time.Now().UTC())
	assert.Error(t, err)
	assert.Equal(t, StatusCompleted, b.Status())
	assert.Nil(t, b.Cancellation())
}

func TestBooking_RecordRefundProcessed(t *testing.T) {
	b := newTestBooking(t, 100000)
	require.NoError(t, b.RecordPayment(100000))

	policy := NewRefundPolicy(24)
	require.NoError(t, b.Cancel(ActorCustomer, b.CustomerID(), "", policy, time.Now().UTC()))

	require.NoError(t, b.RecordRefundProcessed())
	assert.Equal(t, PaymentRefunded, b.PaymentStatus())
	assert.Equal(t, int64(100000), b.AmountRefundedCents())
	assert.Equal(t, RefundProcessed, b.Cancellation().RefundStatus)

	assert.Error(t, b.RecordRefundProcessed(), "a refund cannot be processed twice")
}

func TestBooking_RecordRefundProcessed_NoPendingRefund(t *testing.T) {
	b := newTestBooking(t, 100000)
	assert.Error(t, b.RecordRefundProcessed())
}

func TestBooking_ForceStatus(t *testing.T) {
	b := newTestBooking(t, 0)

	require.NoError(t, b.ForceStatus(StatusCompleted))
	assert.Equal(t, StatusCompleted, b.Status())

	require.NoError(t, b.ForceStatus(Status("accepted")), "legacy spellings canonicalize")
	assert.Equal(t, StatusConfirmed, b.Status())

	assert.Error(t, b.ForceStatus(Status("limbo")))
	assert.Equal(t, StatusConfirmed, b.Status())
}

func TestBooking_CanBeDeleted(t *testing.T) {
	b := newTestBooking(t, 0)
	assert.True(t, b.CanBeDeleted())

	require.NoError(t, b.Accept(ActorArtist))
	assert.False(t, b.CanBeDeleted())
}

func TestBooking_UpdateDetails_OnlyWhilePending(t *testing.T) {
	b := newTestBooking(t, 0)

	updated := ProjectBrief{Title: "Rebrand v2", Description: "expanded scope"}
	require.NoError(t, b.UpdateDetails(updated, Schedule{}, nil))
	assert.Equal(t, "Rebrand v2", b.Snapshot().Project.Title)

	require.NoError(t, b.Accept(ActorArtist))
	assert.Error(t, b.UpdateDetails(updated, Schedule{}, nil))
}

func TestBooking_Disputes(t *testing.T) {
	b := newTestBooking(t, 0)
	raiser := b.CustomerID()

	assert.Error(t, b.RaiseDispute(raiser, ""), "dispute needs a reason")

	require.NoError(t, b.RaiseDispute(raiser, "work does not match the brief"))
	require.NotNil(t, b.Dispute())
	assert.Equal(t, DisputeOpen, b.Dispute().Status)

	assert.Error(t, b.RaiseDispute(raiser, "again"), "only one dispute per booking")

	require.NoError(t, b.ResolveDispute("partial redo agreed"))
	assert.Equal(t, DisputeResolved, b.Dispute().Status)
	assert.Equal(t, "partial redo agreed", b.Dispute().Resolution)

	assert.Error(t, b.ResolveDispute("twice"))
}

func TestBooking_SnapshotRoundTrip(t *testing.T) {
	b := newTestBooking(t, 175000)
	require.NoError(t, b.RecordPayment(175000))
	require.NoError(t, b.Accept(ActorArtist))
	b.IncrementVersion()

	restored := Reconstruct(b.Snapshot())
	assert.Equal(t, b.ID(), restored.ID())
	assert.Equal(t, b.Status(), restored.Status())
	assert.Equal(t, b.PaymentStatus(), restored.PaymentStatus())
	assert.Equal(t, b.AmountPaidCents(), restored.AmountPaidCents())
	assert.Equal(t, b.Version(), restored.Version())
}
