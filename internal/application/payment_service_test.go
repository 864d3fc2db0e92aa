package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/payment"
	"github.com/Thushyanthini0507/artzyra-server/internal/events"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/auth"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// --- Fakes ---

type fakePaymentRepo struct {
	payments map[uuid.UUID]*payment.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*payment.Payment)}
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, domain.NewNotFoundError("payment", id.String())
	}
	return p, nil
}

func (r *fakePaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*payment.Payment, error) {
	var out []*payment.Payment
	for _, p := range r.payments {
		if p.BookingID() == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID, _, _ int) ([]*payment.Payment, int64, error) {
	var out []*payment.Payment
	for _, p := range r.payments {
		if p.CustomerID() == customerID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) Save(_ context.Context, p *payment.Payment) error {
	r.payments[p.ID()] = p
	return nil
}

func (r *fakePaymentRepo) Update(_ context.Context, p *payment.Payment) error {
	r.payments[p.ID()] = p
	return nil
}

// scriptedGateway returns queued results in order.
type scriptedGateway struct {
	results []payment.ChargeResult
	refunds []string
}

func (g *scriptedGateway) VerifyCharge(_ context.Context, _ string, _ int64, _ string) (payment.ChargeResult, error) {
	if len(g.results) == 0 {
		return payment.ChargeResult{}, domain.NewInvalidOperationError("no scripted result")
	}
	next := g.results[0]
	g.results = g.results[1:]
	return next, nil
}

func (g *scriptedGateway) CreateRefund(_ context.Context, gatewayRef string, _ int64) (string, error) {
	g.refunds = append(g.refunds, gatewayRef)
	return "REF-" + gatewayRef, nil
}

// --- Fixture ---

type paymentFixture struct {
	*bookingFixture
	svc      *PaymentService
	payments *fakePaymentRepo
	gateway  *scriptedGateway
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	bf := newBookingFixture(t)
	payments := newFakePaymentRepo()
	gateway := &scriptedGateway{}
	svc := NewPaymentService(payments, bf.repo, gateway, bf.publisher, zap.NewNop())
	return &paymentFixture{
		bookingFixture: bf,
		svc:            svc,
		payments:       payments,
		gateway:        gateway,
	}
}

// --- Tests ---

func TestPaymentService_CreatePayment(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	dto := f.bookingFixture.createBooking(t)

	f.gateway.results = []payment.ChargeResult{
		{Succeeded: true, GatewayRef: "PH-1001"},
	}

	paid, err := f.svc.CreatePayment(ctx, f.customer.ID(), CreatePaymentRequest{
		BookingID: dto.ID,
		Token:     "tok-abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "succeeded", paid.Status)
	assert.Equal(t, dto.TotalAmountCents, paid.AmountCents)

	evt := f.publisher.lastEvent(t)
	assert.Equal(t, events.PaymentSucceeded, evt.Type)
}

func TestPaymentService_CreatePayment_OnlyOwner(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	dto := f.bookingFixture.createBooking(t)

	_, err := f.svc.CreatePayment(ctx, uuid.New(), CreatePaymentRequest{
		BookingID: dto.ID,
		Token:     "tok-abc",
	})
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeForbidden, derr.Code)
}

func TestPaymentService_RetryAfterFailedCharge(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	dto := f.bookingFixture.createBooking(t)

	f.gateway.results = []payment.ChargeResult{
		{Succeeded: false, Reason: "card declined"},
		{Succeeded: true, GatewayRef: "PH-1002"},
	}

	failed, err := f.svc.CreatePayment(ctx, f.customer.ID(), CreatePaymentRequest{
		BookingID: dto.ID,
		Token:     "tok-first",
	})
	require.NoError(t, err)
	assert.Equal(t, "failed", failed.Status)
	assert.Equal(t, "card declined", failed.FailureReason)
	assert.Equal(t, events.PaymentFailed, f.publisher.lastEvent(t).Type)

	// The consumer applies the outcome to the booking's payment axis.
	require.NoError(t, f.bookingFixture.svc.ApplyPaymentFailed(ctx, dto.ID))

	got, err := f.bookingFixture.svc.GetBooking(ctx, dto.ID, f.customer.ID(), auth.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "failed", got.PaymentStatus)
	assert.True(t, got.CanPayNow, "a declined charge may be retried")

	retried, err := f.svc.CreatePayment(ctx, f.customer.ID(), CreatePaymentRequest{
		BookingID: dto.ID,
		Token:     "tok-second",
	})
	require.NoError(t, err)
	assert.Equal(t, "succeeded", retried.Status)

	require.NoError(t, f.bookingFixture.svc.ApplyPaymentSucceeded(ctx, dto.ID, retried.AmountCents))
	got, err = f.bookingFixture.svc.GetBooking(ctx, dto.ID, f.customer.ID(), auth.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "succeeded", got.PaymentStatus)
	assert.False(t, got.CanPayNow)
}

func TestPaymentService_CreatePayment_SettledBookingNotPayable(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	dto := f.bookingFixture.createBooking(t)

	f.gateway.results = []payment.ChargeResult{
		{Succeeded: true, GatewayRef: "PH-1003"},
	}
	_, err := f.svc.CreatePayment(ctx, f.customer.ID(), CreatePaymentRequest{
		BookingID: dto.ID,
		Token:     "tok-abc",
	})
	require.NoError(t, err)
	require.NoError(t, f.bookingFixture.svc.ApplyPaymentSucceeded(ctx, dto.ID, dto.TotalAmountCents))

	_, err = f.svc.CreatePayment(ctx, f.customer.ID(), CreatePaymentRequest{
		BookingID: dto.ID,
		Token:     "tok-again",
	})
	assert.Error(t, err, "a settled booking takes no further charges")
}

func TestPaymentService_VerifyPayment_SettledIsNoOp(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	dto := f.bookingFixture.createBooking(t)

	f.gateway.results = []payment.ChargeResult{
		{Succeeded: true, GatewayRef: "PH-1004"},
	}
	paid, err := f.svc.CreatePayment(ctx, f.customer.ID(), CreatePaymentRequest{
		BookingID: dto.ID,
		Token:     "tok-abc",
	})
	require.NoError(t, err)

	verified, err := f.svc.VerifyPayment(ctx, f.customer.ID(), VerifyPaymentRequest{
		PaymentID: paid.ID,
		Token:     "tok-abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "succeeded", verified.Status)
	assert.Empty(t, f.gateway.results, "a settled payment is not re-verified")
}
