package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	bookingDomain "github.com/Thushyanthini0507/artzyra-server/internal/domain/booking"
)

func bookingModelFixture(status, paymentStatus string) *BookingModel {
	now := time.Now().UTC()
	return &BookingModel{
		ID:               uuid.New(),
		BookingNumber:    "AZ-TEST01",
		CustomerID:       uuid.New(),
		ArtistID:         uuid.New(),
		Service:          "logo design",
		Tier:             "standard",
		PricingType:      "package",
		PaymentType:      "full",
		Project:          json.RawMessage(`{"title":"Logo","description":"brand mark"}`),
		Schedule:         json.RawMessage(`{}`),
		TotalAmountCents: 175000,
		Currency:         "LKR",
		Status:           status,
		PaymentStatus:    paymentStatus,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestToDomainBooking_WarnsOnUnrecognizedStatus(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := &GormBookingRepository{logger: zap.New(core)}

	model := bookingModelFixture("limbo", "pending")
	bk, err := repo.toDomainBooking(model)
	require.NoError(t, err)

	// Unknown values pass through so admin tooling can surface them.
	assert.Equal(t, bookingDomain.Status("limbo"), bk.Status())

	entries := logs.FilterMessage("unrecognized booking status in stored row").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "limbo", entries[0].ContextMap()["status"])
}

func TestToDomainBooking_WarnsOnUnrecognizedPaymentStatus(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := &GormBookingRepository{logger: zap.New(core)}

	model := bookingModelFixture("pending", "escrowed")
	_, err := repo.toDomainBooking(model)
	require.NoError(t, err)

	entries := logs.FilterMessage("unrecognized payment status in stored row").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "escrowed", entries[0].ContextMap()["payment_status"])
}

func TestToDomainBooking_SilentOnLegacySpelling(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := &GormBookingRepository{logger: zap.New(core)}

	model := bookingModelFixture("accepted", "paid")
	bk, err := repo.toDomainBooking(model)
	require.NoError(t, err)

	assert.Equal(t, bookingDomain.StatusConfirmed, bk.Status())
	assert.Equal(t, bookingDomain.PaymentSucceeded, bk.PaymentStatus())
	assert.Zero(t, logs.Len())
}
