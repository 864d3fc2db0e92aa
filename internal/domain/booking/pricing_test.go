package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardPricingStrategy_PackageTiers(t *testing.T) {
	s := NewStandardPricingStrategy()

	tests := []struct {
		tier PackageTier
		want int64
	}{
		{TierBasic, 100000},
		{TierStandard, 175000},
		{TierPremium, 300000},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			got, err := s.Quote(QuoteParams{
				PricingType:     PricingPackage,
				Tier:            tt.tier,
				ArtistRateCents: 100000,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStandardPricingStrategy_CustomQuote(t *testing.T) {
	s := NewStandardPricingStrategy()

	got, err := s.Quote(QuoteParams{
		PricingType: PricingCustomQuote,
		QuotedCents: 425000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(425000), got)

	// The custom tier uses the agreed amount even under package pricing.
	got, err = s.Quote(QuoteParams{
		PricingType:     PricingPackage,
		Tier:            TierCustom,
		ArtistRateCents: 100000,
		QuotedCents:     50000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), got)
}

func TestStandardPricingStrategy_Rejections(t *testing.T) {
	s := NewStandardPricingStrategy()

	_, err := s.Quote(QuoteParams{PricingType: PricingCustomQuote, QuotedCents: 0})
	assert.Error(t, err)

	_, err = s.Quote(QuoteParams{PricingType: PricingPackage, Tier: TierBasic, ArtistRateCents: 0})
	assert.Error(t, err)

	_, err = s.Quote(QuoteParams{PricingType: PricingPackage, Tier: "deluxe", ArtistRateCents: 100000})
	assert.Error(t, err)
}

func TestAdvanceAmount(t *testing.T) {
	assert.Equal(t, int64(3000), AdvanceAmount(10000, 30))
	assert.Equal(t, int64(10000), AdvanceAmount(10000, 100))

	// Out-of-range percentages fall back to 50.
	assert.Equal(t, int64(5000), AdvanceAmount(10000, 0))
	assert.Equal(t, int64(5000), AdvanceAmount(10000, 101))
	assert.Equal(t, int64(5000), AdvanceAmount(10000, -10))
}
