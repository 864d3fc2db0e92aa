package booking

import "fmt"

// PricingType distinguishes how a booking's total was arrived at.
type PricingType string

const (
	PricingPackage     PricingType = "package"
	PricingCustomQuote PricingType = "custom_quote"
)

// IsValid returns true if the pricing type is recognized.
func (p PricingType) IsValid() bool {
	return p == PricingPackage || p == PricingCustomQuote
}

// PaymentType distinguishes paying everything up front from an advance.
type PaymentType string

const (
	PaymentTypeAdvance PaymentType = "advance"
	PaymentTypeFull    PaymentType = "full"
)

// IsValid returns true if the payment type is recognized.
func (p PaymentType) IsValid() bool {
	return p == PaymentTypeAdvance || p == PaymentTypeFull
}

// PackageTier is the service package chosen for package-priced bookings.
type PackageTier string

const (
	TierBasic    PackageTier = "basic"
	TierStandard PackageTier = "standard"
	TierPremium  PackageTier = "premium"
	TierCustom   PackageTier = "custom"
)

// IsValid returns true if the package tier is recognized.
func (t PackageTier) IsValid() bool {
	switch t {
	case TierBasic, TierStandard, TierPremium, TierCustom:
		return true
	}
	return false
}

// QuoteParams holds the inputs for price calculation.
type QuoteParams struct {
	PricingType     PricingType
	Tier            PackageTier
	ArtistRateCents int64
	QuotedCents     int64
	DurationMinutes int
}

// PricingStrategy calculates a booking total in cents.
type PricingStrategy interface {
	Quote(params QuoteParams) (int64, error)
}

// StandardPricingStrategy implements the marketplace's default pricing.
type StandardPricingStrategy struct{}

// NewStandardPricingStrategy creates the default pricing strategy.
func NewStandardPricingStrategy() *StandardPricingStrategy {
	return &StandardPricingStrategy{}
}

// Tier multipliers applied on top of the artist's base rate, in percent.
const (
	tierBasicPct    = 100
	tierStandardPct = 175
	tierPremiumPct  = 300
)

// Quote computes the booking total in LKR cents.
//
// Package pricing multiplies the artist's base rate by the tier multiplier.
// Custom quotes and the custom tier pass the agreed amount through unchanged.
func (s *StandardPricingStrategy) Quote(params QuoteParams) (int64, error) {
	if params.PricingType == PricingCustomQuote || params.Tier == TierCustom {
		if params.QuotedCents <= 0 {
			return 0, fmt.Errorf("custom quote amount must be positive")
		}
		return params.QuotedCents, nil
	}

	if params.ArtistRateCents <= 0 {
		return 0, fmt.Errorf("artist rate must be positive")
	}

	var pct int64
	switch params.Tier {
	case TierBasic:
		pct = tierBasicPct
	case TierStandard:
		pct = tierStandardPct
	case TierPremium:
		pct = tierPremiumPct
	default:
		return 0, fmt.Errorf("unknown package tier for pricing: %s", params.Tier)
	}

	return params.ArtistRateCents * pct / 100, nil
}

// AdvanceAmount computes the advance due for a booking paying by advance.
// Percentages outside 1..100 fall back to 50.
func AdvanceAmount(totalCents int64, advancePercentage int) int64 {
	if advancePercentage <= 0 || advancePercentage > 100 {
		advancePercentage = 50
	}
	return totalCents * int64(advancePercentage) / 100
}
