package domain

import "math"

// Base monthly prices in RWF.
var basePrices = map[MembershipCategory]int64{
	CategoryNormal: 30000,
	CategoryGroup:  20000,
}

// Multi-period discounts, percent.
var durationDiscounts = map[BillingDuration]float64{
	DurationWeekly:  0,
	DurationMonthly: 0,
	DurationQuarter: 10,
	DurationAnnual:  20,
}

// Price returns the registration fee for a category/duration pair in RWF.
// Weekly is a third of the monthly base; longer periods are discounted.
func Price(category MembershipCategory, duration BillingDuration) int64 {
	base := basePrices[category]
	if base == 0 {
		return 0
	}
	switch duration {
	case DurationWeekly:
		return int64(math.Round(float64(base) / 3))
	case DurationQuarter:
		return int64(math.Round(float64(base*3) * (1 - durationDiscounts[duration]/100)))
	case DurationAnnual:
		return int64(math.Round(float64(base*12) * (1 - durationDiscounts[duration]/100)))
	default:
		return base
	}
}

// MembershipDays is the validity period granted for a billing duration.
func MembershipDays(duration BillingDuration) int {
	switch duration {
	case DurationWeekly:
		return 7
	case DurationQuarter:
		return 90
	case DurationAnnual:
		return 365
	default:
		return 30
	}
}
