package service

// Price table by rental duration in minutes. Fixed tiers, no dynamic pricing.
var durationPrices = map[int]float64{
	5:  5,
	10: 8,
	30: 15,
	60: 25,
}

// basePrice is the cheapest tier, used as the legacy fallback for unknown
// durations.
const basePrice = 5

// PriceFor resolves the price of a rental duration. Unknown durations are
// rejected unless legacy pricing is enabled, in which case they silently
// resolve to the base tier the way the original dashboard did. The legacy
// mode exists for compatibility only: it quietly sells an unpriced duration
// at the cheapest rate.
func PriceFor(duration int, legacy bool) (float64, error) {
	if price, ok := durationPrices[duration]; ok {
		return price, nil // Priced tier
	}
	if legacy {
		return basePrice, nil // Legacy fallback to the cheapest tier
	}
	return 0, ErrInvalidDuration
}
