package domain

// Nightly rates per category in currency-agnostic units. A lookup table
// rather than a switch so new categories only touch this file.
var nightlyRates = map[Category]int64{
	CategoryStandard: 100,
	CategoryDeluxe:   150,
	CategorySuite:    250,
}

// NightlyRate returns the per-night rate for a category, 0 if unknown.
func NightlyRate(c Category) int64 {
	return nightlyRates[c]
}

// Quote computes the total cost of a stay: nights times the category rate.
// No taxes, fees, or rounding.
func Quote(c Category, nights int) int64 {
	return int64(nights) * nightlyRates[c]
}
