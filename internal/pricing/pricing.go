// Package pricing derives customer-facing selling prices from import costs
// and gross-margin rates.
package pricing

import "math"

// DefaultGMRate is applied when a catalog record carries no margin rate.
const DefaultGMRate = 10

// SellingPrice inflates an import price by the gross-margin rate:
// importPrice / (1 - gmRate/100). gmRate must stay below 100; catalog
// normalization clamps out-of-range rates before they reach this function.
func SellingPrice(importPrice, gmRate float64) float64 {
	return importPrice / (1 - gmRate/100)
}

// RoundToThousand rounds to the nearest 1,000 VND. Idempotent.
func RoundToThousand(price float64) float64 {
	return math.Round(price/1000) * 1000
}

// ClampGMRate guards the SellingPrice precondition. Rates at or above 100
// would invert the sign of the division, so they fall back to the default;
// negative rates are treated the same way.
func ClampGMRate(rate float64) float64 {
	if rate < 0 || rate >= 100 {
		return DefaultGMRate
	}
	return rate
}
