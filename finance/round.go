// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundCurrency rounds an amount to 2 decimal places for responses.
func RoundCurrency(value float64) float64 {
	return roundTo(value, 2)
}

// RoundRatio rounds a ratio to 4 decimal places for responses.
func RoundRatio(value float64) float64 {
	return roundTo(value, 4)
}

func roundTo(value float64, places int32) float64 {
	// decimal.NewFromFloat panics on NaN and Inf
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}
