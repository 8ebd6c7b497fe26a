package service

import "github.com/shopspring/decimal"

// roundTo2Decimals rounds half away from zero on the decimal representation.
// Non-finite values are returned as is.
func roundTo2Decimals(value float64) float64 {
	if !isFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}
