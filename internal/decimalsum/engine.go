// Package decimalsum sums numbers in exact decimal arithmetic and renders the
// total as a fixed-point string rounded half away from zero.
package decimalsum

import (
	"github.com/shopspring/decimal"
)

// Sum adds values left to right in decimal arithmetic and returns the total
// rounded to decimalPlaces fractional digits.
//
// Each float64 enters the fold as its shortest round-tripping decimal, so 0.1
// is added as exactly 0.1 rather than as its binary approximation. Ties round
// away from zero (2.125 -> 2.13, -2.125 -> -2.13). The result carries exactly
// decimalPlaces fractional digits and no separator when decimalPlaces is 0.
//
// Callers must pass finite values and a non-negative precision; Validate
// guarantees both.
func Sum(values []float64, decimalPlaces int) string {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return format(total, decimalPlaces)
}

// format rounds d half away from zero and pads to places digits. StringFixed
// works on the big.Int coefficient, which has no negative zero, so a total
// that rounds to zero never renders as "-0.00".
func format(d decimal.Decimal, places int) string {
	return d.StringFixed(int32(places))
}
