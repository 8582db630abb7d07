// Package finance holds the pure settlement and commission rules triggered by
// montage status transitions. Every function checks the existing records it is
// given before proposing a new one, so repeated invocations are no-ops.
package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a currency amount to minor units (grosze), rounding
// half away from zero.
func ToMinorUnits(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(hundred).Round(0).IntPart()
}

// CommissionAmount returns round(area * rate * 100) in minor units.
func CommissionAmount(area, rate float64) int64 {
	return decimal.NewFromFloat(area).
		Mul(decimal.NewFromFloat(rate)).
		Mul(hundred).
		Round(0).
		IntPart()
}
