// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
	"math/big"

	"github.com/iwvelando/house-affordability/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundHalfAwayFromZero rounds val to the given number of decimal places,
// resolving ties away from zero. The tie test is made on the exact binary
// value, so 0.125 becomes 0.13 while 1.005 (stored just below the tie) stays
// 1.00.
func RoundHalfAwayFromZero(val float64, places int) float64 {
	if !IsFinite(val) || places < 0 {
		return val
	}

	scaleInt := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	scaled := new(big.Float).SetPrec(256).SetFloat64(val)
	scaled.Mul(scaled, new(big.Float).SetPrec(256).SetInt(scaleInt))
	if val < 0 {
		scaled.Sub(scaled, big.NewFloat(0.5))
	} else {
		scaled.Add(scaled, big.NewFloat(0.5))
	}

	n, _ := scaled.Int(nil)
	rounded, _ := new(big.Rat).SetFrac(n, scaleInt).Float64()
	return rounded
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
