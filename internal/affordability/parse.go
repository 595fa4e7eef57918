package affordability

import (
	"strings"

	"github.com/iwvelando/house-affordability/pkg/mathutil"
	"github.com/spf13/cast"
)

// ParseNumber converts raw user-entered text into a finite number.
// Surrounding whitespace is ignored; anything else that is not a complete
// numeric literal is rejected.
func ParseNumber(text string) (float64, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}

	value, err := cast.ToFloat64E(trimmed)
	if err != nil || !mathutil.IsFinite(value) {
		return 0, false
	}
	return value, true
}

// ParseAmount returns the monthly payment held in text, or 0 when the text is
// empty or not a number. Negative amounts are returned unchanged.
func ParseAmount(text string) float64 {
	value, ok := ParseNumber(text)
	if !ok {
		return 0
	}
	return value
}

// TotalDebt sums the parsed monthly payment of every entry.
func TotalDebt(entries []DebtEntry) float64 {
	total := 0.0
	for _, entry := range entries {
		total += ParseAmount(entry.AmountText)
	}
	return total
}
