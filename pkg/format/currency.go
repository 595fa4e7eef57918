// Package format renders amounts for display in the fixed locale and currency.
//
// Amounts are rounded half away from zero before they are printed, so ties
// such as 0.125 show as 0.13 rather than the banker's 0.12.
package format

import (
	"math"
	"strconv"

	"github.com/iwvelando/house-affordability/pkg/constants"
	"github.com/iwvelando/house-affordability/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse(constants.DisplayLocale))

// Currency returns an amount in ringgit with thousands separators and at most
// two fraction digits (e.g., "RM1,289.02", "RM300,000", "-RM50").
func Currency(amount float64) string {
	rounded := mathutil.RoundHalfAwayFromZero(amount, constants.MaxDisplayFractionDigits)
	formatted := Number(math.Abs(rounded))
	if rounded < 0 {
		return "-" + constants.DisplayCurrencySymbol + formatted
	}
	return constants.DisplayCurrencySymbol + formatted
}

// Number returns an amount with thousands separators and at most two fraction
// digits but no currency symbol (e.g., "1,289.02").
func Number(amount float64) string {
	rounded := mathutil.RoundHalfAwayFromZero(amount, constants.MaxDisplayFractionDigits)
	return printer.Sprint(number.Decimal(rounded,
		number.MinFractionDigits(0),
		number.MaxFractionDigits(constants.MaxDisplayFractionDigits),
	))
}

// Percent returns a ratio that is already expressed as a percentage with one
// decimal place (e.g., "10.0%").
func Percent(ratio float64) string {
	return strconv.FormatFloat(mathutil.RoundHalfAwayFromZero(ratio, 1), 'f', 1, 64) + "%"
}
