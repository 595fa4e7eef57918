// Package affordability derives a debt-to-income ratio, an affordability
// tier, a maximum house price and the matching mortgage installment from a
// monthly salary and a list of monthly debt payments.
//
// Compute is total: every combination of input text produces a Result and
// nothing is ever returned as an error.
package affordability

import (
	"github.com/iwvelando/house-affordability/pkg/constants"
	"github.com/iwvelando/house-affordability/pkg/loans"
	"github.com/iwvelando/house-affordability/pkg/mathutil"
)

// Tier labels how heavily existing debt weighs on the salary.
type Tier string

// Affordability tiers.
const (
	TierPending  Tier = "Pending Input"
	TierDebtFree Tier = "Debt-free"
	TierModerate Tier = "Moderate Debt"
	TierHigh     Tier = "High Debt"
)

func (t Tier) String() string {
	return string(t)
}

// DebtEntry is one monthly debt obligation as entered by the user.
type DebtEntry struct {
	ID         string   `json:"id" yaml:"id"`
	Category   Category `json:"category" yaml:"category"`
	AmountText string   `json:"amount" yaml:"amount"`
}

// Amount returns the parsed monthly payment of the entry.
func (e DebtEntry) Amount() float64 {
	return ParseAmount(e.AmountText)
}

// Result holds the outcome of one affordability computation. Values are
// unrounded; formatting happens at render time.
type Result struct {
	DebtToIncomeRatio  float64 `json:"debtToIncomeRatio" yaml:"debtToIncomeRatio"`
	MaxHousePrice      float64 `json:"maxHousePrice" yaml:"maxHousePrice"`
	MonthlyInstallment float64 `json:"monthlyInstallment" yaml:"monthlyInstallment"`
	Tier               Tier    `json:"affordabilityTier" yaml:"affordabilityTier"`
}

// PendingResult is returned whenever there is no valid salary.
var PendingResult = Result{Tier: TierPending}

// Pending reports whether r is the no-salary sentinel.
func (r Result) Pending() bool {
	return r.Tier == TierPending
}

// Compute derives the affordability result for salaryText and entries.
func Compute(salaryText string, entries []DebtEntry) Result {
	salary, ok := ParseNumber(salaryText)
	if !ok || salary <= 0 {
		return PendingResult
	}

	totalDebt := TotalDebt(entries)

	dti := 0.0
	if totalDebt != 0 {
		dti = mathutil.CalculatePercentage(totalDebt, salary)
	}

	annualSalary := salary * constants.MonthsPerYear
	maxHousePrice := annualSalary * float64(Factor(dti))
	mortgage := loans.NewMortgage(maxHousePrice)

	return Result{
		DebtToIncomeRatio:  dti,
		MaxHousePrice:      maxHousePrice,
		MonthlyInstallment: mortgage.MonthlyInstallment,
		Tier:               Classify(dti),
	}
}

// Factor returns the multiple of annual salary that can be spent on a house
// for the given debt-to-income percentage.
func Factor(dti float64) int {
	switch {
	case dti > constants.ModerateDebtThreshold:
		return constants.HighDebtFactor
	case dti > 0:
		return constants.ModerateDebtFactor
	default:
		return constants.DebtFreeFactor
	}
}

// Classify returns the tier label for the given debt-to-income percentage.
// A ratio of exactly ModerateDebtThreshold is still moderate.
func Classify(dti float64) Tier {
	switch {
	case dti == 0:
		return TierDebtFree
	case dti <= constants.ModerateDebtThreshold:
		return TierModerate
	default:
		return TierHigh
	}
}
