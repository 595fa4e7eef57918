// Package loans provides common loan processing utilities.
package loans

import (
	"math"

	"github.com/iwvelando/house-affordability/pkg/constants"
)

// Mortgage describes the financing of a house purchase under the fixed
// product assumptions.
type Mortgage struct {
	HousePrice         float64
	LoanAmount         float64
	MonthlyRate        float64
	Payments           int
	MonthlyInstallment float64
}

// MonthlyRate converts an annual rate expressed as a fraction into the
// periodic monthly rate.
func MonthlyRate(annualRate float64) float64 {
	return annualRate / constants.MonthsPerYear
}

// AnnuityPayment calculates the fixed periodic payment that repays principal
// over the given number of payments at the periodic rate.
//
// The formula is evaluated as principal * r * (1+r)^n / ((1+r)^n - 1).
func AnnuityPayment(principal, periodicRate float64, payments int) float64 {
	if payments <= 0 {
		return 0
	}
	if periodicRate == 0 {
		return principal / float64(payments)
	}

	return (principal * periodicRate * math.Pow(1+periodicRate, float64(payments))) /
		(math.Pow(1+periodicRate, float64(payments)) - 1)
}

// LoanAmount returns the financed portion of a house price after the deposit.
func LoanAmount(housePrice float64) float64 {
	return housePrice * constants.LoanToValue
}

// NewMortgage finances housePrice at the fixed loan-to-value, rate and term.
func NewMortgage(housePrice float64) Mortgage {
	loan := LoanAmount(housePrice)
	rate := MonthlyRate(constants.AnnualInterestRate)

	return Mortgage{
		HousePrice:         housePrice,
		LoanAmount:         loan,
		MonthlyRate:        rate,
		Payments:           constants.LoanTermMonths,
		MonthlyInstallment: AnnuityPayment(loan, rate, constants.LoanTermMonths),
	}
}

// Deposit returns the up-front portion of the house price.
func (m Mortgage) Deposit() float64 {
	return m.HousePrice - m.LoanAmount
}

// TotalRepayment returns the sum of all installments over the term.
func (m Mortgage) TotalRepayment() float64 {
	return m.MonthlyInstallment * float64(m.Payments)
}

// TotalInterest returns the interest paid over the full term.
func (m Mortgage) TotalInterest() float64 {
	return m.TotalRepayment() - m.LoanAmount
}
