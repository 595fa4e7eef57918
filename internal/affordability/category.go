package affordability

import "strings"

// Category is one of the fixed kinds of monthly debt obligation.
type Category string

// The closed set of debt categories, in display order.
const (
	CarLoan      Category = "Car Loan"
	PersonalLoan Category = "Personal Loan"
	CreditCard   Category = "Credit Card"
	StudentLoan  Category = "Student Loan"
	MedicalDebt  Category = "Medical Debt"
	OtherDebt    Category = "Other Debt"
)

// DefaultCategory is assigned to newly created debt entries.
const DefaultCategory = CarLoan

var categories = []Category{
	CarLoan,
	PersonalLoan,
	CreditCard,
	StudentLoan,
	MedicalDebt,
	OtherDebt,
}

// Categories returns the closed category set in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory matches value against the category set, ignoring case and
// surrounding whitespace.
func ParseCategory(value string) (Category, bool) {
	trimmed := strings.TrimSpace(value)
	for _, known := range categories {
		if strings.EqualFold(trimmed, string(known)) {
			return known, true
		}
	}
	return "", false
}
