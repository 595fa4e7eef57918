// Package output provides utilities for formatting and displaying affordability results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/iwvelando/house-affordability/internal/ledger"
	"github.com/iwvelando/house-affordability/pkg/constants"
	"github.com/iwvelando/house-affordability/pkg/format"
	"github.com/iwvelando/house-affordability/pkg/loans"
	"gopkg.in/yaml.v3"
)

// Considerations are the fixed reminders shown alongside every result.
var Considerations = []string{
	"Ensure your mortgage payment doesn't exceed 30% of your monthly income",
	"Account for additional costs: maintenance, utilities, insurance",
	"Save for renovation and furniture (typically 10-20% of house price)",
}

// Display holds the rendered strings for one snapshot.
type Display struct {
	TotalDebt          string `json:"totalDebt" yaml:"totalDebt"`
	DebtToIncomeRatio  string `json:"debtToIncomeRatio" yaml:"debtToIncomeRatio"`
	MaxHousePrice      string `json:"maxHousePrice" yaml:"maxHousePrice"`
	MonthlyInstallment string `json:"monthlyInstallment" yaml:"monthlyInstallment"`
	Deposit            string `json:"deposit" yaml:"deposit"`
	LoanAmount         string `json:"loanAmount" yaml:"loanAmount"`
}

// NewDisplay formats the amounts of a snapshot in the display currency.
func NewDisplay(s ledger.Snapshot) Display {
	mortgage := loans.NewMortgage(s.Result.MaxHousePrice)
	return Display{
		TotalDebt:          format.Currency(s.TotalDebt),
		DebtToIncomeRatio:  fmt.Sprintf("%s (%s)", format.Percent(s.Result.DebtToIncomeRatio), s.Result.Tier),
		MaxHousePrice:      format.Currency(s.Result.MaxHousePrice),
		MonthlyInstallment: format.Currency(s.Result.MonthlyInstallment),
		Deposit:            format.Currency(mortgage.Deposit()),
		LoanAmount:         format.Currency(mortgage.LoanAmount),
	}
}

// Report is the machine-readable rendering of a snapshot.
type Report struct {
	ledger.Snapshot `yaml:",inline"`
	Display         Display `json:"display" yaml:"display"`
}

// Write renders s to w in the named output format.
func Write(w io.Writer, outputFormat string, s ledger.Snapshot) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, s)
	case constants.OutputFormatJSON:
		return JSONFormat(w, s)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, s)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, s ledger.Snapshot) error {
	d := NewDisplay(s)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "--- Housing Affordability ---\n")
	if s.Salary == "" {
		fmt.Fprintf(tw, "Monthly Salary\t(not set)\n")
	} else {
		fmt.Fprintf(tw, "Monthly Salary\t%s\n", s.Salary)
	}

	if len(s.Entries) > 0 {
		fmt.Fprintf(tw, "\nDebt\tMonthly Payment\n")
		fmt.Fprintf(tw, "____\t_______________\n")
		for _, entry := range s.Entries {
			fmt.Fprintf(tw, "%s\t%s\n", entry.Category, format.Currency(entry.Amount()))
		}
		fmt.Fprintf(tw, "Total Monthly Debt\t%s\n", d.TotalDebt)
	}

	fmt.Fprintf(tw, "\nDebt-to-Income Ratio\t%s\n", d.DebtToIncomeRatio)
	fmt.Fprintf(tw, "Maximum House Price\t%s\n", d.MaxHousePrice)
	fmt.Fprintf(tw, "Estimated Monthly Installment\t%s\n", d.MonthlyInstallment)
	if !s.Result.Pending() {
		var depositPct float64 = (1 - constants.LoanToValue) * constants.PercentageMultiplier
		fmt.Fprintf(tw, "Deposit (%d%%)\t%s\n", int(depositPct+0.5), d.Deposit)
		fmt.Fprintf(tw, "Loan Amount\t%s\n", d.LoanAmount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nImportant Considerations:\n"); err != nil {
		return err
	}
	for _, note := range Considerations {
		if _, err := fmt.Fprintf(w, "  - %s\n", note); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormat outputs the snapshot and its display strings as indented JSON.
func JSONFormat(w io.Writer, s ledger.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Report{Snapshot: s, Display: NewDisplay(s)})
}

// YAMLFormat outputs the snapshot and its display strings as YAML.
func YAMLFormat(w io.Writer, s ledger.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Report{Snapshot: s, Display: NewDisplay(s)}); err != nil {
		return err
	}
	return enc.Close()
}
