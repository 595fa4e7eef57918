// Package constants provides shared constants for the house-affordability application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Mortgage assumptions. These are fixed by product decision and are not
// exposed through configuration.
const (
	// LoanToValue is the financed share of the house price (10% deposit).
	LoanToValue = 0.9

	// AnnualInterestRate is the mortgage rate as a fraction (4%).
	AnnualInterestRate = 0.04

	// LoanTermYears is the mortgage term.
	LoanTermYears = 30

	// LoanTermMonths is the number of monthly payments over the term.
	LoanTermMonths = LoanTermYears * MonthsPerYear
)

// Affordability tiering
const (
	// ModerateDebtThreshold is the highest debt-to-income percentage that
	// still counts as moderate debt (inclusive).
	ModerateDebtThreshold = 20.0

	// DebtFreeFactor multiplies annual salary when there is no debt.
	DebtFreeFactor = 5

	// ModerateDebtFactor multiplies annual salary for moderate debt.
	ModerateDebtFactor = 4

	// HighDebtFactor multiplies annual salary for high debt.
	HighDebtFactor = 3
)

// Display constants
const (
	// DisplayLocale is the BCP 47 tag used when rendering amounts.
	DisplayLocale = "en-MY"

	// DisplayCurrencySymbol is the symbol printed in front of amounts.
	DisplayCurrencySymbol = "RM"

	// MaxDisplayFractionDigits bounds the fraction digits of rendered amounts.
	MaxDisplayFractionDigits = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "AFFORDABILITY"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// DefaultShutdownTimeoutSeconds bounds graceful shutdown of the server
	DefaultShutdownTimeoutSeconds = 10
)
