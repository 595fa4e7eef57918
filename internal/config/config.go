// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/house-affordability/internal/affordability"
	"github.com/iwvelando/house-affordability/internal/ledger"
	"github.com/iwvelando/house-affordability/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for house-affordability.
type Configuration struct {
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging,omitempty"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output,omitempty"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server,omitempty"`
	Household HouseholdConfig `mapstructure:"household" yaml:"household,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `mapstructure:"format" yaml:"format,omitempty" validate:"omitempty,oneof=json console"`
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty" validate:"omitempty,oneof=pretty json yaml"`
}

// ServerConfig defines runtime parameters for the HTTP API.
type ServerConfig struct {
	Address         string        `mapstructure:"address" yaml:"address,omitempty" validate:"required"`
	MaxRequestSize  string        `mapstructure:"maxRequestSize" yaml:"maxRequestSize,omitempty"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout" yaml:"shutdownTimeout,omitempty" validate:"gte=0"`
}

// HouseholdConfig holds a salary and debt list to evaluate from the command line.
type HouseholdConfig struct {
	Salary string       `mapstructure:"salary" yaml:"salary,omitempty"`
	Debts  []DebtConfig `mapstructure:"debts" yaml:"debts,omitempty" validate:"dive"`
}

// DebtConfig is one monthly debt payment.
type DebtConfig struct {
	Category string `mapstructure:"category" yaml:"category,omitempty" validate:"omitempty,debtcategory"`
	Amount   string `mapstructure:"amount" yaml:"amount,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("debtcategory", func(fl validator.FieldLevel) bool {
		_, ok := affordability.ParseCategory(fl.Field().String())
		return ok
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register debtcategory validation: %v", err))
	}
	return v
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxRequestSize", fmt.Sprintf("%d", constants.DefaultMaxRequestSizeBytes))
	v.SetDefault("server.shutdownTimeout", time.Duration(constants.DefaultShutdownTimeoutSeconds)*time.Second)
	v.SetDefault("household.salary", "")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
			return decode(v)
		}

		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks field values against their allowed sets.
func (c *Configuration) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := ParseSize(c.Server.MaxRequestSize); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// MaxRequestSizeBytes returns the configured request body limit in bytes.
func (s ServerConfig) MaxRequestSizeBytes() int64 {
	size, err := ParseSize(s.MaxRequestSize)
	if err != nil || size <= 0 {
		return constants.DefaultMaxRequestSizeBytes
	}
	return size
}

// Drafts converts the configured debts into ledger drafts.
func (h HouseholdConfig) Drafts() ([]ledger.Draft, error) {
	drafts := make([]ledger.Draft, 0, len(h.Debts))
	for i, debt := range h.Debts {
		draft := ledger.Draft{AmountText: debt.Amount}
		if strings.TrimSpace(debt.Category) != "" {
			category, ok := affordability.ParseCategory(debt.Category)
			if !ok {
				return nil, fmt.Errorf("debt %d: unknown category %q", i+1, debt.Category)
			}
			draft.Category = category
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// Ledger builds a ledger holding the configured salary and debts.
func (h HouseholdConfig) Ledger(opts ...ledger.Option) (*ledger.Ledger, error) {
	drafts, err := h.Drafts()
	if err != nil {
		return nil, err
	}

	l := ledger.New(opts...)
	l.SetSalary(h.Salary)
	for _, draft := range drafts {
		l.Append(draft)
	}
	return l, nil
}
