package main

import (
	"fmt"
	"os"

	"github.com/iwvelando/house-affordability/internal/config"
	"github.com/iwvelando/house-affordability/pkg/constants"
	"github.com/iwvelando/house-affordability/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type app struct {
	configLocation string
	outputFormat   string
	logLevel       string

	conf   *config.Configuration
	logger *zap.Logger
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "affordability",
		Short:         "Housing affordability estimator",
		Long:          "Estimate the maximum house price and mortgage installment a monthly salary can support after existing debt payments.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configLocation, "config", "c", constants.DefaultConfigFile,
		fmt.Sprintf("path to configuration file (see %s)", constants.ExampleConfigFile))
	rootCmd.PersistentFlags().StringVarP(&a.outputFormat, "output-format", "o", "", "type of output override: pretty, json, yaml")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(newComputeCmd(a))
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newServeCmd(a))

	return rootCmd
}

// setup loads .env, the configuration file and the logger shared by all commands.
func (a *app) setup() error {
	_ = godotenv.Load()

	conf, err := config.LoadConfiguration(a.configLocation)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configLocation, err)
	}
	a.conf = conf

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	// CLI override takes precedence over config
	if a.outputFormat == "" {
		a.outputFormat = conf.Output.Format
	}
	if a.outputFormat == "" {
		a.outputFormat = constants.OutputFormatPretty
	}
	return validation.ValidateOutputFormat(a.outputFormat)
}
