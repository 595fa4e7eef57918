package main

import (
	"fmt"
	"strings"

	"github.com/iwvelando/house-affordability/internal/config"
	"github.com/iwvelando/house-affordability/internal/ledger"
	"github.com/iwvelando/house-affordability/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newComputeCmd(a *app) *cobra.Command {
	var (
		salary string
		debts  []string
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute affordability for a salary and debt list",
		Long: `Compute affordability for the household in the configuration file.

--salary replaces the configured salary and any --debt flag replaces the
configured debt list. Debts are given as "Category=amount" (e.g.
--debt "Credit Card=250"); a bare amount uses the default category.`,
		Example: `  affordability compute --salary 5000 --debt "Car Loan=500"
  affordability compute -o json --salary 5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			household := a.conf.Household
			if cmd.Flags().Changed("salary") {
				household.Salary = salary
			}
			if len(debts) > 0 {
				parsed, err := parseDebtFlags(debts)
				if err != nil {
					return err
				}
				household.Debts = parsed
			}

			l, err := household.Ledger(ledger.WithLogger(a.logger))
			if err != nil {
				return err
			}

			snapshot := l.Snapshot()
			a.logger.Debug("computed affordability",
				zap.String("op", "main.compute"),
				zap.Int("entries", len(snapshot.Entries)),
				zap.String("tier", snapshot.Result.Tier.String()),
			)

			return output.Write(cmd.OutOrStdout(), a.outputFormat, snapshot)
		},
	}

	cmd.Flags().StringVarP(&salary, "salary", "s", "", "monthly salary")
	cmd.Flags().StringArrayVarP(&debts, "debt", "d", nil, `monthly debt payment as "Category=amount" (repeatable)`)
	return cmd
}

// parseDebtFlags splits "Category=amount" values. The last '=' separates the
// amount so category names never need escaping.
func parseDebtFlags(values []string) ([]config.DebtConfig, error) {
	parsed := make([]config.DebtConfig, 0, len(values))
	for _, value := range values {
		idx := strings.LastIndex(value, "=")
		if idx < 0 {
			parsed = append(parsed, config.DebtConfig{Amount: strings.TrimSpace(value)})
			continue
		}
		category := strings.TrimSpace(value[:idx])
		if category == "" {
			return nil, fmt.Errorf("invalid debt %q: missing category before '='", value)
		}
		parsed = append(parsed, config.DebtConfig{
			Category: category,
			Amount:   strings.TrimSpace(value[idx+1:]),
		})
	}
	return parsed, nil
}
