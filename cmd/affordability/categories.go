package main

import (
	"fmt"

	"github.com/iwvelando/house-affordability/internal/affordability"
	"github.com/spf13/cobra"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the supported debt categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, category := range affordability.Categories() {
				suffix := ""
				if category == affordability.DefaultCategory {
					suffix = " (default)"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", category, suffix); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
