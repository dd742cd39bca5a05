// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/peak-finance/compliance"
	"github.com/danielhkuo/peak-finance/finance"
)

const maxYears = 100

func newInflationCmd(loadSettings func() (finance.Settings, error)) *cobra.Command {
	var (
		price float64
		rate  float64
		years int
	)

	cmd := &cobra.Command{
		Use:   "inflation",
		Short: "Project a price forward year by year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if years < 0 || years > maxYears {
				return fmt.Errorf("years must be between 0 and %d, got %d", maxYears, years)
			}
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			// an explicit --rate 0 is kept
			if !cmd.Flags().Changed("rate") {
				rate = settings.DefaultCPIRate
			}

			series, err := finance.InflationSeries(price, rate, years)
			if err != nil {
				return err
			}

			rows := make([][2]string, 0, len(series))
			for _, p := range series {
				rows = append(rows, [2]string{"Year " + strconv.Itoa(p.Year), formatTaka(p.Price)})
			}
			printRows(cmd.OutOrStdout(), fmt.Sprintf("INFLATION FORECAST  %s at %.2f%%", formatTaka(price), rate), rows)
			printDisclaimer(cmd.OutOrStdout(), compliance.CalcDisclaimer+" "+compliance.ProjectionDisclaimer)
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "Current price")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Annual CPI rate in percent (default from settings)")
	cmd.Flags().IntVar(&years, "years", 5, "Years to project")
	cmd.MarkFlagRequired("price")
	return cmd
}
