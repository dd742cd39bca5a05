// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/peak-finance/cliparse"
	"github.com/danielhkuo/peak-finance/finance"
)

const maxTermMonths = 600

// newRootCmd builds a fresh command tree so flag state never leaks
// between invocations.
func newRootCmd() *cobra.Command {
	var settingsPath string

	root := &cobra.Command{
		Use:          "peakcalc",
		Short:        "Peak Finance calculators",
		Long:         "Educational loan, affordability and inflation calculators. Not financial advice.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&settingsPath, "settings", "", "YAML or TOML calculator settings file")

	loadSettings := func() (finance.Settings, error) {
		settings := finance.DefaultSettings()
		if settingsPath != "" {
			if err := cliparse.LoadSettingsFile(settingsPath, &settings); err != nil {
				return finance.Settings{}, err
			}
		}
		if err := settings.Validate(); err != nil {
			return finance.Settings{}, fmt.Errorf("invalid calculator settings: %w", err)
		}
		return settings, nil
	}

	root.AddCommand(
		newEMICmd(),
		newAffordCmd(loadSettings),
		newPayoffCmd(loadSettings),
		newInflationCmd(loadSettings),
	)
	return root
}

func validateLoan(principal, ratePct float64, months int) error {
	if principal < 0 {
		return fmt.Errorf("principal must be non-negative, got %v", principal)
	}
	if ratePct < 0 || ratePct > 100 {
		return fmt.Errorf("rate must be between 0 and 100, got %v", ratePct)
	}
	if months < 1 || months > maxTermMonths {
		return fmt.Errorf("months must be between 1 and %d, got %d", maxTermMonths, months)
	}
	return nil
}

// formatTaka renders an amount rounded to paisa with thousands separators.
func formatTaka(amount float64) string {
	return "৳" + humanize.CommafWithDigits(finance.RoundCurrency(amount), 2)
}

func formatRatio(ratio float64) string {
	return fmt.Sprintf("%.2f%%", finance.RoundRatio(ratio)*100)
}

func printRows(w io.Writer, title string, rows [][2]string) {
	fmt.Fprintf(w, "\n  %s\n\n", title)
	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-*s  %s\n", width, row[0], row[1])
	}
}

func printDisclaimer(w io.Writer, disclaimer string) {
	fmt.Fprintf(w, "\n  %s\n\n", disclaimer)
}
