// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/peak-finance/compliance"
	"github.com/danielhkuo/peak-finance/finance"
)

func newPayoffCmd(loadSettings func() (finance.Settings, error)) *cobra.Command {
	var (
		terms finance.LoanTerms
		extra float64
	)

	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Compare the scheduled EMI with paying extra each month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateLoan(terms.Principal, terms.AnnualRatePct, terms.TermMonths); err != nil {
				return err
			}
			if extra < 0 {
				return errors.New("extra payment must be non-negative")
			}
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			plan := finance.PlanPayoff(terms, extra, settings.MaxPayoffMonths)

			printRows(cmd.OutOrStdout(), "PAYOFF PLAN", [][2]string{
				{"Monthly EMI", formatTaka(plan.MonthlyEMI)},
				{"Total paid", formatTaka(plan.TotalPaid)},
				{"Total interest", formatTaka(plan.TotalInterest)},
				{"Extra per month", formatTaka(extra)},
				{"Months saved", strconv.Itoa(plan.MonthsSaved)},
				{"Interest saved", formatTaka(plan.InterestSaved)},
			})
			printDisclaimer(cmd.OutOrStdout(), compliance.CalcDisclaimer)
			return nil
		},
	}

	cmd.Flags().Float64Var(&terms.Principal, "principal", 0, "Loan principal")
	cmd.Flags().Float64Var(&terms.AnnualRatePct, "rate", 0, "Annual interest rate in percent")
	cmd.Flags().IntVar(&terms.TermMonths, "months", 0, "Term in months")
	cmd.Flags().Float64Var(&extra, "extra", 0, "Extra payment on top of each EMI")
	cmd.MarkFlagRequired("principal")
	cmd.MarkFlagRequired("rate")
	cmd.MarkFlagRequired("months")
	return cmd
}
