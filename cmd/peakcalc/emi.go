// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/peak-finance/compliance"
	"github.com/danielhkuo/peak-finance/finance"
)

func newEMICmd() *cobra.Command {
	var (
		principal float64
		rate      float64
		months    int
	)

	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Monthly installment, total paid and total interest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateLoan(principal, rate, months); err != nil {
				return err
			}

			emi := finance.EMI(principal, rate, months)
			totalPaid := emi * float64(months)

			printRows(cmd.OutOrStdout(), "EMI", [][2]string{
				{"Monthly EMI", formatTaka(emi)},
				{"Total paid", formatTaka(totalPaid)},
				{"Total interest", formatTaka(totalPaid - principal)},
				{"Term", strconv.Itoa(months) + " months"},
			})
			printDisclaimer(cmd.OutOrStdout(), compliance.CalcDisclaimer)
			return nil
		},
	}

	cmd.Flags().Float64Var(&principal, "principal", 0, "Loan principal")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Annual interest rate in percent")
	cmd.Flags().IntVar(&months, "months", 0, "Term in months")
	cmd.MarkFlagRequired("principal")
	cmd.MarkFlagRequired("rate")
	cmd.MarkFlagRequired("months")
	return cmd
}
