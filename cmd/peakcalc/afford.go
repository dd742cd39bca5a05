// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/peak-finance/compliance"
	"github.com/danielhkuo/peak-finance/finance"
)

func newAffordCmd(loadSettings func() (finance.Settings, error)) *cobra.Command {
	var in finance.AffordabilityInput

	cmd := &cobra.Command{
		Use:   "afford",
		Short: "Estimate how much more you can borrow, with stress tests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Income < 0 || in.ExistingMonthlyDebt < 0 {
				return errors.New("income and debt must be non-negative")
			}
			if err := validateLoan(0, in.AnnualRatePct, in.TermMonths); err != nil {
				return err
			}
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			a := finance.Assess(in, settings)

			w := cmd.OutOrStdout()
			printRows(w, "LOAN PRE-ASSESSMENT", [][2]string{
				{"Current DTI", formatRatio(a.DTI)},
				{"DTI ceiling", formatRatio(settings.MaxDTIRatio)},
				{"Affordable EMI", formatTaka(a.AffordablePayment)},
				{"Estimated principal", formatTaka(a.EstimatedPrincipal)},
			})

			rows := make([][2]string, 0, len(a.StressTests))
			for _, st := range a.StressTests {
				verdict := "affordable"
				if !st.IsAffordable {
					verdict = "NOT affordable"
				}
				rows = append(rows, [2]string{st.Scenario, formatTaka(st.NewEMI) + "  DTI " + formatRatio(st.DTI) + "  " + verdict})
			}
			printRows(w, "STRESS TESTS", rows)
			printDisclaimer(w, compliance.CalcDisclaimer+" "+compliance.LoanDisclaimer)
			return nil
		},
	}

	cmd.Flags().Float64Var(&in.Income, "income", 0, "Monthly net income")
	cmd.Flags().Float64Var(&in.ExistingMonthlyDebt, "debt", 0, "Existing monthly debt payments")
	cmd.Flags().Float64Var(&in.AnnualRatePct, "rate", 0, "Annual interest rate in percent")
	cmd.Flags().IntVar(&in.TermMonths, "months", 0, "Term in months")
	cmd.MarkFlagRequired("income")
	cmd.MarkFlagRequired("rate")
	cmd.MarkFlagRequired("months")
	return cmd
}
