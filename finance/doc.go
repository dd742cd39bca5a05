// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package finance implements the calculators behind the Peak Finance API.

Every function here is pure: no I/O, no shared state, no rounding. Callers
round at the response boundary with RoundCurrency (2 dp) and RoundRatio
(4 dp) so composed calculations keep full precision.

# Amortization Math

	emi := finance.EMI(100000, 9, 60)              // ≈ 2075.84
	p := finance.PrincipalFromEMI(emi, 9, 60)      // ≈ 100000
	ratio := finance.DTI(debt, income)              // 0 when income <= 0

Zero-rate loans use simple division. Degenerate denominators return 0
instead of dividing by zero.

# Payoff Simulation

	payoff := finance.SimulatePayoff(principal, rate, payment, 0)
	if !payoff.PaidOff {
		// payment never clears the balance within the month ceiling
	}

The month loop is capped (DefaultMaxPayoffMonths = 1200) so it always
terminates.

# Affordability

	a := finance.Assess(finance.AffordabilityInput{
		Income:              75000,
		ExistingMonthlyDebt: 10000,
		AnnualRatePct:       9,
		TermMonths:          60,
	}, finance.DefaultSettings())

Assess reports the affordable payment, the principal it buys and one
StressTestResult per StressScenario. The default scenarios are a +2
percentage point rate shock and a 10% income drop, each applied alone.

# Dashboard

Aggregate folds a user's expenses, debts and goals into a
DashboardSummary. DebtPayoffETAMonths is nil when there is no debt service.

# Settings

Guardrails travel in an explicit Settings value instead of globals:

	s := finance.DefaultSettings()
	s.MaxDTIRatio = 0.35
*/
package finance
