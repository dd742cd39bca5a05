// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import "math"

// balanceEpsilon absorbs floating-point residue left on the final month.
const balanceEpsilon = 1e-6

// LoanTerms describes an amortizing loan.
type LoanTerms struct {
	Principal     float64
	AnnualRatePct float64
	TermMonths    int
}

// Payoff is the outcome of a month-by-month payoff simulation.
// PaidOff is false when the payment never covered the accruing interest or
// the month ceiling was hit first.
type Payoff struct {
	Months        int
	TotalInterest float64
	PaidOff       bool
}

// PayoffPlan compares the scheduled EMI with an accelerated payment.
type PayoffPlan struct {
	MonthlyEMI    float64
	TotalInterest float64
	TotalPaid     float64
	MonthsSaved   int
	InterestSaved float64
}

// SimulatePayoff amortizes principal month by month at a fixed payment.
// maxMonths <= 0 uses DefaultMaxPayoffMonths.
func SimulatePayoff(principal, annualRatePct, monthlyPayment float64, maxMonths int) Payoff {
	if monthlyPayment <= 0 || principal <= 0 {
		return Payoff{}
	}
	if maxMonths <= 0 {
		maxMonths = DefaultMaxPayoffMonths
	}

	r := monthlyRate(annualRatePct)
	balance := principal
	var result Payoff

	for balance > 0 && result.Months < maxMonths {
		interest := 0.0
		if r > 0 {
			interest = balance * r
		}

		principalPayment := monthlyPayment - interest
		if principalPayment <= 0 {
			// interest outgrows the payment; the loan never clears
			break
		}

		balance -= principalPayment
		if balance < balanceEpsilon {
			balance = 0
		}

		result.TotalInterest += interest
		result.Months++
	}

	result.PaidOff = balance == 0
	return result
}

// PlanPayoff computes the scheduled cost of a loan and what paying
// extraPayment on top of each EMI would save.
func PlanPayoff(terms LoanTerms, extraPayment float64, maxMonths int) PayoffPlan {
	emi := EMI(terms.Principal, terms.AnnualRatePct, terms.TermMonths)
	totalPaid := emi * float64(terms.TermMonths)

	plan := PayoffPlan{
		MonthlyEMI:    emi,
		TotalPaid:     totalPaid,
		TotalInterest: totalPaid - terms.Principal,
	}
	if extraPayment <= 0 {
		return plan
	}

	accelerated := SimulatePayoff(terms.Principal, terms.AnnualRatePct, emi+extraPayment, maxMonths)
	if accelerated.PaidOff && accelerated.Months > 0 && accelerated.Months < terms.TermMonths {
		plan.MonthsSaved = terms.TermMonths - accelerated.Months
		plan.InterestSaved = math.Max(0, plan.TotalInterest-accelerated.TotalInterest)
	}
	return plan
}
