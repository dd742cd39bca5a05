// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument marks a caller contract violation (negative cost,
// years, income or an out-of-range ratio).
var ErrInvalidArgument = errors.New("invalid argument")

// YearPrice is one point of an inflation projection.
type YearPrice struct {
	Year  int
	Price float64
}

// monthlyRate converts an annual percentage into a monthly fraction.
func monthlyRate(annualRatePct float64) float64 {
	return annualRatePct / 100 / 12
}

// DTI returns the debt-to-income ratio, or 0 when income is not positive.
// The ratio is not clamped and may exceed 1.
func DTI(monthlyDebt, monthlyIncome float64) float64 {
	if monthlyIncome <= 0 {
		return 0
	}
	return monthlyDebt / monthlyIncome
}

// EMI returns the equated monthly installment that amortizes principal over
// termMonths at annualRatePct.
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
func EMI(principal, annualRatePct float64, termMonths int) float64 {
	if principal <= 0 || termMonths < 1 {
		return 0
	}
	if annualRatePct == 0 {
		return principal / float64(termMonths)
	}

	r := monthlyRate(annualRatePct)
	growth := math.Pow(1+r, float64(termMonths))
	denominator := growth - 1
	if denominator == 0 {
		return 0
	}
	return principal * r * growth / denominator
}

// PrincipalFromEMI is the inverse of EMI: the principal that a monthly
// payment of emi amortizes over termMonths.
func PrincipalFromEMI(emi, annualRatePct float64, termMonths int) float64 {
	if emi <= 0 || termMonths < 1 {
		return 0
	}
	if annualRatePct == 0 {
		return emi * float64(termMonths)
	}

	r := monthlyRate(annualRatePct)
	growth := math.Pow(1+r, float64(termMonths))
	denominator := r * growth
	if denominator == 0 {
		return 0
	}
	return emi * (growth - 1) / denominator
}

// RequiredEMIToFinish returns the payment that clears a remaining balance
// in monthsRemaining months.
func RequiredEMIToFinish(principal, annualRatePct float64, monthsRemaining int) float64 {
	return EMI(principal, annualRatePct, monthsRemaining)
}

// InflationProjection projects currentCost forward by years at annualCPIPct.
func InflationProjection(currentCost, annualCPIPct float64, years int) (float64, error) {
	if currentCost < 0 {
		return 0, fmt.Errorf("%w: current cost must be non-negative, got %v", ErrInvalidArgument, currentCost)
	}
	if years < 0 {
		return 0, fmt.Errorf("%w: years must be non-negative, got %d", ErrInvalidArgument, years)
	}
	if years == 0 {
		return currentCost, nil
	}

	rate := annualCPIPct / 100
	return currentCost * math.Pow(1+rate, float64(years)), nil
}

// InflationSeries returns the projected price for each year 1..years.
func InflationSeries(currentCost, annualCPIPct float64, years int) ([]YearPrice, error) {
	if years < 0 {
		return nil, fmt.Errorf("%w: years must be non-negative, got %d", ErrInvalidArgument, years)
	}

	series := make([]YearPrice, 0, years)
	for year := 1; year <= years; year++ {
		price, err := InflationProjection(currentCost, annualCPIPct, year)
		if err != nil {
			return nil, err
		}
		series = append(series, YearPrice{Year: year, Price: price})
	}
	return series, nil
}

// SafeToSpend returns what is left of balance after the fixed deductions,
// never less than zero.
func SafeToSpend(balance, bills, debtMinimums, reserve, goalAllocations float64) float64 {
	safe := balance - bills - debtMinimums - reserve - goalAllocations
	return math.Max(0, safe)
}

// FunBudget returns the discretionary share of monthly income.
func FunBudget(monthlyIncome, funRatio float64) (float64, error) {
	if !(monthlyIncome >= 0) || math.IsInf(monthlyIncome, 0) {
		return 0, fmt.Errorf("%w: income must be finite and non-negative", ErrInvalidArgument)
	}
	if !inUnitRange(funRatio) {
		return 0, fmt.Errorf("%w: fun ratio must be between 0 and 1, got %v", ErrInvalidArgument, funRatio)
	}
	return monthlyIncome * funRatio, nil
}
