// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import "math"

// AffordabilityInput is a monthly income/debt snapshot plus the terms of
// the loan being considered.
type AffordabilityInput struct {
	Income              float64
	ExistingMonthlyDebt float64
	AnnualRatePct       float64
	TermMonths          int
}

// StressTestResult is the affordability estimate recomputed under one
// StressScenario.
type StressTestResult struct {
	Scenario     string
	NewEMI       float64
	DTI          float64
	IsAffordable bool
}

// Affordability is the point estimate together with its stress tests.
type Affordability struct {
	DTI                float64
	AffordablePayment  float64
	EstimatedPrincipal float64
	StressTests        []StressTestResult
}

// Assess estimates how much additional loan fits under the DTI guardrail
// and how that estimate holds up under each configured stress scenario.
// Scenarios are applied independently, never compounded.
func Assess(in AffordabilityInput, s Settings) Affordability {
	capacity := in.Income * s.MaxDTIRatio
	payment := math.Max(0, capacity-in.ExistingMonthlyDebt)
	principal := PrincipalFromEMI(payment, in.AnnualRatePct, in.TermMonths)

	scenarios := s.scenarios()
	result := Affordability{
		DTI:                DTI(in.ExistingMonthlyDebt, in.Income),
		AffordablePayment:  payment,
		EstimatedPrincipal: principal,
		StressTests:        make([]StressTestResult, 0, len(scenarios)),
	}

	for _, sc := range scenarios {
		result.StressTests = append(result.StressTests, stressTest(in, s, sc, payment, principal))
	}
	return result
}

func stressTest(in AffordabilityInput, s Settings, sc StressScenario, payment, principal float64) StressTestResult {
	emi := payment
	if sc.RateDeltaPct != 0 {
		emi = EMI(principal, in.AnnualRatePct+sc.RateDeltaPct, in.TermMonths)
	}

	dti := DTI(in.ExistingMonthlyDebt+emi, in.Income*sc.IncomeMultiplier)
	return StressTestResult{
		Scenario:     sc.Label,
		NewEMI:       emi,
		DTI:          dti,
		IsAffordable: dti <= s.MaxDTIRatio,
	}
}
