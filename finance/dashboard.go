// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

// DebtSnapshot is the part of a stored debt the dashboard needs.
type DebtSnapshot struct {
	CurrentEMI float64
	Principal  float64
}

// GoalSnapshot is the part of a stored goal the dashboard needs.
type GoalSnapshot struct {
	TargetAmount float64
	SavedAmount  float64
}

// DashboardInput gathers a user's records for one dashboard computation.
type DashboardInput struct {
	MonthlyIncome float64
	Expenses      []float64
	Debts         []DebtSnapshot
	Goals         []GoalSnapshot
}

// DashboardSummary is recomputed on every request and never stored.
type DashboardSummary struct {
	TotalIncome         float64
	TotalExpenses       float64
	TotalDebtEMI        float64
	Surplus             float64
	DTI                 float64
	GoalReserve         float64
	SafeToSpend         float64
	FunBudget           float64
	GoalProgressPct     float64
	DebtPayoffETAMonths *int
}

// Aggregate derives the dashboard summary from a user's records.
func Aggregate(in DashboardInput, s Settings) (DashboardSummary, error) {
	var totalExpenses float64
	for _, amount := range in.Expenses {
		totalExpenses += amount
	}

	var totalEMI, totalPrincipal float64
	for _, d := range in.Debts {
		totalEMI += d.CurrentEMI
		totalPrincipal += d.Principal
	}

	var totalTarget, totalSaved float64
	for _, g := range in.Goals {
		totalTarget += g.TargetAmount
		totalSaved += g.SavedAmount
	}

	surplus := in.MonthlyIncome - totalExpenses - totalEMI

	reserve := 0.0
	if surplus > 0 {
		reserve = surplus * s.GoalReserveRatio
	}

	fun, err := FunBudget(in.MonthlyIncome, s.FunRatio)
	if err != nil {
		return DashboardSummary{}, err
	}

	progress := 0.0
	if totalTarget > 0 {
		progress = totalSaved / totalTarget * 100
	}

	var eta *int
	if totalEMI > 0 {
		months := int(totalPrincipal / totalEMI)
		eta = &months
	}

	return DashboardSummary{
		TotalIncome:         in.MonthlyIncome,
		TotalExpenses:       totalExpenses,
		TotalDebtEMI:        totalEMI,
		Surplus:             surplus,
		DTI:                 DTI(totalEMI, in.MonthlyIncome),
		GoalReserve:         reserve,
		SafeToSpend:         SafeToSpend(surplus, 0, 0, reserve, 0),
		FunBudget:           fun,
		GoalProgressPct:     progress,
		DebtPayoffETAMonths: eta,
	}, nil
}
