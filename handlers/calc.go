// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/peak-finance/cliparse"
	"github.com/danielhkuo/peak-finance/compliance"
	"github.com/danielhkuo/peak-finance/finance"
	"github.com/danielhkuo/peak-finance/middleware"
	"github.com/danielhkuo/peak-finance/models"
)

type CalcHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCalcHandler(db *sql.DB, cfg cliparse.Config) *CalcHandler {
	return &CalcHandler{db: db, cfg: cfg}
}

// CalculateEMI handles POST /calc/emi
func (h *CalcHandler) CalculateEMI(w http.ResponseWriter, r *http.Request) {
	var req models.EMIRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := firstError(
		validateAmount("principal", req.Principal),
		validateRate("annual_rate_pct", req.AnnualRatePct),
		validateTerm("term_months", req.TermMonths),
	); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	emi := finance.EMI(req.Principal, req.AnnualRatePct, req.TermMonths)
	totalPaid := emi * float64(req.TermMonths)

	middleware.JSONResponse(w, http.StatusOK, models.EMIResponse{
		MonthlyEMI:    finance.RoundCurrency(emi),
		TotalPaid:     finance.RoundCurrency(totalPaid),
		TotalInterest: finance.RoundCurrency(totalPaid - req.Principal),
		Meta:          compliance.CalcMeta(),
	})
}

// LoanPreAssessment handles POST /calc/loan-pre-assessment
func (h *CalcHandler) LoanPreAssessment(w http.ResponseWriter, r *http.Request) {
	var req models.LoanPreAssessmentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := firstError(
		validateAmount("income", req.Income),
		validateAmount("existing_monthly_debt", req.ExistingMonthlyDebt),
		validateRate("annual_rate_pct", req.AnnualRatePct),
		validateTerm("term_months", req.TermMonths),
	); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result := finance.Assess(finance.AffordabilityInput{
		Income:              req.Income,
		ExistingMonthlyDebt: req.ExistingMonthlyDebt,
		AnnualRatePct:       req.AnnualRatePct,
		TermMonths:          req.TermMonths,
	}, h.cfg.Finance)

	stressTests := make([]models.StressTestResult, 0, len(result.StressTests))
	for _, st := range result.StressTests {
		stressTests = append(stressTests, models.StressTestResult{
			Scenario:     st.Scenario,
			NewEMI:       finance.RoundCurrency(st.NewEMI),
			DTI:          finance.RoundRatio(st.DTI),
			IsAffordable: st.IsAffordable,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoanPreAssessmentResponse{
		DTI:                finance.RoundRatio(result.DTI),
		AffordableEMI:      finance.RoundCurrency(result.AffordablePayment),
		EstimatedPrincipal: finance.RoundCurrency(result.EstimatedPrincipal),
		StressTests:        stressTests,
		Meta:               compliance.LoanMeta(),
	})
}

// LoanPayoffPlan handles POST /calc/loan-payoff-plan
func (h *CalcHandler) LoanPayoffPlan(w http.ResponseWriter, r *http.Request) {
	var req models.LoanPayoffPlanRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := firstError(
		validateAmount("principal", req.Principal),
		validateRate("annual_rate_pct", req.AnnualRatePct),
		validateTerm("term_months", req.TermMonths),
		validateAmount("extra_payment", req.ExtraPayment),
	); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	plan := finance.PlanPayoff(finance.LoanTerms{
		Principal:     req.Principal,
		AnnualRatePct: req.AnnualRatePct,
		TermMonths:    req.TermMonths,
	}, req.ExtraPayment, h.cfg.Finance.MaxPayoffMonths)

	middleware.JSONResponse(w, http.StatusOK, models.LoanPayoffPlanResponse{
		MonthlyEMI:    finance.RoundCurrency(plan.MonthlyEMI),
		TotalInterest: finance.RoundCurrency(plan.TotalInterest),
		TotalPaid:     finance.RoundCurrency(plan.TotalPaid),
		MonthsSaved:   plan.MonthsSaved,
		InterestSaved: finance.RoundCurrency(plan.InterestSaved),
		Meta:          compliance.CalcMeta(),
	})
}

// InflationForecast handles POST /calc/inflation-forecast
// An omitted annual_cpi_rate uses the configured default.
func (h *CalcHandler) InflationForecast(w http.ResponseWriter, r *http.Request) {
	var req models.InflationForecastRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cpi := h.cfg.Finance.DefaultCPIRate
	if req.AnnualCPIRate != nil {
		cpi = *req.AnnualCPIRate
	}

	if err := firstError(
		validateAmount("current_price", req.CurrentPrice),
		validateRate("annual_cpi_rate", cpi),
	); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Years < 0 || req.Years > MaxYears {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("years must be between 0 and %d", MaxYears))
		return
	}

	series, err := finance.InflationSeries(req.CurrentPrice, cpi, req.Years)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	projections := make([]models.InflationProjection, 0, len(series))
	for _, p := range series {
		projections = append(projections, models.InflationProjection{
			Year:           p.Year,
			EstimatedPrice: finance.RoundCurrency(p.Price),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.InflationForecastResponse{
		Projections: projections,
		Meta:        compliance.ProjectionMeta(),
	})
}

// Dashboard handles GET /calc/dashboard
func (h *CalcHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	input, err := h.loadDashboardInput(r.Context(), user)
	if err != nil {
		slog.Error("failed to load dashboard data", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	summary, err := finance.Aggregate(input, h.cfg.Finance)
	if err != nil {
		slog.Error("failed to aggregate dashboard", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute dashboard")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardSummary{
		TotalIncome:         finance.RoundCurrency(summary.TotalIncome),
		TotalExpenses:       finance.RoundCurrency(summary.TotalExpenses),
		TotalDebtEMI:        finance.RoundCurrency(summary.TotalDebtEMI),
		Surplus:             finance.RoundCurrency(summary.Surplus),
		DTI:                 finance.RoundRatio(summary.DTI),
		SafeToSpend:         finance.RoundCurrency(summary.SafeToSpend),
		FunBudget:           finance.RoundCurrency(summary.FunBudget),
		GoalProgressPct:     finance.RoundCurrency(summary.GoalProgressPct),
		DebtPayoffETAMonths: summary.DebtPayoffETAMonths,
		Meta:                compliance.CalcMeta(),
	})
}

func (h *CalcHandler) loadDashboardInput(ctx context.Context, user models.User) (finance.DashboardInput, error) {
	input := finance.DashboardInput{MonthlyIncome: user.MonthlyNetIncome}

	rows, err := h.db.QueryContext(ctx, `SELECT amount FROM expense WHERE user_id = $1`, user.ID)
	if err != nil {
		return input, fmt.Errorf("query expenses: %w", err)
	}
	for rows.Next() {
		var amount float64
		if err := rows.Scan(&amount); err != nil {
			rows.Close()
			return input, fmt.Errorf("scan expense: %w", err)
		}
		input.Expenses = append(input.Expenses, amount)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return input, err
	}

	rows, err = h.db.QueryContext(ctx, `SELECT current_emi, principal FROM debt_account WHERE user_id = $1`, user.ID)
	if err != nil {
		return input, fmt.Errorf("query debts: %w", err)
	}
	for rows.Next() {
		var d finance.DebtSnapshot
		if err := rows.Scan(&d.CurrentEMI, &d.Principal); err != nil {
			rows.Close()
			return input, fmt.Errorf("scan debt: %w", err)
		}
		input.Debts = append(input.Debts, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return input, err
	}

	rows, err = h.db.QueryContext(ctx, `SELECT target_amount, saved_amount FROM goal WHERE user_id = $1`, user.ID)
	if err != nil {
		return input, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var g finance.GoalSnapshot
		if err := rows.Scan(&g.TargetAmount, &g.SavedAmount); err != nil {
			return input, fmt.Errorf("scan goal: %w", err)
		}
		input.Goals = append(input.Goals, g)
	}

	return input, rows.Err()
}
