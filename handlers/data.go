// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/peak-finance/auth"
	"github.com/danielhkuo/peak-finance/cliparse"
	"github.com/danielhkuo/peak-finance/finance"
	"github.com/danielhkuo/peak-finance/middleware"
	"github.com/danielhkuo/peak-finance/models"
)

// DataHandler stores and lists the signed-in user's records.
// Every query is scoped by user_id.
type DataHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDataHandler(db *sql.DB, cfg cliparse.Config) *DataHandler {
	return &DataHandler{db: db, cfg: cfg}
}

// CreateExpense handles POST /data/expenses
func (h *DataHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.ExpenseCreate
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := firstError(
		validateAmount("amount", req.Amount),
		validateDate("spent_on", req.SpentOn),
	); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	expense := models.Expense{
		ID:          auth.GenerateID(),
		UserID:      user.ID,
		Amount:      req.Amount,
		Category:    orDefault(req.Category, defaultCategory),
		Description: strings.TrimSpace(req.Description),
		SpentOn:     req.SpentOn,
		Source:      models.SourceManual,
		CreatedAt:   time.Now().UTC(),
	}

	if err := insertExpense(h.db, expense); err != nil {
		slog.Error("failed to insert expense", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, expense)
}

// ListExpenses handles GET /data/expenses
func (h *DataHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, amount, category, description, spent_on, source, created_at
		FROM expense
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, user.ID)
	if err != nil {
		slog.Error("failed to query expenses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list expenses")
		return
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var (
			e       models.Expense
			spentOn sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &e.Description, &spentOn, &e.Source, &e.CreatedAt); err != nil {
			slog.Error("failed to scan expense", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list expenses")
			return
		}
		e.UserID = user.ID
		e.SpentOn = spentOn.String
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate expenses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list expenses")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, expenses)
}

// CreateDebt handles POST /data/debts
// An omitted current_emi is derived from the principal, rate and months
// remaining.
func (h *DataHandler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.DebtCreate
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := firstError(
		validateAmount("principal", req.Principal),
		validateRate("annual_rate_pct", req.AnnualRatePct),
		validateAmount("current_emi", req.CurrentEMI),
	); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MonthsRemaining < 0 || req.MonthsRemaining > MaxTermMonths {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("months_remaining must be between 0 and %d", MaxTermMonths))
		return
	}

	emi := req.CurrentEMI
	if emi == 0 && req.MonthsRemaining > 0 {
		emi = finance.RoundCurrency(finance.RequiredEMIToFinish(req.Principal, req.AnnualRatePct, req.MonthsRemaining))
	}

	debt := models.Debt{
		ID:              auth.GenerateID(),
		UserID:          user.ID,
		Name:            name,
		Principal:       req.Principal,
		AnnualRatePct:   req.AnnualRatePct,
		CurrentEMI:      emi,
		MonthsRemaining: req.MonthsRemaining,
		CreatedAt:       time.Now().UTC(),
	}

	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO debt_account (id, user_id, name, principal, annual_rate_pct, current_emi, months_remaining, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, debt.ID, debt.UserID, debt.Name, debt.Principal, debt.AnnualRatePct, debt.CurrentEMI, debt.MonthsRemaining, debt.CreatedAt)
	if err != nil {
		slog.Error("failed to insert debt", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create debt")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, debt)
}

// ListDebts handles GET /data/debts
func (h *DataHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, name, principal, annual_rate_pct, current_emi, months_remaining, created_at
		FROM debt_account
		WHERE user_id = $1
		ORDER BY created_at, id
	`, user.ID)
	if err != nil {
		slog.Error("failed to query debts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list debts")
		return
	}
	defer rows.Close()

	debts := []models.Debt{}
	for rows.Next() {
		var d models.Debt
		if err := rows.Scan(&d.ID, &d.Name, &d.Principal, &d.AnnualRatePct, &d.CurrentEMI, &d.MonthsRemaining, &d.CreatedAt); err != nil {
			slog.Error("failed to scan debt", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list debts")
			return
		}
		d.UserID = user.ID
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate debts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list debts")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, debts)
}

// CreateGoal handles POST /data/goals
func (h *DataHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.GoalCreate
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := firstError(
		validateAmount("target_amount", req.TargetAmount),
		validateAmount("saved_amount", req.SavedAmount),
		validateDate("target_date", req.TargetDate),
	); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	goal := models.Goal{
		ID:           auth.GenerateID(),
		UserID:       user.ID,
		Name:         name,
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
		Priority:     req.Priority,
		TargetDate:   req.TargetDate,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO goal (id, user_id, name, target_amount, saved_amount, priority, target_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, goal.ID, goal.UserID, goal.Name, goal.TargetAmount, goal.SavedAmount, goal.Priority, nullIfEmpty(goal.TargetDate), goal.CreatedAt)
	if err != nil {
		slog.Error("failed to insert goal", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, goal)
}

// ListGoals handles GET /data/goals
// Goals come back by ascending priority.
func (h *DataHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, name, target_amount, saved_amount, priority, target_date, created_at
		FROM goal
		WHERE user_id = $1
		ORDER BY priority, created_at, id
	`, user.ID)
	if err != nil {
		slog.Error("failed to query goals", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list goals")
		return
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var (
			g          models.Goal
			targetDate sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.Priority, &targetDate, &g.CreatedAt); err != nil {
			slog.Error("failed to scan goal", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list goals")
			return
		}
		g.UserID = user.ID
		g.TargetDate = targetDate.String
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate goals", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list goals")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, goals)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertExpense(db execer, e models.Expense) error {
	_, err := db.Exec(`
		INSERT INTO expense (id, user_id, amount, category, description, spent_on, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.UserID, e.Amount, e.Category, e.Description, nullIfEmpty(e.SpentOn), e.Source, e.CreatedAt)
	return err
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
