// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/peak-finance/models"
	"github.com/danielhkuo/peak-finance/testutil"
)

// TestFullFinanceWorkflow tests the complete end-to-end workflow:
// 1. Register
// 2. Log in
// 3. Record a debt, an expense and a goal
// 4. Import a statement
// 5. Verify the dashboard reflects everything
// 6. Log out
func TestFullFinanceWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	authHandler := NewAuthHandler(db, cfg)
	dataHandler := NewDataHandler(db, cfg)
	calcHandler := NewCalcHandler(db, cfg)

	// Step 1: Register
	req := testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
		Email:            "karim@example.com",
		Password:         "integration-pass",
		FullName:         "Karim",
		MonthlyNetIncome: 50000,
	}, nil)
	w := httptest.NewRecorder()
	authHandler.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Register failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 2: Log in
	req = testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
		Email:    "karim@example.com",
		Password: "integration-pass",
	}, nil)
	w = httptest.NewRecorder()
	authHandler.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Login failed: %d - %s", w.Code, w.Body.String())
	}

	var login models.LoginResponse
	testutil.AssertJSON(t, w, &login)
	headers := testutil.BearerHeader(login.AccessToken)
	t.Log("Step 2 - Logged in")

	// Step 3: Record a debt, an expense and a goal
	steps := []struct {
		name    string
		path    string
		body    any
		handler http.HandlerFunc
	}{
		{"debt", "/data/debts", models.DebtCreate{Name: "Bike loan", Principal: 60000, AnnualRatePct: 10, CurrentEMI: 5000, MonthsRemaining: 12}, dataHandler.CreateDebt},
		{"expense", "/data/expenses", models.ExpenseCreate{Amount: 10000, Category: "Rent"}, dataHandler.CreateExpense},
		{"goal", "/data/goals", models.GoalCreate{Name: "Hajj fund", TargetAmount: 100000, SavedAmount: 25000, Priority: 1}, dataHandler.CreateGoal},
	}
	for _, s := range steps {
		req := testutil.MakeRequest("POST", s.path, s.body, headers)
		w := serveAuthed(db, cfg, s.handler, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 3 - Create %s failed: %d - %s", s.name, w.Code, w.Body.String())
		}
	}
	t.Log("Step 3 - Recorded debt, expense and goal")

	// Step 4: Import a statement
	csv := "date,description,category,amount\n2025-02-01,Bazaar,Groceries,2000\n2025-02-02,Bus,Transport,3000\n"
	w = serveAuthed(db, cfg, dataHandler.ImportStatement, uploadRequest(t, login.AccessToken, "feb.csv", []byte(csv)))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 4 - Import failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 5: Dashboard
	req = testutil.MakeRequest("GET", "/calc/dashboard", nil, headers)
	w = serveAuthed(db, cfg, calcHandler.Dashboard, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Dashboard failed: %d - %s", w.Code, w.Body.String())
	}

	var summary models.DashboardSummary
	testutil.AssertJSON(t, w, &summary)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"total_income", summary.TotalIncome, 50000},
		{"total_expenses", summary.TotalExpenses, 15000},
		{"total_debt_emi", summary.TotalDebtEMI, 5000},
		{"surplus", summary.Surplus, 30000},
		{"dti", summary.DTI, 0.1},
		{"safe_to_spend", summary.SafeToSpend, 24000},
		{"fun_budget", summary.FunBudget, 7500},
		{"goal_progress_pct", summary.GoalProgressPct, 25},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("Step 5 - %s: expected %v, got %v", c.name, c.want, c.got)
		}
	}
	if summary.DebtPayoffETAMonths == nil || *summary.DebtPayoffETAMonths != 12 {
		t.Errorf("Step 5 - expected payoff ETA of 12 months, got %v", summary.DebtPayoffETAMonths)
	}
	if summary.Meta.Disclaimer == "" {
		t.Error("Step 5 - dashboard must carry a disclaimer")
	}

	// Step 6: Log out
	w = httptest.NewRecorder()
	authHandler.Logout(w, httptest.NewRequest("POST", "/auth/logout", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Logout failed: %d - %s", w.Code, w.Body.String())
	}
}

// TestRecordsIsolatedBetweenUsers verifies one user's records never leak
// into another user's lists or dashboard.
func TestRecordsIsolatedBetweenUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	alice, aliceToken := testutil.CreateTestUser(t, db, cfg, "alice@example.com", 40000)
	_, bobToken := testutil.CreateTestUser(t, db, cfg, "bob@example.com", 40000)

	testutil.AddTestExpense(t, db, alice.ID, 9000, "Rent")
	testutil.AddTestDebt(t, db, alice.ID, 50000, 4000)
	testutil.AddTestGoal(t, db, alice.ID, 10000, 5000, 1)

	dataHandler := NewDataHandler(db, cfg)
	calcHandler := NewCalcHandler(db, cfg)

	for name, handler := range map[string]http.HandlerFunc{
		"expenses": dataHandler.ListExpenses,
		"debts":    dataHandler.ListDebts,
		"goals":    dataHandler.ListGoals,
	} {
		req := testutil.MakeRequest("GET", "/data/"+name, nil, testutil.BearerHeader(bobToken))
		w := serveAuthed(db, cfg, handler, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		if w.Body.String() != "[]\n" {
			t.Errorf("Bob should see no %s, got %s", name, w.Body.String())
		}
	}

	req := testutil.MakeRequest("GET", "/calc/dashboard", nil, testutil.BearerHeader(bobToken))
	w := serveAuthed(db, cfg, calcHandler.Dashboard, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var summary models.DashboardSummary
	testutil.AssertJSON(t, w, &summary)
	if summary.TotalExpenses != 0 || summary.TotalDebtEMI != 0 || summary.DebtPayoffETAMonths != nil {
		t.Errorf("Bob's dashboard includes Alice's records: %+v", summary)
	}

	req = testutil.MakeRequest("GET", "/calc/dashboard", nil, testutil.BearerHeader(aliceToken))
	w = serveAuthed(db, cfg, calcHandler.Dashboard, req)
	testutil.AssertJSON(t, w, &summary)
	if summary.TotalExpenses != 9000 || summary.TotalDebtEMI != 4000 {
		t.Errorf("Alice's dashboard is missing her records: %+v", summary)
	}
}
