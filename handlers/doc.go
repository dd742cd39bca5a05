// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Peak Finance API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Registration, login, logout, current user
  - DataHandler: Expenses, debts, goals and statement imports
  - CalcHandler: Calculators and the dashboard
  - ComplianceHandler: Disclaimers and regulated features

Handlers are created via constructor functions that accept *sql.DB and Config:

	calcHandler := handlers.NewCalcHandler(db, cfg)

# Authentication

Everything except registration, login, logout and compliance runs behind
middleware.Authenticator. Handlers read the caller with
middleware.UserFromContext and scope every query to that user.

	POST /auth/register → Register
	POST /auth/login    → Login (rate limited, sets access_token cookie)
	GET  /auth/me       → Me

# User Records

	POST/GET /data/expenses → CreateExpense, ListExpenses
	POST/GET /data/debts    → CreateDebt, ListDebts (EMI derived when omitted)
	POST/GET /data/goals    → CreateGoal, ListGoals (by priority)
	POST /data/import       → ImportStatement (.csv or .xlsx, one transaction)

# Calculators

The math lives in package finance; handlers validate input against the
limits in limits.go, round the results and attach the disclaimer:

	POST /calc/emi                → CalculateEMI
	POST /calc/loan-pre-assessment → LoanPreAssessment
	POST /calc/loan-payoff-plan    → LoanPayoffPlan
	POST /calc/inflation-forecast  → InflationForecast
	GET  /calc/dashboard           → Dashboard

# Audit

Registration, logins (successful and failed) and imports are written to
the audit log with a salted client IP hash. Audit failures are logged and
never fail the request.
*/
package handlers
