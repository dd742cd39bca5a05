// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/peak-finance/cliparse"
	"github.com/danielhkuo/peak-finance/handlers"
	"github.com/danielhkuo/peak-finance/middleware"
	"github.com/danielhkuo/peak-finance/ratelimit"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, loginLimiter ratelimit.Limiter) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	dataHandler := handlers.NewDataHandler(db, cfg)
	calcHandler := handlers.NewCalcHandler(db, cfg)
	complianceHandler := handlers.NewComplianceHandler(cfg)

	authn := middleware.NewAuthenticator(db, cfg.SecretKey)
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(authn.Require(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(middleware.RateLimit(loginLimiter, "login", cfg.TrustProxy, authHandler.Login)))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /auth/me", protected(authHandler.Me))

	// User records
	mux.HandleFunc("POST /data/expenses", protected(dataHandler.CreateExpense))
	mux.HandleFunc("GET /data/expenses", protected(dataHandler.ListExpenses))
	mux.HandleFunc("POST /data/debts", protected(dataHandler.CreateDebt))
	mux.HandleFunc("GET /data/debts", protected(dataHandler.ListDebts))
	mux.HandleFunc("POST /data/goals", protected(dataHandler.CreateGoal))
	mux.HandleFunc("GET /data/goals", protected(dataHandler.ListGoals))
	mux.HandleFunc("POST /data/import", protected(dataHandler.ImportStatement))

	// Calculators
	mux.HandleFunc("POST /calc/emi", protected(calcHandler.CalculateEMI))
	mux.HandleFunc("POST /calc/loan-pre-assessment", protected(calcHandler.LoanPreAssessment))
	mux.HandleFunc("POST /calc/loan-payoff-plan", protected(calcHandler.LoanPayoffPlan))
	mux.HandleFunc("POST /calc/inflation-forecast", protected(calcHandler.InflationForecast))
	mux.HandleFunc("GET /calc/dashboard", protected(calcHandler.Dashboard))

	// Compliance (public)
	mux.HandleFunc("GET /compliance", middleware.WithLogging(complianceHandler.Compliance))
	mux.HandleFunc("GET /compliance/features/{feature}", middleware.WithLogging(complianceHandler.FeatureStatus))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("peak-finance API v1"))
	})

	return middleware.CORS(cfg.AllowedOrigins)(mux)
}
