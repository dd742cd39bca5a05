// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Peak Finance API.

# Route Registration

NewRouter creates the configured handler with all endpoints, wrapped in
CORS for cfg.AllowedOrigins:

	limiter := ratelimit.NewMemory(cfg.MaxLoginAttempts, cfg.LoginWindow)
	handler := router.NewRouter(db, cfg, limiter)

# Endpoints

Health:

	GET /health

Accounts:

	POST /auth/register - Create account
	POST /auth/login    - Issue token and cookie (rate limited per IP)
	POST /auth/logout   - Clear cookie
	GET  /auth/me       - Current user (auth)

User records (auth):

	POST/GET /data/expenses
	POST/GET /data/debts
	POST/GET /data/goals
	POST     /data/import   - Upload .csv or .xlsx statement

Calculators (auth):

	POST /calc/emi
	POST /calc/loan-pre-assessment
	POST /calc/loan-payoff-plan
	POST /calc/inflation-forecast
	GET  /calc/dashboard

Compliance (public):

	GET /compliance
	GET /compliance/features/{feature}

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(db, cfg)
	dataHandler := handlers.NewDataHandler(db, cfg)
	calcHandler := handlers.NewCalcHandler(db, cfg)

Authenticated routes go through middleware.Authenticator.Require.
*/
package router
