// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Peak Finance API server.

Peak Finance is an educational personal-finance backend for Bangladeshi
users. It stores expenses, debts and savings goals per account and runs
the calculators on top of them: EMI, loan pre-assessment with stress
tests, accelerated payoff plans, inflation forecasts and a monthly
dashboard. Every calculator response carries an educational disclaimer.

# Starting the Server

Configuration comes from CLI flags, environment variables, or a .env file
in the working directory:

	DATABASE_URL=postgres://... SECRET_KEY=... go run .

Or with flags, against a local SQLite file:

	go run . -p 3318 -t sqlite -d peak.db --secret-key "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite path
  - SECRET_KEY (--secret-key): Access token signing key, 32+ characters

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres (default) or sqlite
  - REDIS_URL (--redis-url): Shared login rate limiter
  - IS_REGULATED_PARTNER (--regulated): Unlocks regulated features
  - SETTINGS_FILE (--settings): YAML or TOML calculator settings

See package cliparse for the complete list.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, data, imports, calculators, compliance)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, auth, rate limiting, JSON helpers
  - finance: Pure calculator functions
  - models: Request/response types
  - auth: Password hashing and access tokens
  - audit: PII-redacting audit log
  - compliance: Disclaimers and the regulated-feature gate
  - imports: CSV/XLSX statement parsing
  - ratelimit: In-memory and Redis rate limiters
  - db: Connection and schema creation
  - cliparse: Configuration parsing

The peakcalc command (cmd/peakcalc) runs the same calculators offline.
*/
package main
