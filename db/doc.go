// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open accepts "postgres" (lib/pq) or "sqlite" (modernc.org/sqlite):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections are limited to one open connection, which also keeps
":memory:" databases intact across queries.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on both drivers, and queries throughout the application
use $n placeholders, which both drivers accept.

# Tables

  - app_user: Account, password hash and monthly net income
  - expense: Manual or imported spending
  - debt_account: Loans with their current EMI
  - goal: Savings goals with priority
  - audit_log: Redacted record of sensitive actions

# Relationships

	app_user 1──* expense
	app_user 1──* debt_account
	app_user 1──* goal
	app_user 1──* audit_log

User data is deleted with the user (ON DELETE CASCADE); audit rows are
kept with user_id set to NULL.
*/
package db
