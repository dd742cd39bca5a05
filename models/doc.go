// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest, LoginRequest: account credentials
  - ExpenseCreate, DebtCreate, GoalCreate: user records
  - EMIRequest, LoanPreAssessmentRequest, LoanPayoffPlanRequest,
    InflationForecastRequest: calculator inputs

Dates are YYYY-MM-DD strings. Rates are annual percentages (9 means 9%).

# Response Types

Calculator responses embed Meta, which carries the disclaimer shown with
every result:

  - EMIResponse, LoanPreAssessmentResponse, LoanPayoffPlanResponse,
    InflationForecastResponse, DashboardSummary
  - LoginResponse, ImportResponse, ComplianceResponse, FeatureStatus
  - ErrorResponse: error, message

# Domain Types

  - User: account and monthly net income (password hash never serialized)
  - Expense: spending record, manual or imported
  - Debt: outstanding loan with its EMI
  - Goal: savings target ordered by priority

# Constants

Expense sources:

	SourceManual = "manual"
	SourceImport = "import"
*/
package models
