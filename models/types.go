package models

import "time"

// Expense sources
const (
	SourceManual = "manual"
	SourceImport = "import"
)

// Request types

type RegisterRequest struct {
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	FullName         string  `json:"full_name"`
	MonthlyNetIncome float64 `json:"monthly_net_income"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ExpenseCreate struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	SpentOn     string  `json:"spent_on"` // YYYY-MM-DD, optional
}

// CurrentEMI may be omitted; it is then derived from the principal, rate
// and months remaining.
type DebtCreate struct {
	Name            string  `json:"name"`
	Principal       float64 `json:"principal"`
	AnnualRatePct   float64 `json:"annual_rate_pct"`
	CurrentEMI      float64 `json:"current_emi"`
	MonthsRemaining int     `json:"months_remaining"`
}

type GoalCreate struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	SavedAmount  float64 `json:"saved_amount"`
	Priority     int     `json:"priority"`
	TargetDate   string  `json:"target_date"` // YYYY-MM-DD, optional
}

type EMIRequest struct {
	Principal     float64 `json:"principal"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
	TermMonths    int     `json:"term_months"`
}

type LoanPreAssessmentRequest struct {
	Income              float64 `json:"income"`
	ExistingMonthlyDebt float64 `json:"existing_monthly_debt"`
	AnnualRatePct       float64 `json:"annual_rate_pct"`
	TermMonths          int     `json:"term_months"`
}

type LoanPayoffPlanRequest struct {
	Principal     float64 `json:"principal"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
	TermMonths    int     `json:"term_months"`
	ExtraPayment  float64 `json:"extra_payment"`
}

// AnnualCPIRate is a pointer so an omitted rate falls back to the
// configured default while an explicit 0 is kept.
type InflationForecastRequest struct {
	CurrentPrice  float64  `json:"current_price"`
	AnnualCPIRate *float64 `json:"annual_cpi_rate,omitempty"`
	Years         int      `json:"years"`
}

// Response types

type Meta struct {
	Disclaimer string `json:"disclaimer"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type EMIResponse struct {
	MonthlyEMI    float64 `json:"monthly_emi"`
	TotalPaid     float64 `json:"total_paid"`
	TotalInterest float64 `json:"total_interest"`
	Meta          Meta    `json:"meta"`
}

type StressTestResult struct {
	Scenario     string  `json:"scenario"`
	NewEMI       float64 `json:"new_emi"`
	DTI          float64 `json:"dti"`
	IsAffordable bool    `json:"is_affordable"`
}

type LoanPreAssessmentResponse struct {
	DTI                float64            `json:"dti"`
	AffordableEMI      float64            `json:"affordable_emi"`
	EstimatedPrincipal float64            `json:"estimated_principal"`
	StressTests        []StressTestResult `json:"stress_tests"`
	Meta               Meta               `json:"meta"`
}

type LoanPayoffPlanResponse struct {
	MonthlyEMI    float64 `json:"monthly_emi"`
	TotalInterest float64 `json:"total_interest"`
	TotalPaid     float64 `json:"total_paid"`
	MonthsSaved   int     `json:"months_saved"`
	InterestSaved float64 `json:"interest_saved"`
	Meta          Meta    `json:"meta"`
}

type InflationProjection struct {
	Year           int     `json:"year"`
	EstimatedPrice float64 `json:"estimated_price"`
}

type InflationForecastResponse struct {
	Projections []InflationProjection `json:"projections"`
	Meta        Meta                  `json:"meta"`
}

// DebtPayoffETAMonths is null when the user has no debt service.
type DashboardSummary struct {
	TotalIncome         float64 `json:"total_income"`
	TotalExpenses       float64 `json:"total_expenses"`
	TotalDebtEMI        float64 `json:"total_debt_emi"`
	Surplus             float64 `json:"surplus"`
	DTI                 float64 `json:"dti"`
	SafeToSpend         float64 `json:"safe_to_spend"`
	FunBudget           float64 `json:"fun_budget"`
	GoalProgressPct     float64 `json:"goal_progress_pct"`
	DebtPayoffETAMonths *int    `json:"debt_payoff_eta_months"`
	Meta                Meta    `json:"meta"`
}

type ImportResponse struct {
	Imported       int                `json:"imported"`
	CategoryTotals map[string]float64 `json:"category_totals"`
}

type ComplianceResponse struct {
	CalcDisclaimer       string   `json:"calc_disclaimer"`
	LoanDisclaimer       string   `json:"loan_disclaimer"`
	ProjectionDisclaimer string   `json:"projection_disclaimer"`
	RegulatedPartner     bool     `json:"regulated_partner"`
	References           []string `json:"regulatory_references"`
}

type FeatureStatus struct {
	Feature   string `json:"feature"`
	Available bool   `json:"available"`
}

// Domain types

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	MonthlyNetIncome float64   `json:"monthly_net_income"`
	PasswordHash     string    `json:"-"` // Never expose in JSON
	CreatedAt        time.Time `json:"created_at"`
}

type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	SpentOn     string    `json:"spent_on,omitempty"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

type Debt struct {
	ID              string    `json:"id"`
	UserID          string    `json:"-"`
	Name            string    `json:"name"`
	Principal       float64   `json:"principal"`
	AnnualRatePct   float64   `json:"annual_rate_pct"`
	CurrentEMI      float64   `json:"current_emi"`
	MonthsRemaining int       `json:"months_remaining"`
	CreatedAt       time.Time `json:"created_at"`
}

type Goal struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	Name         string    `json:"name"`
	TargetAmount float64   `json:"target_amount"`
	SavedAmount  float64   `json:"saved_amount"`
	Priority     int       `json:"priority"`
	TargetDate   string    `json:"target_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
