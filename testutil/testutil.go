// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/peak-finance/auth"
	"github.com/danielhkuo/peak-finance/cliparse"
	"github.com/danielhkuo/peak-finance/db"
	"github.com/danielhkuo/peak-finance/finance"
	"github.com/danielhkuo/peak-finance/models"
)

// TestDBURL is an in-memory SQLite database, private to each connection
const TestDBURL = ":memory:"

// TestPassword is the password of every user made by CreateTestUser
const TestPassword = "correct-horse-battery"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      TestDBURL,
		DatabaseType:     "sqlite",
		SecretKey:        "test-secret-key-with-at-least-32-characters",
		TokenTTL:         time.Hour,
		BcryptCost:       bcrypt.MinCost,
		AllowedOrigins:   []string{"http://localhost:8000"},
		MaxLoginAttempts: 5,
		LoginWindow:      time.Minute,
		MaxImportMB:      1,
		Finance:          finance.DefaultSettings(),
	}
}

// CreateTestUser inserts a user with TestPassword and returns it together
// with a valid access token
func CreateTestUser(t *testing.T, conn *sql.DB, cfg cliparse.Config, email string, income float64) (models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		ID:               auth.GenerateID(),
		Email:            email,
		FullName:         "Test User",
		MonthlyNetIncome: income,
		PasswordHash:     hash,
		CreatedAt:        time.Now().UTC(),
	}

	_, err = conn.Exec(`
		INSERT INTO app_user (id, email, password_hash, full_name, monthly_net_income, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Email, user.PasswordHash, user.FullName, user.MonthlyNetIncome, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, _, err := auth.IssueToken(user.ID, cfg.SecretKey, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	return user, token
}

// AddTestExpense stores a manual expense for a user
func AddTestExpense(t *testing.T, conn *sql.DB, userID string, amount float64, category string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO expense (id, user_id, amount, category, description, source, created_at)
		VALUES ($1, $2, $3, $4, '', $5, $6)
	`, auth.GenerateID(), userID, amount, category, models.SourceManual, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test expense: %v", err)
	}
}

// AddTestDebt stores a debt account for a user
func AddTestDebt(t *testing.T, conn *sql.DB, userID string, principal, emi float64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO debt_account (id, user_id, name, principal, annual_rate_pct, current_emi, months_remaining, created_at)
		VALUES ($1, $2, 'Test Loan', $3, 10, $4, 12, $5)
	`, auth.GenerateID(), userID, principal, emi, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test debt: %v", err)
	}
}

// AddTestGoal stores a savings goal for a user
func AddTestGoal(t *testing.T, conn *sql.DB, userID string, target, saved float64, priority int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO goal (id, user_id, name, target_amount, saved_amount, priority, created_at)
		VALUES ($1, $2, 'Test Goal', $3, $4, $5, $6)
	`, auth.GenerateID(), userID, target, saved, priority, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test goal: %v", err)
	}
}

// BearerHeader returns the Authorization header for a token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
