// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/danielhkuo/peak-finance/audit"
	"github.com/danielhkuo/peak-finance/auth"
	"github.com/danielhkuo/peak-finance/cliparse"
	"github.com/danielhkuo/peak-finance/middleware"
	"github.com/danielhkuo/peak-finance/models"
)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength))
		return
	}
	if err := validateAmount("monthly_net_income", req.MonthlyNetIncome); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Check email is free
	var exists bool
	err = h.db.QueryRowContext(r.Context(), `
		SELECT EXISTS(SELECT 1 FROM app_user WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		slog.Error("failed to check email", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}
	if exists {
		middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user := models.User{
		ID:               auth.GenerateID(),
		Email:            email,
		FullName:         strings.TrimSpace(req.FullName),
		MonthlyNetIncome: req.MonthlyNetIncome,
		PasswordHash:     hash,
		CreatedAt:        time.Now().UTC(),
	}

	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO app_user (id, email, password_hash, full_name, monthly_net_income, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Email, user.PasswordHash, user.FullName, user.MonthlyNetIncome, user.CreatedAt)
	if isUniqueViolation(err) {
		// lost a race with a concurrent registration
		middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	h.audit(r, audit.Entry{UserID: user.ID, Action: audit.ActionRegister})

	middleware.JSONResponse(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
// Returns the access token and also sets it as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, password_hash FROM app_user WHERE email = $1
	`, email).Scan(&user.ID, &user.PasswordHash)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to look up user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	// Same response for unknown email and wrong password
	if errors.Is(err, sql.ErrNoRows) || auth.VerifyPassword(req.Password, user.PasswordHash) != nil {
		h.audit(r, audit.Entry{
			UserID:  user.ID,
			Action:  audit.ActionLoginFailed,
			Payload: map[string]any{"email": email},
		})
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, expiresAt, err := auth.IssueToken(user.ID, h.cfg.SecretKey, h.cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(h.cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("user logged in", "user_id", user.ID)
	h.audit(r, audit.Entry{UserID: user.ID, Action: audit.ActionLogin})

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// audit records an entry without failing the request
func (h *AuthHandler) audit(r *http.Request, e audit.Entry) {
	recordAudit(r, h.db, h.cfg, e)
}

func recordAudit(r *http.Request, db *sql.DB, cfg cliparse.Config, e audit.Entry) {
	e.IPHash = auth.HashIP(middleware.GetClientIP(r, cfg.TrustProxy), cfg.SecretKey)

	// detached from the request so a client disconnect does not drop the entry
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 5*time.Second)
	defer cancel()

	if _, err := audit.Log(ctx, db, e); err != nil {
		slog.Error("failed to write audit log", "error", err, "action", e.Action)
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", errors.New("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errors.New("email is invalid")
	}
	return email, nil
}
