// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/peak-finance/auth"
	"github.com/danielhkuo/peak-finance/models"
)

// AccessTokenCookie is the cookie set at login for browser clients.
const AccessTokenCookie = "access_token"

type contextKey struct{}

var userKey contextKey

// Authenticator resolves the access token on a request to a stored user.
type Authenticator struct {
	db     *sql.DB
	secret string
}

func NewAuthenticator(db *sql.DB, secret string) *Authenticator {
	return &Authenticator{db: db, secret: secret}
}

// Require rejects requests without a valid token for an existing user and
// otherwise stores the user in the request context.
func (a *Authenticator) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := auth.ParseToken(token, a.secret)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := LoadUser(r.Context(), a.db, userID)
		if errors.Is(err, sql.ErrNoRows) {
			ErrorResponse(w, http.StatusUnauthorized, "User not found")
			return
		}
		if err != nil {
			slog.Error("failed to load user", "error", err, "user_id", userID)
			ErrorResponse(w, http.StatusInternalServerError, "Failed to authenticate")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

// TokenFromRequest returns the bearer token, falling back to the
// access token cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token)
		}
	}

	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// UserFromContext returns the user stored by Require.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// LoadUser fetches a user by ID. Returns sql.ErrNoRows if absent.
func LoadUser(ctx context.Context, db *sql.DB, id string) (models.User, error) {
	var user models.User
	err := db.QueryRowContext(ctx, `
		SELECT id, email, full_name, monthly_net_income, password_hash, created_at
		FROM app_user
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.FullName, &user.MonthlyNetIncome, &user.PasswordHash, &user.CreatedAt)
	return user, err
}
