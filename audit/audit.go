// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/danielhkuo/peak-finance/auth"
)

// Actions recorded in the audit log
const (
	ActionRegister        = "user.register"
	ActionLogin           = "user.login"
	ActionLoginFailed     = "user.login_failed"
	ActionStatementImport = "data.import"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	// Bangladeshi mobile numbers, with or without the +880/0 prefix
	phonePattern = regexp.MustCompile(`\b(\+?880|0)?1[3-9]\d{8}\b`)
)

// Entry is one auditable action. UserID and IPHash may be empty.
type Entry struct {
	UserID  string
	Action  string
	Payload map[string]any
	IPHash  string
}

// RedactPII masks e-mail addresses and phone numbers in text.
func RedactPII(text string) string {
	text = emailPattern.ReplaceAllString(text, "[EMAIL_REDACTED]")
	text = phonePattern.ReplaceAllString(text, "[PHONE_REDACTED]")
	return text
}

// Log stores an entry with its payload serialized to JSON and redacted.
// Returns the new row ID.
func Log(ctx context.Context, db *sql.DB, e Entry) (string, error) {
	payload := e.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode audit payload: %w", err)
	}

	id := auth.GenerateID()
	_, err = db.ExecContext(ctx, `
		INSERT INTO audit_log (id, user_id, action, payload_json, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, nullString(e.UserID), e.Action, RedactPII(string(raw)), nullString(e.IPHash), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to write audit log: %w", err)
	}

	return id, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
