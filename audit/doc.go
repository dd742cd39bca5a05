// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package audit records sensitive actions (registration, logins, statement
// imports) in the audit_log table. Payloads are stored as JSON after
// RedactPII has masked e-mail addresses and phone numbers; client IPs are
// only stored as auth.HashIP digests.
package audit
