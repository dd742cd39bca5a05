// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, access tokens and ID generation.

# Passwords

Passwords are hashed with bcrypt at a configurable cost:

	hash, err := auth.HashPassword(password, cfg.BcryptCost)
	err = auth.VerifyPassword(password, hash) // ErrInvalidCredentials on mismatch

# Access Tokens

Access tokens are HS256 JWTs whose subject is the user ID:

	token, expiresAt, err := auth.IssueToken(userID, cfg.SecretKey, cfg.TokenTTL)
	userID, err := auth.ParseToken(token, cfg.SecretKey)

ParseToken rejects other signing algorithms, missing or past expiry, and
tokens without a subject, all as ErrInvalidToken.

# ID Generation

Random UUIDs for database records:

	id := auth.GenerateID()

# IP Hashing

For privacy-preserving audit trails:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
