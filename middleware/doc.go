// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Authentication

Authenticator.Require resolves the access token (Authorization: Bearer
header first, then the access_token cookie), loads the user and stores it
in the request context:

	authn := middleware.NewAuthenticator(db, cfg.SecretKey)
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(authn.Require(h.Me)))

	// inside the handler
	user, _ := middleware.UserFromContext(r.Context())

Missing or invalid tokens, and tokens for deleted users, get 401.

# Rate Limiting

RateLimit guards a handler per client IP with any ratelimit.Limiter:

	mux.HandleFunc("POST /auth/login", middleware.RateLimit(limiter, "login", cfg.TrustProxy, h.Login))

Exhausted clients get 429. If the limiter itself fails, the error is
logged and the request proceeds.

# CORS Middleware

Enable cross-origin requests for the configured frontend origins:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins)(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization and credentials. Other origins get no CORS
headers.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.EMIRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the client IP. X-Forwarded-For and X-Real-IP are honoured only when
the server runs behind a trusted proxy (--trust-proxy); otherwise the
socket peer is used:

	ip := middleware.GetClientIP(r, cfg.TrustProxy)

Used as the rate limit key and, hashed, in audit logs.
*/
package middleware
