// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ratelimit throttles repeated attempts, such as logins, per client.

Two Limiter implementations are provided:

  - Memory: token bucket per key, refilled once per window. A background
    goroutine drops idle buckets; call Stop on shutdown.
  - Redis: fixed window counter so several server instances share one
    budget. INCR and PEXPIRE run in a single Lua script.

Usage:

	limiter := ratelimit.NewMemory(cfg.MaxLoginAttempts, cfg.LoginWindow)
	defer limiter.Stop()

	ok, err := limiter.Allow(ctx, "login:"+ip)
*/
package ratelimit
