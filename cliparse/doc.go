// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p, --port               Server port (default: 3318)
	-d, --database-url       Database URL (required)
	-t, --database-type      postgres (default) or sqlite
	--secret-key             Token signing key, at least 32 characters (required)
	--token-ttl-days         Access token lifetime (default: 1)
	--bcrypt-cost            bcrypt cost factor (default: 12)
	--allowed-origins        CORS origins, comma separated
	--max-login-attempts     Login attempts per minute per client (default: 5)
	--max-import-mb          Statement upload limit (default: 5)
	--redis-url              Redis for the login limiter (default: in memory)
	--regulated              Running through a licensed partner
	--trust-proxy            Key rate limits on X-Forwarded-For (behind a proxy only)
	--settings               YAML or TOML calculator settings file

# Environment Variables

Flags fall back to environment variables:

	PORT, DATABASE_URL, DATABASE_TYPE, SECRET_KEY, JWT_EXPIRE_DAYS,
	BCRYPT_ROUNDS, ALLOWED_ORIGINS, MAX_LOGIN_ATTEMPTS, MAX_CSV_SIZE_MB,
	REDIS_URL, IS_REGULATED_PARTNER, TRUST_PROXY, SETTINGS_FILE

CLI flags take precedence over environment variables.

# Calculator Settings

Config.Finance holds the finance.Settings passed to every calculation.
Values are layered: defaults, then the settings file, then the
MAX_DTI_RATIO, DEFAULT_FUN_RATIO, GOAL_RESERVE_RATIO and DEFAULT_CPI_RATE
environment variables. A YAML settings file looks like:

	max_dti_ratio: 0.4
	default_fun_ratio: 0.15
	stress_scenarios:
	  - label: "Interest rate +2%"
	    rate_delta_pct: 2
	    income_multiplier: 1
	  - label: "Income -10%"
	    rate_delta_pct: 0
	    income_multiplier: 0.9

The result is validated; out-of-range ratios fail startup.
*/
package cliparse
