package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/peak-finance/finance"
)

const minSecretKeyLength = 32

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	SecretKey        string
	TokenTTL         time.Duration
	BcryptCost       int
	AllowedOrigins   []string
	MaxLoginAttempts int
	LoginWindow      time.Duration
	MaxImportMB      int
	RedisURL         string
	RegulatedPartner bool
	TrustProxy       bool
	SettingsFile     string

	Finance finance.Settings
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var tokenDays int

	fs := pflag.NewFlagSet("peak-finance", pflag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (postgres or sqlite)")
	fs.StringVar(&cfg.RedisURL, "redis-url", "", "Redis URL for the login rate limiter (optional)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SecretKey, "secret-key", "", "Token signing key (prefer env)")
	fs.IntVar(&tokenDays, "token-ttl-days", 0, "Access token lifetime in days")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", 0, "bcrypt cost factor")

	fs.StringSliceVar(&cfg.AllowedOrigins, "allowed-origins", nil, "CORS origins")
	fs.IntVar(&cfg.MaxLoginAttempts, "max-login-attempts", 0, "Login attempts per minute per client")
	fs.IntVar(&cfg.MaxImportMB, "max-import-mb", 0, "Maximum statement upload size in MB")
	fs.BoolVar(&cfg.RegulatedPartner, "regulated", false, "Running through a licensed partner")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Trust X-Forwarded-For/X-Real-IP from a reverse proxy")
	fs.StringVar(&cfg.SettingsFile, "settings", "", "YAML or TOML file with calculator settings")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 3318)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envString("DATABASE_TYPE", "postgres")
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	// Secrets - MUST be provided
	if cfg.SecretKey == "" {
		cfg.SecretKey = os.Getenv("SECRET_KEY")
	}
	if len(cfg.SecretKey) < minSecretKeyLength {
		return Config{}, fmt.Errorf("SECRET_KEY required (at least %d characters)", minSecretKeyLength)
	}

	if tokenDays == 0 {
		days, err := envInt("JWT_EXPIRE_DAYS", 1)
		if err != nil {
			return Config{}, err
		}
		tokenDays = days
	}
	if tokenDays < 1 {
		return Config{}, errors.New("token lifetime must be at least one day")
	}
	cfg.TokenTTL = time.Duration(tokenDays) * 24 * time.Hour

	if cfg.BcryptCost == 0 {
		cost, err := envInt("BCRYPT_ROUNDS", 12)
		if err != nil {
			return Config{}, err
		}
		cfg.BcryptCost = cost
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if len(cfg.AllowedOrigins) == 0 {
		if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
			cfg.AllowedOrigins = splitList(origins)
		} else {
			cfg.AllowedOrigins = []string{"http://localhost:8000", "http://127.0.0.1:8000"}
		}
	}

	if cfg.MaxLoginAttempts == 0 {
		attempts, err := envInt("MAX_LOGIN_ATTEMPTS", 5)
		if err != nil {
			return Config{}, err
		}
		cfg.MaxLoginAttempts = attempts
	}
	if cfg.MaxLoginAttempts < 1 {
		return Config{}, errors.New("max login attempts must be at least 1")
	}
	cfg.LoginWindow = time.Minute

	if cfg.MaxImportMB == 0 {
		size, err := envInt("MAX_CSV_SIZE_MB", 5)
		if err != nil {
			return Config{}, err
		}
		cfg.MaxImportMB = size
	}
	if cfg.MaxImportMB < 1 {
		return Config{}, errors.New("max import size must be at least 1 MB")
	}

	if !cfg.RegulatedPartner {
		if v := os.Getenv("IS_REGULATED_PARTNER"); v != "" {
			regulated, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid IS_REGULATED_PARTNER env variable")
			}
			cfg.RegulatedPartner = regulated
		}
	}

	if !cfg.TrustProxy {
		trust, err := envBool("TRUST_PROXY")
		if err != nil {
			return Config{}, err
		}
		cfg.TrustProxy = trust
	}

	settings, err := loadFinanceSettings(cfg.SettingsFile)
	if err != nil {
		return Config{}, err
	}
	cfg.Finance = settings

	return cfg, nil
}

// loadFinanceSettings layers defaults, then the settings file, then the
// individual environment overrides.
func loadFinanceSettings(path string) (finance.Settings, error) {
	settings := finance.DefaultSettings()

	if path == "" {
		path = os.Getenv("SETTINGS_FILE")
	}
	if path != "" {
		if err := LoadSettingsFile(path, &settings); err != nil {
			return finance.Settings{}, err
		}
	}

	overrides := []struct {
		env string
		dst *float64
	}{
		{"MAX_DTI_RATIO", &settings.MaxDTIRatio},
		{"DEFAULT_FUN_RATIO", &settings.FunRatio},
		{"GOAL_RESERVE_RATIO", &settings.GoalReserveRatio},
		{"DEFAULT_CPI_RATE", &settings.DefaultCPIRate},
	}
	for _, o := range overrides {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return finance.Settings{}, fmt.Errorf("invalid %s env variable", o.env)
		}
		*o.dst = f
	}

	if err := settings.Validate(); err != nil {
		return finance.Settings{}, fmt.Errorf("invalid calculator settings: %w", err)
	}
	return settings, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s env variable", key)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
