package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// hourPlaces matches the scale of every hours column in the schema.
const hourPlaces = 4

type Config struct {
	Addr                   string
	DatabaseURL            string
	JWTSecret              string
	Environment            string
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	LogFile                string
	LogLevel               string
	MaxBodyBytes           int64
	RateLimit              string
	MetricsEnabled         bool
	RunMigrations          bool
	SeedEmployeesFile      string
	Timezone               string
	ExportDir              string
	ReadyTimeout           time.Duration
	OvertimeThresholdHours decimal.Decimal
	OvertimeMultiplier     decimal.Decimal
	StandardWorkdayHours   decimal.Decimal
	Rates                  DeductionRates
}

// DeductionRates are flat fractions of gross pay.
type DeductionRates struct {
	FederalTax     decimal.Decimal `toml:"federal_tax"`
	StateTax       decimal.Decimal `toml:"state_tax"`
	SocialSecurity decimal.Decimal `toml:"social_security"`
	Medicare       decimal.Decimal `toml:"medicare"`
}

func (r DeductionRates) Total() decimal.Decimal {
	return r.FederalTax.Add(r.StateTax).Add(r.SocialSecurity).Add(r.Medicare)
}

func Load() Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := Config{
		Addr:                   getEnv("APP_ADDR", ":8080"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		Environment:            getEnv("APP_ENV", "development"),
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		LogFile:                getEnv("LOG_FILE", "timeclock.log"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		MaxBodyBytes:           int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimit:              getEnv("RATE_LIMIT", "120-M"),
		MetricsEnabled:         getEnvBool("METRICS_ENABLED", true),
		RunMigrations:          getEnvBool("RUN_MIGRATIONS", true),
		SeedEmployeesFile:      getEnv("SEED_EMPLOYEES_FILE", ""),
		Timezone:               getEnv("TIMEZONE", "UTC"),
		ExportDir:              getEnv("EXPORT_DIR", "storage/exports"),
		ReadyTimeout:           getEnvDuration("READY_TIMEOUT", 2*time.Second),
		OvertimeThresholdHours: getEnvDecimal("OVERTIME_THRESHOLD_HOURS", decimal.NewFromInt(40)),
		OvertimeMultiplier:     getEnvDecimal("OVERTIME_MULTIPLIER", decimal.RequireFromString("1.5")),
		StandardWorkdayHours:   getEnvDecimal("STANDARD_WORKDAY_HOURS", decimal.NewFromInt(8)),
		Rates: DeductionRates{
			FederalTax:     getEnvDecimal("FEDERAL_TAX_RATE", decimal.RequireFromString("0.12")),
			StateTax:       getEnvDecimal("STATE_TAX_RATE", decimal.RequireFromString("0.05")),
			SocialSecurity: getEnvDecimal("SOCIAL_SECURITY_RATE", decimal.RequireFromString("0.062")),
			Medicare:       getEnvDecimal("MEDICARE_RATE", decimal.RequireFromString("0.0145")),
		},
	}

	if path := getEnv("PAYROLL_RATES_FILE", ""); path != "" {
		rates, err := LoadRatesFile(path, cfg.Rates)
		if err != nil {
			slog.Warn("payroll rates file ignored", "path", path, "err", err)
		} else {
			cfg.Rates = rates
		}
	}
	return cfg
}

type ratesFile struct {
	Payroll struct {
		FederalTax     string `toml:"federal_tax"`
		StateTax       string `toml:"state_tax"`
		SocialSecurity string `toml:"social_security"`
		Medicare       string `toml:"medicare"`
	} `toml:"payroll"`
}

// LoadRatesFile reads a [payroll] table from a TOML file. Keys that are absent keep
// the value from base.
func LoadRatesFile(path string, base DeductionRates) (DeductionRates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	var file ratesFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return base, fmt.Errorf("decode %s: %w", path, err)
	}

	out := base
	for _, field := range []struct {
		raw  string
		dest *decimal.Decimal
		name string
	}{
		{file.Payroll.FederalTax, &out.FederalTax, "federal_tax"},
		{file.Payroll.StateTax, &out.StateTax, "state_tax"},
		{file.Payroll.SocialSecurity, &out.SocialSecurity, "social_security"},
		{file.Payroll.Medicare, &out.Medicare, "medicare"},
	} {
		if strings.TrimSpace(field.raw) == "" {
			continue
		}
		value, err := decimal.NewFromString(strings.TrimSpace(field.raw))
		if err != nil {
			return base, fmt.Errorf("invalid %s: %w", field.name, err)
		}
		*field.dest = value
	}
	return out, nil
}

func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}
	if !c.OvertimeThresholdHours.IsPositive() {
		return fmt.Errorf("OVERTIME_THRESHOLD_HOURS must be positive")
	}
	if c.OvertimeMultiplier.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("OVERTIME_MULTIPLIER must be at least 1")
	}
	if !c.StandardWorkdayHours.IsPositive() {
		return fmt.Errorf("STANDARD_WORKDAY_HOURS must be positive")
	}
	if !c.StandardWorkdayHours.Equal(c.StandardWorkdayHours.Round(hourPlaces)) {
		return fmt.Errorf("STANDARD_WORKDAY_HOURS allows at most %d decimal places", hourPlaces)
	}
	for name, rate := range map[string]decimal.Decimal{
		"FEDERAL_TAX_RATE":     c.Rates.FederalTax,
		"STATE_TAX_RATE":       c.Rates.StateTax,
		"SOCIAL_SECURITY_RATE": c.Rates.SocialSecurity,
		"MEDICARE_RATE":        c.Rates.Medicare,
	} {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	if c.Rates.Total().GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("combined deduction rates must not exceed 1")
	}
	return nil
}
