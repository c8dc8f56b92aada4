package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		DatabaseURL:            "postgres://localhost/timeclock",
		MaxBodyBytes:           4096,
		Timezone:               "UTC",
		OvertimeThresholdHours: decimal.NewFromInt(40),
		OvertimeMultiplier:     decimal.RequireFromString("1.5"),
		StandardWorkdayHours:   decimal.NewFromInt(8),
		Rates: DeductionRates{
			FederalTax:     decimal.RequireFromString("0.12"),
			StateTax:       decimal.RequireFromString("0.05"),
			SocialSecurity: decimal.RequireFromString("0.062"),
			Medicare:       decimal.RequireFromString("0.0145"),
		},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"missing database":    func(c *Config) { c.DatabaseURL = "" },
		"zero threshold":      func(c *Config) { c.OvertimeThresholdHours = decimal.Zero },
		"multiplier below 1":  func(c *Config) { c.OvertimeMultiplier = decimal.RequireFromString("0.9") },
		"negative rate":       func(c *Config) { c.Rates.StateTax = decimal.RequireFromString("-0.01") },
		"rates above 100%":    func(c *Config) { c.Rates.FederalTax = decimal.RequireFromString("0.95") },
		"bad timezone":        func(c *Config) { c.Timezone = "Mars/Olympus" },
		"prod without jwt":    func(c *Config) { c.Environment = "production" },
		"workday too precise": func(c *Config) { c.StandardWorkdayHours = decimal.RequireFromString("7.12345") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRatesFileOverridesPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.toml")
	require.NoError(t, os.WriteFile(path, []byte("[payroll]\nfederal_tax = \"0.10\"\nmedicare = \"0.02\"\n"), 0o600))

	base := validConfig().Rates
	rates, err := LoadRatesFile(path, base)
	require.NoError(t, err)
	assert.True(t, rates.FederalTax.Equal(decimal.RequireFromString("0.10")))
	assert.True(t, rates.Medicare.Equal(decimal.RequireFromString("0.02")))
	assert.True(t, rates.StateTax.Equal(base.StateTax))
}

func TestLoadRatesFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.toml")
	require.NoError(t, os.WriteFile(path, []byte("[payroll]\nstate_tax = \"five percent\"\n"), 0o600))

	_, err := LoadRatesFile(path, validConfig().Rates)
	assert.Error(t, err)
}

func TestGetEnvDecimalFallsBack(t *testing.T) {
	t.Setenv("TEST_DECIMAL", "not-a-number")
	assert.True(t, getEnvDecimal("TEST_DECIMAL", decimal.NewFromInt(7)).Equal(decimal.NewFromInt(7)))
	t.Setenv("TEST_DECIMAL", "2.25")
	assert.True(t, getEnvDecimal("TEST_DECIMAL", decimal.Zero).Equal(decimal.RequireFromString("2.25")))
}
