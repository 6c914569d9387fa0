package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"FATOORA_APP_NAME":                     os.Getenv("FATOORA_APP_NAME"),
		"FATOORA_APP_ENV":                      os.Getenv("FATOORA_APP_ENV"),
		"FATOORA_APP_PORT":                     os.Getenv("FATOORA_APP_PORT"),
		"FATOORA_DATABASE_HOST":                os.Getenv("FATOORA_DATABASE_HOST"),
		"FATOORA_DATABASE_PORT":                os.Getenv("FATOORA_DATABASE_PORT"),
		"FATOORA_DATABASE_USER":                os.Getenv("FATOORA_DATABASE_USER"),
		"FATOORA_DATABASE_PASSWORD":            os.Getenv("FATOORA_DATABASE_PASSWORD"),
		"FATOORA_DATABASE_DBNAME":              os.Getenv("FATOORA_DATABASE_DBNAME"),
		"FATOORA_DATABASE_SSLMODE":             os.Getenv("FATOORA_DATABASE_SSLMODE"),
		"FATOORA_DATABASE_MAX_OPEN_CONNS":      os.Getenv("FATOORA_DATABASE_MAX_OPEN_CONNS"),
		"FATOORA_DATABASE_MAX_IDLE_CONNS":      os.Getenv("FATOORA_DATABASE_MAX_IDLE_CONNS"),
		"FATOORA_BILLING_FISCAL_STAMP_AMOUNT":  os.Getenv("FATOORA_BILLING_FISCAL_STAMP_AMOUNT"),
		"FATOORA_BILLING_REMINDER_CADENCE":     os.Getenv("FATOORA_BILLING_REMINDER_CADENCE"),
		"FATOORA_HTTP_CORS_ALLOW_ORIGINS":      os.Getenv("FATOORA_HTTP_CORS_ALLOW_ORIGINS"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "fatoora-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "fatoora", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	})

	t.Run("loads billing policy defaults", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(20).Equal(cfg.Billing.FiscalStampAmount))
		assert.Equal(t, 7*24*time.Hour, cfg.Billing.ReminderCadence)
		assert.Equal(t, 24*time.Hour, cfg.Billing.IdempotencyTTL)
	})

	t.Run("loads values from environment variables with FATOORA prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("FATOORA_APP_NAME", "test-app")
		os.Setenv("FATOORA_APP_ENV", "testing")
		os.Setenv("FATOORA_APP_PORT", "9000")
		os.Setenv("FATOORA_DATABASE_HOST", "testdb.local")
		os.Setenv("FATOORA_DATABASE_PORT", "5433")
		os.Setenv("FATOORA_DATABASE_USER", "testuser")
		os.Setenv("FATOORA_DATABASE_PASSWORD", "testpass")
		os.Setenv("FATOORA_DATABASE_DBNAME", "testdb")
		os.Setenv("FATOORA_DATABASE_SSLMODE", "require")
		os.Setenv("FATOORA_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("FATOORA_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("FATOORA_BILLING_FISCAL_STAMP_AMOUNT", "25.5")
		os.Setenv("FATOORA_BILLING_REMINDER_CADENCE", "72h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.True(t, decimal.RequireFromString("25.5").Equal(cfg.Billing.FiscalStampAmount))
		assert.Equal(t, 72*time.Hour, cfg.Billing.ReminderCadence)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("FATOORA_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("FATOORA_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("FATOORA_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("FATOORA_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("rejects malformed fiscal stamp amount", func(t *testing.T) {
		clearEnv()
		os.Setenv("FATOORA_BILLING_FISCAL_STAMP_AMOUNT", "twenty")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fiscal_stamp_amount")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"FATOORA_APP_ENV":                 os.Getenv("FATOORA_APP_ENV"),
		"FATOORA_DATABASE_PASSWORD":       os.Getenv("FATOORA_DATABASE_PASSWORD"),
		"FATOORA_DATABASE_SSLMODE":        os.Getenv("FATOORA_DATABASE_SSLMODE"),
		"FATOORA_HTTP_CORS_ALLOW_ORIGINS": os.Getenv("FATOORA_HTTP_CORS_ALLOW_ORIGINS"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("FATOORA_APP_ENV", "production")
		os.Setenv("FATOORA_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("FATOORA_APP_ENV", "production")
		os.Setenv("FATOORA_DATABASE_PASSWORD", "secure-password")
		os.Setenv("FATOORA_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("FATOORA_APP_ENV", "production")
		os.Setenv("FATOORA_DATABASE_PASSWORD", "secure-password")
		os.Setenv("FATOORA_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.NotEmpty(t, dsn)
	})
}
