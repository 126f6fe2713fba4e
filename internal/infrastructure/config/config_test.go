package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"PYASTI_APP_NAME":                os.Getenv("PYASTI_APP_NAME"),
		"PYASTI_APP_ENV":                 os.Getenv("PYASTI_APP_ENV"),
		"PYASTI_APP_PORT":                os.Getenv("PYASTI_APP_PORT"),
		"PYASTI_DATABASE_HOST":           os.Getenv("PYASTI_DATABASE_HOST"),
		"PYASTI_DATABASE_PORT":           os.Getenv("PYASTI_DATABASE_PORT"),
		"PYASTI_DATABASE_USER":           os.Getenv("PYASTI_DATABASE_USER"),
		"PYASTI_DATABASE_PASSWORD":       os.Getenv("PYASTI_DATABASE_PASSWORD"),
		"PYASTI_DATABASE_DBNAME":         os.Getenv("PYASTI_DATABASE_DBNAME"),
		"PYASTI_DATABASE_SSLMODE":        os.Getenv("PYASTI_DATABASE_SSLMODE"),
		"PYASTI_DATABASE_MAX_OPEN_CONNS": os.Getenv("PYASTI_DATABASE_MAX_OPEN_CONNS"),
		"PYASTI_DATABASE_MAX_IDLE_CONNS": os.Getenv("PYASTI_DATABASE_MAX_IDLE_CONNS"),
		"PYASTI_JWT_SECRET":              os.Getenv("PYASTI_JWT_SECRET"),
		"PYASTI_PAYMENT_CLIENT_ID":       os.Getenv("PYASTI_PAYMENT_CLIENT_ID"),
		"PYASTI_PAYMENT_CLIENT_SECRET":   os.Getenv("PYASTI_PAYMENT_CLIENT_SECRET"),
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

		assert.Equal(t, "pyasti-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "pyasti", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "USD", cfg.Payment.Currency)
		assert.Equal(t, 587, cfg.Mail.Port)
	})

	t.Run("loads values from environment variables with PYASTI prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("PYASTI_APP_NAME", "test-app")
		os.Setenv("PYASTI_APP_PORT", "9000")
		os.Setenv("PYASTI_DATABASE_HOST", "testdb.local")
		os.Setenv("PYASTI_DATABASE_PORT", "5433")
		os.Setenv("PYASTI_DATABASE_PASSWORD", "testpass")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("PYASTI_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("PYASTI_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("PYASTI_APP_ENV", "production")
		os.Setenv("PYASTI_DATABASE_PASSWORD", "secure-password")
		os.Setenv("PYASTI_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires long jwt.secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("PYASTI_APP_ENV", "production")
		os.Setenv("PYASTI_JWT_SECRET", "short")
		os.Setenv("PYASTI_DATABASE_PASSWORD", "secure-password")
		os.Setenv("PYASTI_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("PYASTI_APP_ENV", "production")
		os.Setenv("PYASTI_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("PYASTI_DATABASE_PASSWORD", "secure-password")
		os.Setenv("PYASTI_DATABASE_SSLMODE", "require")
		os.Setenv("PYASTI_PAYMENT_CLIENT_ID", "client-id")
		os.Setenv("PYASTI_PAYMENT_CLIENT_SECRET", "client-secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "user",
		Password: "pass@word#123",
		DBName:   "pyasti",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "pyasti")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Contains(t, dsn, "pass%40word%23123")
}
