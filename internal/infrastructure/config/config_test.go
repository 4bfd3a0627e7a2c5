package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"SPICE_APP_NAME":                          os.Getenv("SPICE_APP_NAME"),
		"SPICE_APP_ENV":                           os.Getenv("SPICE_APP_ENV"),
		"SPICE_APP_PORT":                          os.Getenv("SPICE_APP_PORT"),
		"SPICE_DATABASE_HOST":                     os.Getenv("SPICE_DATABASE_HOST"),
		"SPICE_DATABASE_PASSWORD":                 os.Getenv("SPICE_DATABASE_PASSWORD"),
		"SPICE_DATABASE_MAX_IDLE_CONNS":           os.Getenv("SPICE_DATABASE_MAX_IDLE_CONNS"),
		"SPICE_DATABASE_MAX_OPEN_CONNS":           os.Getenv("SPICE_DATABASE_MAX_OPEN_CONNS"),
		"SPICE_JWT_SECRET":                        os.Getenv("SPICE_JWT_SECRET"),
		"SPICE_PURCHASING_DEFAULT_GST_PERCENTAGE": os.Getenv("SPICE_PURCHASING_DEFAULT_GST_PERCENTAGE"),
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

		assert.Equal(t, "spicetrade-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "spicetrade", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, float64(18), cfg.Purchasing.DefaultGSTPercentage)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("SPICE_APP_PORT", "9000")
		os.Setenv("SPICE_DATABASE_HOST", "db.internal")
		os.Setenv("SPICE_PURCHASING_DEFAULT_GST_PERCENTAGE", "5")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, float64(5), cfg.Purchasing.DefaultGSTPercentage)
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		clearEnv()
		os.Setenv("SPICE_DATABASE_MAX_OPEN_CONNS", "5")
		os.Setenv("SPICE_DATABASE_MAX_IDLE_CONNS", "10")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("SPICE_APP_ENV", "production")
		os.Setenv("SPICE_DATABASE_PASSWORD", "secret")
		os.Setenv("SPICE_JWT_SECRET", "short")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "spicetrade",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password survive URL escaping
	assert.Contains(t, dsn, "p%40ss%2Fword")
}

func TestRedisConfigAddr(t *testing.T) {
	cfg := RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", cfg.Addr())
}
