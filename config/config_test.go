package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"APP_PORT", "APP_ENV", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "SESSION_TTL_HOURS",
		"LOGIN_RATE", "LOGIN_BURST",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "studentscope", cfg.DBName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, float64(5), cfg.LoginRate)
	assert.Equal(t, 10, cfg.LoginBurst)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SESSION_TTL_HOURS", "8")
	t.Setenv("LOGIN_BURST", "3")

	cfg := Load()
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 8*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.LoginBurst)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "localhost", DBPort: "5432", DBUser: "postgres",
		DBPassword: "secret", DBName: "studentscope", DBSSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost user=postgres password=secret dbname=studentscope port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN(),
	)
}

func TestGetIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "soon")
	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}
