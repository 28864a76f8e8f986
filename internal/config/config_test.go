package config_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 5, cfg.DB.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.DB.ConnectTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoad_PoolOverrides(t *testing.T) {
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "30s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Second, cfg.DB.ConnMaxIdleTime)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_SECRET", "placeholder")
	require.NoError(t, os.Unsetenv("AUTH_SECRET"))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestConfig_ConnectionStrings(t *testing.T) {
	var cfg config.Config
	cfg.DB.User = "app"
	cfg.DB.Password = "pw"
	cfg.DB.Host = "db"
	cfg.DB.Port = 5433
	cfg.DB.Name = "ledger"

	assert.Equal(t, "postgres://app:pw@db:5433/ledger?sslmode=disable", cfg.ConnectionString())
	assert.Equal(t, "pgx5://app:pw@db:5433/ledger?sslmode=disable", cfg.MigrationURL())
}

func TestConfig_Level(t *testing.T) {
	var cfg config.Config

	cfg.App.LogLevel = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	cfg.App.LogLevel = "loud"
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}
