package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/events"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, database.DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, 5*time.Minute, cfg.DatabaseConnMaxLifetime)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, events.DefaultTopic, cfg.KafkaTopic)
	assert.False(t, cfg.KafkaEnabled)
	assert.NotNil(t, cfg.Migration().Embedded)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/shop.db")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_BATCH_TIMEOUT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, database.DriverSQLite, cfg.Database().Driver)
	assert.Equal(t, "/tmp/shop.db", cfg.Database().Path)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Producer().Brokers)
	assert.Equal(t, 250*time.Millisecond, cfg.Producer().BatchTimeout)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("APP_NAME=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("APP_NAME") })

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.AppName)
	assert.Equal(t, "from-dotenv", cfg.Tracing().ServiceName)
}

func TestValidate(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	_, err := Load()
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")

	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("AUTH_ENABLED", "true")
	_, err = Load()
	assert.ErrorContains(t, err, "AUTH_ISSUER_URL")
}
