package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, int64(1), cfg.SystemActorID)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.AutoInvoiceOnDelivery)
	assert.Equal(t, "0 0 * * * *", cfg.OverdueSweepSchedule)
	assert.Equal(t, 100, cfg.OverdueSweepBatchSize)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("AUTO_INVOICE_ON_DELIVERY", "true")
	t.Setenv("OVERDUE_SWEEP_SCHEDULE", "")
	t.Setenv("SYSTEM_ACTOR_ID", "77")

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.AutoInvoiceOnDelivery)
	assert.Empty(t, cfg.OverdueSweepSchedule)
	assert.Equal(t, int64(77), cfg.SystemActorID)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HTTP_PORT=9090\nNODE_ID=5\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("HTTP_PORT")
		_ = os.Unsetenv("NODE_ID")
	})

	cfg, err := LoadConfig(envFile)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, int64(5), cfg.NodeID)
}

func TestLoadConfig_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	require.NoError(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("SYSTEM_ACTOR_ID", "0")

	_, err := LoadConfig("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "SYSTEM_ACTOR_ID")
}

func TestConfig_PostgresDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "freight", DBSslMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=freight sslmode=disable", cfg.PostgresDSN())
}
