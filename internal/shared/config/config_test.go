package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "hrms", cfg.Database.Name)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, 3*time.Second, cfg.Kafka.PollInterval)
	assert.Equal(t, 168*time.Hour, cfg.Kafka.Retention)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_HOST", "db")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKER", "kafka:9092")
	t.Setenv("DEFAULT_EMPLOYEE_PASSWORD", "changeme")
	t.Setenv("LOGIN_RATE_PER_SECOND", "0.5")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("HTTP_WRITE_TIMEOUT", "30s")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "kafka:9092", cfg.Kafka.Broker)
	assert.Equal(t, "changeme", cfg.Security.DefaultEmployeePassword)
	assert.Equal(t, 0.5, cfg.Security.LoginRatePerSecond)
	assert.True(t, cfg.SeedDemoData)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("BCRYPT_COST", "high")

	_, err := Load()

	assert.Error(t, err)
}
