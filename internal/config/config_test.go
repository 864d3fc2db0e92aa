package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ARTZYRA_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessTTL)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 60, cfg.RateLimit.Limit)
	assert.Equal(t, 24, cfg.CancellationWindowHours)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("ARTZYRA_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ARTZYRA_JWT_SECRET")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ARTZYRA_JWT_SECRET", "test-secret")
	t.Setenv("ARTZYRA_APP_ENV", "production")
	t.Setenv("ARTZYRA_CANCELLATION_WINDOW_HOURS", "72")
	t.Setenv("ARTZYRA_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 72, cfg.CancellationWindowHours)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}
