package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "HTTP_ADDR", "STORAGE_MODE", "MONGO_URI", "MONGO_DB", "KAFKA_BROKERS", "KAFKA_TOPIC_PREFIX",
	"IDEMP_TTL", "OUTBOX_POLL_INTERVAL", "RETRY_BACKOFF", "PRICING_TABLES", "RATE_CARD_S3_KEY",
	"S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_USE_SSL", "ITEMS_FIXTURES",
}

// clearEnv unsets every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StorageMemory, cfg.StorageMode)
	assert.Equal(t, "rentwear", cfg.MongoDB)
	assert.Equal(t, 168*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	assert.Equal(t, []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}, cfg.RetryBackoff)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.RateCardFromS3())
	assert.False(t, cfg.S3UseSSL)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_MODE", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092")
	t.Setenv("RETRY_BACKOFF", "2s, 10s")
	t.Setenv("S3_USE_SSL", "yes")
	t.Setenv("RATE_CARD_S3_KEY", "pricing/rate-card.json")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StorageMongo, cfg.StorageMode)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, []time.Duration{2 * time.Second, 10 * time.Second}, cfg.RetryBackoff)
	assert.True(t, cfg.S3UseSSL)
	assert.True(t, cfg.RateCardFromS3())
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown storage", "STORAGE_MODE", "postgres"},
		{"mongo without uri", "STORAGE_MODE", "mongo"},
		{"bad ttl", "IDEMP_TTL", "a week"},
		{"bad poll interval", "OUTBOX_POLL_INTERVAL", "fast"},
		{"bad backoff", "RETRY_BACKOFF", "1s,later"},
		{"bad bool", "S3_USE_SSL", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_ADDR=:9090\nMONGO_DB=rentals\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "rentals", cfg.MongoDB)
}

func TestLoadIgnoresMissingEnvFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}
