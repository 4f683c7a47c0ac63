package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "vouch.verification.updated", cfg.Kafka.Topic)
	assert.Equal(t, 12*time.Hour, cfg.NonceTTL)
	assert.Equal(t, 5*time.Minute, cfg.BadgeCacheTTL)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.Redis.URL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("VOUCH_ADDR", ":9999")
	t.Setenv("VOUCH_NONCE_TTL", "30m")
	t.Setenv("VOUCH_BADGE_CACHE_TTL", "10s")
	t.Setenv("VOUCH_KAFKA_TOPIC", "verification.test")
	t.Setenv("VOUCH_DB_MAX_OPEN_CONNS", "50")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 30*time.Minute, cfg.NonceTTL)
	assert.Equal(t, 10*time.Second, cfg.BadgeCacheTTL)
	assert.Equal(t, "verification.test", cfg.Kafka.Topic)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
}

func TestFromEnv_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("VOUCH_NONCE_TTL", "soon")
	t.Setenv("VOUCH_DB_MAX_OPEN_CONNS", "many")

	cfg := FromEnv()

	assert.Equal(t, 12*time.Hour, cfg.NonceTTL)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}
