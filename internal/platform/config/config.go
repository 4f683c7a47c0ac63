package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures service level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	Database      DatabaseConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	NonceTTL      time.Duration
	BadgeCacheTTL time.Duration
}

// DatabaseConfig holds PostgreSQL connection configuration.
// An empty URL means the in-memory stores are used.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis connection configuration.
// An empty URL means Redis-backed components fall back to in-memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds event producer configuration.
// Empty brokers disable event publishing (noop producer).
type KafkaConfig struct {
	Brokers         string
	Topic           string
	Acks            string
	Retries         int
	DeliveryTimeout time.Duration
}

// NonceTTL matches the host platform's anti-forgery token validity window.
var NonceTTL = 12 * time.Hour

// BadgeCacheTTL bounds staleness of the listing badge after an admin edit.
var BadgeCacheTTL = 5 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("VOUCH_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("VOUCH_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	nonceTTL := NonceTTL
	if d := durationEnv("VOUCH_NONCE_TTL"); d > 0 {
		nonceTTL = d
	}

	badgeTTL := BadgeCacheTTL
	if d := durationEnv("VOUCH_BADGE_CACHE_TTL"); d > 0 {
		badgeTTL = d
	}

	topic := os.Getenv("VOUCH_KAFKA_TOPIC")
	if topic == "" {
		topic = "vouch.verification.updated"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		Database: DatabaseConfig{
			URL:             os.Getenv("VOUCH_DATABASE_URL"),
			MaxOpenConns:    intEnv("VOUCH_DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    intEnv("VOUCH_DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("VOUCH_REDIS_URL"),
			PoolSize:     intEnv("VOUCH_REDIS_POOL_SIZE", 10),
			MinIdleConns: intEnv("VOUCH_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:         os.Getenv("VOUCH_KAFKA_BROKERS"),
			Topic:           topic,
			Acks:            os.Getenv("VOUCH_KAFKA_ACKS"),
			Retries:         intEnv("VOUCH_KAFKA_RETRIES", 3),
			DeliveryTimeout: 10 * time.Second,
		},
		NonceTTL:      nonceTTL,
		BadgeCacheTTL: badgeTTL,
	}
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func durationEnv(key string) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 0
}
