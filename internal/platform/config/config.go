package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration for the board service.
type Server struct {
	Addr              string
	DatabaseURL       string
	RedisURL          string
	KafkaBrokers      string
	SessionSigningKey string
	SessionTTL        time.Duration
	PreviewFeedLimit  int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("TEAMUP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	sessionKey := os.Getenv("SESSION_SIGNING_KEY")
	if sessionKey == "" {
		// Use a default for development - should be overridden in production
		sessionKey = "dev-secret-key-change-in-production"
	}

	ttl := 30 * 24 * time.Hour
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}

	previewLimit := 6
	if v := os.Getenv("PREVIEW_FEED_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			previewLimit = n
		}
	}

	return Server{
		Addr:              addr,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		KafkaBrokers:      os.Getenv("KAFKA_BROKERS"),
		SessionSigningKey: sessionKey,
		SessionTTL:        ttl,
		PreviewFeedLimit:  previewLimit,
	}
}

// RedisConfig captures connection tuning for the session identity store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisFromEnv builds a RedisConfig with defaults sized for a small service.
func RedisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
