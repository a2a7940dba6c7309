package config

import (
	"fmt"
	"time"
)

// RedisConfig holds connection settings for the key-value store that keeps
// standings and legacy game history.
type RedisConfig struct {
	// Addr is host:port of the Redis server.
	Addr string
	// Password is the AUTH password; empty disables AUTH.
	Password string
	// DB is the logical database index.
	DB int
	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration
	// OperationTimeout bounds individual reads and writes.
	OperationTimeout time.Duration
}

// LoadRedisConfigFromEnv loads Redis configuration from environment variables.
func LoadRedisConfigFromEnv() RedisConfig {
	return RedisConfig{
		Addr:             GetEnv("REDIS_ADDR", "localhost:6379"),
		Password:         GetEnv("REDIS_PASSWORD", ""),
		DB:               GetEnvInt("REDIS_DB", 0),
		DialTimeout:      GetEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		OperationTimeout: GetEnvDuration("REDIS_OPERATION_TIMEOUT", 3*time.Second),
	}
}

// Validate validates Redis configuration.
func (c RedisConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}
	if c.DB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative")
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("DialTimeout must be greater than 0")
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("OperationTimeout must be greater than 0")
	}
	return nil
}
