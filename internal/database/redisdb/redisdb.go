// Package redisdb opens the Redis client that stores standings and game history.
package redisdb

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/leaguedesk/standings/internal/config"
	"github.com/leaguedesk/standings/pkg/retry"
)

// Options builds client options from configuration.
func Options(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.OperationTimeout,
		WriteTimeout: cfg.OperationTimeout,
	}
}

// Open creates a client and waits until the server answers PING.
func Open(ctx context.Context, cfg config.RedisConfig, retryCfg retry.Config, logger *zap.SugaredLogger) (*redis.Client, error) {
	client := redis.NewClient(Options(cfg))
	attempts := 0

	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warnw("redis ping failed, retrying",
			"attempt", attempt,
			"addr", cfg.Addr,
			"retry_in", delay,
			"error", err,
		)
	}
	err := retry.Do(ctx, retryCfg, func() error {
		attempts++
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Infow("redis connected", "addr", cfg.Addr, "db", cfg.DB, "attempts", attempts)
	return client, nil
}
