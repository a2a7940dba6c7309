// Package database provides database connection management for PostgreSQL.
package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/leaguedesk/standings/internal/database/config"
	"github.com/leaguedesk/standings/internal/database/pool"
	"github.com/leaguedesk/standings/pkg/retry"
)

// Options controls how a connection is opened.
type Options struct {
	Retry retry.Config
	Pool  pool.Config
}

// OptionsFromEnv loads retry and pool settings from the environment.
func OptionsFromEnv() Options {
	return Options{
		Retry: config.LoadRetryConfigFromEnv(),
		Pool:  pool.LoadPoolConfigFromEnv(),
	}
}

// New opens a connection using environment configuration.
func New(ctx context.Context, logger *zap.SugaredLogger) (*gorm.DB, error) {
	return Open(ctx, config.LoadConfigFromEnv(), OptionsFromEnv(), logger)
}

// Open connects to PostgreSQL, retrying transient failures, and configures the pool.
func Open(ctx context.Context, cfg config.Config, opts Options, logger *zap.SugaredLogger) (*gorm.DB, error) {
	dsn := config.BuildDSN(cfg)
	attempt := 0

	db, err := retry.DoWithResult(ctx, opts.Retry, func() (*gorm.DB, error) {
		attempt++
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			logger.Warnw("database connection attempt failed",
				"attempt", attempt,
				"host", cfg.Host,
				"error", config.SanitizeError(err, cfg),
			)
		}
		return db, err
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, opts.Pool); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	logger.Infow("database connected", "host", cfg.Host, "db", cfg.DBName, "attempts", attempt)
	return db, nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
