// Package main provides the entry point for the standings HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leaguedesk/standings/internal/config"
	"github.com/leaguedesk/standings/internal/database/database"
	"github.com/leaguedesk/standings/internal/database/migrate"
	"github.com/leaguedesk/standings/internal/database/redisdb"
	"github.com/leaguedesk/standings/internal/game/status"
	"github.com/leaguedesk/standings/internal/health"
	historyRepository "github.com/leaguedesk/standings/internal/history/repository"
	leagueRouter "github.com/leaguedesk/standings/internal/league/router"
	"github.com/leaguedesk/standings/internal/metrics"
	"github.com/leaguedesk/standings/internal/middleware"
	"github.com/leaguedesk/standings/internal/standings/engine"
	standingsRepository "github.com/leaguedesk/standings/internal/standings/repository"
	standingsRouter "github.com/leaguedesk/standings/internal/standings/router"
	standingsService "github.com/leaguedesk/standings/internal/standings/service"
	"github.com/leaguedesk/standings/pkg/logger"
	"github.com/leaguedesk/standings/pkg/retry"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Errorw("server stopped with error", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database migrations applied")

	redisClient, err := redisdb.Open(ctx, cfg.Redis, retry.RedisConfig(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warnw("failed to close redis client", "error", err)
		}
	}()

	gin.SetMode(cfg.GinMode)
	recorder := metrics.New()
	resolver := status.New(cfg.Standings.GracePeriod)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.Metrics(recorder),
	)

	leagueSvc := leagueRouter.RegisterRoutes(r, db, resolver, time.Now, log)

	sources := standingsService.Sources{
		Roster: leagueSvc,
		Games:  []standingsService.GameSource{leagueSvc},
	}
	if cfg.Standings.HistoryEnabled {
		history := historyRepository.New(redisClient, log)
		sources.Games = append(sources.Games, history)
		sources.Names = append(sources.Names, history)
	}

	standingsSvc := standingsService.New(
		standingsRepository.New(redisClient, cfg.Standings.BackupEnabled, log),
		engine.New(resolver),
		sources,
		standingsService.Options{
			Now:            time.Now,
			ComputeTimeout: cfg.Standings.ComputeTimeout,
			Metrics:        recorder,
		},
		log,
	)
	standingsRouter.RegisterRoutes(r, standingsSvc, log)

	r.GET("/health", health.New(db, redisClient, log).Check)
	r.GET("/metrics", gin.WrapH(recorder.Handler()))

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("server starting",
			"addr", srv.Addr,
			"gin_mode", cfg.GinMode,
			"backup_enabled", cfg.Standings.BackupEnabled,
			"history_enabled", cfg.Standings.HistoryEnabled,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("server stopped")
		return nil
	})

	return g.Wait()
}
