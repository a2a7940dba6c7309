// Package service provides business logic layer for standings module.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	gameModel "github.com/leaguedesk/standings/internal/game/model"
	"github.com/leaguedesk/standings/internal/metrics"
	"github.com/leaguedesk/standings/internal/standings/engine"
	"github.com/leaguedesk/standings/internal/standings/model"
	"github.com/leaguedesk/standings/internal/standings/repository"
)

// RosterSource provides the teams that seed a league table.
type RosterSource interface {
	Roster(ctx context.Context, leagueID string) ([]model.Team, error)
}

// GameSource provides raw game records of a league.
type GameSource interface {
	RawGames(ctx context.Context, leagueID string) ([]gameModel.RawGame, error)
}

// NameSource provides a team id to display name lookup.
type NameSource interface {
	TeamNames(ctx context.Context, leagueID string) (map[string]string, error)
}

// Sources groups the collaborators a recalculation reads from. Games from all
// sources are passed to the engine as one list, in source order.
type Sources struct {
	Roster RosterSource
	Games  []GameSource
	Names  []NameSource
}

// Service defines the interface for standings business logic operations.
type Service interface {
	// Recalculate recomputes and persists the standings of a league.
	Recalculate(ctx context.Context, leagueID string) (*model.StandingsResponse, error)

	// GetStandings returns the last persisted standings of a league.
	GetStandings(ctx context.Context, leagueID string) (*model.StandingsResponse, error)
}

type service struct {
	repo           repository.Repository
	engine         *engine.Engine
	sources        Sources
	now            func() time.Time
	computeTimeout time.Duration
	metrics        *metrics.Recorder
	logger         *zap.SugaredLogger
}

// Options configures a standings service.
type Options struct {
	// Now is the clock used for status resolution and timestamps.
	Now func() time.Time
	// ComputeTimeout bounds input reads and persistence of one recalculation.
	ComputeTimeout time.Duration
	Metrics        *metrics.Recorder
}

// New creates a new standings service instance.
func New(
	repo repository.Repository,
	eng *engine.Engine,
	sources Sources,
	opts Options,
	logger *zap.SugaredLogger,
) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		repo:           repo,
		engine:         eng,
		sources:        sources,
		now:            opts.Now,
		computeTimeout: opts.ComputeTimeout,
		metrics:        opts.Metrics,
		logger:         logger,
	}
}

// Recalculate recomputes and persists the standings of a league. Input read
// failures abort the run with ErrStandingsUnavailable; nothing is computed
// from partial input.
func (s *service) Recalculate(ctx context.Context, leagueID string) (*model.StandingsResponse, error) {
	start := time.Now()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		s.metrics.ObserveRecalculation(metrics.ResultInvalidLeague, time.Since(start))
		return nil, model.ErrInvalidLeagueID
	}

	if s.computeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.computeTimeout)
		defer cancel()
	}

	teams, raws, names, err := s.fetch(ctx, leagueID)
	if err != nil {
		s.logger.Errorw("standings input unavailable", "league_id", leagueID, "error", err)
		s.metrics.ObserveRecalculation(metrics.ResultInputError, time.Since(start))
		return nil, fmt.Errorf("%w: %w", model.ErrStandingsUnavailable, err)
	}

	now := s.now()
	result := s.engine.Compute(teams, raws, now, names)

	for _, skipped := range result.Skipped {
		s.logger.Debugw("game skipped", "league_id", leagueID, "game_id", skipped.GameID, "reason", skipped.Reason)
		s.metrics.GameSkipped(skipped.Reason)
	}
	s.metrics.ObserveGames(len(result.Games), result.Counted)

	if err := s.repo.Save(ctx, leagueID, result.Rows, now); err != nil {
		var persistErr *model.PersistError
		if errors.As(err, &persistErr) {
			for _, key := range persistErr.FailedKeys {
				s.metrics.PersistFailed(repository.Role(key))
			}
		}
		s.metrics.ObserveRecalculation(metrics.ResultPersistError, time.Since(start))
		return nil, err
	}

	s.metrics.ObserveRecalculation(metrics.ResultSuccess, time.Since(start))
	s.logger.Infow("standings recalculated",
		"league_id", leagueID,
		"teams", len(result.Rows),
		"games_evaluated", len(result.Games),
		"games_counted", result.Counted,
		"games_skipped", len(result.Skipped),
		"duration", time.Since(start),
	)

	return &model.StandingsResponse{
		LeagueID:  leagueID,
		Standings: result.Rows,
		UpdatedAt: now,
		Summary: &model.Summary{
			GamesEvaluated: len(result.Games),
			GamesCounted:   result.Counted,
			GamesSkipped:   len(result.Skipped),
		},
	}, nil
}

// GetStandings returns the last persisted standings of a league.
func (s *service) GetStandings(ctx context.Context, leagueID string) (*model.StandingsResponse, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, model.ErrInvalidLeagueID
	}
	return s.repo.Load(ctx, leagueID)
}

// fetch reads the roster, every game source and every name source
// concurrently. The first failure cancels the remaining reads.
func (s *service) fetch(
	ctx context.Context,
	leagueID string,
) ([]model.Team, []gameModel.RawGame, map[string]string, error) {
	g, gctx := errgroup.WithContext(ctx)

	var teams []model.Team
	g.Go(func() error {
		var err error
		teams, err = s.sources.Roster.Roster(gctx, leagueID)
		if err != nil {
			return fmt.Errorf("roster: %w", err)
		}
		return nil
	})

	gameSets := make([][]gameModel.RawGame, len(s.sources.Games))
	for i, src := range s.sources.Games {
		i, src := i, src
		g.Go(func() error {
			games, err := src.RawGames(gctx, leagueID)
			if err != nil {
				return fmt.Errorf("games: %w", err)
			}
			gameSets[i] = games
			return nil
		})
	}

	nameSets := make([]map[string]string, len(s.sources.Names))
	for i, src := range s.sources.Names {
		i, src := i, src
		g.Go(func() error {
			names, err := src.TeamNames(gctx, leagueID)
			if err != nil {
				return fmt.Errorf("team names: %w", err)
			}
			nameSets[i] = names
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	var raws []gameModel.RawGame
	for _, set := range gameSets {
		raws = append(raws, set...)
	}

	names := make(map[string]string)
	for _, set := range nameSets {
		for id, name := range set {
			if _, exists := names[id]; !exists {
				names[id] = name
			}
		}
	}

	return teams, raws, names, nil
}
