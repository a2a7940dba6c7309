// Package repository provides data access layer for league module.
package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	leagueModel "github.com/leaguedesk/standings/internal/league/model"
)

// Repository defines the interface for roster and game data access operations.
type Repository interface {
	// CreateTeam adds a team to a league roster.
	CreateTeam(ctx context.Context, team *leagueModel.Team) error

	// ListTeams returns a league roster ordered by creation.
	ListTeams(ctx context.Context, leagueID string) ([]leagueModel.Team, error)

	// CreateGame stores a new game.
	CreateGame(ctx context.Context, game *leagueModel.Game) error

	// GetGame finds a game of a league by id.
	GetGame(ctx context.Context, leagueID, gameID string) (*leagueModel.Game, error)

	// UpdateResult sets the scores and status of a game.
	UpdateResult(ctx context.Context, leagueID, gameID string, homeScore, awayScore int, status string) (*leagueModel.Game, error)

	// ListGames returns all games of a league ordered by start time.
	ListGames(ctx context.Context, leagueID string) ([]leagueModel.Game, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new league repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// CreateTeam adds a team to a league roster.
func (r *repository) CreateTeam(ctx context.Context, team *leagueModel.Team) error {
	err := r.db.WithContext(ctx).Create(team).Error
	if err != nil {
		if isDuplicateError(err) {
			return leagueModel.ErrTeamExists
		}
		r.logger.Errorw("CreateTeam database error", "league_id", team.LeagueID, "error", err)
		return err
	}
	return nil
}

// ListTeams returns a league roster ordered by creation.
func (r *repository) ListTeams(ctx context.Context, leagueID string) ([]leagueModel.Team, error) {
	var teams []leagueModel.Team
	err := r.db.WithContext(ctx).
		Where("league_id = ?", leagueID).
		Order("created_at ASC, team_id ASC").
		Find(&teams).Error
	if err != nil {
		r.logger.Errorw("ListTeams database error", "league_id", leagueID, "error", err)
		return nil, err
	}
	if teams == nil {
		teams = []leagueModel.Team{}
	}
	return teams, nil
}

// CreateGame stores a new game.
func (r *repository) CreateGame(ctx context.Context, game *leagueModel.Game) error {
	err := r.db.WithContext(ctx).Create(game).Error
	if err != nil {
		if isDuplicateError(err) {
			return leagueModel.ErrGameExists
		}
		r.logger.Errorw("CreateGame database error", "league_id", game.LeagueID, "error", err)
		return err
	}
	return nil
}

// GetGame finds a game of a league by id.
func (r *repository) GetGame(ctx context.Context, leagueID, gameID string) (*leagueModel.Game, error) {
	var game leagueModel.Game
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND game_id = ?", leagueID, gameID).
		First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leagueModel.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

// UpdateResult sets the scores and status of a game.
func (r *repository) UpdateResult(
	ctx context.Context,
	leagueID, gameID string,
	homeScore, awayScore int,
	status string,
) (*leagueModel.Game, error) {
	var updated *leagueModel.Game
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &repository{db: tx, logger: r.logger}
		game, err := txRepo.GetGame(ctx, leagueID, gameID)
		if err != nil {
			return err
		}

		game.HomeScore = &homeScore
		game.AwayScore = &awayScore
		game.Status = status
		if err := tx.Save(game).Error; err != nil {
			return err
		}
		updated = game
		return nil
	})
	if err != nil {
		if !errors.Is(err, leagueModel.ErrGameNotFound) {
			r.logger.Errorw("UpdateResult database error", "league_id", leagueID, "game_id", gameID, "error", err)
		}
		return nil, err
	}
	return updated, nil
}

// ListGames returns all games of a league ordered by start time.
func (r *repository) ListGames(ctx context.Context, leagueID string) ([]leagueModel.Game, error) {
	var games []leagueModel.Game
	err := r.db.WithContext(ctx).
		Where("league_id = ?", leagueID).
		Order("date_time_iso ASC, game_id ASC").
		Find(&games).Error
	if err != nil {
		r.logger.Errorw("ListGames database error", "league_id", leagueID, "error", err)
		return nil, err
	}
	if games == nil {
		games = []leagueModel.Game{}
	}
	return games, nil
}

// isDuplicateError checks for unique constraint violations from PostgreSQL or SQLite.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
