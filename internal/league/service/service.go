// Package service provides business logic layer for league module.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	gameModel "github.com/leaguedesk/standings/internal/game/model"
	"github.com/leaguedesk/standings/internal/game/status"
	leagueModel "github.com/leaguedesk/standings/internal/league/model"
	"github.com/leaguedesk/standings/internal/league/repository"
	standingsModel "github.com/leaguedesk/standings/internal/standings/model"
)

// Service defines the interface for roster and game business logic operations.
type Service interface {
	// AddTeam adds a team to a league roster.
	AddTeam(ctx context.Context, leagueID string, req *leagueModel.AddTeamRequest) (*leagueModel.TeamResponse, error)

	// ListTeams returns a league roster.
	ListTeams(ctx context.Context, leagueID string) (*leagueModel.TeamsResponse, error)

	// AddGame stores a manually entered game and returns it with its canonical status.
	AddGame(ctx context.Context, leagueID string, req *leagueModel.AddGameRequest) (*gameModel.Game, error)

	// RecordResult stores the result of an existing game.
	RecordResult(ctx context.Context, leagueID, gameID string, req *leagueModel.RecordResultRequest) (*gameModel.Game, error)

	// ListGames returns a league's games with their canonical status.
	ListGames(ctx context.Context, leagueID string) (*leagueModel.GamesResponse, error)

	// Roster returns the teams that seed a standings table.
	Roster(ctx context.Context, leagueID string) ([]standingsModel.Team, error)

	// RawGames returns stored games in the shape the status resolver reads.
	RawGames(ctx context.Context, leagueID string) ([]gameModel.RawGame, error)
}

type service struct {
	repo     repository.Repository
	resolver *status.Resolver
	now      func() time.Time
	logger   *zap.SugaredLogger
}

// New creates a new league service instance. now is the clock used to derive
// canonical game statuses.
func New(
	repo repository.Repository,
	resolver *status.Resolver,
	now func() time.Time,
	logger *zap.SugaredLogger,
) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     repo,
		resolver: resolver,
		now:      now,
		logger:   logger,
	}
}

// AddTeam adds a team to a league roster. A team id is generated when none is given.
func (s *service) AddTeam(
	ctx context.Context,
	leagueID string,
	req *leagueModel.AddTeamRequest,
) (*leagueModel.TeamResponse, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, leagueModel.ErrInvalidLeagueID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, leagueModel.ErrInvalidTeamName
	}
	teamID := strings.TrimSpace(req.TeamID)
	if teamID == "" {
		teamID = uuid.NewString()
	}

	team := &leagueModel.Team{LeagueID: leagueID, TeamID: teamID, Name: name}
	if err := s.repo.CreateTeam(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Infow("team added", "league_id", leagueID, "team_id", teamID)
	return &leagueModel.TeamResponse{TeamID: team.TeamID, Name: team.Name}, nil
}

// ListTeams returns a league roster.
func (s *service) ListTeams(ctx context.Context, leagueID string) (*leagueModel.TeamsResponse, error) {
	if strings.TrimSpace(leagueID) == "" {
		return nil, leagueModel.ErrInvalidLeagueID
	}
	teams, err := s.repo.ListTeams(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	resp := &leagueModel.TeamsResponse{LeagueID: leagueID, Teams: make([]leagueModel.TeamResponse, 0, len(teams))}
	for _, t := range teams {
		resp.Teams = append(resp.Teams, leagueModel.TeamResponse{TeamID: t.TeamID, Name: t.Name})
	}
	return resp, nil
}

// AddGame stores a manually entered game. Games without an id get the same
// derived id the resolver would assign, so re-entering a game is detected.
func (s *service) AddGame(
	ctx context.Context,
	leagueID string,
	req *leagueModel.AddGameRequest,
) (*gameModel.Game, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, leagueModel.ErrInvalidLeagueID
	}
	if err := validateGame(req); err != nil {
		return nil, err
	}

	names, err := s.teamNames(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	game := &leagueModel.Game{
		GameID:       strings.TrimSpace(req.GameID),
		LeagueID:     leagueID,
		DateTimeISO:  optional(req.DateTimeISO),
		Location:     optional(req.Location),
		HomeTeamID:   optional(req.HomeTeamID),
		AwayTeamID:   optional(req.AwayTeamID),
		HomeTeamName: optional(req.HomeTeamName),
		AwayTeamName: optional(req.AwayTeamName),
		HomeScore:    req.HomeScore,
		AwayScore:    req.AwayScore,
		Status:       strings.TrimSpace(req.Status),
		Source:       leagueModel.SourceManual,
	}
	if game.Status == "" {
		game.Status = string(gameModel.StatusScheduled)
	}
	if game.GameID == "" {
		// Resolve first so the derived id uses the same display names.
		resolved := s.resolver.Resolve(game.Raw(), s.now(), names)
		game.GameID = resolved.ID
	}

	if err := s.repo.CreateGame(ctx, game); err != nil {
		return nil, err
	}

	resolved := s.resolver.Resolve(game.Raw(), s.now(), names)
	s.logger.Infow("game added", "league_id", leagueID, "game_id", resolved.ID, "status", resolved.Status)
	return &resolved, nil
}

// RecordResult stores the result of an existing game. The status defaults to final.
func (s *service) RecordResult(
	ctx context.Context,
	leagueID, gameID string,
	req *leagueModel.RecordResultRequest,
) (*gameModel.Game, error) {
	if strings.TrimSpace(leagueID) == "" {
		return nil, leagueModel.ErrInvalidLeagueID
	}
	if req.HomeScore == nil || req.AwayScore == nil || *req.HomeScore < 0 || *req.AwayScore < 0 {
		return nil, leagueModel.ErrInvalidScore
	}
	st := strings.TrimSpace(req.Status)
	if st == "" {
		st = string(gameModel.StatusFinal)
	}

	game, err := s.repo.UpdateResult(ctx, leagueID, gameID, *req.HomeScore, *req.AwayScore, st)
	if err != nil {
		return nil, err
	}

	names, err := s.teamNames(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	resolved := s.resolver.Resolve(game.Raw(), s.now(), names)
	s.logger.Infow("game result recorded",
		"league_id", leagueID,
		"game_id", gameID,
		"home_score", *req.HomeScore,
		"away_score", *req.AwayScore,
		"status", resolved.Status,
	)
	return &resolved, nil
}

// ListGames returns a league's games with their canonical status.
func (s *service) ListGames(ctx context.Context, leagueID string) (*leagueModel.GamesResponse, error) {
	raws, err := s.RawGames(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	names, err := s.teamNames(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return &leagueModel.GamesResponse{
		LeagueID: leagueID,
		Games:    s.resolver.ResolveAll(raws, s.now(), names),
	}, nil
}

// Roster returns the teams that seed a standings table.
func (s *service) Roster(ctx context.Context, leagueID string) ([]standingsModel.Team, error) {
	if strings.TrimSpace(leagueID) == "" {
		return nil, leagueModel.ErrInvalidLeagueID
	}
	teams, err := s.repo.ListTeams(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	roster := make([]standingsModel.Team, 0, len(teams))
	for _, t := range teams {
		roster = append(roster, standingsModel.Team{ID: t.TeamID, Name: t.Name})
	}
	return roster, nil
}

// RawGames returns stored games in the shape the status resolver reads.
func (s *service) RawGames(ctx context.Context, leagueID string) ([]gameModel.RawGame, error) {
	if strings.TrimSpace(leagueID) == "" {
		return nil, leagueModel.ErrInvalidLeagueID
	}
	games, err := s.repo.ListGames(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	raws := make([]gameModel.RawGame, 0, len(games))
	for _, g := range games {
		raws = append(raws, g.Raw())
	}
	return raws, nil
}

func (s *service) teamNames(ctx context.Context, leagueID string) (map[string]string, error) {
	teams, err := s.repo.ListTeams(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.TeamID] = t.Name
	}
	return names, nil
}

func validateGame(req *leagueModel.AddGameRequest) error {
	home := strings.TrimSpace(req.HomeTeamID) + strings.TrimSpace(req.HomeTeamName)
	away := strings.TrimSpace(req.AwayTeamID) + strings.TrimSpace(req.AwayTeamName)
	if home == "" || away == "" {
		return leagueModel.ErrInvalidGame
	}
	if (req.HomeScore != nil && *req.HomeScore < 0) || (req.AwayScore != nil && *req.AwayScore < 0) {
		return leagueModel.ErrInvalidScore
	}
	return nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
