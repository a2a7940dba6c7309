package model

import gameModel "github.com/leaguedesk/standings/internal/game/model"

// AddTeamRequest represents the request to add a team to a league roster.
type AddTeamRequest struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name" binding:"required"`
}

// TeamResponse represents a roster entry in API responses.
type TeamResponse struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
}

// TeamsResponse represents a league roster.
type TeamsResponse struct {
	LeagueID string         `json:"league_id"`
	Teams    []TeamResponse `json:"teams"`
}

// AddGameRequest represents a manually entered game. Teams may be given by
// id, by name or both.
type AddGameRequest struct {
	GameID       string `json:"game_id"`
	DateTimeISO  string `json:"date_time_iso"`
	Location     string `json:"location"`
	HomeTeamID   string `json:"home_team_id"`
	AwayTeamID   string `json:"away_team_id"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamName string `json:"away_team_name"`
	HomeScore    *int   `json:"home_score"`
	AwayScore    *int   `json:"away_score"`
	Status       string `json:"status"`
}

// RecordResultRequest represents a result entered for an existing game.
type RecordResultRequest struct {
	HomeScore *int   `json:"home_score" binding:"required"`
	AwayScore *int   `json:"away_score" binding:"required"`
	Status    string `json:"status"`
}

// GamesResponse lists a league's games with their canonical status.
type GamesResponse struct {
	LeagueID string           `json:"league_id"`
	Games    []gameModel.Game `json:"games"`
}
