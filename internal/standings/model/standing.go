// Package model provides domain models and DTOs for the standings module.
package model

import "time"

// Team is a roster entry. Only the roster seeds the ranking table, so teams
// without games still appear.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StandingRow is one team's aggregated and ranked result.
// GamesPlayed may exceed Wins+Losses because ties count as played only.
type StandingRow struct {
	TeamID        string  `json:"team_id"`
	TeamName      string  `json:"team_name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	PointsFor     int     `json:"points_for"`
	PointsAgainst int     `json:"points_against"`
	GamesPlayed   int     `json:"games_played"`
	WinPercentage float64 `json:"win_percentage"`
}

// PointDifferential returns PointsFor minus PointsAgainst.
func (r StandingRow) PointDifferential() int {
	return r.PointsFor - r.PointsAgainst
}

// StandingsResponse is the payload returned after a recalculation or read.
type StandingsResponse struct {
	LeagueID  string        `json:"league_id"`
	Standings []StandingRow `json:"standings"`
	UpdatedAt time.Time     `json:"updated_at"`
	Summary   *Summary      `json:"summary,omitempty"`
}

// Summary describes what a recalculation looked at.
type Summary struct {
	GamesEvaluated int `json:"games_evaluated"`
	GamesCounted   int `json:"games_counted"`
	GamesSkipped   int `json:"games_skipped"`
}
